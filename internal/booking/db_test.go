package booking

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmoralesdev/salon-backoffice/internal/catalog"
	"github.com/rmoralesdev/salon-backoffice/internal/customers"
	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	err = client.DB().AutoMigrate(
		&models.Customer{},
		&models.ClientPhoto{},
		&models.Service{},
		&models.Appointment{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return client
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	client := openTestDB(t)
	svc, err := NewService(
		NewRepository(client.DB()),
		client,
		customers.NewRepository(client.DB()),
		catalog.NewRepository(client.DB()),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}

func mustCreateCustomer(t *testing.T, client *db.Client, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name}
	if err := client.DB().Create(customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func mustCreateCatalogService(t *testing.T, client *db.Client, name string, price int64, active bool) *models.Service {
	t.Helper()
	svc := &models.Service{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		IsActive: active,
	}
	if err := client.DB().Create(svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}
