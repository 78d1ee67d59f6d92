package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// ListFilters narrows the product listing. Both filters AND together.
type ListFilters struct {
	// LowStock keeps rows where quantity_on_hand <= reorder_level and a
	// reorder level is actually configured (> 0).
	LowStock bool

	// NearingExpiryDays filters on expiry_date when non-nil. N > 0 keeps
	// rows expiring between today and today+N inclusive; N == 0 keeps rows
	// already expired on or before today.
	NearingExpiryDays *int
}

// Repository wraps product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a product row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns products ordered by name, narrowed by filters.
func (r *Repository) ListProducts(ctx context.Context, filters ListFilters, today time.Time) ([]models.Product, error) {
	qb := r.db.WithContext(ctx)

	if filters.LowStock {
		qb = qb.Where("quantity_on_hand <= reorder_level AND reorder_level > 0")
	}
	if filters.NearingExpiryDays != nil {
		days := *filters.NearingExpiryDays
		if days == 0 {
			qb = qb.Where("expiry_date IS NOT NULL AND expiry_date <= ?", today)
		} else {
			qb = qb.Where(
				"expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?",
				today, today.AddDate(0, 0, days),
			)
		}
	}

	var rows []models.Product
	err := qb.
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves the full product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product; usage rows cascade via FK.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
