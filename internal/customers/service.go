package customers

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

// Service exposes customer management operations.
type Service interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	ListCustomers(ctx context.Context) ([]CustomerDTO, error)
	GetCustomer(ctx context.Context, id int64) (*CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id int64, input UpdateCustomerInput) (*CustomerDTO, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// CreateCustomerInput holds the payload to create a customer.
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// UpdateCustomerInput holds partial mutation values. Absent fields are left
// untouched; explicit null clears nullable columns and is rejected on name.
type UpdateCustomerInput struct {
	Name    types.Optional[string]
	Phone   types.Optional[string]
	Email   types.Optional[string]
	Address types.Optional[string]
	Notes   types.Optional[string]
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a customer service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateCustomer validates and inserts a new customer.
func (s *service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	name, err := validate.RequiredString("name", input.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:    name,
		Phone:   validate.OptionalString(input.Phone),
		Email:   email,
		Address: validate.OptionalString(input.Address),
		Notes:   validate.OptionalString(input.Notes),
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateCustomer(ctx, customer)
		return err
	}); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert customer")
	}

	created, err := s.repo.FindByID(ctx, customer.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload customer")
	}
	return NewCustomerDTO(created), nil
}

// ListCustomers returns all customers ordered by name.
func (s *service) ListCustomers(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list customers")
	}
	return NewCustomerDTOs(rows), nil
}

// GetCustomer loads a single customer.
func (s *service) GetCustomer(ctx context.Context, id int64) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewCustomerDTO(customer), nil
}

// UpdateCustomer applies a partial update and returns the stored record.
func (s *service) UpdateCustomer(ctx context.Context, id int64, input UpdateCustomerInput) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name.Set {
		if input.Name.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be null")
		}
		name, err := validate.RequiredString("name", input.Name.Value)
		if err != nil {
			return nil, err
		}
		customer.Name = name
	}
	if input.Phone.Set {
		customer.Phone = validate.OptionalString(input.Phone.Ptr())
	}
	if input.Email.Set {
		email, err := normalizeEmail(input.Email.Ptr())
		if err != nil {
			return nil, err
		}
		customer.Email = email
	}
	if input.Address.Set {
		customer.Address = validate.OptionalString(input.Address.Ptr())
	}
	if input.Notes.Set {
		customer.Notes = validate.OptionalString(input.Notes.Ptr())
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).UpdateCustomer(ctx, customer)
		return err
	}); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update customer")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload customer")
	}
	return NewCustomerDTO(updated), nil
}

// DeleteCustomer removes the customer; photos cascade at the FK level.
func (s *service) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.loadCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteCustomer(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete customer")
	}
	return nil
}

func (s *service) loadCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.NotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load customer")
	}
	return customer, nil
}

func normalizeEmail(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed, err := validate.Email(*value)
	if err != nil {
		return nil, err
	}
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}

func conflictError(err error) *pkgerrors.Error {
	violation, ok := db.UniqueViolation(err)
	if !ok {
		return nil
	}
	return pkgerrors.New(
		pkgerrors.CodeConflict,
		fmt.Sprintf("%s already in use", violation.Column),
	).WithDetails(map[string]string{"field": violation.Column})
}
