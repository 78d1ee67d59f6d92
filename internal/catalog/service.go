package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

// Service exposes catalog management operations.
type Service interface {
	CreateService(ctx context.Context, input CreateServiceInput) (*ServiceDTO, error)
	ListServices(ctx context.Context, includeInactive bool) ([]ServiceDTO, error)
	GetService(ctx context.Context, id int64) (*ServiceDTO, error)
	UpdateService(ctx context.Context, id int64, input UpdateServiceInput) (*ServiceDTO, error)
	DeleteService(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) (*ServiceDTO, error)
}

// CreateServiceInput holds the payload to create a catalog entry.
type CreateServiceInput struct {
	Name            string
	Description     *string
	Price           decimal.Decimal
	DurationMinutes *int
	Category        *string
	IsActive        *bool
}

// UpdateServiceInput holds partial mutation values. Price and is_active are
// required columns, so an explicit null on either is rejected; duration,
// description and category may be cleared.
type UpdateServiceInput struct {
	Name            types.Optional[string]
	Description     types.Optional[string]
	Price           types.Optional[decimal.Decimal]
	DurationMinutes types.Optional[int]
	Category        types.Optional[string]
	IsActive        types.Optional[bool]
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateService validates and inserts a catalog entry. Active by default.
func (s *service) CreateService(ctx context.Context, input CreateServiceInput) (*ServiceDTO, error) {
	name, err := validate.RequiredString("name", input.Name)
	if err != nil {
		return nil, err
	}
	if err := validate.NonNegativePrice("price", input.Price); err != nil {
		return nil, err
	}
	if input.DurationMinutes != nil {
		if err := validate.NonNegativeInt("duration_minutes", *input.DurationMinutes); err != nil {
			return nil, err
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	svc := &models.Service{
		Name:            name,
		Description:     validate.OptionalString(input.Description),
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Category:        validate.OptionalString(input.Category),
		IsActive:        isActive,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateService(ctx, svc)
		return err
	}); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert service")
	}

	created, err := s.repo.FindByID(ctx, svc.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload service")
	}
	return NewServiceDTO(created), nil
}

// ListServices returns the catalog ordered by category then name.
func (s *service) ListServices(ctx context.Context, includeInactive bool) ([]ServiceDTO, error) {
	rows, err := s.repo.ListServices(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list services")
	}
	return NewServiceDTOs(rows), nil
}

// GetService loads a catalog entry regardless of active state.
func (s *service) GetService(ctx context.Context, id int64) (*ServiceDTO, error) {
	svc, err := s.loadService(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewServiceDTO(svc), nil
}

// UpdateService applies a partial update and returns the stored record.
func (s *service) UpdateService(ctx context.Context, id int64, input UpdateServiceInput) (*ServiceDTO, error) {
	svc, err := s.loadService(ctx, id)
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
		svc.Name = name
	}
	if input.Price.Set {
		if input.Price.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be null")
		}
		if err := validate.NonNegativePrice("price", input.Price.Value); err != nil {
			return nil, err
		}
		svc.Price = input.Price.Value
	}
	if input.IsActive.Set {
		if input.IsActive.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "is_active cannot be null")
		}
		svc.IsActive = input.IsActive.Value
	}
	if input.DurationMinutes.Set {
		if input.DurationMinutes.Null {
			svc.DurationMinutes = nil
		} else {
			if err := validate.NonNegativeInt("duration_minutes", input.DurationMinutes.Value); err != nil {
				return nil, err
			}
			svc.DurationMinutes = input.DurationMinutes.Ptr()
		}
	}
	if input.Description.Set {
		svc.Description = validate.OptionalString(input.Description.Ptr())
	}
	if input.Category.Set {
		svc.Category = validate.OptionalString(input.Category.Ptr())
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).UpdateService(ctx, svc)
		return err
	}); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update service")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload service")
	}
	return NewServiceDTO(updated), nil
}

// DeleteService removes the catalog entry.
func (s *service) DeleteService(ctx context.Context, id int64) error {
	if _, err := s.loadService(ctx, id); err != nil {
		return err
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteService(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete service")
	}
	return nil
}

// SetActive flips the active flag. Idempotent: re-activating an active
// entry just returns the current record.
func (s *service) SetActive(ctx context.Context, id int64, active bool) (*ServiceDTO, error) {
	svc, err := s.loadService(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.IsActive == active {
		return NewServiceDTO(svc), nil
	}

	svc.IsActive = active
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).UpdateService(ctx, svc)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update service")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload service")
	}
	return NewServiceDTO(updated), nil
}

func (s *service) loadService(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.NotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load service")
	}
	return svc, nil
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
