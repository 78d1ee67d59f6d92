package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// Repository wraps catalog persistence.
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

// FindByID loads a service row, active or not.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// FindActiveByID loads a service row only when it is active.
func (r *Repository) FindActiveByID(ctx context.Context, id int64) (*models.Service, error) {
	var svc models.Service
	err := r.db.WithContext(ctx).
		First(&svc, "id = ? AND is_active = ?", id, true).
		Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListServices returns catalog entries ordered by category then name.
// Inactive entries are hidden unless includeInactive is set.
func (r *Repository) ListServices(ctx context.Context, includeInactive bool) ([]models.Service, error) {
	qb := r.db.WithContext(ctx)
	if !includeInactive {
		qb = qb.Where("is_active = ?", true)
	}

	var rows []models.Service
	err := qb.
		Order("category ASC").
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateService inserts a new catalog row.
func (r *Repository) CreateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService saves the full catalog row.
func (r *Repository) UpdateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Save(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a catalog row. Appointment references are nulled by
// the FK, keeping history intact with the snapshot price.
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{}).Error
}
