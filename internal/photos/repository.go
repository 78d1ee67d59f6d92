package photos

import (
	"context"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// Repository wraps client photo persistence.
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

// FindByID loads a photo row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.ClientPhoto, error) {
	var photo models.ClientPhoto
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByCustomer returns a customer's photos, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]models.ClientPhoto, error) {
	var rows []models.ClientPhoto
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("uploaded_at DESC").
		Order("id DESC").
		Find(&rows).
		Error
	return rows, err
}

// CreatePhoto inserts a photo row.
func (r *Repository) CreatePhoto(ctx context.Context, photo *models.ClientPhoto) (*models.ClientPhoto, error) {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// DeletePhoto removes a photo row by ID.
func (r *Repository) DeletePhoto(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ClientPhoto{}).Error
}
