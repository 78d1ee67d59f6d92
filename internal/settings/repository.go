package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// Repository wraps app settings and backup persistence.
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

// ListSettings returns every settings row.
func (r *Repository) ListSettings(ctx context.Context) ([]models.AppSetting, error) {
	var rows []models.AppSetting
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindSetting loads a single settings row by key.
func (r *Repository) FindSetting(ctx context.Context, key string) (*models.AppSetting, error) {
	var setting models.AppSetting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertSetting writes the value for a key, inserting the row when the key
// is new.
func (r *Repository) UpsertSetting(ctx context.Context, setting *models.AppSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(setting).
		Error
}

// ListBackups returns backup records, newest first.
func (r *Repository) ListBackups(ctx context.Context) ([]models.Backup, error) {
	var rows []models.Backup
	err := r.db.WithContext(ctx).
		Order("backup_timestamp DESC").
		Order("id DESC").
		Find(&rows).
		Error
	return rows, err
}
