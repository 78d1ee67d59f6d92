package settings

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
)

// SettingDTO is a single key/value preference row.
type SettingDTO struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// BackupDTO mirrors a backups table row; rows are written by external
// tooling and only read here.
type BackupDTO struct {
	ID              int64     `json:"id"`
	BackupTimestamp time.Time `json:"backup_timestamp"`
	BackupPath      string    `json:"backup_path"`
	Status          *string   `json:"status"`
	Notes           *string   `json:"notes"`
}

// Service exposes app settings and backup listing.
type Service interface {
	ListSettings(ctx context.Context) (map[string]*string, error)
	GetSetting(ctx context.Context, key string) (*SettingDTO, error)
	PutSetting(ctx context.Context, key string, value *string) (*SettingDTO, error)
	ListBackups(ctx context.Context) ([]BackupDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a settings service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListSettings returns all preferences as a flat key/value map.
func (s *service) ListSettings(ctx context.Context) (map[string]*string, error) {
	rows, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list settings")
	}
	out := make(map[string]*string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// GetSetting loads a single preference.
func (s *service) GetSetting(ctx context.Context, key string) (*SettingDTO, error) {
	trimmed, err := validate.RequiredString("key", key)
	if err != nil {
		return nil, err
	}
	setting, err := s.repo.FindSetting(ctx, trimmed)
	if err != nil {
		if db.NotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load setting")
	}
	return &SettingDTO{Key: setting.Key, Value: setting.Value}, nil
}

// PutSetting writes a preference, creating the key when new.
func (s *service) PutSetting(ctx context.Context, key string, value *string) (*SettingDTO, error) {
	trimmed, err := validate.RequiredString("key", key)
	if err != nil {
		return nil, err
	}

	setting := &models.AppSetting{Key: trimmed, Value: value}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpsertSetting(ctx, setting)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: upsert setting")
	}

	stored, err := s.repo.FindSetting(ctx, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload setting")
	}
	return &SettingDTO{Key: stored.Key, Value: stored.Value}, nil
}

// ListBackups returns backup history, newest first.
func (s *service) ListBackups(ctx context.Context) ([]BackupDTO, error) {
	rows, err := s.repo.ListBackups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list backups")
	}
	dtos := make([]BackupDTO, len(rows))
	for i, row := range rows {
		dtos[i] = BackupDTO{
			ID:              row.ID,
			BackupTimestamp: row.BackupTimestamp,
			BackupPath:      row.BackupPath,
			Status:          row.Status,
			Notes:           row.Notes,
		}
	}
	return dtos, nil
}
