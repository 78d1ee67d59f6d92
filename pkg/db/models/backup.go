package models

import "time"

// Backup records a completed (or failed) database backup run. Pass-through
// table; rows are written by external tooling.
type Backup struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	BackupTimestamp time.Time `gorm:"column:backup_timestamp;not null"`
	BackupPath      string    `gorm:"column:backup_path;not null"`
	Status          *string   `gorm:"column:status"`
	Notes           *string   `gorm:"column:notes"`
}
