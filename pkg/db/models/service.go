package models

import "github.com/shopspring/decimal"

// Service is a bookable catalog entry. IsActive is the soft-delete flag:
// inactive services stay in the table but are hidden from default listings
// and refuse new bookings.
type Service struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string          `gorm:"column:name;not null;unique"`
	Description     *string         `gorm:"column:description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	DurationMinutes *int            `gorm:"column:duration_minutes"`
	Category        *string         `gorm:"column:category"`
	// No gorm default here: a default tag makes GORM drop an explicit false
	// from the INSERT. The application sets the value on every create.
	IsActive bool `gorm:"column:is_active;not null"`
}
