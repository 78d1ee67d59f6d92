package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment references a customer and a service, both nulled by the store
// when the referenced row is deleted. PriceAtBooking is frozen at creation
// (or at the last service change) and never resynced with the catalog.
type Appointment struct {
	ID                  int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID          *int64          `gorm:"column:customer_id"`
	ServiceID           *int64          `gorm:"column:service_id"`
	AppointmentDatetime time.Time       `gorm:"column:appointment_datetime;not null"`
	Status              string          `gorm:"column:status"`
	Notes               *string         `gorm:"column:notes"`
	PriceAtBooking      decimal.Decimal `gorm:"column:price_at_booking;type:numeric"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL"`
}
