package models

import "time"

// ProductUsage records stock consumed during an appointment or a direct
// sale. Kept as a plain pass-through table; nothing in the API mutates it
// yet, but deletes cascade from products and null out from appointments.
type ProductUsage struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AppointmentID  *int64    `gorm:"column:appointment_id"`
	ProductID      int64     `gorm:"column:product_id;not null"`
	QuantityUsed   int       `gorm:"column:quantity_used;not null"`
	SaleID         *int64    `gorm:"column:sale_id"`
	UsageTimestamp time.Time `gorm:"column:usage_timestamp;autoCreateTime"`

	Product     *Product     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnDelete:SET NULL"`
}

func (ProductUsage) TableName() string { return "product_usage" }
