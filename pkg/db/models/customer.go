package models

import "time"

// Customer is a salon client record. Phone and email are optional but
// globally unique when present.
type Customer struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	Phone     *string   `gorm:"column:phone;unique"`
	Email     *string   `gorm:"column:email;unique"`
	Address   *string   `gorm:"column:address"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Photos []ClientPhoto `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}
