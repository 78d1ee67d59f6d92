package models

import "time"

// LoyaltyAccount tracks points per customer, cascade-deleted with the
// customer. Pass-through table.
type LoyaltyAccount struct {
	CustomerID  int64     `gorm:"column:customer_id;primaryKey"`
	Points      int       `gorm:"column:points;not null;default:0"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (LoyaltyAccount) TableName() string { return "customer_loyalty" }
