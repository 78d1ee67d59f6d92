package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a retail/stock item. LastStockedDate advances only when an
// update strictly increases QuantityOnHand (or when set explicitly).
type Product struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string           `gorm:"column:name;not null;unique"`
	Brand           *string          `gorm:"column:brand"`
	Description     *string          `gorm:"column:description"`
	SKU             *string          `gorm:"column:sku;unique"`
	Supplier        *string          `gorm:"column:supplier"`
	PurchasePrice   *decimal.Decimal `gorm:"column:purchase_price;type:numeric"`
	SalePrice       decimal.Decimal  `gorm:"column:sale_price;type:numeric;not null"`
	QuantityOnHand  int              `gorm:"column:quantity_on_hand;not null;default:0"`
	ReorderLevel    int              `gorm:"column:reorder_level;not null;default:0"`
	ExpiryDate      *time.Time       `gorm:"column:expiry_date"`
	LastStockedDate *time.Time       `gorm:"column:last_stocked_date"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
