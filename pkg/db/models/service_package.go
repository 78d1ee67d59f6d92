package models

import "github.com/shopspring/decimal"

// ServicePackage bundles services at a combined price. Pass-through table.
type ServicePackage struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:numeric;not null"`
	IsActive    bool            `gorm:"column:is_active;not null"`

	Items []ServicePackageItem `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

// ServicePackageItem is the package/service link row.
type ServicePackageItem struct {
	PackageID int64 `gorm:"column:package_id;primaryKey"`
	ServiceID int64 `gorm:"column:service_id;primaryKey"`
	Quantity  int   `gorm:"column:quantity;not null;default:1"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

func (ServicePackageItem) TableName() string { return "service_package_items" }
