package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

const dateLayout = "2006-01-02"

// ProductDTO is the inventory payload returned to clients. Date columns
// render as bare YYYY-MM-DD strings.
type ProductDTO struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Brand           *string          `json:"brand"`
	Description     *string          `json:"description"`
	SKU             *string          `json:"sku"`
	Supplier        *string          `json:"supplier"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"`
	SalePrice       decimal.Decimal  `json:"sale_price"`
	QuantityOnHand  int              `json:"quantity_on_hand"`
	ReorderLevel    int              `json:"reorder_level"`
	ExpiryDate      *string          `json:"expiry_date"`
	LastStockedDate *string          `json:"last_stocked_date"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Brand:           product.Brand,
		Description:     product.Description,
		SKU:             product.SKU,
		Supplier:        product.Supplier,
		PurchasePrice:   product.PurchasePrice,
		SalePrice:       product.SalePrice,
		QuantityOnHand:  product.QuantityOnHand,
		ReorderLevel:    product.ReorderLevel,
		ExpiryDate:      formatDate(product.ExpiryDate),
		LastStockedDate: formatDate(product.LastStockedDate),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// NewProductDTOs maps a list of models.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewProductDTO(&rows[i])
	}
	return dtos
}

func formatDate(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	formatted := ts.Format(dateLayout)
	return &formatted
}
