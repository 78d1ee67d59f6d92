package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmoralesdev/salon-backoffice/api/responses"
	"github.com/rmoralesdev/salon-backoffice/api/validators"
	"github.com/rmoralesdev/salon-backoffice/internal/inventory"
	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

// ProductsList returns the inventory, narrowed by low_stock and
// nearing_expiry_days. Malformed filter values are rejected, not ignored.
func ProductsList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		lowStock, err := validators.ParseQueryBool(r, "low_stock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expiryDays, err := validators.ParseQueryIntPtr(r, "nearing_expiry_days")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListProducts(r.Context(), inventory.ListFilters{
			LowStock:          lowStock,
			NearingExpiryDays: expiryDays,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// ProductCreate adds an inventory row.
func ProductCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductDetail loads a single inventory row.
func ProductDetail(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductUpdate applies a partial update to an inventory row.
func ProductUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes an inventory row.
func ProductDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type createProductRequest struct {
	Name            string           `json:"name" validate:"required"`
	Brand           *string          `json:"brand,omitempty"`
	Description     *string          `json:"description,omitempty"`
	SKU             *string          `json:"sku,omitempty"`
	Supplier        *string          `json:"supplier,omitempty"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice       *decimal.Decimal `json:"sale_price" validate:"required"`
	QuantityOnHand  int              `json:"quantity_on_hand,omitempty"`
	ReorderLevel    int              `json:"reorder_level,omitempty"`
	ExpiryDate      *string          `json:"expiry_date,omitempty"`
	LastStockedDate *string          `json:"last_stocked_date,omitempty"`
}

func (r createProductRequest) toCreateInput() (inventory.CreateProductInput, error) {
	expiry, err := parseDatePtr("expiry_date", r.ExpiryDate)
	if err != nil {
		return inventory.CreateProductInput{}, err
	}
	lastStocked, err := parseDatePtr("last_stocked_date", r.LastStockedDate)
	if err != nil {
		return inventory.CreateProductInput{}, err
	}

	input := inventory.CreateProductInput{
		Name:            r.Name,
		Brand:           r.Brand,
		Description:     r.Description,
		SKU:             r.SKU,
		Supplier:        r.Supplier,
		PurchasePrice:   r.PurchasePrice,
		QuantityOnHand:  r.QuantityOnHand,
		ReorderLevel:    r.ReorderLevel,
		ExpiryDate:      expiry,
		LastStockedDate: lastStocked,
	}
	if r.SalePrice != nil {
		input.SalePrice = *r.SalePrice
	}
	return input, nil
}

type updateProductRequest struct {
	Name            types.Optional[string]          `json:"name"`
	Brand           types.Optional[string]          `json:"brand"`
	Description     types.Optional[string]          `json:"description"`
	SKU             types.Optional[string]          `json:"sku"`
	Supplier        types.Optional[string]          `json:"supplier"`
	PurchasePrice   types.Optional[decimal.Decimal] `json:"purchase_price"`
	SalePrice       types.Optional[decimal.Decimal] `json:"sale_price"`
	QuantityOnHand  types.Optional[int]             `json:"quantity_on_hand"`
	ReorderLevel    types.Optional[int]             `json:"reorder_level"`
	ExpiryDate      types.Optional[string]          `json:"expiry_date"`
	LastStockedDate types.Optional[string]          `json:"last_stocked_date"`
}

func (r updateProductRequest) toUpdateInput() (inventory.UpdateProductInput, error) {
	expiry, err := parseOptionalDate("expiry_date", r.ExpiryDate)
	if err != nil {
		return inventory.UpdateProductInput{}, err
	}
	lastStocked, err := parseOptionalDate("last_stocked_date", r.LastStockedDate)
	if err != nil {
		return inventory.UpdateProductInput{}, err
	}

	return inventory.UpdateProductInput{
		Name:            r.Name,
		Brand:           r.Brand,
		Description:     r.Description,
		SKU:             r.SKU,
		Supplier:        r.Supplier,
		PurchasePrice:   r.PurchasePrice,
		SalePrice:       r.SalePrice,
		QuantityOnHand:  r.QuantityOnHand,
		ReorderLevel:    r.ReorderLevel,
		ExpiryDate:      expiry,
		LastStockedDate: lastStocked,
	}, nil
}

func parseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	ts, err := validate.Date(field, *value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func parseOptionalDate(field string, value types.Optional[string]) (types.Optional[time.Time], error) {
	var out types.Optional[time.Time]
	if !value.Set {
		return out, nil
	}
	out.Set = true
	if value.Null {
		out.Null = true
		return out, nil
	}
	ts, err := validate.Date(field, value.Value)
	if err != nil {
		return types.Optional[time.Time]{}, err
	}
	out.Value = ts
	return out, nil
}
