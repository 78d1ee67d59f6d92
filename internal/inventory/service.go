package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

// Service exposes product inventory operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CreateProductInput holds the payload to create a product.
type CreateProductInput struct {
	Name            string
	Brand           *string
	Description     *string
	SKU             *string
	Supplier        *string
	PurchasePrice   *decimal.Decimal
	SalePrice       decimal.Decimal
	QuantityOnHand  int
	ReorderLevel    int
	ExpiryDate      *time.Time
	LastStockedDate *time.Time
}

// UpdateProductInput holds partial mutation values. Required columns (name,
// sale_price, quantity_on_hand, reorder_level) reject explicit null; the
// nullable text and date columns may be cleared.
type UpdateProductInput struct {
	Name            types.Optional[string]
	Brand           types.Optional[string]
	Description     types.Optional[string]
	SKU             types.Optional[string]
	Supplier        types.Optional[string]
	PurchasePrice   types.Optional[decimal.Decimal]
	SalePrice       types.Optional[decimal.Decimal]
	QuantityOnHand  types.Optional[int]
	ReorderLevel    types.Optional[int]
	ExpiryDate      types.Optional[time.Time]
	LastStockedDate types.Optional[time.Time]
}

type service struct {
	repo     *Repository
	dbClient *db.Client

	// now is swapped in tests to pin "today".
	now func() time.Time
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

// CreateProduct validates and inserts a product. When stock arrives with the
// row (quantity > 0) and no explicit stocked date is given, today is used.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name, err := validate.RequiredString("name", input.Name)
	if err != nil {
		return nil, err
	}
	if err := validate.NonNegativePrice("sale_price", input.SalePrice); err != nil {
		return nil, err
	}
	if input.PurchasePrice != nil {
		if err := validate.NonNegativePrice("purchase_price", *input.PurchasePrice); err != nil {
			return nil, err
		}
	}
	if err := validate.NonNegativeInt("quantity_on_hand", input.QuantityOnHand); err != nil {
		return nil, err
	}
	if err := validate.NonNegativeInt("reorder_level", input.ReorderLevel); err != nil {
		return nil, err
	}

	lastStocked := input.LastStockedDate
	if lastStocked == nil && input.QuantityOnHand > 0 {
		today := s.today()
		lastStocked = &today
	}

	product := &models.Product{
		Name:            name,
		Brand:           validate.OptionalString(input.Brand),
		Description:     validate.OptionalString(input.Description),
		SKU:             validate.OptionalString(input.SKU),
		Supplier:        validate.OptionalString(input.Supplier),
		PurchasePrice:   input.PurchasePrice,
		SalePrice:       input.SalePrice,
		QuantityOnHand:  input.QuantityOnHand,
		ReorderLevel:    input.ReorderLevel,
		ExpiryDate:      input.ExpiryDate,
		LastStockedDate: lastStocked,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateProduct(ctx, product)
		return err
	}); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert product")
	}

	created, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload product")
	}
	return NewProductDTO(created), nil
}

// ListProducts returns products ordered by name, narrowed by filters.
func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	if filters.NearingExpiryDays != nil && *filters.NearingExpiryDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nearing_expiry_days must not be negative")
	}
	rows, err := s.repo.ListProducts(ctx, filters, s.today())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list products")
	}
	return NewProductDTOs(rows), nil
}

// GetProduct loads a single product.
func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

// UpdateProduct applies a partial update. The stocked-date rule compares the
// incoming quantity to the row as stored, inside the same transaction: it
// advances to today only on a strict increase, and an explicit
// last_stocked_date in the payload always wins.
func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	if err := validateProductPatch(input); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if db.NotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load product")
		}

		storedQty := product.QuantityOnHand
		applyProductPatch(product, input)

		if input.QuantityOnHand.Set && !input.LastStockedDate.Set {
			if input.QuantityOnHand.Value > storedQty {
				today := s.today()
				product.LastStockedDate = &today
			}
		}

		_, err = txRepo.UpdateProduct(ctx, product)
		return err
	}); err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update product")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes the product.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.loadProduct(ctx, id); err != nil {
		return err
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteProduct(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete product")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.NotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load product")
	}
	return product, nil
}

// today truncates to the local date at midnight.
func (s *service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func validateProductPatch(input UpdateProductInput) error {
	if input.Name.Set {
		if input.Name.Null {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be null")
		}
		if _, err := validate.RequiredString("name", input.Name.Value); err != nil {
			return err
		}
	}
	if input.SalePrice.Set {
		if input.SalePrice.Null {
			return pkgerrors.New(pkgerrors.CodeValidation, "sale_price cannot be null")
		}
		if err := validate.NonNegativePrice("sale_price", input.SalePrice.Value); err != nil {
			return err
		}
	}
	if input.QuantityOnHand.Set {
		if input.QuantityOnHand.Null {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity_on_hand cannot be null")
		}
		if err := validate.NonNegativeInt("quantity_on_hand", input.QuantityOnHand.Value); err != nil {
			return err
		}
	}
	if input.ReorderLevel.Set {
		if input.ReorderLevel.Null {
			return pkgerrors.New(pkgerrors.CodeValidation, "reorder_level cannot be null")
		}
		if err := validate.NonNegativeInt("reorder_level", input.ReorderLevel.Value); err != nil {
			return err
		}
	}
	if input.PurchasePrice.Set && !input.PurchasePrice.Null {
		if err := validate.NonNegativePrice("purchase_price", input.PurchasePrice.Value); err != nil {
			return err
		}
	}
	return nil
}

func applyProductPatch(product *models.Product, input UpdateProductInput) {
	if input.Name.Set {
		product.Name = strings.TrimSpace(input.Name.Value)
	}
	if input.Brand.Set {
		product.Brand = validate.OptionalString(input.Brand.Ptr())
	}
	if input.Description.Set {
		product.Description = validate.OptionalString(input.Description.Ptr())
	}
	if input.SKU.Set {
		product.SKU = validate.OptionalString(input.SKU.Ptr())
	}
	if input.Supplier.Set {
		product.Supplier = validate.OptionalString(input.Supplier.Ptr())
	}
	if input.PurchasePrice.Set {
		product.PurchasePrice = input.PurchasePrice.Ptr()
	}
	if input.SalePrice.Set {
		product.SalePrice = input.SalePrice.Value
	}
	if input.QuantityOnHand.Set {
		product.QuantityOnHand = input.QuantityOnHand.Value
	}
	if input.ReorderLevel.Set {
		product.ReorderLevel = input.ReorderLevel.Value
	}
	if input.ExpiryDate.Set {
		product.ExpiryDate = input.ExpiryDate.Ptr()
	}
	if input.LastStockedDate.Set {
		product.LastStockedDate = input.LastStockedDate.Ptr()
	}
}

func conflictError(err error) *pkgerrors.Error {
	violation, ok := db.UniqueViolation(err)
	if !ok {
		return nil
	}
	return pkgerrors.New(
		pkgerrors.CodeConflict,
		fmt.Sprintf("%s already in use", violation.Column),
	).WithDetails(map[string]string{"field": violation.Column})
}
