package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/internal/pricing"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// CartLineDTO is one priced cart line. Prices are resolved live against the
// current catalog; nothing here is a committed snapshot.
type CartLineDTO struct {
	ID               uuid.UUID         `json:"id"`
	ProductID        uuid.UUID         `json:"product_id"`
	VariantID        *uuid.UUID        `json:"variant_id,omitempty"`
	Title            string            `json:"title"`
	Quantity         int               `json:"quantity"`
	CustomDimensions *types.Dimensions `json:"custom_dimensions,omitempty"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	LineTotal        decimal.Decimal   `json:"line_total"`
	InStock          bool              `json:"in_stock"`
}

// CartDTO is the user's basket with an estimated subtotal.
type CartDTO struct {
	ID        uuid.UUID       `json:"id"`
	Lines     []CartLineDTO   `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpsertItemInput adds or updates one basket line.
type UpsertItemInput struct {
	ProductID        uuid.UUID
	VariantID        *uuid.UUID
	Quantity         int
	CustomDimensions *types.Dimensions
}

// Service exposes basket management operations.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID, userType enums.UserType) (*CartDTO, error)
	UpsertItem(ctx context.Context, userID uuid.UUID, userType enums.UserType, input UpsertItemInput) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, userType enums.UserType, itemID uuid.UUID) (*CartDTO, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type productDetailLoader interface {
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     *Repository
	products productDetailLoader
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, products productDetailLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, products: products}, nil
}

// GetCart returns the user's basket with live prices.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID, userType enums.UserType) (*CartDTO, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.buildCartDTO(ctx, cart, userType)
}

// UpsertItem adds a product to the basket or replaces the quantity of an
// existing line for the same product and variant.
func (s *service) UpsertItem(ctx context.Context, userID uuid.UUID, userType enums.UserType, input UpsertItemInput) (*CartDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	prod, err := s.products.FindDetail(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !prod.IsActive || prod.ApprovalStatus != enums.ApprovalStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is not purchasable")
	}
	if input.Quantity < prod.MOQ {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity below minimum order quantity of %d", prod.MOQ))
	}
	if input.VariantID != nil && !variantExists(prod, *input.VariantID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	if input.CustomDimensions != nil {
		if prod.SizeConfiguration == nil || !prod.SizeConfiguration.SizeType.AllowsCustom() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not support custom sizing")
		}
		if _, err := pricing.CustomSizePrice(*prod.SizeConfiguration, *input.CustomDimensions); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "dimensions outside allowed range")
		}
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	item, err := s.repo.FindItem(ctx, cart.ID, input.ProductID, input.VariantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}
		item = &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			VariantID: input.VariantID,
		}
	}
	item.Quantity = input.Quantity
	item.CustomDimensions = input.CustomDimensions

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
	}
	if err := s.repo.TouchCart(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch cart")
	}

	refreshed, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return s.buildCartDTO(ctx, refreshed, userType)
}

// RemoveItem drops one line from the basket.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, userType enums.UserType, itemID uuid.UUID) (*CartDTO, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}

	refreshed, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return s.buildCartDTO(ctx, refreshed, userType)
}

// ClearCart empties the basket.
func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) buildCartDTO(ctx context.Context, cart *models.Cart, userType enums.UserType) (*CartDTO, error) {
	dto := &CartDTO{
		ID:        cart.ID,
		Lines:     make([]CartLineDTO, 0, len(cart.Items)),
		Subtotal:  decimal.Zero,
		UpdatedAt: cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		prod, err := s.products.FindDetail(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product removed after it was carted; surface the line as
				// unavailable instead of failing the whole basket.
				dto.Lines = append(dto.Lines, CartLineDTO{
					ID:        item.ID,
					ProductID: item.ProductID,
					VariantID: item.VariantID,
					Quantity:  item.Quantity,
					Title:     "(unavailable)",
				})
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart product")
		}

		line, err := priceLine(prod, item, userType)
		if err != nil {
			return nil, err
		}
		dto.Lines = append(dto.Lines, line)
		dto.Subtotal = dto.Subtotal.Add(line.LineTotal)
	}
	return dto, nil
}

// priceLine resolves the live price for one basket line, mirroring the math
// checkout will use.
func priceLine(prod *models.Product, item models.CartItem, userType enums.UserType) (CartLineDTO, error) {
	var unit decimal.Decimal
	switch {
	case item.CustomDimensions != nil && prod.SizeConfiguration != nil:
		price, err := pricing.CustomSizePrice(*prod.SizeConfiguration, *item.CustomDimensions)
		if err != nil {
			return CartLineDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "dimensions outside allowed range")
		}
		unit = price
	case item.VariantID != nil:
		if variant := findVariant(prod, *item.VariantID); variant != nil && variant.Price != nil {
			unit = *variant.Price
		} else {
			unit = pricing.UnitPrice(prod.BasePrice, prod.PricingTiers, userType)
		}
	default:
		unit = pricing.UnitPrice(prod.BasePrice, prod.PricingTiers, userType)
	}

	unit, err := pricing.ApplyBulkPricing(unit, item.Quantity, prod.BulkPricingTiers, userType)
	if err != nil {
		return CartLineDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	return CartLineDTO{
		ID:               item.ID,
		ProductID:        prod.ID,
		VariantID:        item.VariantID,
		Title:            prod.Title,
		Quantity:         item.Quantity,
		CustomDimensions: item.CustomDimensions,
		UnitPrice:        unit,
		LineTotal:        unit.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		InStock:          prod.StockQuantity >= item.Quantity,
	}, nil
}

func variantExists(prod *models.Product, variantID uuid.UUID) bool {
	return findVariant(prod, variantID) != nil
}

func findVariant(prod *models.Product, variantID uuid.UUID) *models.ProductVariant {
	for i := range prod.Variants {
		if prod.Variants[i].ID == variantID {
			return &prod.Variants[i]
		}
	}
	return nil
}
