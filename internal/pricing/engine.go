package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// Sentinel errors surfaced by the pricing engine. Callers map them onto the
// API validation taxonomy.
var (
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrUnknownPricingMethod = errors.New("unknown pricing method")
	ErrDimensionOutOfRange  = errors.New("dimension out of range")
)

var oneHundred = decimal.NewFromInt(100)

// discountSchedule is the fallback multiplier per user type when a product
// does not carry an explicit tier price. Unlisted types pay base price.
var discountSchedule = map[enums.UserType]decimal.Decimal{
	enums.UserTypeEndCustomer:   decimal.NewFromInt(1),
	enums.UserTypeReseller:      decimal.RequireFromString("0.85"),
	enums.UserTypeWholesaler:    decimal.RequireFromString("0.75"),
	enums.UserTypeBulkBuyer:     decimal.RequireFromString("0.70"),
	enums.UserTypePremiumMember: decimal.RequireFromString("0.90"),
}

// UnitPrice resolves the per-unit price for a user type. An explicit entry
// in the product's pricing tiers wins verbatim; otherwise the fallback
// discount schedule is applied to the base price.
func UnitPrice(basePrice decimal.Decimal, tiers types.PriceTiers, userType enums.UserType) decimal.Decimal {
	if tiers != nil {
		if explicit, ok := tiers[userType.String()]; ok {
			return explicit
		}
	}
	if multiplier, ok := discountSchedule[userType]; ok {
		return basePrice.Mul(multiplier).Round(2)
	}
	return basePrice
}

// ApplyBulkPricing applies the first matching quantity tier to the unit
// price. Tier order is significant: when several tiers cover the quantity,
// the first in list order wins. The percentage discount is applied before
// the flat amount, and the result never drops below zero.
func ApplyBulkPricing(unitPrice decimal.Decimal, quantity int, tiers []models.BulkPricingTier, userType enums.UserType) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}

	for _, tier := range tiers {
		if !tierMatches(tier, quantity, userType) {
			continue
		}
		price := unitPrice
		if tier.DiscountPercentage.IsPositive() {
			price = price.Sub(price.Mul(tier.DiscountPercentage).Div(oneHundred))
		}
		if tier.DiscountAmount.IsPositive() {
			price = price.Sub(tier.DiscountAmount)
		}
		if price.IsNegative() {
			price = decimal.Zero
		}
		return price.Round(2), nil
	}

	return unitPrice, nil
}

func tierMatches(tier models.BulkPricingTier, quantity int, userType enums.UserType) bool {
	if quantity < tier.MinQuantity {
		return false
	}
	if tier.MaxQuantity != nil && quantity > *tier.MaxQuantity {
		return false
	}
	if len(tier.ApplicableUserTypes) == 0 {
		return true
	}
	for _, t := range tier.ApplicableUserTypes {
		if t == userType.String() {
			return true
		}
	}
	return false
}

// CustomSizePrice computes the price for custom dimensions. The measure
// depends on the configured pricing method; each axis must fall inside the
// configured min/max bounds.
func CustomSizePrice(cfg types.SizeConfiguration, dims types.Dimensions) (decimal.Decimal, error) {
	if err := checkBounds(cfg, dims); err != nil {
		return decimal.Zero, err
	}

	var measure decimal.Decimal
	switch cfg.PricingMethod {
	case enums.PricingMethodPerCubicInch:
		measure = dims.Length.Mul(dims.Width).Mul(dims.Height)
	case enums.PricingMethodPerSquareFoot:
		measure = dims.Length.Mul(dims.Width)
	case enums.PricingMethodPerLinearFoot:
		measure = dims.Length
	case enums.PricingMethodFlatRate:
		measure = decimal.NewFromInt(1)
	default:
		return decimal.Zero, ErrUnknownPricingMethod
	}

	return cfg.CustomPricePerUnit.Mul(measure).Round(2), nil
}

func checkBounds(cfg types.SizeConfiguration, dims types.Dimensions) error {
	if cfg.CustomMinDims != nil {
		if dims.Length.LessThan(cfg.CustomMinDims.Length) ||
			dims.Width.LessThan(cfg.CustomMinDims.Width) ||
			dims.Height.LessThan(cfg.CustomMinDims.Height) {
			return ErrDimensionOutOfRange
		}
	}
	if cfg.CustomMaxDims != nil {
		if dims.Length.GreaterThan(cfg.CustomMaxDims.Length) ||
			dims.Width.GreaterThan(cfg.CustomMaxDims.Width) ||
			dims.Height.GreaterThan(cfg.CustomMaxDims.Height) {
			return ErrDimensionOutOfRange
		}
	}
	return nil
}
