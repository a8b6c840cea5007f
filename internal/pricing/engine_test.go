package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestUnitPrice_ExplicitTierWinsVerbatim(t *testing.T) {
	tiers := types.PriceTiers{
		"wholesaler": dec("42.42"),
	}

	got := UnitPrice(dec("100"), tiers, enums.UserTypeWholesaler)
	if !got.Equal(dec("42.42")) {
		t.Fatalf("expected explicit tier price 42.42, got %s", got)
	}
}

func TestUnitPrice_DiscountSchedule(t *testing.T) {
	base := dec("100")
	cases := []struct {
		userType enums.UserType
		want     string
	}{
		{enums.UserTypeEndCustomer, "100"},
		{enums.UserTypeReseller, "85"},
		{enums.UserTypeWholesaler, "75"},
		{enums.UserTypeBulkBuyer, "70"},
		{enums.UserTypePremiumMember, "90"},
		{enums.UserTypeManufacturer, "100"},
		{enums.UserTypeAdmin, "100"},
	}

	for _, tc := range cases {
		t.Run(tc.userType.String(), func(t *testing.T) {
			got := UnitPrice(base, nil, tc.userType)
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("UnitPrice(100, nil, %s) = %s, want %s", tc.userType, got, tc.want)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func TestApplyBulkPricing_FirstMatchWins(t *testing.T) {
	tiers := []models.BulkPricingTier{
		{MinQuantity: 10, MaxQuantity: intPtr(100), DiscountPercentage: dec("10")},
		{MinQuantity: 10, MaxQuantity: intPtr(100), DiscountPercentage: dec("50")},
	}

	got, err := ApplyBulkPricing(dec("100"), 20, tiers, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("ApplyBulkPricing returned error: %v", err)
	}
	if !got.Equal(dec("90")) {
		t.Fatalf("expected first tier (10%%) to win, got %s", got)
	}

	// Reversing the list changes the outcome.
	reversed := []models.BulkPricingTier{tiers[1], tiers[0]}
	got, err = ApplyBulkPricing(dec("100"), 20, reversed, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("ApplyBulkPricing returned error: %v", err)
	}
	if !got.Equal(dec("50")) {
		t.Fatalf("expected reversed order to apply 50%%, got %s", got)
	}
}

func TestApplyBulkPricing_UserTypeFilter(t *testing.T) {
	tiers := []models.BulkPricingTier{
		{MinQuantity: 5, DiscountPercentage: dec("20"), ApplicableUserTypes: []string{"wholesaler"}},
	}

	got, err := ApplyBulkPricing(dec("100"), 10, tiers, enums.UserTypeReseller)
	if err != nil {
		t.Fatalf("ApplyBulkPricing returned error: %v", err)
	}
	if !got.Equal(dec("100")) {
		t.Fatalf("expected no discount for reseller, got %s", got)
	}

	got, err = ApplyBulkPricing(dec("100"), 10, tiers, enums.UserTypeWholesaler)
	if err != nil {
		t.Fatalf("ApplyBulkPricing returned error: %v", err)
	}
	if !got.Equal(dec("80")) {
		t.Fatalf("expected 20%% discount for wholesaler, got %s", got)
	}
}

func TestApplyBulkPricing_PercentageThenFlatFlooredAtZero(t *testing.T) {
	tiers := []models.BulkPricingTier{
		{MinQuantity: 1, DiscountPercentage: dec("50"), DiscountAmount: dec("80")},
	}

	got, err := ApplyBulkPricing(dec("100"), 1, tiers, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("ApplyBulkPricing returned error: %v", err)
	}
	// 100 -> 50 after percentage, -80 flat would go negative, floored at 0.
	if !got.Equal(decimal.Zero) {
		t.Fatalf("expected price floored at zero, got %s", got)
	}
}

func TestApplyBulkPricing_QuantityOutsideRange(t *testing.T) {
	tiers := []models.BulkPricingTier{
		{MinQuantity: 10, MaxQuantity: intPtr(20), DiscountPercentage: dec("10")},
	}

	got, err := ApplyBulkPricing(dec("100"), 25, tiers, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("ApplyBulkPricing returned error: %v", err)
	}
	if !got.Equal(dec("100")) {
		t.Fatalf("expected unit price unchanged outside range, got %s", got)
	}
}

func TestApplyBulkPricing_InvalidQuantity(t *testing.T) {
	if _, err := ApplyBulkPricing(dec("100"), 0, nil, enums.UserTypeEndCustomer); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCustomSizePrice_Methods(t *testing.T) {
	dims := types.Dimensions{Length: dec("10"), Width: dec("4"), Height: dec("2")}
	cases := []struct {
		method enums.PricingMethod
		want   string
	}{
		{enums.PricingMethodPerCubicInch, "160"},  // 10*4*2 * 2
		{enums.PricingMethodPerSquareFoot, "80"},  // 10*4 * 2
		{enums.PricingMethodPerLinearFoot, "20"},  // 10 * 2
		{enums.PricingMethodFlatRate, "2"},        // 1 * 2
	}

	for _, tc := range cases {
		t.Run(tc.method.String(), func(t *testing.T) {
			cfg := types.SizeConfiguration{
				SizeType:           enums.SizeTypeCustom,
				PricingMethod:      tc.method,
				CustomPricePerUnit: dec("2"),
			}
			got, err := CustomSizePrice(cfg, dims)
			if err != nil {
				t.Fatalf("CustomSizePrice returned error: %v", err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("CustomSizePrice(%s) = %s, want %s", tc.method, got, tc.want)
			}
		})
	}
}

func TestCustomSizePrice_UnknownMethod(t *testing.T) {
	cfg := types.SizeConfiguration{
		PricingMethod:      "per_fortnight",
		CustomPricePerUnit: dec("2"),
	}
	if _, err := CustomSizePrice(cfg, types.Dimensions{}); !errors.Is(err, ErrUnknownPricingMethod) {
		t.Fatalf("expected ErrUnknownPricingMethod, got %v", err)
	}
}

func TestCustomSizePrice_DimensionBounds(t *testing.T) {
	cfg := types.SizeConfiguration{
		PricingMethod:      enums.PricingMethodPerLinearFoot,
		CustomPricePerUnit: dec("1"),
		CustomMinDims:      &types.Dimensions{Length: dec("5"), Width: dec("1"), Height: dec("1")},
		CustomMaxDims:      &types.Dimensions{Length: dec("50"), Width: dec("10"), Height: dec("10")},
	}

	if _, err := CustomSizePrice(cfg, types.Dimensions{Length: dec("4"), Width: dec("2"), Height: dec("2")}); !errors.Is(err, ErrDimensionOutOfRange) {
		t.Fatalf("expected ErrDimensionOutOfRange below min, got %v", err)
	}
	if _, err := CustomSizePrice(cfg, types.Dimensions{Length: dec("60"), Width: dec("2"), Height: dec("2")}); !errors.Is(err, ErrDimensionOutOfRange) {
		t.Fatalf("expected ErrDimensionOutOfRange above max, got %v", err)
	}
	if _, err := CustomSizePrice(cfg, types.Dimensions{Length: dec("10"), Width: dec("2"), Height: dec("2")}); err != nil {
		t.Fatalf("expected in-bounds dimensions to price, got %v", err)
	}
}
