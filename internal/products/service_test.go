package product

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestQuoteForProduct_ScheduleAndBulk(t *testing.T) {
	maxQty := 100
	prod := &models.Product{
		BasePrice: dec("100"),
		MOQ:       1,
		BulkPricingTiers: []models.BulkPricingTier{
			{MinQuantity: 10, MaxQuantity: &maxQty, DiscountPercentage: dec("10")},
		},
	}

	quote, err := quoteForProduct(prod, QuoteInput{
		UserType: enums.UserTypeWholesaler,
		Quantity: 20,
	})
	if err != nil {
		t.Fatalf("quoteForProduct: %v", err)
	}
	// 100 * 0.75 schedule, then 10% bulk discount.
	if !quote.UnitPrice.Equal(dec("67.50")) {
		t.Fatalf("unit price = %s, want 67.50", quote.UnitPrice)
	}
	if !quote.LineTotal.Equal(dec("1350")) {
		t.Fatalf("line total = %s, want 1350", quote.LineTotal)
	}
}

func TestQuoteForProduct_ExplicitTierBypassesSchedule(t *testing.T) {
	prod := &models.Product{
		BasePrice:    dec("100"),
		MOQ:          1,
		PricingTiers: types.PriceTiers{"reseller": dec("91.23")},
	}

	quote, err := quoteForProduct(prod, QuoteInput{UserType: enums.UserTypeReseller, Quantity: 1})
	if err != nil {
		t.Fatalf("quoteForProduct: %v", err)
	}
	if !quote.UnitPrice.Equal(dec("91.23")) {
		t.Fatalf("unit price = %s, want explicit 91.23", quote.UnitPrice)
	}
}

func TestQuoteForProduct_BelowMOQ(t *testing.T) {
	prod := &models.Product{BasePrice: dec("100"), MOQ: 5}

	_, err := quoteForProduct(prod, QuoteInput{UserType: enums.UserTypeEndCustomer, Quantity: 2})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error below MOQ, got %v", err)
	}
}

func TestQuoteForProduct_CustomDimensions(t *testing.T) {
	prod := &models.Product{
		BasePrice:    dec("100"),
		MOQ:          1,
		CustomSizing: true,
		SizeConfiguration: &types.SizeConfiguration{
			SizeType:           enums.SizeTypeCustom,
			PricingMethod:      enums.PricingMethodPerSquareFoot,
			CustomPricePerUnit: dec("3"),
		},
	}

	quote, err := quoteForProduct(prod, QuoteInput{
		UserType:         enums.UserTypeEndCustomer,
		Quantity:         2,
		CustomDimensions: &types.Dimensions{Length: dec("4"), Width: dec("5"), Height: dec("1")},
	})
	if err != nil {
		t.Fatalf("quoteForProduct: %v", err)
	}
	// 4*5 sq ft at 3 per unit.
	if !quote.UnitPrice.Equal(dec("60")) {
		t.Fatalf("unit price = %s, want 60", quote.UnitPrice)
	}
	if !quote.LineTotal.Equal(dec("120")) {
		t.Fatalf("line total = %s, want 120", quote.LineTotal)
	}
}

func TestQuoteForProduct_CustomDimensionsRejectedWithoutConfig(t *testing.T) {
	prod := &models.Product{BasePrice: dec("100"), MOQ: 1}

	_, err := quoteForProduct(prod, QuoteInput{
		UserType:         enums.UserTypeEndCustomer,
		Quantity:         1,
		CustomDimensions: &types.Dimensions{Length: dec("4"), Width: dec("5"), Height: dec("1")},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateBulkTiers(t *testing.T) {
	maxQty := 5
	cases := []struct {
		name    string
		tiers   []BulkTierInput
		wantErr bool
	}{
		{"valid", []BulkTierInput{{MinQuantity: 1, DiscountPercentage: dec("10")}}, false},
		{"zero min", []BulkTierInput{{MinQuantity: 0}}, true},
		{"max below min", []BulkTierInput{{MinQuantity: 10, MaxQuantity: &maxQty}}, true},
		{"percent above 100", []BulkTierInput{{MinQuantity: 1, DiscountPercentage: dec("101")}}, true},
		{"unknown user type", []BulkTierInput{{MinQuantity: 1, ApplicableUserTypes: []string{"alien"}}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateBulkTiers(tc.tiers)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyUpdateTrimsAndCopies(t *testing.T) {
	prod := &models.Product{Title: "Old", Tags: []string{"old"}}

	title := "  New Title  "
	tags := []string{"fresh"}
	applyUpdate(prod, UpdateInput{Title: &title, Tags: &tags})

	if prod.Title != "New Title" {
		t.Fatalf("title = %q, want trimmed", prod.Title)
	}
	tags[0] = "mutated"
	if prod.Tags[0] != "fresh" {
		t.Fatal("expected tags to be copied, not aliased")
	}
}

func TestSortExpressionFallsBackToNewest(t *testing.T) {
	if got := sortExpression(enums.SortKey("surprise")); got != "created_at DESC" {
		t.Fatalf("unknown sort key mapped to %q, want newest-first fallback", got)
	}
	if got := sortExpression(enums.SortKeyPriceLow); got == "created_at DESC" {
		t.Fatal("known sort key must not use the fallback ordering")
	}
}
