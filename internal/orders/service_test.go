package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

func configCheckout(threshold, fee string) config.CheckoutConfig {
	return config.CheckoutConfig{FreeShippingThreshold: threshold, FlatShippingFee: fee}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestTotalAmount_FlatCoupon(t *testing.T) {
	// Two units at 100 with 18% GST and a flat 20 discount.
	items := types.OrderItems{
		{
			ProductID:     uuid.New(),
			Quantity:      2,
			UnitPrice:     dec("100"),
			GSTPercentage: dec("18"),
			LineSubtotal:  dec("200"),
			LineGST:       dec("36"),
		},
	}

	subtotal, gst := sumLines(items)
	if !subtotal.Equal(dec("200")) {
		t.Fatalf("subtotal = %s, want 200", subtotal)
	}
	if !gst.Equal(dec("36")) {
		t.Fatalf("gst = %s, want 36", gst)
	}

	total := totalAmount(subtotal, gst, decimal.Zero, dec("20"))
	if !total.Equal(dec("216")) {
		t.Fatalf("total without shipping = %s, want 216", total)
	}

	total = totalAmount(subtotal, gst, dec("50"), dec("20"))
	if !total.Equal(dec("266")) {
		t.Fatalf("total with shipping = %s, want 266", total)
	}
}

func TestTotalAmount_FlooredAtZero(t *testing.T) {
	total := totalAmount(dec("50"), dec("9"), decimal.Zero, dec("500"))
	if !total.Equal(decimal.Zero) {
		t.Fatalf("total = %s, want 0", total)
	}
}

func TestShippingFor(t *testing.T) {
	policy := CheckoutPolicy{
		FreeShippingThreshold: dec("100"),
		FlatShippingFee:       dec("50"),
	}

	if got := policy.ShippingFor(dec("99.99")); !got.Equal(dec("50")) {
		t.Fatalf("shipping below threshold = %s, want 50", got)
	}
	if got := policy.ShippingFor(dec("100")); !got.Equal(decimal.Zero) {
		t.Fatalf("shipping at threshold = %s, want 0", got)
	}
}

func TestPolicyFromConfig_RejectsGarbage(t *testing.T) {
	_, err := PolicyFromConfig(configCheckout("abc", "50"))
	if err == nil {
		t.Fatal("expected error for bad threshold")
	}
	_, err = PolicyFromConfig(configCheckout("100", "xyz"))
	if err == nil {
		t.Fatal("expected error for bad fee")
	}
	policy, err := PolicyFromConfig(configCheckout("100", "50"))
	if err != nil {
		t.Fatalf("PolicyFromConfig: %v", err)
	}
	if !policy.FlatShippingFee.Equal(dec("50")) {
		t.Fatalf("fee = %s, want 50", policy.FlatShippingFee)
	}
}

func TestResolveUnitPrice_ScheduleThenBulk(t *testing.T) {
	prod := &models.Product{
		ID:        uuid.New(),
		BasePrice: dec("100"),
		BulkPricingTiers: []models.BulkPricingTier{
			{
				MinQuantity:        10,
				DiscountPercentage: dec("10"),
				Position:           0,
			},
		},
	}
	item := models.CartItem{ProductID: prod.ID, Quantity: 10}

	unit, err := resolveUnitPrice(prod, item, enums.UserTypeWholesaler)
	if err != nil {
		t.Fatalf("resolveUnitPrice: %v", err)
	}
	// 100 * 0.75 wholesale, then 10% bulk discount.
	if !unit.Equal(dec("67.5")) {
		t.Fatalf("unit = %s, want 67.5", unit)
	}
}

func TestResolveUnitPrice_VariantOverride(t *testing.T) {
	variantPrice := dec("42")
	variantID := uuid.New()
	prod := &models.Product{
		ID:        uuid.New(),
		BasePrice: dec("100"),
		Variants:  []models.ProductVariant{{ID: variantID, Price: &variantPrice}},
	}
	item := models.CartItem{ProductID: prod.ID, VariantID: &variantID, Quantity: 1}

	unit, err := resolveUnitPrice(prod, item, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("resolveUnitPrice: %v", err)
	}
	if !unit.Equal(variantPrice) {
		t.Fatalf("unit = %s, want 42", unit)
	}
}

func TestNewOrderNumber(t *testing.T) {
	first := newOrderNumber()
	second := newOrderNumber()
	if first == second {
		t.Fatalf("expected distinct order numbers, got %s twice", first)
	}
	if len(first) == 0 || first[:3] != "TB-" {
		t.Fatalf("unexpected order number format: %s", first)
	}
}

func TestCappedLoyaltyPoints(t *testing.T) {
	if got := cappedLoyaltyPoints(50, dec("404")); got != 50 {
		t.Fatalf("within budget: got %d, want 50", got)
	}
	if got := cappedLoyaltyPoints(500, dec("404")); got != 404 {
		t.Fatalf("over budget: got %d, want 404", got)
	}
	if got := cappedLoyaltyPoints(3, dec("2.75")); got != 2 {
		t.Fatalf("fractional remainder: got %d, want 2", got)
	}
	if got := cappedLoyaltyPoints(10, dec("-3")); got != 0 {
		t.Fatalf("negative remainder: got %d, want 0", got)
	}
	if got := cappedLoyaltyPoints(0, dec("100")); got != 0 {
		t.Fatalf("nothing requested: got %d, want 0", got)
	}
}
