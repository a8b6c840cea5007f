package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestPriceLine_SchedulePrice(t *testing.T) {
	prod := &models.Product{
		ID:            uuid.New(),
		Title:         "Widget",
		BasePrice:     dec("100"),
		StockQuantity: 50,
	}
	item := models.CartItem{ID: uuid.New(), ProductID: prod.ID, Quantity: 2}

	line, err := priceLine(prod, item, enums.UserTypeWholesaler)
	if err != nil {
		t.Fatalf("priceLine: %v", err)
	}
	if !line.UnitPrice.Equal(dec("75")) {
		t.Fatalf("unit price = %s, want 75", line.UnitPrice)
	}
	if !line.LineTotal.Equal(dec("150")) {
		t.Fatalf("line total = %s, want 150", line.LineTotal)
	}
	if !line.InStock {
		t.Fatal("expected line in stock")
	}
}

func TestPriceLine_VariantPriceOverrides(t *testing.T) {
	variantPrice := dec("42")
	variantID := uuid.New()
	prod := &models.Product{
		ID:        uuid.New(),
		BasePrice: dec("100"),
		Variants: []models.ProductVariant{
			{ID: variantID, Price: &variantPrice},
		},
	}
	item := models.CartItem{ProductID: prod.ID, VariantID: &variantID, Quantity: 1}

	line, err := priceLine(prod, item, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("priceLine: %v", err)
	}
	if !line.UnitPrice.Equal(variantPrice) {
		t.Fatalf("unit price = %s, want variant 42", line.UnitPrice)
	}
}

func TestPriceLine_CustomDimensions(t *testing.T) {
	prod := &models.Product{
		ID:        uuid.New(),
		BasePrice: dec("100"),
		SizeConfiguration: &types.SizeConfiguration{
			SizeType:           enums.SizeTypeCustom,
			PricingMethod:      enums.PricingMethodPerLinearFoot,
			CustomPricePerUnit: dec("2"),
		},
	}
	dims := &types.Dimensions{Length: dec("8"), Width: dec("1"), Height: dec("1")}
	item := models.CartItem{ProductID: prod.ID, Quantity: 3, CustomDimensions: dims}

	line, err := priceLine(prod, item, enums.UserTypeEndCustomer)
	if err != nil {
		t.Fatalf("priceLine: %v", err)
	}
	// 8 linear units at 2 each.
	if !line.UnitPrice.Equal(dec("16")) {
		t.Fatalf("unit price = %s, want 16", line.UnitPrice)
	}
	if !line.LineTotal.Equal(dec("48")) {
		t.Fatalf("line total = %s, want 48", line.LineTotal)
	}
}

func TestFindVariant(t *testing.T) {
	variantID := uuid.New()
	prod := &models.Product{Variants: []models.ProductVariant{{ID: variantID, Name: "Large"}}}

	if v := findVariant(prod, variantID); v == nil || v.Name != "Large" {
		t.Fatalf("expected to find variant, got %v", v)
	}
	if v := findVariant(prod, uuid.New()); v != nil {
		t.Fatal("expected nil for unknown variant")
	}
}
