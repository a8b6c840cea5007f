package coupons

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestDiscountFor_Percentage(t *testing.T) {
	coupon := &models.Coupon{
		Code:          "SAVE10",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: dec("10"),
		IsActive:      true,
	}

	got, err := DiscountFor(coupon, dec("200"), time.Now())
	if err != nil {
		t.Fatalf("DiscountFor: %v", err)
	}
	if !got.Equal(dec("20")) {
		t.Fatalf("discount = %s, want 20", got)
	}
}

func TestDiscountFor_PercentageCapped(t *testing.T) {
	cap := dec("15")
	coupon := &models.Coupon{
		DiscountType:      enums.DiscountTypePercentage,
		DiscountValue:     dec("50"),
		MaxDiscountAmount: &cap,
		IsActive:          true,
	}

	got, err := DiscountFor(coupon, dec("200"), time.Now())
	if err != nil {
		t.Fatalf("DiscountFor: %v", err)
	}
	if !got.Equal(cap) {
		t.Fatalf("discount = %s, want capped at 15", got)
	}
}

func TestDiscountFor_FixedClampedToSubtotal(t *testing.T) {
	coupon := &models.Coupon{
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: dec("500"),
		IsActive:      true,
	}

	got, err := DiscountFor(coupon, dec("120"), time.Now())
	if err != nil {
		t.Fatalf("DiscountFor: %v", err)
	}
	if !got.Equal(dec("120")) {
		t.Fatalf("discount = %s, want clamped to subtotal 120", got)
	}
}

func TestDiscountFor_Rejections(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	limit := 5

	cases := []struct {
		name   string
		coupon models.Coupon
	}{
		{"inactive", models.Coupon{DiscountType: enums.DiscountTypeFixed, DiscountValue: dec("5")}},
		{"not yet valid", models.Coupon{IsActive: true, DiscountType: enums.DiscountTypeFixed, DiscountValue: dec("5"), ValidFrom: &future}},
		{"expired", models.Coupon{IsActive: true, DiscountType: enums.DiscountTypeFixed, DiscountValue: dec("5"), ValidUntil: &past}},
		{"exhausted", models.Coupon{IsActive: true, DiscountType: enums.DiscountTypeFixed, DiscountValue: dec("5"), UsageLimit: &limit, UsedCount: 5}},
		{"below minimum", models.Coupon{IsActive: true, DiscountType: enums.DiscountTypeFixed, DiscountValue: dec("5"), MinOrderAmount: dec("1000")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DiscountFor(&tc.coupon, dec("100"), time.Now())
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
