package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

// CouponInput holds the validated payload to create or update a coupon.
type CouponInput struct {
	Code              string
	DiscountType      enums.DiscountType
	DiscountValue     decimal.Decimal
	MinOrderAmount    decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	IsActive          bool
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	UsageLimit        *int
}

// CouponQuote is the resolved discount for a subtotal.
type CouponQuote struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// Service exposes coupon management and redemption checks.
type Service interface {
	CreateCoupon(ctx context.Context, input CouponInput) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, input CouponInput) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (*CouponQuote, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a coupon service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCoupon registers a new code. Codes are unique case-insensitively.
func (s *service) CreateCoupon(ctx context.Context, input CouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:              strings.ToUpper(strings.TrimSpace(input.Code)),
		DiscountType:      input.DiscountType,
		DiscountValue:     input.DiscountValue,
		MinOrderAmount:    input.MinOrderAmount,
		MaxDiscountAmount: input.MaxDiscountAmount,
		IsActive:          input.IsActive,
		ValidFrom:         input.ValidFrom,
		ValidUntil:        input.ValidUntil,
		UsageLimit:        input.UsageLimit,
	}
	if _, err := s.repo.Create(ctx, coupon); err != nil {
		if db.IsUniqueViolation(err, "coupons_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return coupon, nil
}

// UpdateCoupon replaces the coupon's fields.
func (s *service) UpdateCoupon(ctx context.Context, id uuid.UUID, input CouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinOrderAmount = input.MinOrderAmount
	coupon.MaxDiscountAmount = input.MaxDiscountAmount
	coupon.IsActive = input.IsActive
	coupon.ValidFrom = input.ValidFrom
	coupon.ValidUntil = input.ValidUntil
	coupon.UsageLimit = input.UsageLimit

	if _, err := s.repo.Update(ctx, coupon); err != nil {
		if db.IsUniqueViolation(err, "coupons_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return coupon, nil
}

// DeleteCoupon removes the coupon.
func (s *service) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

// ListCoupons returns all coupons for admin review.
func (s *service) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return rows, nil
}

// ValidateCoupon resolves the discount a code would grant on the subtotal
// without consuming a redemption.
func (s *service) ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (*CouponQuote, error) {
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	discount, err := DiscountFor(coupon, subtotal, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &CouponQuote{Code: coupon.Code, DiscountAmount: discount}, nil
}

// DiscountFor computes the discount a coupon grants on the subtotal.
// Percentage coupons take a fraction of the subtotal; fixed coupons take a
// flat amount. Either way the result is clamped to the subtotal, and an
// optional cap bounds percentage discounts.
func DiscountFor(coupon *models.Coupon, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !coupon.IsActive {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not active")
	}
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not yet valid")
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon has expired")
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon usage limit reached")
	}
	if subtotal.LessThan(coupon.MinOrderAmount) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("order subtotal below coupon minimum of %s", coupon.MinOrderAmount))
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		discount = subtotal.Mul(coupon.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
		if coupon.MaxDiscountAmount != nil && discount.GreaterThan(*coupon.MaxDiscountAmount) {
			discount = *coupon.MaxDiscountAmount
		}
	case enums.DiscountTypeFixed:
		discount = coupon.DiscountValue
	default:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown discount type")
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount, nil
}

func validateInput(input CouponInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	if !input.DiscountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}
	if !input.DiscountValue.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_value must be positive")
	}
	if input.DiscountType == enums.DiscountTypePercentage && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100")
	}
	if input.MinOrderAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_order_amount must be non-negative")
	}
	if input.UsageLimit != nil && *input.UsageLimit < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "usage_limit must be at least 1")
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return pkgerrors.New(pkgerrors.CodeValidation, "valid_until must be after valid_from")
	}
	return nil
}
