package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// Order embeds an immutable snapshot of its line items plus the computed
// totals. Product price changes never retroactively alter a placed order.
type Order struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:orders_user_idx"`
	OrderNumber       string              `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	Items             types.OrderItems    `gorm:"column:items;type:jsonb;not null;default:'[]'"`
	Subtotal          decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	GSTAmount         decimal.Decimal     `gorm:"column:gst_amount;type:numeric(12,2);not null;default:0"`
	ShippingCost      decimal.Decimal     `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0"`
	DiscountAmount    decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	TotalAmount       decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	CouponCode        *string             `gorm:"column:coupon_code"`
	LoyaltyPointsUsed int                 `gorm:"column:loyalty_points_used;not null;default:0"`
	Status            enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	ShippingAddress   *types.Address      `gorm:"column:shipping_address;type:jsonb"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
