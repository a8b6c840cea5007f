package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID                uuid.UUID        `json:"id"`
	OrderNumber       string           `json:"order_number"`
	UserID            uuid.UUID        `json:"user_id"`
	Items             types.OrderItems `json:"items"`
	Subtotal          decimal.Decimal  `json:"subtotal"`
	GSTAmount         decimal.Decimal  `json:"gst_amount"`
	ShippingCost      decimal.Decimal  `json:"shipping_cost"`
	DiscountAmount    decimal.Decimal  `json:"discount_amount"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	CouponCode        *string          `json:"coupon_code,omitempty"`
	LoyaltyPointsUsed int              `json:"loyalty_points_used"`
	Status            string           `json:"status"`
	PaymentStatus     string           `json:"payment_status"`
	ShippingAddress   *types.Address   `json:"shipping_address,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// OrderPageDTO pairs an order page with pagination metadata.
type OrderPageDTO struct {
	Orders     []OrderDTO      `json:"orders"`
	Pagination pagination.Page `json:"pagination"`
}

// NewOrderDTO projects a model row onto the client payload.
func NewOrderDTO(order *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		UserID:            order.UserID,
		Items:             order.Items,
		Subtotal:          order.Subtotal,
		GSTAmount:         order.GSTAmount,
		ShippingCost:      order.ShippingCost,
		DiscountAmount:    order.DiscountAmount,
		TotalAmount:       order.TotalAmount,
		CouponCode:        order.CouponCode,
		LoyaltyPointsUsed: order.LoyaltyPointsUsed,
		Status:            order.Status.String(),
		PaymentStatus:     order.PaymentStatus.String(),
		ShippingAddress:   order.ShippingAddress,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}
