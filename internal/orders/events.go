package orders

import (
	"context"

	"github.com/google/uuid"
)

// notifier publishes order lifecycle events. Sends are best effort; a
// failed publish is logged and never fails the order.
type notifier interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent)
}

// OrderEvent is the payload published on order lifecycle changes.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
}
