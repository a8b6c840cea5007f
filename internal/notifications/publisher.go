package notifications

import (
	"context"
	"encoding/json"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/internal/orders"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
)

const publishTimeout = 5 * time.Second

// UserEvent describes an account lifecycle event: a verification email to
// deliver or a partner application landing in the review queue.
type UserEvent struct {
	Type         string    `json:"type"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Token        string    `json:"token,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
}

// Publisher fans order and account lifecycle events out to Pub/Sub. Sends
// are best effort: a failed publish is logged and the calling flow continues.
type Publisher struct {
	topic *pubsub.Publisher
	logg  *logger.Logger
}

// NewPublisher wraps a topic handle. A nil topic yields a no-op publisher so
// dev environments can run without Pub/Sub.
func NewPublisher(topic *pubsub.Publisher, logg *logger.Logger) *Publisher {
	return &Publisher{topic: topic, logg: logg}
}

// PublishOrderEvent sends the event with its type as a message attribute.
func (p *Publisher) PublishOrderEvent(ctx context.Context, event orders.OrderEvent) {
	if p == nil || p.topic == nil {
		return
	}

	logCtx := p.logg.WithFields(ctx, map[string]any{
		"event_type": event.Type,
		"order_id":   event.OrderID.String(),
	})

	data, err := json.Marshal(event)
	if err != nil {
		p.logg.Error(logCtx, "encode order event", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	result := p.topic.Publish(publishCtx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event_type": event.Type},
	})
	if _, err := result.Get(publishCtx); err != nil {
		p.logg.Error(logCtx, "publish order event", err)
		return
	}
	p.logg.Info(logCtx, "order event published")
}

// PublishUserEvent sends an account event with its type as an attribute.
func (p *Publisher) PublishUserEvent(ctx context.Context, event UserEvent) {
	if p == nil || p.topic == nil {
		return
	}

	logCtx := p.logg.WithFields(ctx, map[string]any{
		"event_type": event.Type,
		"user_id":    event.UserID.String(),
	})

	data, err := json.Marshal(event)
	if err != nil {
		p.logg.Error(logCtx, "encode user event", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	result := p.topic.Publish(publishCtx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event_type": event.Type},
	})
	if _, err := result.Get(publishCtx); err != nil {
		p.logg.Error(logCtx, "publish user event", err)
		return
	}
	p.logg.Info(logCtx, "user event published")
}
