package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/internal/orders"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	redisclient "github.com/rkhandelwal/tradebazaar-backend/pkg/redis"
)

const (
	orderNotificationConsumer   = "order-notifications"
	accountNotificationConsumer = "account-notifications"
	dedupeTTL                   = 24 * time.Hour
)

type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Consumer turns order lifecycle events into in-app notifications for the
// buyer. Events are deduplicated so redeliveries do not double-notify.
type Consumer struct {
	repo         notificationWriter
	subscription *pubsub.Subscriber
	dedupe       redisclient.IdempotencyStore
	logg         *logger.Logger
}

// NewConsumer builds an order notification consumer.
func NewConsumer(repo notificationWriter, subscription *pubsub.Subscriber, dedupe redisclient.IdempotencyStore, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("order event subscription required")
	}
	if dedupe == nil {
		return nil, fmt.Errorf("dedupe store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		dedupe:       dedupe,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if c.process(ctx, msg) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

// process reports whether the message should be acked. Malformed messages
// are acked; only transient failures trigger redelivery.
func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) bool {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if strings.HasPrefix(eventType, "user.") || strings.HasPrefix(eventType, "partner.") {
		return c.processAccountEvent(logCtx, msg)
	}

	var event orders.OrderEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logg.Error(logCtx, "decode order event", err)
		return true
	}
	if event.OrderID == uuid.Nil || event.UserID == uuid.Nil {
		c.logg.Warn(logCtx, "order event missing ids")
		return true
	}

	dedupeKey := c.dedupe.IdempotencyKey(orderNotificationConsumer,
		fmt.Sprintf("%s:%s", event.OrderID, event.Type))
	fresh, err := c.dedupe.SetNX(ctx, dedupeKey, "1", dedupeTTL)
	if err != nil {
		c.logg.Error(logCtx, "dedupe check failed", err)
		return false
	}
	if !fresh {
		c.logg.Info(logCtx, "event already processed")
		return true
	}

	if err := c.repo.Create(ctx, notificationFor(event)); err != nil {
		c.logg.Error(logCtx, "create notification", err)
		_ = c.dedupe.Del(ctx, dedupeKey)
		return false
	}

	c.logg.Info(logCtx, "buyer notified of order event")
	return true
}

// processAccountEvent handles verification email and partner review events.
// Email delivery is stubbed: the token is logged for the dev mail pickup.
func (c *Consumer) processAccountEvent(ctx context.Context, msg *pubsub.Message) bool {
	var event UserEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logg.Error(ctx, "decode user event", err)
		return true
	}
	if event.UserID == uuid.Nil {
		c.logg.Warn(ctx, "user event missing user id")
		return true
	}

	dedupeKey := c.dedupe.IdempotencyKey(accountNotificationConsumer,
		fmt.Sprintf("%s:%s", event.UserID, event.Type))
	fresh, err := c.dedupe.SetNX(ctx, dedupeKey, "1", dedupeTTL)
	if err != nil {
		c.logg.Error(ctx, "dedupe check failed", err)
		return false
	}
	if !fresh {
		c.logg.Info(ctx, "event already processed")
		return true
	}

	switch event.Type {
	case "user.verification_email":
		c.logg.Info(
			c.logg.WithFields(ctx, map[string]any{"token": event.Token, "email": event.Email}),
			"verification email dispatched",
		)
		return true
	case "partner.pending_review":
		notification := &models.Notification{
			UserID:  event.UserID,
			Type:    enums.NotificationTypeSystemAnnouncement,
			Title:   "Application received",
			Message: fmt.Sprintf("Your partner application for %s is under review.", event.BusinessName),
		}
		if err := c.repo.Create(ctx, notification); err != nil {
			c.logg.Error(ctx, "create notification", err)
			_ = c.dedupe.Del(ctx, dedupeKey)
			return false
		}
		c.logg.Info(ctx, "partner notified of pending review")
		return true
	default:
		c.logg.Warn(ctx, "unknown user event type")
		return true
	}
}

func notificationFor(event orders.OrderEvent) *models.Notification {
	link := fmt.Sprintf("/orders/%s", event.OrderID)

	title := "Order update"
	message := fmt.Sprintf("Order %s is now %s.", event.OrderNumber, event.Status)
	switch event.Type {
	case "order.created":
		title = "Order placed"
		message = fmt.Sprintf("Order %s was placed for %s.", event.OrderNumber, event.TotalAmount)
	case "order.cancelled":
		title = "Order cancelled"
		message = fmt.Sprintf("Order %s has been cancelled.", event.OrderNumber)
	}

	return &models.Notification{
		UserID:  event.UserID,
		Type:    enums.NotificationTypeOrderAlert,
		Title:   title,
		Message: message,
		Link:    &link,
	}
}
