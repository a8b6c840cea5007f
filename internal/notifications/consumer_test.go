package notifications

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/internal/orders"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
)

func TestNotificationFor(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	created := notificationFor(orders.OrderEvent{
		Type:        "order.created",
		OrderID:     orderID,
		OrderNumber: "TB-20250810-ABCDEF12",
		UserID:      userID,
		Status:      "pending",
		TotalAmount: "266",
	})
	if created.UserID != userID {
		t.Fatalf("user id = %s, want %s", created.UserID, userID)
	}
	if created.Type != enums.NotificationTypeOrderAlert {
		t.Fatalf("type = %s, want order_alert", created.Type)
	}
	if created.Title != "Order placed" {
		t.Fatalf("title = %q", created.Title)
	}
	if created.Link == nil || *created.Link != "/orders/"+orderID.String() {
		t.Fatalf("unexpected link %v", created.Link)
	}

	cancelled := notificationFor(orders.OrderEvent{
		Type:        "order.cancelled",
		OrderID:     orderID,
		OrderNumber: "TB-20250810-ABCDEF12",
		UserID:      userID,
		Status:      "cancelled",
	})
	if cancelled.Title != "Order cancelled" {
		t.Fatalf("title = %q", cancelled.Title)
	}

	shipped := notificationFor(orders.OrderEvent{
		Type:        "order.status_changed",
		OrderID:     orderID,
		OrderNumber: "TB-20250810-ABCDEF12",
		UserID:      userID,
		Status:      "shipped",
	})
	if shipped.Title != "Order update" {
		t.Fatalf("title = %q", shipped.Title)
	}
	if shipped.Message != "Order TB-20250810-ABCDEF12 is now shipped." {
		t.Fatalf("message = %q", shipped.Message)
	}
}

type fakeNotificationWriter struct {
	created []*models.Notification
}

func (f *fakeNotificationWriter) Create(ctx context.Context, notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

type fakeDedupeStore struct {
	seen map[string]bool
}

func (f *fakeDedupeStore) Get(ctx context.Context, key string) (string, error) {
	if f.seen[key] {
		return "1", nil
	}
	return "", nil
}

func (f *fakeDedupeStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeDedupeStore) IdempotencyKey(scope, id string) string {
	return scope + ":" + id
}

func (f *fakeDedupeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.seen, key)
	}
	return nil
}

func accountMessage(t *testing.T, event UserEvent) *pubsub.Message {
	t.Helper()
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event_type": event.Type},
	}
}

func newAccountConsumer(repo *fakeNotificationWriter) *Consumer {
	return &Consumer{
		repo:   repo,
		dedupe: &fakeDedupeStore{seen: make(map[string]bool)},
		logg:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	}
}

func TestProcessAccountEventNotifiesPendingPartner(t *testing.T) {
	repo := &fakeNotificationWriter{}
	consumer := newAccountConsumer(repo)
	ctx := context.Background()

	msg := accountMessage(t, UserEvent{
		Type:         "partner.pending_review",
		UserID:       uuid.New(),
		Email:        "maker@example.com",
		BusinessName: "Brassworks",
	})
	if !consumer.process(ctx, msg) {
		t.Fatal("expected account event to be acked")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}
	if repo.created[0].Type != enums.NotificationTypeSystemAnnouncement {
		t.Fatalf("type = %s, want system_announcement", repo.created[0].Type)
	}

	// Redelivery of the same event must not double-notify.
	if !consumer.process(ctx, msg) {
		t.Fatal("expected redelivered event to be acked")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications after redelivery, want 1", len(repo.created))
	}
}

func TestProcessAccountEventVerificationEmailSkipsInbox(t *testing.T) {
	repo := &fakeNotificationWriter{}
	consumer := newAccountConsumer(repo)

	msg := accountMessage(t, UserEvent{
		Type:   "user.verification_email",
		UserID: uuid.New(),
		Email:  "buyer@example.com",
		Token:  "tok-123",
	})
	if !consumer.process(context.Background(), msg) {
		t.Fatal("expected verification email event to be acked")
	}
	if len(repo.created) != 0 {
		t.Fatalf("created %d notifications, want none for email delivery", len(repo.created))
	}
}
