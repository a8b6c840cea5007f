package verify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) VerifyTokenKey(token string) string { return "verify:" + token }

func TestIssueAndConsume(t *testing.T) {
	ctx := context.Background()
	store := &Store{store: newMemStore(), keyer: prefixKeyer{}, ttl: time.Hour}
	userID := uuid.New()

	token, err := store.Issue(ctx, userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	resolved, err := store.Consume(ctx, token)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if resolved != userID {
		t.Fatalf("resolved user = %s, want %s", resolved, userID)
	}

	// Second consume must fail; the token is single use.
	if _, err := store.Consume(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestConsumeUnknownToken(t *testing.T) {
	store := &Store{store: newMemStore(), keyer: prefixKeyer{}, ttl: time.Hour}

	if _, err := store.Consume(context.Background(), "nope"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := store.Consume(context.Background(), "  "); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for blank token, got %v", err)
	}
}
