package verify

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	redisclient "github.com/rkhandelwal/tradebazaar-backend/pkg/redis"
)

const tokenBytes = 32

// ErrInvalidToken covers unknown, expired, and already-consumed tokens.
var ErrInvalidToken = errors.New("invalid verification token")

type tokenStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type tokenKeyer interface {
	VerifyTokenKey(token string) string
}

// Store issues and consumes one-time email verification tokens backed by
// Redis. Tokens expire on their own; consuming one deletes it so a link can
// only be used once.
type Store struct {
	store tokenStore
	keyer tokenKeyer
	ttl   time.Duration
}

// NewStore constructs a verification token store.
func NewStore(client *redisclient.Client, cfg config.JWTConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.EmailVerifyTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("email verify ttl must be positive")
	}
	return &Store{store: client, keyer: client, ttl: ttl}, nil
}

// Issue mints a token for the user and stores it with the configured TTL.
// Issuing again for the same user leaves earlier tokens valid until they
// expire on their own.
func (s *Store) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, s.keyer.VerifyTokenKey(token), userID.String(), s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Consume resolves the token to its user and deletes it.
func (s *Store) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}

	key := s.keyer.VerifyTokenKey(token)
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(stored)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	if err := s.store.Del(ctx, key); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating verification token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
