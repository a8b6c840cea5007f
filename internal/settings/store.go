package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// Settings rows are keyed by these fixed ids.
const (
	KindPayment      = "payment_settings"
	KindShipping     = "shipping_settings"
	KindAI           = "ai_settings"
	KindNotification = "notification_settings"
	KindMarketing    = "marketing_settings"
	KindSystem       = "system_settings"
	KindCommission   = "commission_settings"
)

var validKinds = map[string]bool{
	KindPayment:      true,
	KindShipping:     true,
	KindAI:           true,
	KindNotification: true,
	KindMarketing:    true,
	KindSystem:       true,
	KindCommission:   true,
}

// IsValidKind reports whether the id names a known settings kind.
func IsValidKind(kind string) bool {
	return validKinds[kind]
}

type source interface {
	FetchAll(ctx context.Context) ([]models.Setting, error)
	Upsert(ctx context.Context, id string, payload types.Document) error
}

// Store holds the in-memory settings snapshot. It is loaded once at startup
// and refreshed explicitly; request handlers read the snapshot, never the
// database.
type Store struct {
	repo source

	mu       sync.RWMutex
	snapshot map[string]types.Document
}

// NewStore builds an empty store; call Load before serving traffic.
func NewStore(repo source) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &Store{
		repo:     repo,
		snapshot: make(map[string]types.Document),
	}, nil
}

// Load replaces the snapshot from the database. Kinds with no stored row
// resolve to an empty payload.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.repo.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	next := make(map[string]types.Document, len(validKinds))
	for kind := range validKinds {
		next[kind] = types.Document{}
	}
	for _, row := range rows {
		if !IsValidKind(row.ID) {
			continue
		}
		next[row.ID] = row.Payload
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()
	return nil
}

// Refresh is Load under its operational name.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// Get returns the snapshot payload for the kind.
func (s *Store) Get(kind string) (types.Document, error) {
	if !IsValidKind(kind) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown settings kind")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot[kind], nil
}

// Update replaces the stored payload and refreshes that kind's snapshot
// entry in place.
func (s *Store) Update(ctx context.Context, kind string, payload types.Document) error {
	if !IsValidKind(kind) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown settings kind")
	}
	if payload == nil {
		payload = types.Document{}
	}
	if err := s.repo.Upsert(ctx, kind, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store settings")
	}

	s.mu.Lock()
	s.snapshot[kind] = payload
	s.mu.Unlock()
	return nil
}

// Decode unmarshals the kind's payload into a typed struct.
func (s *Store) Decode(kind string, out any) error {
	doc, err := s.Get(kind)
	if err != nil {
		return err
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode settings payload: %w", err)
	}
	return json.Unmarshal(buf, out)
}
