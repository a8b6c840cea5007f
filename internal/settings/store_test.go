package settings

import (
	"context"
	"testing"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

type fakeSource struct {
	rows map[string]types.Document
}

func newFakeSource() *fakeSource {
	return &fakeSource{rows: make(map[string]types.Document)}
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.Setting, error) {
	out := make([]models.Setting, 0, len(f.rows))
	for id, payload := range f.rows {
		out = append(out, models.Setting{ID: id, Payload: payload})
	}
	return out, nil
}

func (f *fakeSource) Upsert(ctx context.Context, id string, payload types.Document) error {
	f.rows[id] = payload
	return nil
}

func TestStoreLoadAndTypedAccess(t *testing.T) {
	src := newFakeSource()
	src.rows[KindShipping] = types.Document{
		"free_shipping_threshold": "100",
		"flat_shipping_fee":       "50",
	}

	store, err := NewStore(src)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	shipping, err := store.Shipping()
	if err != nil {
		t.Fatalf("Shipping: %v", err)
	}
	if shipping.FreeShippingThreshold != "100" || shipping.FlatShippingFee != "50" {
		t.Fatalf("unexpected shipping settings %+v", shipping)
	}

	// Kinds without stored rows resolve to empty payloads.
	payment, err := store.Payment()
	if err != nil {
		t.Fatalf("Payment: %v", err)
	}
	if payment.CODEnabled {
		t.Fatal("expected zero-value payment settings")
	}
}

func TestStoreUpdateRefreshesSnapshot(t *testing.T) {
	src := newFakeSource()
	store, err := NewStore(src)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err = store.Update(context.Background(), KindAI, types.Document{"provider": "mock"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	ai, err := store.AI()
	if err != nil {
		t.Fatalf("AI: %v", err)
	}
	if ai.Provider != "mock" {
		t.Fatalf("provider = %q, want mock", ai.Provider)
	}
	if _, ok := src.rows[KindAI]; !ok {
		t.Fatal("expected payload persisted")
	}
}

func TestStoreRejectsUnknownKind(t *testing.T) {
	store, err := NewStore(newFakeSource())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.Get("bogus_settings"); pkgerrors.As(err) == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	err = store.Update(context.Background(), "bogus_settings", types.Document{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
