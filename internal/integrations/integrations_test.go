package integrations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

type fakeUsers struct {
	users map[uuid.UUID]*models.User
}

func newFakeUsers(seed ...*models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[uuid.UUID]*models.User)}
	for _, u := range seed {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUsers) Update(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) SetGSTVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	if user, ok := f.users[id]; ok {
		user.GSTVerified = verified
	}
	return nil
}

func TestGSTVerify(t *testing.T) {
	business := "Copperworks Pvt Ltd"
	user := &models.User{ID: uuid.New(), FullName: "Seller", BusinessName: &business}
	repo := newFakeUsers(user)

	svc, err := NewGSTService(repo, true)
	if err != nil {
		t.Fatalf("NewGSTService: %v", err)
	}

	result, err := svc.Verify(context.Background(), user.ID, "27aapcu1234f1zs")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.Valid {
		t.Fatal("expected valid gstin")
	}
	if result.LegalName != business {
		t.Fatalf("legal name = %q, want business name", result.LegalName)
	}
	if result.State != "Maharashtra" {
		t.Fatalf("state = %q", result.State)
	}
	if !user.GSTVerified {
		t.Fatal("expected gst_verified recorded")
	}
	if user.GSTNumber == nil || *user.GSTNumber != "27AAPCU1234F1ZS" {
		t.Fatalf("gst number not normalized: %v", user.GSTNumber)
	}
}

func TestGSTVerifyRejectsBadLength(t *testing.T) {
	svc, _ := NewGSTService(newFakeUsers(), true)

	_, err := svc.Verify(context.Background(), uuid.New(), "TOO-SHORT")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGSTVerifyMalformedPatternIsInvalidNotError(t *testing.T) {
	user := &models.User{ID: uuid.New(), FullName: "Seller"}
	svc, _ := NewGSTService(newFakeUsers(user), true)

	// Right length, wrong shape.
	result, err := svc.Verify(context.Background(), user.ID, "ABCDEFGHIJKLMNO")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid gstin")
	}
	if user.GSTVerified {
		t.Fatal("gst_verified should stay false")
	}
}

func TestERPConnectSyncDisconnect(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	repo := newFakeUsers(user)
	svc, err := NewERPService(repo)
	if err != nil {
		t.Fatalf("NewERPService: %v", err)
	}
	ctx := context.Background()

	record, err := svc.Connect(ctx, user.ID, "tally", types.Document{"api_key": "k"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !record.Enabled {
		t.Fatal("expected enabled record")
	}

	sync, err := svc.Sync(ctx, user.ID, "tally")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if sync.ProductsSynced == 0 {
		t.Fatal("expected mocked sync counts")
	}

	if err := svc.Disconnect(ctx, user.ID, "tally"); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	_, err = svc.Sync(ctx, user.ID, "tally")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for disabled integration, got %v", err)
	}
}

func TestERPConnectUnsupported(t *testing.T) {
	svc, _ := NewERPService(newFakeUsers(&models.User{ID: uuid.New()}))

	_, err := svc.Connect(context.Background(), uuid.New(), "quickbooks", nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
