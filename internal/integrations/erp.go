package integrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// supportedERPSystems is the static catalog returned to partners.
var supportedERPSystems = []ERPSystem{
	{Key: "tally", Name: "Tally Prime", AuthKind: "api_key"},
	{Key: "zoho_books", Name: "Zoho Books", AuthKind: "oauth2"},
	{Key: "sap_b1", Name: "SAP Business One", AuthKind: "service_account"},
	{Key: "ms_dynamics", Name: "Microsoft Dynamics 365", AuthKind: "oauth2"},
}

// ERPSystem describes one connectable backend.
type ERPSystem struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	AuthKind string `json:"auth_kind"`
}

// ERPSyncResult reports the mocked sync run.
type ERPSyncResult struct {
	Provider        string    `json:"provider"`
	ProductsSynced  int       `json:"products_synced"`
	OrdersSynced    int       `json:"orders_synced"`
	InventorySynced int       `json:"inventory_synced"`
	SyncedAt        time.Time `json:"synced_at"`
}

type erpUserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ERPService manages the provider records stored on the partner account.
// Sync is mocked; the records only configure which mock answers.
type ERPService struct {
	users erpUserStore
}

// NewERPService builds the ERP integration service.
func NewERPService(users erpUserStore) (*ERPService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store required")
	}
	return &ERPService{users: users}, nil
}

// SupportedSystems returns the static catalog.
func (s *ERPService) SupportedSystems() []ERPSystem {
	out := make([]ERPSystem, len(supportedERPSystems))
	copy(out, supportedERPSystems)
	return out
}

// Connect stores or replaces the provider record under the user.
func (s *ERPService) Connect(ctx context.Context, userID uuid.UUID, provider string, credentials types.Document) (*types.ProviderRecord, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if !s.isSupported(provider) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported erp system")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	record := types.ProviderRecord{
		Provider:    provider,
		Credentials: credentials,
		Enabled:     true,
	}

	replaced := false
	for i := range user.ERPIntegrations {
		if user.ERPIntegrations[i].Provider == provider {
			user.ERPIntegrations[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		user.ERPIntegrations = append(user.ERPIntegrations, record)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store erp record")
	}
	return &record, nil
}

// Disconnect disables the provider record without dropping its credentials.
func (s *ERPService) Disconnect(ctx context.Context, userID uuid.UUID, provider string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	for i := range user.ERPIntegrations {
		if user.ERPIntegrations[i].Provider == provider {
			user.ERPIntegrations[i].Enabled = false
			if err := s.users.Update(ctx, user); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store erp record")
			}
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "erp integration not found")
}

// Sync runs the mocked sync against an enabled provider record.
func (s *ERPService) Sync(ctx context.Context, userID uuid.UUID, provider string) (*ERPSyncResult, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, record := range user.ERPIntegrations {
		if record.Provider != provider {
			continue
		}
		if !record.Enabled {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "erp integration is disabled")
		}
		return mockSync(provider), nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "erp integration not found")
}

func (s *ERPService) isSupported(provider string) bool {
	for _, system := range supportedERPSystems {
		if system.Key == provider {
			return true
		}
	}
	return false
}

func (s *ERPService) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// mockSync returns deterministic counts keyed off the provider name so
// repeated calls are stable in tests.
func mockSync(provider string) *ERPSyncResult {
	seed := len(provider)
	return &ERPSyncResult{
		Provider:        provider,
		ProductsSynced:  seed * 7,
		OrdersSynced:    seed * 3,
		InventorySynced: seed * 11,
		SyncedAt:        time.Now().UTC(),
	}
}
