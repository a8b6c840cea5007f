package integrations

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

// GSTIN format: 2-digit state code, 10-char PAN, entity digit, 'Z', checksum.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// GSTVerificationResult is the mock registry response.
type GSTVerificationResult struct {
	GSTNumber    string `json:"gst_number"`
	Valid        bool   `json:"valid"`
	LegalName    string `json:"legal_name,omitempty"`
	State        string `json:"state,omitempty"`
	RegisteredOn string `json:"registered_on,omitempty"`
}

type gstUserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetGSTVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// GSTService verifies GST numbers against a mock registry. A real registry
// client would slot in behind the same interface.
type GSTService struct {
	users   gstUserStore
	enabled bool
}

// NewGSTService builds the GST verification service.
func NewGSTService(users gstUserStore, enabled bool) (*GSTService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store required")
	}
	return &GSTService{users: users, enabled: enabled}, nil
}

// Verify checks the format, consults the mock registry, and records the
// outcome on the user's statutory details.
func (s *GSTService) Verify(ctx context.Context, userID uuid.UUID, gstNumber string) (*GSTVerificationResult, error) {
	if !s.enabled {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gst verification is disabled")
	}

	gstNumber = strings.ToUpper(strings.TrimSpace(gstNumber))
	if len(gstNumber) != 15 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gst number must be 15 characters")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	result := lookupRegistry(gstNumber, user)

	user.GSTNumber = &gstNumber
	if err := s.users.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store gst number")
	}
	if err := s.users.SetGSTVerified(ctx, userID, result.Valid); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record verification")
	}
	return result, nil
}

// lookupRegistry fakes the registry call with static data derived from the
// account.
func lookupRegistry(gstNumber string, user *models.User) *GSTVerificationResult {
	if !gstinPattern.MatchString(gstNumber) {
		return &GSTVerificationResult{GSTNumber: gstNumber, Valid: false}
	}

	legalName := user.FullName
	if user.BusinessName != nil && *user.BusinessName != "" {
		legalName = *user.BusinessName
	}
	return &GSTVerificationResult{
		GSTNumber:    gstNumber,
		Valid:        true,
		LegalName:    legalName,
		State:        stateForCode(gstNumber[:2]),
		RegisteredOn: "2019-04-01",
	}
}

func stateForCode(code string) string {
	states := map[string]string{
		"07": "Delhi",
		"27": "Maharashtra",
		"29": "Karnataka",
		"33": "Tamil Nadu",
	}
	if name, ok := states[code]; ok {
		return name
	}
	return "Other"
}
