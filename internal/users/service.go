package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// UpdateProfileInput carries the mutable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	FullName        *string
	Phone           *string
	BusinessName    *string
	ShippingAddress *types.Address
	SocialLinks     types.Document
}

// Service exposes profile reads and updates plus admin partner review.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	ListPartners(ctx context.Context, status *enums.VerificationStatus, params pagination.Params) (*PartnerPageDTO, error)
	ReviewPartner(ctx context.Context, adminID, partnerID uuid.UUID, input ReviewPartnerInput) (*UserDTO, error)
}

// ReviewPartnerInput carries the admin's verdict on a pending partner.
type ReviewPartnerInput struct {
	Approve        bool
	CommissionRate *decimal.Decimal
}

type service struct {
	repo *Repository
}

// NewService builds the user service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name cannot be empty")
		}
		user.FullName = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		user.Phone = &phone
	}
	if input.BusinessName != nil {
		name := strings.TrimSpace(*input.BusinessName)
		user.BusinessName = &name
	}
	if input.ShippingAddress != nil {
		user.ShippingAddress = input.ShippingAddress
	}
	if input.SocialLinks != nil {
		user.SocialLinks = input.SocialLinks
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return FromModel(user), nil
}

func (s *service) ListPartners(ctx context.Context, status *enums.VerificationStatus, params pagination.Params) (*PartnerPageDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid verification status filter")
	}

	rows, page, err := s.repo.ListPartners(ctx, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}

	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &PartnerPageDTO{Partners: dtos, Pagination: page}, nil
}

// ReviewPartner records the admin verification decision. Only pending
// partner accounts can be reviewed; approval stamps the audit columns and
// the commission rate.
func (s *service) ReviewPartner(ctx context.Context, adminID, partnerID uuid.UUID, input ReviewPartnerInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if user.RegistrationType != enums.RegistrationTypePartner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account is not a partner")
	}
	if user.VerificationStatus != enums.VerificationStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("partner already %s", user.VerificationStatus))
	}
	if input.CommissionRate != nil &&
		(input.CommissionRate.IsNegative() || input.CommissionRate.GreaterThan(decimal.NewFromInt(100))) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission_rate must be between 0 and 100")
	}

	decision := ReviewDecision{
		Status:    enums.VerificationStatusRejected,
		AdminID:   adminID,
		DecidedAt: time.Now().UTC(),
	}
	if input.Approve {
		decision.Status = enums.VerificationStatusVerified
		decision.CommissionRate = input.CommissionRate
	}
	if err := s.repo.ApplyReviewDecision(ctx, partnerID, decision); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record review decision")
	}

	user.VerificationStatus = decision.Status
	user.AdminVerified = decision.Status == enums.VerificationStatusVerified
	user.AdminVerifiedBy = &decision.AdminID
	user.AdminVerifiedAt = &decision.DecidedAt
	if decision.CommissionRate != nil {
		user.CommissionRate = decision.CommissionRate
	}
	return FromModel(user), nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
