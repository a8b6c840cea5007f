package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/internal/notifications"
	"github.com/rkhandelwal/tradebazaar-backend/internal/users"
	pkgauth "github.com/rkhandelwal/tradebazaar-backend/pkg/auth"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	RegisterBuyer(ctx context.Context, req RegisterBuyerRequest) (*AuthResponse, error)
	RegisterPartner(ctx context.Context, req RegisterPartnerRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetEmailVerified(ctx context.Context, id uuid.UUID) error
	SetLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type accountNotifier interface {
	PublishUserEvent(ctx context.Context, event notifications.UserEvent)
}

type verificationTokens interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	Tokens         verificationTokens
	Notifier       accountNotifier
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	users       userRepository
	tokens      verificationTokens
	notifier    accountNotifier
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("verification token store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:       params.UserRepo,
		tokens:      params.Tokens,
		notifier:    params.Notifier,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// RegisterBuyer creates a buyer account and issues a 7-day registration
// token so onboarding can finish before email verification completes.
func (s *service) RegisterBuyer(ctx context.Context, req RegisterBuyerRequest) (*AuthResponse, error) {
	userType, err := parseAccountType(req.UserType, false)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:         strings.TrimSpace(req.FullName),
		Phone:            req.Phone,
		UserType:         userType,
		RegistrationType: enums.RegistrationTypeBuyer,
	}
	return s.register(ctx, req.Email, req.Password, user)
}

// RegisterPartner creates a selling partner in pending verification.
func (s *service) RegisterPartner(ctx context.Context, req RegisterPartnerRequest) (*AuthResponse, error) {
	userType, err := parseAccountType(req.UserType, true)
	if err != nil {
		return nil, err
	}

	businessName := strings.TrimSpace(req.BusinessName)
	if businessName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business_name is required")
	}
	if req.GSTNumber != nil {
		gst := strings.ToUpper(strings.TrimSpace(*req.GSTNumber))
		if len(gst) != 15 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "gst_number must be 15 characters")
		}
		req.GSTNumber = &gst
	}
	if req.PANNumber != nil {
		pan := strings.ToUpper(strings.TrimSpace(*req.PANNumber))
		if len(pan) != 10 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pan_number must be 10 characters")
		}
		req.PANNumber = &pan
	}

	user := &models.User{
		FullName:           strings.TrimSpace(req.FullName),
		Phone:              req.Phone,
		UserType:           userType,
		RegistrationType:   enums.RegistrationTypePartner,
		BusinessName:       &businessName,
		BusinessType:       req.BusinessType,
		GSTNumber:          req.GSTNumber,
		PANNumber:          req.PANNumber,
		BillingAddress:     req.BillingAddress,
		VerificationStatus: enums.VerificationStatusPending,
	}
	resp, err := s.register(ctx, req.Email, req.Password, user)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PublishUserEvent(ctx, notifications.UserEvent{
			Type:         "partner.pending_review",
			UserID:       user.ID,
			Email:        user.Email,
			BusinessName: businessName,
		})
	}
	return resp, nil
}

// Login authenticates and mints a 24-hour token. Unverified emails and
// unapproved partners are rejected before any token is issued.
func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if !user.EmailVerified {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "email not verified")
	}
	if user.RegistrationType == enums.RegistrationTypePartner &&
		user.VerificationStatus != enums.VerificationStatusVerified {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "partner account awaiting approval")
	}

	now := time.Now().UTC()
	if err := s.users.SetLastLogin(ctx, user.ID, now); err != nil {
		s.logg.Error(ctx, "stamp last login", err)
	} else {
		user.LastLoginAt = &now
	}

	return s.mintResponse(user, pkgauth.TokenKindLogin)
}

// VerifyEmail consumes a one-time token and marks the account verified.
func (s *service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired verification token")
	}
	if err := s.users.SetEmailVerified(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark email verified")
	}
	return nil
}

// ResendVerification issues a fresh token. The response never reveals
// whether the email exists.
func (s *service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user.EmailVerified {
		return nil
	}
	s.sendVerification(ctx, user)
	return nil
}

func (s *service) register(ctx context.Context, email, password string, user *models.User) (*AuthResponse, error) {
	user.Email = normalizeEmail(email)
	if user.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if user.FullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name is required")
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	user.PasswordHash = hash
	user.IsActive = true

	if _, err := s.users.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}

	s.sendVerification(ctx, user)
	return s.mintResponse(user, pkgauth.TokenKindRegistration)
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := normalizeEmail(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) mintResponse(user *models.User, kind pkgauth.TokenKind) (*AuthResponse, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
		Kind:     kind,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(pkgauth.TTLFor(s.jwtCfg, kind).Seconds()),
		User:        users.FromModel(user),
	}, nil
}

// sendVerification issues a token and hands it to the notification pipeline
// for delivery. Failures are logged and never surface to the caller.
func (s *service) sendVerification(ctx context.Context, user *models.User) {
	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		s.logg.Error(ctx, "issue verification token", err)
		return
	}
	if s.notifier != nil {
		s.notifier.PublishUserEvent(ctx, notifications.UserEvent{
			Type:   "user.verification_email",
			UserID: user.ID,
			Email:  user.Email,
			Token:  token,
		})
	}
	s.logg.Info(
		s.logg.WithFields(ctx, map[string]any{
			"user_id": user.ID.String(),
			"token":   token,
		}),
		"verification email queued",
	)
}

func parseAccountType(raw string, wantPartner bool) (enums.UserType, error) {
	userType, err := enums.ParseUserType(strings.TrimSpace(raw))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid user type")
	}
	if userType == enums.UserTypeAdmin {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid user type")
	}
	if wantPartner != userType.IsPartner() {
		if wantPartner {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "user type is not a partner type")
		}
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user type is not a buyer type")
	}
	return userType, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
