package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// Repository exposes user persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail matches emails case-insensitively; the unique index on
// LOWER(email) guarantees at most one row.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists the full user row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SetEmailVerified flips the email verification marker.
func (r *Repository) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("email_verified", true).
		Error
}

// ReviewDecision captures the admin verification outcome for a partner.
type ReviewDecision struct {
	Status         enums.VerificationStatus
	AdminID        uuid.UUID
	DecidedAt      time.Time
	CommissionRate *decimal.Decimal
}

// ApplyReviewDecision records the decision: verification status, the admin
// audit trail, and the commission rate when one was granted.
func (r *Repository) ApplyReviewDecision(ctx context.Context, id uuid.UUID, decision ReviewDecision) error {
	updates := map[string]any{
		"verification_status": decision.Status,
		"admin_verified":      decision.Status == enums.VerificationStatusVerified,
		"admin_verified_by":   decision.AdminID,
		"admin_verified_at":   decision.DecidedAt,
	}
	if decision.CommissionRate != nil {
		updates["commission_rate"] = *decision.CommissionRate
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// SetGSTVerified records the GST verification outcome and when it happened.
func (r *Repository) SetGSTVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	updates := map[string]any{"gst_verified": verified}
	if verified {
		updates["gst_verified_at"] = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// SetLastLogin stamps the most recent successful login.
func (r *Repository) SetLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).
		Error
}

// AdjustLoyaltyPoints applies a signed delta to the balance. Negative deltas
// are guarded so the balance can never go below zero; callers must treat an
// unapplied debit as a conflict.
func (r *Repository) AdjustLoyaltyPoints(ctx context.Context, id uuid.UUID, delta int) error {
	qb := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id)
	if delta < 0 {
		qb = qb.Where("loyalty_points >= ?", -delta)
	}

	result := qb.UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPartners pages partner accounts, optionally filtered by verification
// status, newest first.
func (r *Repository) ListPartners(ctx context.Context, status *enums.VerificationStatus, params pagination.Params) ([]models.User, pagination.Page, error) {
	params = params.Normalize()

	qb := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("registration_type = ?", enums.RegistrationTypePartner)
	if status != nil {
		qb = qb.Where("verification_status = ?", *status)
	}

	var total int64
	if err := qb.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	var rows []models.User
	err := qb.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return rows, pagination.PageFor(params, total), nil
}
