package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// UserDTO is the transport shape; it never carries the password hash.
type UserDTO struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	FullName           string             `json:"full_name"`
	Phone              *string            `json:"phone,omitempty"`
	UserType           string             `json:"user_type"`
	RegistrationType   string             `json:"registration_type"`
	BusinessName       *string            `json:"business_name,omitempty"`
	BusinessType       *string            `json:"business_type,omitempty"`
	GSTNumber          *string            `json:"gst_number,omitempty"`
	GSTVerified        bool               `json:"gst_verified"`
	GSTVerifiedAt      *time.Time         `json:"gst_verified_at,omitempty"`
	PANNumber          *string            `json:"pan_number,omitempty"`
	EmailVerified      bool               `json:"email_verified"`
	VerificationStatus string             `json:"verification_status"`
	AdminVerified      bool               `json:"admin_verified"`
	AdminVerifiedAt    *time.Time         `json:"admin_verified_at,omitempty"`
	CommissionRate     *decimal.Decimal   `json:"commission_rate,omitempty"`
	IsActive           bool               `json:"is_active"`
	LoyaltyPoints      int                `json:"loyalty_points"`
	LastLoginAt        *time.Time         `json:"last_login_at,omitempty"`
	ShippingAddress    *types.Address     `json:"shipping_address,omitempty"`
	BillingAddress     *types.Address     `json:"billing_address,omitempty"`
	ERPIntegrations    types.ProviderList `json:"erp_integrations"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// PartnerPageDTO pairs a partner listing with pagination metadata.
type PartnerPageDTO struct {
	Partners   []UserDTO       `json:"partners"`
	Pagination pagination.Page `json:"pagination"`
}

// FromModel projects a user row onto the transport shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Phone:              u.Phone,
		UserType:           u.UserType.String(),
		RegistrationType:   u.RegistrationType.String(),
		BusinessName:       u.BusinessName,
		BusinessType:       u.BusinessType,
		GSTNumber:          u.GSTNumber,
		GSTVerified:        u.GSTVerified,
		GSTVerifiedAt:      u.GSTVerifiedAt,
		PANNumber:          u.PANNumber,
		EmailVerified:      u.EmailVerified,
		VerificationStatus: u.VerificationStatus.String(),
		AdminVerified:      u.AdminVerified,
		AdminVerifiedAt:    u.AdminVerifiedAt,
		CommissionRate:     u.CommissionRate,
		IsActive:           u.IsActive,
		LoyaltyPoints:      u.LoyaltyPoints,
		LastLoginAt:        u.LastLoginAt,
		ShippingAddress:    u.ShippingAddress,
		BillingAddress:     u.BillingAddress,
		ERPIntegrations:    u.ERPIntegrations,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
