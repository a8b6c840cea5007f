package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// User represents the canonical identity entity for buyers and partners.
type User struct {
	ID                   uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email                string                   `gorm:"column:email;type:text;not null"`
	PasswordHash         string                   `gorm:"column:password_hash;not null"`
	FullName             string                   `gorm:"column:full_name;not null;default:''"`
	Phone                *string                  `gorm:"column:phone"`
	UserType             enums.UserType           `gorm:"column:user_type;type:text;not null"`
	RegistrationType     enums.RegistrationType   `gorm:"column:registration_type;type:text;not null"`
	BusinessName         *string                  `gorm:"column:business_name"`
	BusinessType         *string                  `gorm:"column:business_type"`
	GSTNumber            *string                  `gorm:"column:gst_number"`
	GSTVerified          bool                     `gorm:"column:gst_verified;not null;default:false"`
	GSTVerifiedAt        *time.Time               `gorm:"column:gst_verified_at"`
	PANNumber            *string                  `gorm:"column:pan_number"`
	EmailVerified        bool                     `gorm:"column:email_verified;not null;default:false"`
	VerificationStatus   enums.VerificationStatus `gorm:"column:verification_status;type:text;not null;default:'pending'"`
	AdminVerified        bool                     `gorm:"column:admin_verified;not null;default:false"`
	AdminVerifiedBy      *uuid.UUID               `gorm:"column:admin_verified_by;type:uuid"`
	AdminVerifiedAt      *time.Time               `gorm:"column:admin_verified_at"`
	CommissionRate       *decimal.Decimal         `gorm:"column:commission_rate;type:numeric(5,2)"`
	IsActive             bool                     `gorm:"column:is_active;not null;default:true"`
	LoyaltyPoints        int                      `gorm:"column:loyalty_points;not null;default:0"`
	LastLoginAt          *time.Time               `gorm:"column:last_login_at"`
	ShippingAddress      *types.Address           `gorm:"column:shipping_address;type:jsonb"`
	BillingAddress       *types.Address           `gorm:"column:billing_address;type:jsonb"`
	ERPIntegrations      types.ProviderList       `gorm:"column:erp_integrations;type:jsonb;not null;default:'[]'"`
	ShippingIntegrations types.ProviderList       `gorm:"column:shipping_integrations;type:jsonb;not null;default:'[]'"`
	SocialLinks          types.Document           `gorm:"column:social_links;type:jsonb;not null;default:'{}'"`
	CreatedAt            time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
