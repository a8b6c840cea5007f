package auth

import (
	"github.com/rkhandelwal/tradebazaar-backend/internal/users"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterBuyerRequest onboards a buyer account. The user type picks the
// pricing schedule the buyer shops under.
type RegisterBuyerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	UserType string  `json:"user_type" validate:"required"`
}

// RegisterPartnerRequest onboards a selling partner. Partners start in
// pending verification and cannot log in until an admin approves them.
type RegisterPartnerRequest struct {
	Email          string         `json:"email" validate:"required,email"`
	Password       string         `json:"password" validate:"required,min=8"`
	FullName       string         `json:"full_name" validate:"required"`
	Phone          *string        `json:"phone,omitempty"`
	UserType       string         `json:"user_type" validate:"required"`
	BusinessName   string         `json:"business_name" validate:"required"`
	BusinessType   *string        `json:"business_type,omitempty"`
	GSTNumber      *string        `json:"gst_number,omitempty"`
	PANNumber      *string        `json:"pan_number,omitempty"`
	BillingAddress *types.Address `json:"billing_address,omitempty"`
}

// AuthResponse carries a minted token and the account it belongs to.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *users.UserDTO `json:"user"`
}

// VerifyEmailRequest carries the one-time token from the verification link.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResendVerificationRequest asks for a fresh verification token.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}
