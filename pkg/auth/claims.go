package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
)

// TokenKind distinguishes the flows a token was minted for. Registration
// tokens live 7 days so a new account can finish onboarding; login tokens
// live 24 hours.
type TokenKind string

const (
	TokenKindLogin        TokenKind = "login"
	TokenKindRegistration TokenKind = "registration"
)

// IsValid reports whether the value is a known TokenKind.
func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindLogin, TokenKindRegistration:
		return true
	}
	return false
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Email    string
	UserType enums.UserType
	Kind     TokenKind
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID      `json:"user_id"`
	Email    string         `json:"email,omitempty"`
	UserType enums.UserType `json:"user_type"`
	Kind     TokenKind      `json:"kind"`
	jwt.RegisteredClaims
}
