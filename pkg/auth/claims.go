package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the typed JWT the platform auth service issues to
// storefront users. The storefront only verifies; it never mints.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Locale string    `json:"locale,omitempty"`
	jwt.RegisteredClaims
}
