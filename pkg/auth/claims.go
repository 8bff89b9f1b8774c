package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenPayload captures the data available when minting a session JWT.
type SessionTokenPayload struct {
	UserID uuid.UUID
	Handle string
	JTI    string
}

// SessionTokenClaims represents the typed JWT stored in the browser cookie.
// The jti keys the Redis entry holding the wallet auth token.
type SessionTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Handle string    `json:"handle"`
	jwt.RegisteredClaims
}
