package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID          uuid.UUID
	ActiveWeddingID *uuid.UUID
	SystemRole      *string
	JTI             string
}

// AccessTokenClaims represents the typed JWT issued to clients. Per-wedding
// roles are resolved from the database on each request rather than baked into
// the token, so role changes take effect without reissuing credentials.
type AccessTokenClaims struct {
	UserID          uuid.UUID  `json:"user_id"`
	ActiveWeddingID *uuid.UUID `json:"active_wedding_id,omitempty"`
	SystemRole      *string    `json:"system_role,omitempty"`
	jwt.RegisteredClaims
}
