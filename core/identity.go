package core

import (
	"github.com/auth0/go-jwt-inspect/internal/base64url"
)

// Identity is a read-only projection of the well-known payload claims.
// A nil field means the claim was absent or held a value of another kind.
type Identity struct {
	UserID   *string  `json:"userId,omitempty" yaml:"userId,omitempty"`
	Email    *string  `json:"email,omitempty" yaml:"email,omitempty"`
	Role     *string  `json:"role,omitempty" yaml:"role,omitempty"`
	Expiry   *int64   `json:"exp,omitempty" yaml:"exp,omitempty"`
	IssuedAt *int64   `json:"iat,omitempty" yaml:"iat,omitempty"`
	Audience []string `json:"aud,omitempty" yaml:"aud,omitempty"`
	Issuer   *string  `json:"iss,omitempty" yaml:"iss,omitempty"`
}

// IdentityFromClaims projects payload onto an Identity. The user id comes
// from sub, falling back to user_id when sub is missing (absent, null or
// empty), the same rule ValidateToken applies.
func IdentityFromClaims(payload Claims) *Identity {
	id := &Identity{
		Email:    stringPtr(payload, "email"),
		Role:     stringPtr(payload, "role"),
		Expiry:   int64Ptr(payload, "exp"),
		IssuedAt: int64Ptr(payload, "iat"),
		Issuer:   stringPtr(payload, "iss"),
	}

	if payload.present("sub") {
		id.UserID = stringPtr(payload, "sub")
	} else {
		id.UserID = stringPtr(payload, "user_id")
	}

	if aud, ok := payload.Strings("aud"); ok {
		id.Audience = aud
	}

	return id
}

// ExtractIdentity decodes token and projects its payload. Decoding errors
// are returned unchanged.
func ExtractIdentity(dec base64url.Decoder, token string) (*Identity, error) {
	decoded, err := DecodeToken(dec, token)
	if err != nil {
		return nil, err
	}
	return IdentityFromClaims(decoded.Payload), nil
}

func stringPtr(c Claims, key string) *string {
	if s, ok := c.String(key); ok {
		return &s
	}
	return nil
}

func int64Ptr(c Claims, key string) *int64 {
	if n, ok := c.Int64(key); ok {
		return &n
	}
	return nil
}
