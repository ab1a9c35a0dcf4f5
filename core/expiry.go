package core

import (
	"time"

	"github.com/auth0/go-jwt-inspect/internal/base64url"
)

// Expired reports whether payload's exp claim lies strictly before now,
// compared in whole seconds. A token without a numeric exp never expires
// here; ValidateToken reports the missing claim separately.
func Expired(payload Claims, now time.Time) bool {
	exp, ok := payload.Number("exp")
	if !ok {
		return false
	}
	return exp < float64(now.Unix())
}

// IsExpired decodes token and checks its exp claim. Tokens that cannot be
// decoded are reported as expired.
func IsExpired(dec base64url.Decoder, token string, now time.Time) bool {
	decoded, err := DecodeToken(dec, token)
	if err != nil {
		return true
	}
	return Expired(decoded.Payload, now)
}

// ExpiresAt returns the time encoded in the exp claim.
func ExpiresAt(dec base64url.Decoder, token string) (time.Time, bool) {
	decoded, err := DecodeToken(dec, token)
	if err != nil {
		return time.Time{}, false
	}
	exp, ok := decoded.Payload.Int64("exp")
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(exp, 0), true
}

// ExpiresWithin reports whether token is expired or will be within d of now.
// Undecodable tokens and tokens without exp report true.
func ExpiresWithin(dec base64url.Decoder, token string, now time.Time, d time.Duration) bool {
	decoded, err := DecodeToken(dec, token)
	if err != nil {
		return true
	}
	return ExpiresWithinAt(decoded.Payload, now, d)
}

// ExpiresWithinAt is ExpiresWithin for an already decoded payload. A payload
// without an integral exp reports true.
func ExpiresWithinAt(payload Claims, now time.Time, d time.Duration) bool {
	exp, ok := payload.Int64("exp")
	if !ok {
		return true
	}
	return time.Unix(exp, 0).Before(now.Truncate(time.Second).Add(d))
}
