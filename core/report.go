package core

import (
	"time"

	"github.com/auth0/go-jwt-inspect/internal/base64url"
)

// Messages appended to Report.Errors, in the order the checks run.
const (
	MsgMissingAlgorithm  = "Missing algorithm in header"
	MsgInvalidType       = "Invalid or missing token type"
	MsgMissingSubject    = "Missing subject (sub) claim"
	MsgMissingAudience   = "Missing audience (aud) claim"
	MsgMissingIssuer     = "Missing issuer (iss) claim"
	MsgMissingExpiration = "Missing expiration (exp) claim"
	MsgMissingIssuedAt   = "Missing issued at (iat) claim"
	MsgExpired           = "Token is expired"

	decodeFailurePrefix = "Failed to decode token: "
)

// Report is the result of ValidateToken. Valid is true exactly when Errors
// is empty.
type Report struct {
	Valid  bool          `json:"valid" yaml:"valid"`
	Errors []string      `json:"errors" yaml:"errors"`
	Claims *ReportClaims `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// ReportClaims exposes what was decoded, whether or not it passed.
type ReportClaims struct {
	Header  Claims `json:"header" yaml:"header"`
	Payload Claims `json:"payload" yaml:"payload"`
}

type check struct {
	failed  func(header, payload Claims) bool
	message string
}

func requireClaim(key string) func(_, payload Claims) bool {
	return func(_, payload Claims) bool { return !payload.present(key) }
}

func structuralChecks() []check {
	return []check{
		{func(header, _ Claims) bool { return !header.present("alg") }, MsgMissingAlgorithm},
		{func(header, _ Claims) bool {
			typ, ok := header.String("typ")
			return !ok || typ != "JWT"
		}, MsgInvalidType},
		{requireClaim("sub"), MsgMissingSubject},
		{requireClaim("aud"), MsgMissingAudience},
		{requireClaim("iss"), MsgMissingIssuer},
		{requireClaim("exp"), MsgMissingExpiration},
		{requireClaim("iat"), MsgMissingIssuedAt},
	}
}

// ValidateToken runs the structural checks on token and never fails; every
// problem ends up in the report. The signature is not verified.
func ValidateToken(dec base64url.Decoder, token string, now time.Time) *Report {
	decoded, err := DecodeToken(dec, token)
	if err != nil {
		return DecodeFailureReport(err)
	}
	return ValidateDecoded(decoded, now)
}

// DecodeFailureReport is the report for a token that could not be decoded.
// It carries a single error and no claims.
func DecodeFailureReport(err error) *Report {
	return &Report{
		Valid:  false,
		Errors: []string{decodeFailurePrefix + err.Error()},
	}
}

// ValidateDecoded runs the structural checks on an already decoded token.
func ValidateDecoded(decoded *DecodeResult, now time.Time) *Report {
	errs := []string{}
	for _, c := range structuralChecks() {
		if c.failed(decoded.Header, decoded.Payload) {
			errs = append(errs, c.message)
		}
	}
	if Expired(decoded.Payload, now) {
		errs = append(errs, MsgExpired)
	}

	return &Report{
		Valid:  len(errs) == 0,
		Errors: errs,
		Claims: &ReportClaims{Header: decoded.Header, Payload: decoded.Payload},
	}
}
