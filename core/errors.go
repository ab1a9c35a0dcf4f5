package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for token decoding.
var (
	// ErrInvalidTokenFormat is returned when the input is empty or does not
	// split into exactly three dot separated segments.
	ErrInvalidTokenFormat = errors.New("invalid token format")

	// ErrTokenDecode is returned when the header or payload segment could not
	// be decoded into a JSON object.
	ErrTokenDecode = errors.New("token decode error")

	// ErrIdentityNotFound is returned when no identity is stored in a context.
	ErrIdentityNotFound = errors.New("identity not found in context")
)

// Error codes carried by TokenError.
const (
	ErrorCodeInvalidFormat = "invalid_token_format"
	ErrorCodeDecodeFailed  = "token_decode_failed"
)

// TokenError wraps decoding failures with a machine readable code.
type TokenError struct {
	// Code is one of the ErrorCode constants.
	Code string

	// Message is a human-readable error message.
	Message string

	// Details contains the underlying error, if any.
	Details error
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *TokenError) Unwrap() error {
	return e.Details
}

// Is matches the sentinel that corresponds to the error code.
func (e *TokenError) Is(target error) bool {
	switch e.Code {
	case ErrorCodeInvalidFormat:
		return target == ErrInvalidTokenFormat
	case ErrorCodeDecodeFailed:
		return target == ErrTokenDecode
	}
	return false
}

func formatError(msg string) *TokenError {
	return &TokenError{
		Code:    ErrorCodeInvalidFormat,
		Message: "invalid token format: " + msg,
	}
}

func segmentCountError(got int) *TokenError {
	return formatError(fmt.Sprintf("expected 3 parts, got %d", got))
}

func decodeError(segment string, err error) *TokenError {
	return &TokenError{
		Code:    ErrorCodeDecodeFailed,
		Message: "failed to decode token " + segment,
		Details: err,
	}
}
