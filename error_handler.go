package jwtinspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/auth0/go-jwt-inspect/core"
)

var (
	// ErrTokenMissing is returned when a request carries no token and
	// credentials are required.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenRejected is matched by *RejectedError.
	ErrTokenRejected = errors.New("token rejected")
)

// RejectedError carries the report of a token that failed structural
// validation.
type RejectedError struct {
	Report *core.Report
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTokenRejected, strings.Join(e.Report.Errors, "; "))
}

// Is allows the error to support equality to ErrTokenRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrTokenRejected
}

// ErrorHandler writes the response for a request the middleware refuses.
// err can be checked with errors.Is against ErrTokenMissing and
// ErrTokenRejected, and with errors.As against *RejectedError.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type errorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// errorResponse maps err onto a status code and JSON body: 400 for a
// missing token, 401 for a rejected one, 500 otherwise.
func errorResponse(err error) (int, errorBody) {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrTokenMissing):
		return http.StatusBadRequest, errorBody{Message: "Token is missing."}
	case errors.As(err, &rejected):
		return http.StatusUnauthorized, errorBody{Message: "Token is invalid.", Errors: rejected.Report.Errors}
	case errors.Is(err, ErrBadAuthHeader):
		return http.StatusBadRequest, errorBody{Message: "Authorization header is malformed."}
	default:
		return http.StatusInternalServerError, errorBody{Message: "Something went wrong while checking the token."}
	}
}

// DefaultErrorHandler is used when no handler is set with WithErrorHandler.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
