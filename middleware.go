package jwtinspect

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/auth0/go-jwt-inspect/core"
)

// Sentinel errors for middleware configuration.
var (
	ErrInspectorNil      = errors.New("inspector cannot be nil")
	ErrErrorHandlerNil   = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil = errors.New("tokenExtractor cannot be nil")
)

// Middleware admits requests whose token passes ValidateToken.
//
// The checks are structural only: signatures are not verified, so in
// production the middleware belongs behind a component that does verify them.
type Middleware struct {
	inspector           *Inspector
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	credentialsOptional bool
	validateOnOptions   bool
	logger              Logger
}

// MiddlewareOption configures a Middleware.
type MiddlewareOption func(*Middleware) error

// NewMiddleware constructs a Middleware around inspector.
//
// Example:
//
//	inspector, _ := jwtinspect.New()
//	mw, err := jwtinspect.NewMiddleware(inspector,
//	    jwtinspect.WithCredentialsOptional(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/api/", mw.CheckToken(apiHandler))
func NewMiddleware(inspector *Inspector, opts ...MiddlewareOption) (*Middleware, error) {
	if inspector == nil {
		return nil, ErrInspectorNil
	}

	m := &Middleware{
		inspector:         inspector,
		errorHandler:      DefaultErrorHandler,
		tokenExtractor:    AuthHeaderTokenExtractor,
		validateOnOptions: true,
		logger:            inspector.logger,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return m, nil
}

// WithCredentialsOptional lets requests without a token through without an
// identity in their context.
//
// Default: false (credentials required)
func WithCredentialsOptional(value bool) MiddlewareOption {
	return func(m *Middleware) error {
		m.credentialsOptional = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests are checked.
//
// Default: true
func WithValidateOnOptions(value bool) MiddlewareOption {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called for refused requests.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets how the token is read from the request.
//
// Default: AuthHeaderTokenExtractor
func WithTokenExtractor(e TokenExtractor) MiddlewareOption {
	return func(m *Middleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithMiddlewareLogger overrides the logger inherited from the Inspector.
func WithMiddlewareLogger(logger Logger) MiddlewareOption {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// check runs the middleware logic for r. A nil context with a nil error means
// the request passes without a token.
func (m *Middleware) check(r *http.Request) (context.Context, error) {
	token, err := m.tokenExtractor(r)
	if err != nil {
		m.logger.Warn("failed to extract token from request", "error", err, "method", r.Method, "path", r.URL.Path)
		return nil, fmt.Errorf("error extracting token: %w", err)
	}
	return m.admit(r.Context(), token, "method", r.Method, "path", r.URL.Path)
}

// admit validates token and returns ctx enriched with its report and
// identity. logArgs describe the request in log lines.
func (m *Middleware) admit(ctx context.Context, token string, logArgs ...any) (context.Context, error) {
	if token == "" {
		if m.credentialsOptional {
			m.logger.Debug("no token provided, credentials are optional", logArgs...)
			return nil, nil
		}
		return nil, ErrTokenMissing
	}

	report := m.inspector.ValidateTokenContext(ctx, token)
	if !report.Valid {
		m.logger.Warn("token rejected", append([]any{"errors", report.Errors}, logArgs...)...)
		return nil, &RejectedError{Report: report}
	}

	ctx = core.WithReport(ctx, report)
	ctx = core.WithIdentity(ctx, core.IdentityFromClaims(report.Claims.Payload))
	return ctx, nil
}

func (m *Middleware) skip(r *http.Request) bool {
	return !m.validateOnOptions && r.Method == http.MethodOptions
}

// CheckToken wraps next so that it only runs for accepted requests. The
// identity of the token is available to next through IdentityFrom.
func (m *Middleware) CheckToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skip(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := m.check(r)
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}
		if ctx != nil {
			r = r.Clone(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom returns the identity stored by the middleware.
func IdentityFrom(ctx context.Context) (*core.Identity, error) {
	return core.IdentityFrom(ctx)
}

// ReportFrom returns the validation report stored by the middleware.
func ReportFrom(ctx context.Context) (*core.Report, bool) {
	return core.ReportFrom(ctx)
}
