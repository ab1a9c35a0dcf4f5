package jwtinspect

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/auth0/go-jwt-inspect/core"
	"github.com/auth0/go-jwt-inspect/internal/base64url"
)

// Decoder decodes one base64url token segment. Implementations must be safe
// for concurrent use.
type Decoder interface {
	Name() string
	Decode(segment string) ([]byte, error)
}

// Inspector decodes and structurally validates tokens. Its configuration is
// fixed at construction, so a single Inspector can be shared freely between
// goroutines.
type Inspector struct {
	decoder Decoder
	now     func() time.Time
	logger  Logger
	metrics Metrics
	tracer  Tracer
	latin1  bool
}

// New creates an Inspector. Without options it uses the default decoder
// strategy, the system clock, and no-op logging, metrics and tracing.
//
// Example:
//
//	inspector, err := jwtinspect.New(
//	    jwtinspect.WithLogger(slog.Default()),
//	    jwtinspect.WithMetrics(jwtinspect.NewPrometheusMetrics(nil)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Inspector, error) {
	i := &Inspector{
		decoder: base64url.Default(),
		now:     time.Now,
		logger:  nopLogger{},
		metrics: &NoopMetrics{},
		tracer:  &NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.latin1 {
		i.decoder = base64url.Latin1(i.decoder)
	}

	return i, nil
}

// DecoderName returns the name of the decoding strategy in use.
func (i *Inspector) DecoderName() string {
	return i.decoder.Name()
}

// DecodeToken splits and decodes token. The signature is not verified.
// Errors match core.ErrInvalidTokenFormat or core.ErrTokenDecode.
func (i *Inspector) DecodeToken(token string) (*core.DecodeResult, error) {
	span := i.tracer.StartSpan(context.Background(), "jwtinspect.DecodeToken")
	defer span.Finish()

	decoded, err := i.decode(token)
	if err != nil {
		span.RecordError(err)
	}
	return decoded, err
}

func (i *Inspector) decode(token string) (*core.DecodeResult, error) {
	decoded, err := core.DecodeToken(i.decoder, token)
	if err != nil {
		i.logger.Debug("token decode failed", "error", err, "decoder", i.decoder.Name())
		i.metrics.IncCounter(MetricDecodeTotal, map[string]string{"result": errorCode(err)})
		return nil, err
	}

	if !decoded.KnownAlgorithm() {
		i.logger.Debug("token header names an unregistered algorithm", "alg", decoded.Algorithm())
	}
	i.metrics.IncCounter(MetricDecodeTotal, map[string]string{"result": "ok"})
	return decoded, nil
}

// ExtractIdentity decodes token and returns its well-known claims.
func (i *Inspector) ExtractIdentity(token string) (*core.Identity, error) {
	decoded, err := i.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	return core.IdentityFromClaims(decoded.Payload), nil
}

// IsExpired reports whether token's exp claim is before the current second.
// A token that cannot be decoded is reported as expired.
func (i *Inspector) IsExpired(token string) bool {
	decoded, err := i.decode(token)
	if err != nil {
		return true
	}
	return core.Expired(decoded.Payload, i.now())
}

// ExpiresWithin reports whether token expires within d. Tokens that cannot
// be decoded or that carry no exp claim report true.
func (i *Inspector) ExpiresWithin(token string, d time.Duration) bool {
	decoded, err := i.decode(token)
	if err != nil {
		return true
	}
	return core.ExpiresWithinAt(decoded.Payload, i.now(), d)
}

// ValidateToken runs the structural checks and never fails; problems are
// listed in the report.
func (i *Inspector) ValidateToken(token string) *core.Report {
	return i.ValidateTokenContext(context.Background(), token)
}

// ValidateTokenContext is ValidateToken with a parent context for tracing.
func (i *Inspector) ValidateTokenContext(ctx context.Context, token string) *core.Report {
	span := i.tracer.StartSpan(ctx, "jwtinspect.ValidateToken")
	defer span.Finish()

	var report *core.Report
	decoded, err := i.decode(token)
	if err != nil {
		report = core.DecodeFailureReport(err)
	} else {
		report = core.ValidateDecoded(decoded, i.now())
	}

	span.SetTag("valid", report.Valid)
	span.SetTag("errors", len(report.Errors))
	i.metrics.IncCounter(MetricValidateTotal, map[string]string{"valid": strconv.FormatBool(report.Valid)})
	i.metrics.ObserveHistogram(MetricValidateErrors, float64(len(report.Errors)), map[string]string{})

	if !report.Valid {
		i.logger.Info("token failed structural validation", "errors", report.Errors)
	}
	return report
}

func errorCode(err error) string {
	var tokenErr *core.TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.Code
	}
	return "error"
}

var defaultInspector = func() *Inspector {
	i, err := New()
	if err != nil {
		panic(err)
	}
	return i
}()

// DecodeToken decodes token with the default Inspector.
func DecodeToken(token string) (*core.DecodeResult, error) {
	return defaultInspector.DecodeToken(token)
}

// ExtractIdentity extracts the identity of token with the default Inspector.
func ExtractIdentity(token string) (*core.Identity, error) {
	return defaultInspector.ExtractIdentity(token)
}

// IsExpired checks token with the default Inspector.
func IsExpired(token string) bool {
	return defaultInspector.IsExpired(token)
}

// ValidateToken validates token with the default Inspector.
func ValidateToken(token string) *core.Report {
	return defaultInspector.ValidateToken(token)
}
