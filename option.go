package jwtinspect

import (
	"errors"
	"fmt"
	"time"

	"github.com/auth0/go-jwt-inspect/internal/base64url"
)

// Option configures an Inspector.
// Options return errors to enable validation during construction.
type Option func(*Inspector) error

// Sentinel errors for configuration validation.
var (
	ErrDecoderNil     = errors.New("decoder cannot be nil")
	ErrUnknownDecoder = errors.New("unknown decoder")
	ErrClockNil       = errors.New("clock cannot be nil")
	ErrLoggerNil      = errors.New("logger cannot be nil")
	ErrMetricsNil     = errors.New("metrics cannot be nil")
	ErrTracerNil      = errors.New("tracer cannot be nil")
)

// DecoderNames lists the built-in decoding strategies in priority order.
func DecoderNames() []string {
	var names []string
	for _, c := range base64url.Candidates() {
		names = append(names, c.Decoder.Name())
	}
	return names
}

// WithDecoder sets the segment decoder.
//
// Default: the first available built-in strategy ("std").
func WithDecoder(d Decoder) Option {
	return func(i *Inspector) error {
		if d == nil {
			return ErrDecoderNil
		}
		i.decoder = d
		return nil
	}
}

// WithDecoderName selects one of the built-in strategies by name, see
// DecoderNames.
func WithDecoderName(name string) Option {
	return func(i *Inspector) error {
		for _, c := range base64url.Candidates() {
			if c.Decoder.Name() == name {
				d, err := base64url.Resolve(c)
				if err != nil {
					return err
				}
				i.decoder = d
				return nil
			}
		}
		return fmt.Errorf("%w %q (want one of %v)", ErrUnknownDecoder, name, DecoderNames())
	}
}

// WithLatin1Text makes the decoder map every decoded byte to one character,
// as legacy byte-oriented decoders do. Non-ASCII claim values are then
// mangled ("ë" reads as "Ã«"); use it only to reproduce such output. It
// applies to whichever decoder is configured.
//
// Default: segments are read as UTF-8.
func WithLatin1Text() Option {
	return func(i *Inspector) error {
		i.latin1 = true
		return nil
	}
}

// WithClock sets the time source used for expiration checks.
//
// Default: time.Now
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) error {
		if now == nil {
			return ErrClockNil
		}
		i.now = now
		return nil
	}
}

// WithLogger sets the logger. *slog.Logger satisfies Logger, and
// NewLogrusLogger, NewZapLogger and NewZerologLogger adapt other libraries.
//
// Default: no logging.
func WithLogger(logger Logger) Option {
	return func(i *Inspector) error {
		if logger == nil {
			return ErrLoggerNil
		}
		i.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics sink.
//
// Default: NoopMetrics
func WithMetrics(m Metrics) Option {
	return func(i *Inspector) error {
		if m == nil {
			return ErrMetricsNil
		}
		i.metrics = m
		return nil
	}
}

// WithTracer sets the tracer.
//
// Default: NoopTracer
func WithTracer(t Tracer) Option {
	return func(i *Inspector) error {
		if t == nil {
			return ErrTracerNil
		}
		i.tracer = t
		return nil
	}
}
