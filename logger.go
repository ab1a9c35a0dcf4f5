package jwtinspect

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Logger is the logging interface used by the Inspector and the middleware.
// It is compatible with *slog.Logger, which can be passed directly.
// Arguments after msg are alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

const badKey = "!BADKEY"

// pairs walks alternating key/value arguments the way log/slog does: a
// non-string key, or a trailing value, is reported under badKey.
func pairs(args []any, fn func(key string, value any)) {
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || len(args) == 1 {
			fn(badKey, args[0])
			args = args[1:]
			continue
		}
		fn(key, args[1])
		args = args[2:]
	}
}

// NewLogrusLogger returns a Logger backed by a logrus.FieldLogger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLogger{l}
}

type logrusLogger struct{ l logrus.FieldLogger }

func (a *logrusLogger) entry(args []any) logrus.FieldLogger {
	if len(args) == 0 {
		return a.l
	}
	fields := logrus.Fields{}
	pairs(args, func(key string, value any) {
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		fields[key] = value
	})
	return a.l.WithFields(fields)
}

func (a *logrusLogger) Debug(msg string, args ...any) { a.entry(args).Debug(msg) }
func (a *logrusLogger) Info(msg string, args ...any)  { a.entry(args).Info(msg) }
func (a *logrusLogger) Warn(msg string, args ...any)  { a.entry(args).Warn(msg) }
func (a *logrusLogger) Error(msg string, args ...any) { a.entry(args).Error(msg) }

// NewZapLogger returns a Logger backed by a zap.SugaredLogger.
func NewZapLogger(l *zap.SugaredLogger) Logger {
	return &zapLogger{l}
}

type zapLogger struct{ l *zap.SugaredLogger }

func (z *zapLogger) Debug(msg string, args ...any) { z.l.Debugw(msg, args...) }
func (z *zapLogger) Info(msg string, args ...any)  { z.l.Infow(msg, args...) }
func (z *zapLogger) Warn(msg string, args ...any)  { z.l.Warnw(msg, args...) }
func (z *zapLogger) Error(msg string, args ...any) { z.l.Errorw(msg, args...) }

// NewZerologLogger returns a Logger backed by a zerolog.Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLogger{l}
}

type zerologLogger struct{ l zerolog.Logger }

func (z *zerologLogger) write(e *zerolog.Event, msg string, args []any) {
	pairs(args, func(key string, value any) {
		switch v := value.(type) {
		case error:
			e = e.AnErr(key, v)
		case fmt.Stringer:
			e = e.Stringer(key, v)
		default:
			e = e.Interface(key, v)
		}
	})
	e.Msg(msg)
}

func (z *zerologLogger) Debug(msg string, args ...any) { z.write(z.l.Debug(), msg, args) }
func (z *zerologLogger) Info(msg string, args ...any)  { z.write(z.l.Info(), msg, args) }
func (z *zerologLogger) Warn(msg string, args ...any)  { z.write(z.l.Warn(), msg, args) }
func (z *zerologLogger) Error(msg string, args ...any) { z.write(z.l.Error(), msg, args) }
