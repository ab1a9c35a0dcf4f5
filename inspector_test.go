package jwtinspect

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auth0/go-jwt-inspect/core"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func fixedClock() time.Time { return fixedNow }

func segment(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	return segment(t, map[string]any{"alg": "HS256", "typ": "JWT"}) + "." + segment(t, payload) + ".c2ln"
}

func validPayload() map[string]any {
	return map[string]any{
		"sub": "u1",
		"aud": "app",
		"iss": "auth",
		"exp": fixedNow.Unix() + 3600,
		"iat": fixedNow.Unix(),
	}
}

// recordingMetrics keeps every counter increment for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	counters []string
	observed []float64
}

func (m *recordingMetrics) IncCounter(name string, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys(tags) {
		name += "," + k + "=" + tags[k]
	}
	m.counters = append(m.counters, name)
}

func (m *recordingMetrics) ObserveHistogram(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed = append(m.observed, value)
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, level+": "+msg)
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg) }

func TestInspector_DecodeToken(t *testing.T) {
	metrics := &recordingMetrics{}
	logger := &recordingLogger{}
	inspector, err := New(WithMetrics(metrics), WithLogger(logger), WithClock(fixedClock))
	require.NoError(t, err)

	t.Run("decodes header and payload", func(t *testing.T) {
		decoded, err := inspector.DecodeToken(makeToken(t, validPayload()))
		require.NoError(t, err)
		assert.Equal(t, "HS256", decoded.Algorithm())
		assert.Equal(t, "c2ln", decoded.Signature)
		sub, _ := decoded.Payload.String("sub")
		assert.Equal(t, "u1", sub)
	})

	t.Run("reports the segment count", func(t *testing.T) {
		_, err := inspector.DecodeToken("not-a-jwt")
		assert.ErrorIs(t, err, core.ErrInvalidTokenFormat)
		assert.Contains(t, err.Error(), "expected 3 parts, got 1")
	})

	t.Run("logs unregistered algorithms", func(t *testing.T) {
		token := segment(t, map[string]any{"alg": "XS1", "typ": "JWT"}) + "." + segment(t, validPayload()) + ".sig"
		_, err := inspector.DecodeToken(token)
		require.NoError(t, err)
		assert.Contains(t, logger.messages, "debug: token header names an unregistered algorithm")
	})

	assert.Contains(t, metrics.counters, MetricDecodeTotal+",result=ok")
	assert.Contains(t, metrics.counters, MetricDecodeTotal+",result="+core.ErrorCodeInvalidFormat)
	assert.Contains(t, logger.messages, "debug: token decode failed")
}

func TestInspector_ExtractIdentity(t *testing.T) {
	inspector, err := New()
	require.NoError(t, err)

	payload := validPayload()
	delete(payload, "sub")
	payload["user_id"] = "legacy"
	payload["email"] = "user@example.com"

	id, err := inspector.ExtractIdentity(makeToken(t, payload))
	require.NoError(t, err)
	require.NotNil(t, id.UserID)
	assert.Equal(t, "legacy", *id.UserID)
	assert.Equal(t, "user@example.com", *id.Email)
	assert.Nil(t, id.Role)

	_, err = inspector.ExtractIdentity("a.b.c.d")
	assert.ErrorIs(t, err, core.ErrInvalidTokenFormat)
}

func TestInspector_IsExpired(t *testing.T) {
	inspector, err := New(WithClock(fixedClock))
	require.NoError(t, err)

	exp := func(v int64) string {
		payload := validPayload()
		payload["exp"] = v
		return makeToken(t, payload)
	}

	assert.False(t, inspector.IsExpired(exp(fixedNow.Unix())))
	assert.True(t, inspector.IsExpired(exp(fixedNow.Unix()-1)))
	assert.True(t, inspector.IsExpired("garbage"))
	assert.False(t, inspector.ExpiresWithin(exp(fixedNow.Unix()+120), time.Minute))
	assert.True(t, inspector.ExpiresWithin(exp(fixedNow.Unix()+30), time.Minute))
}

func TestInspector_ValidateToken(t *testing.T) {
	metrics := &recordingMetrics{}
	inspector, err := New(WithClock(fixedClock), WithMetrics(metrics))
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		report := inspector.ValidateToken(makeToken(t, validPayload()))
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		require.NotNil(t, report.Claims)
	})

	t.Run("expired token", func(t *testing.T) {
		payload := validPayload()
		payload["exp"] = fixedNow.Unix() - 10
		report := inspector.ValidateToken(makeToken(t, payload))
		assert.False(t, report.Valid)
		assert.Equal(t, []string{core.MsgExpired}, report.Errors)
	})

	t.Run("undecodable token", func(t *testing.T) {
		report := inspector.ValidateToken("x.y")
		assert.False(t, report.Valid)
		assert.Equal(t, []string{"Failed to decode token: invalid token format: expected 3 parts, got 2"}, report.Errors)
		assert.Nil(t, report.Claims)
	})

	assert.Contains(t, metrics.counters, MetricValidateTotal+",valid=true")
	assert.Contains(t, metrics.counters, MetricValidateTotal+",valid=false")
	assert.Equal(t, []float64{0, 1, 1}, metrics.observed)
}

func TestInspector_DecoderStrategies(t *testing.T) {
	token := makeToken(t, map[string]any{"sub": "Zoë", "aud": "app"})

	for _, name := range DecoderNames() {
		t.Run(name, func(t *testing.T) {
			inspector, err := New(WithDecoderName(name))
			require.NoError(t, err)
			assert.Equal(t, name, inspector.DecoderName())

			id, err := inspector.ExtractIdentity(token)
			require.NoError(t, err)
			assert.Equal(t, "Zoë", *id.UserID)
		})
	}
}

func TestInspector_Latin1Text(t *testing.T) {
	token := makeToken(t, map[string]any{"sub": "Zoë", "aud": "app"})

	for _, name := range DecoderNames() {
		t.Run(name, func(t *testing.T) {
			inspector, err := New(WithLatin1Text(), WithDecoderName(name))
			require.NoError(t, err)
			assert.Equal(t, name+"/latin1", inspector.DecoderName())

			id, err := inspector.ExtractIdentity(token)
			require.NoError(t, err)
			assert.Equal(t, "ZoÃ«", *id.UserID)
		})
	}

	t.Run("ascii claims are unaffected", func(t *testing.T) {
		inspector, err := New(WithLatin1Text(), WithClock(fixedClock))
		require.NoError(t, err)
		assert.True(t, inspector.ValidateToken(makeToken(t, validPayload())).Valid)
	})
}

func TestInspector_ExpiresWithinRecordsDecode(t *testing.T) {
	metrics := &recordingMetrics{}
	logger := &recordingLogger{}
	inspector, err := New(WithClock(fixedClock), WithMetrics(metrics), WithLogger(logger))
	require.NoError(t, err)

	assert.False(t, inspector.ExpiresWithin(makeToken(t, validPayload()), time.Minute))
	assert.True(t, inspector.ExpiresWithin("garbage", time.Minute))

	assert.Equal(t, []string{
		MetricDecodeTotal + ",result=ok",
		MetricDecodeTotal + ",result=" + core.ErrorCodeInvalidFormat,
	}, metrics.counters)
	assert.Contains(t, logger.messages, "debug: token decode failed")
}

func TestInspector_ConcurrentUse(t *testing.T) {
	inspector, err := New(WithClock(fixedClock), WithMetrics(&recordingMetrics{}))
	require.NoError(t, err)
	token := makeToken(t, validPayload())

	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				assert.True(t, inspector.ValidateToken(token).Valid)
				assert.False(t, inspector.IsExpired(token))
			}
		}()
	}
	wg.Wait()
}

func TestPackageLevelFunctions(t *testing.T) {
	payload := validPayload()
	now := time.Now().Unix()
	payload["exp"] = now + 3600
	payload["iat"] = now
	token := makeToken(t, payload)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "JWT", decoded.Type())

	id, err := ExtractIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", *id.UserID)

	assert.False(t, IsExpired(token))
	assert.True(t, IsExpired("not-a-jwt"))

	report := ValidateToken(token)
	assert.True(t, report.Valid)
	assert.Equal(t, []string{}, report.Errors)
}
