package core

import (
	"math"
)

// Kind classifies the JSON value stored under a claim.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

var kindNames = [...]string{"absent", "null", "string", "number", "bool", "array", "object"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Claims is a decoded JSON object, used for both the header and the payload.
// Values are whatever encoding/json produces for an interface{}: string,
// float64, bool, nil, []any and map[string]any.
//
// The accessors never panic. A missing key and a key holding a value of the
// wrong kind both report ok == false.
type Claims map[string]any

// MarshalYAML writes integral numbers such as exp and iat as integers
// rather than in float notation.
func (c Claims) MarshalYAML() (any, error) {
	return integralNumbers(map[string]any(c)), nil
}

func integralNumbers(v any) any {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = integralNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = integralNumbers(e)
		}
		return out
	}
	return v
}

// Has reports whether key is present, even if its value is null.
func (c Claims) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Kind returns the kind of the value stored under key.
func (c Claims) Kind(key string) Kind {
	v, ok := c[key]
	if !ok {
		return KindAbsent
	}
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case float64, int, int64:
		return KindNumber
	case bool:
		return KindBool
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}
	return KindAbsent
}

// String returns the string value stored under key.
func (c Claims) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// Number returns the numeric value stored under key.
func (c Claims) Number(key string) (float64, bool) {
	switch v := c[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int64 returns the numeric value under key truncated towards zero. Values
// that do not fit in an int64 are reported as absent.
func (c Claims) Int64(key string) (int64, bool) {
	f, ok := c.Number(key)
	if !ok || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Bool returns the boolean value stored under key.
func (c Claims) Bool(key string) (bool, bool) {
	b, ok := c[key].(bool)
	return b, ok
}

// Strings returns a string, or an array made only of strings, as a slice.
// This is the shape of the aud claim.
func (c Claims) Strings(key string) ([]string, bool) {
	switch v := c[key].(type) {
	case string:
		return []string{v}, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case []string:
		return append([]string(nil), v...), true
	}
	return nil, false
}

// present reports whether key holds something other than null or an empty
// string. Required claim checks use it.
func (c Claims) present(key string) bool {
	v, ok := c[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && s == "" {
		return false
	}
	return true
}
