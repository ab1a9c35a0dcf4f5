// Package base64url decodes the base64url segments of a compact token.
//
// Several interchangeable decoding strategies are provided. Which one is used
// is decided once, by Resolve, and the result is an immutable Decoder that is
// safe for concurrent use.
package base64url

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidBase64 is matched by every *DecodeError.
var ErrInvalidBase64 = errors.New("invalid base64url data")

// Decoder turns a single base64url segment into raw bytes.
type Decoder interface {
	Name() string
	Decode(segment string) ([]byte, error)
}

// DecodeError reports a segment that is not valid base64 once the url
// alphabet has been translated and padding appended.
type DecodeError struct {
	// Decoder is the name of the strategy that rejected the input.
	Decoder string
	// Offset is the byte offset into the normalized input, or -1 if unknown.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "invalid base64url data"
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at input byte %d", msg, e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is allows the error to be compared with ErrInvalidBase64.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidBase64
}

// normalize maps the url alphabet onto the standard one and pads the input
// to a multiple of four.
func normalize(segment string) string {
	s := strings.NewReplacer("-", "+", "_", "/").Replace(segment)
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return s
}

// checkAlphabet rejects any byte that is neither in the url nor the standard
// alphabet, nor padding. The standard library codecs skip CR and LF.
func checkAlphabet(name, segment string) error {
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if c == '-' || c == '_' || c == '=' || lookup[c] != invalid {
			continue
		}
		return &DecodeError{Decoder: name, Offset: i, Err: fmt.Errorf("character %q not in alphabet", c)}
	}
	return nil
}

func wrapStdError(name string, err error) error {
	var corrupt base64.CorruptInputError
	if errors.As(err, &corrupt) {
		return &DecodeError{Decoder: name, Offset: int(corrupt)}
	}
	return &DecodeError{Decoder: name, Offset: -1, Err: err}
}

// StdDecoder decodes with the standard library codec.
type StdDecoder struct{}

func (StdDecoder) Name() string { return "std" }

func (d StdDecoder) Decode(segment string) ([]byte, error) {
	if err := checkAlphabet(d.Name(), segment); err != nil {
		return nil, err
	}
	out, err := base64.StdEncoding.DecodeString(normalize(segment))
	if err != nil {
		return nil, wrapStdError(d.Name(), err)
	}
	return out, nil
}

// StreamDecoder decodes through a streaming reader over a byte buffer.
type StreamDecoder struct{}

func (StreamDecoder) Name() string { return "stream" }

func (d StreamDecoder) Decode(segment string) ([]byte, error) {
	if err := checkAlphabet(d.Name(), segment); err != nil {
		return nil, err
	}
	src := bytes.NewBufferString(normalize(segment))
	var dst bytes.Buffer
	if _, err := io.Copy(&dst, base64.NewDecoder(base64.StdEncoding, src)); err != nil {
		return nil, wrapStdError(d.Name(), err)
	}
	return dst.Bytes(), nil
}
