package base64url

import (
	"errors"
	"unicode/utf8"
)

// ErrNoDecoder is returned by Resolve when no candidate is available.
var ErrNoDecoder = errors.New("no base64url decoder available")

// Candidate is one entry of a priority ordered decoder list. A nil Available
// means the candidate is always usable.
type Candidate struct {
	Decoder   Decoder
	Available func() bool
}

// Candidates returns the built-in strategies, highest priority first.
func Candidates() []Candidate {
	return []Candidate{
		{Decoder: StdDecoder{}},
		{Decoder: StreamDecoder{}},
		{Decoder: TableDecoder{}},
	}
}

// Resolve returns the first available candidate's decoder.
func Resolve(candidates ...Candidate) (Decoder, error) {
	for _, c := range candidates {
		if c.Decoder == nil {
			continue
		}
		if c.Available == nil || c.Available() {
			return c.Decoder, nil
		}
	}
	return nil, ErrNoDecoder
}

var defaultDecoder = func() Decoder {
	d, err := Resolve(Candidates()...)
	if err != nil {
		panic(err)
	}
	return d
}()

// Default returns the decoder resolved from Candidates at start up.
func Default() Decoder {
	return defaultDecoder
}

// Latin1 wraps d so that every decoded byte is re-encoded as the code point
// of the same value. Multi-byte UTF-8 sequences come out as mojibake; it
// reproduces legacy one-byte-per-character decoders and is only faithful for
// ASCII content.
func Latin1(d Decoder) Decoder {
	return latin1Decoder{d}
}

type latin1Decoder struct {
	Decoder
}

func (d latin1Decoder) Name() string { return d.Decoder.Name() + "/latin1" }

func (d latin1Decoder) Decode(segment string) ([]byte, error) {
	b, err := d.Decoder.Decode(segment)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		out = utf8.AppendRune(out, rune(c))
	}
	return out, nil
}
