package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"

	"github.com/auth0/go-jwt-inspect/internal/base64url"
)

var errNotAnObject = errors.New("segment is not a JSON object")

// Segments holds the three encoded parts of a compact token, untouched.
type Segments struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

// SigningInput returns header.payload, the bytes a signature is computed over.
func (s Segments) SigningInput() string {
	return s.Header + "." + s.Payload
}

// DecodeResult is the outcome of DecodeToken. The signature is carried
// verbatim and never decoded.
type DecodeResult struct {
	Header    Claims   `json:"header" yaml:"header"`
	Payload   Claims   `json:"payload" yaml:"payload"`
	Signature string   `json:"signature" yaml:"signature"`
	Raw       Segments `json:"raw" yaml:"raw"`
}

// Algorithm returns the alg header parameter.
func (r *DecodeResult) Algorithm() string {
	alg, _ := r.Header.String("alg")
	return alg
}

// Type returns the typ header parameter.
func (r *DecodeResult) Type() string {
	typ, _ := r.Header.String("typ")
	return typ
}

// KnownAlgorithm reports whether the alg header names an algorithm from the
// JOSE signature algorithm registry. It is informational only.
func (r *DecodeResult) KnownAlgorithm() bool {
	var alg jwa.SignatureAlgorithm
	return alg.Accept(r.Algorithm()) == nil
}

// Split breaks a compact token into its three segments.
func Split(token string) (Segments, error) {
	if token == "" {
		return Segments{}, formatError("token must be a non-empty string")
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Segments{}, segmentCountError(len(parts))
	}

	return Segments{Header: parts[0], Payload: parts[1], Signature: parts[2]}, nil
}

// DecodeToken splits token and decodes its header and payload with dec.
// No signature verification takes place.
//
// Errors match ErrInvalidTokenFormat or ErrTokenDecode.
func DecodeToken(dec base64url.Decoder, token string) (*DecodeResult, error) {
	segments, err := Split(token)
	if err != nil {
		return nil, err
	}

	header, err := decodeSegment(dec, segments.Header)
	if err != nil {
		return nil, decodeError("header", err)
	}

	payload, err := decodeSegment(dec, segments.Payload)
	if err != nil {
		return nil, decodeError("payload", err)
	}

	return &DecodeResult{
		Header:    header,
		Payload:   payload,
		Signature: segments.Signature,
		Raw:       segments,
	}, nil
}

func decodeSegment(dec base64url.Decoder, segment string) (Claims, error) {
	raw, err := dec.Decode(segment)
	if err != nil {
		return nil, err
	}

	// A literal null unmarshals into a nil map without error.
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, errNotAnObject
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}
