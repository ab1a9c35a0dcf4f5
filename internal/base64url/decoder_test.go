package base64url

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decoders = []Decoder{StdDecoder{}, StreamDecoder{}, TableDecoder{}}

func TestDecoders_Decode(t *testing.T) {
	testCases := []struct {
		name    string
		segment string
		want    []byte
	}{
		{name: "empty", segment: "", want: []byte{}},
		{name: "no padding needed", segment: "YWJj", want: []byte("abc")},
		{name: "one padding char", segment: "YWI", want: []byte("ab")},
		{name: "two padding chars", segment: "YQ", want: []byte("a")},
		{name: "already padded", segment: "YQ==", want: []byte("a")},
		{name: "url alphabet", segment: "-_-_", want: []byte{0xfb, 0xff, 0xbf}},
		{name: "standard alphabet passes through", segment: "+/+/", want: []byte{0xfb, 0xff, 0xbf}},
		{name: "json header", segment: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", want: []byte(`{"alg":"HS256","typ":"JWT"}`)},
		{name: "utf-8 text", segment: base64.RawURLEncoding.EncodeToString([]byte("José")), want: []byte("José")},
	}

	for _, d := range decoders {
		for _, testCase := range testCases {
			t.Run(d.Name()+"/"+testCase.name, func(t *testing.T) {
				got, err := d.Decode(testCase.segment)
				require.NoError(t, err)
				assert.Equal(t, testCase.want, append([]byte{}, got...))
			})
		}
	}
}

func TestDecoders_RejectInvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		segment string
	}{
		{name: "illegal character", segment: "ab!d"},
		{name: "illegal character in tail", segment: "YWJjZ*"},
		{name: "dangling single character", segment: "YWJjZ"},
		{name: "padding in the middle", segment: "YQ==YQ=="},
		{name: "non ascii", segment: "YWJé"},
		{name: "line breaks", segment: "e30\r\n\r\n"},
		{name: "single line break", segment: "e30\n"},
		{name: "space", segment: "e3 0"},
	}

	for _, d := range decoders {
		for _, testCase := range testCases {
			t.Run(d.Name()+"/"+testCase.name, func(t *testing.T) {
				got, err := d.Decode(testCase.segment)
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, ErrInvalidBase64))

				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, d.Name(), decodeErr.Decoder)
			})
		}
	}
}

func TestDecoders_AgreeOnRandomishInput(t *testing.T) {
	for n := 0; n < 64; n++ {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i*37 + n)
		}
		segment := base64.RawURLEncoding.EncodeToString(src)

		for _, d := range decoders {
			got, err := d.Decode(segment)
			require.NoError(t, err, "decoder %s, length %d", d.Name(), n)
			assert.Equal(t, src, append([]byte{}, got...), "decoder %s, length %d", d.Name(), n)
		}
	}
}

func TestDecodeError_Error(t *testing.T) {
	err := &DecodeError{Decoder: "table", Offset: 3, Err: errors.New("boom")}
	assert.Equal(t, "invalid base64url data at input byte 3: boom", err.Error())

	err = &DecodeError{Decoder: "std", Offset: -1}
	assert.Equal(t, "invalid base64url data", err.Error())
}
