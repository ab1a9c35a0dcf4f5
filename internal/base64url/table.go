package base64url

import (
	"errors"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const invalid = 0xff

var lookup = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	return t
}()

var errMisplacedPadding = errors.New("misplaced padding")

// TableDecoder is a hand-written decoder working on 4 character groups. It
// does not depend on any codec and is the last resort in the default chain.
type TableDecoder struct{}

func (TableDecoder) Name() string { return "table" }

func (d TableDecoder) Decode(segment string) ([]byte, error) {
	s := normalize(segment)

	pad := 0
	for pad < len(s) && pad < 3 && s[len(s)-1-pad] == '=' {
		pad++
	}
	if pad > 2 {
		return nil, &DecodeError{Decoder: d.Name(), Offset: len(s) - pad, Err: errMisplacedPadding}
	}

	out := make([]byte, 0, len(s)/4*3)
	for i := 0; i < len(s); i += 4 {
		var group [4]byte
		for j := 0; j < 4; j++ {
			c := s[i+j]
			if c == '=' && i+j >= len(s)-pad {
				continue
			}
			v := lookup[c]
			if v == invalid {
				return nil, &DecodeError{
					Decoder: d.Name(),
					Offset:  i + j,
					Err:     fmt.Errorf("character %q not in alphabet", c),
				}
			}
			group[j] = v
		}
		out = append(out,
			group[0]<<2|group[1]>>4,
			group[1]<<4|group[2]>>2,
			group[2]<<6|group[3],
		)
	}

	return out[:len(out)-pad], nil
}
