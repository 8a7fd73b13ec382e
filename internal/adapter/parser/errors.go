package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformedSource is matched by every DecodeError.
var ErrMalformedSource = errors.New("malformed source text")

// DecodeError reports bytes that are not valid UTF-8 in a position the
// parser had to turn into text.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 at byte offset %d", ErrMalformedSource, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return ErrMalformedSource
}

// invalidAt returns the index of the first invalid UTF-8 sequence in b, or -1.
func invalidAt(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
