// Package utf8codec converts between code point sequences and UTF-8 bytes.
package utf8codec

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	jsonkit "github.com/reoring/jsonkit"
)

// Encode serializes code points as UTF-8. Values outside the Unicode range
// and surrogate halves fail with CodeUnexpectedCharacter; Column is the
// 1-based index of the offending code point.
func Encode(cps []rune) ([]byte, error) {
	out := make([]byte, 0, len(cps))
	for i, r := range cps {
		if !utf8.ValidRune(r) {
			return nil, failAt(jsonkit.CodeUnexpectedCharacter, i, "invalid code point U+"+strconv.FormatInt(int64(r), 16))
		}
		out = utf8.AppendRune(out, r)
	}
	return out, nil
}

// Decode deserializes UTF-8 bytes into code points. An invalid byte fails
// with CodeUnexpectedCharacter and a sequence cut short by the end of input
// with CodeUnexpectedEnding; Column is the 1-based byte offset.
func Decode(b []byte) ([]rune, error) {
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(b[i:]) {
				return nil, failAt(jsonkit.CodeUnexpectedEnding, i, "truncated sequence")
			}
			return nil, failAt(jsonkit.CodeUnexpectedCharacter, i, "invalid byte 0x"+strconv.FormatUint(uint64(b[i]), 16))
		}
		out = append(out, r)
		i += size
	}
	return out, nil
}

// ToASCII replaces every code point above 0x7F with placeholder (or '?'
// when placeholder is 0).
func ToASCII(cps []rune, placeholder byte) string {
	if placeholder == 0 {
		placeholder = '?'
	}
	t := runes.Map(func(r rune) rune {
		if r > 0x7F {
			return rune(placeholder)
		}
		return r
	})
	s, _, _ := transform.String(t, string(cps))
	return s
}

// ToASCIIString is ToASCII for a UTF-8 string.
func ToASCIIString(s string, placeholder byte) string {
	return ToASCII([]rune(s), placeholder)
}

func failAt(code jsonkit.Code, i int, detail string) *jsonkit.Error {
	e := jsonkit.NewError(code, map[string]string{"detail": detail})
	e.Line, e.Column = 1, i+1
	return e
}
