package jsonkit

import (
	"io"
	"strings"
)

// ReadLimited reads r to the end. When opt.MaxBytes is set, reading stops
// one byte past the limit and the input is rejected with CodeOutOfRange
// without buffering the remainder.
func ReadLimited(r io.Reader, opt ParseOpt) (string, error) {
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return "", err
	}
	s := b.String()
	if err := checkSize(s, opt); err != nil {
		return "", err
	}
	return s, nil
}

// ParseReader is Parse over the contents of r.
func ParseReader(r io.Reader, opts ...ParseOpt) (Value, error) {
	opt := parseOpt(opts)
	text, err := ReadLimited(r, opt)
	if err != nil {
		return Value{}, err
	}
	return newParser(text, opt, true).run()
}

// ValidateReader is Validate over the contents of r.
func ValidateReader(r io.Reader, opts ...ParseOpt) error {
	opt := parseOpt(opts)
	text, err := ReadLimited(r, opt)
	if err != nil {
		return err
	}
	_, err = newParser(text, opt, false).run()
	return err
}
