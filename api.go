package jsonkit

import "strconv"

// Parse builds a Value from JSON text. Empty or whitespace-only text is the
// None document. On error the returned Value is None and the error is an
// *Error carrying the line and column of the offending token.
func Parse(text string, opts ...ParseOpt) (Value, error) {
	opt := parseOpt(opts)
	if err := checkSize(text, opt); err != nil {
		return Value{}, err
	}
	return newParser(text, opt, true).run()
}

// Validate runs the same state machine as Parse without building a
// document and returns the first error found.
func Validate(text string, opts ...ParseOpt) error {
	opt := parseOpt(opts)
	if err := checkSize(text, opt); err != nil {
		return err
	}
	_, err := newParser(text, opt, false).run()
	return err
}

// Valid reports whether text is a JSON document under default options.
func Valid(text string) bool { return Validate(text) == nil }

// MustParse is like Parse but panics on error. Intended for literals in tests
// and examples.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parseOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[0]
}

func checkSize(text string, opt ParseOpt) error {
	if opt.MaxBytes > 0 && int64(len(text)) > opt.MaxBytes {
		return NewError(CodeOutOfRange, map[string]string{
			"detail": "input exceeds " + strconv.FormatInt(opt.MaxBytes, 10) + " bytes",
		})
	}
	return nil
}
