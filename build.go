package jsonkit

import (
	"math"
	"strconv"
	"strings"
)

const hexDigits = "0123456789abcdef"

type builder struct {
	b   strings.Builder
	opt FormatOptions
}

// Build renders v as JSON text. Without options the output is compact; with
// options each array element and object member goes on its own line,
// indented IndentSize IndentChar per level. Object members are emitted in
// key order. NaN and infinite floats cannot be represented and fail with
// CodeBadValue.
func Build(v Value, opts ...FormatOptions) (string, error) {
	bd := &builder{}
	if len(opts) > 0 {
		bd.opt = opts[0]
	}
	if bd.opt.IndentChar == 0 {
		bd.opt.IndentChar = ' '
	}
	if err := bd.value(v, 0, ""); err != nil {
		return "", err
	}
	return bd.b.String(), nil
}

func (bd *builder) pretty() bool { return bd.opt.IndentSize > 0 }

func (bd *builder) newline(level int) {
	if !bd.pretty() {
		return
	}
	bd.b.WriteByte('\n')
	for i := level * bd.opt.IndentSize; i > 0; i-- {
		bd.b.WriteByte(bd.opt.IndentChar)
	}
}

func (bd *builder) value(v Value, level int, path string) error {
	switch v.Type() {
	case TypeNone:
		bd.b.WriteString("null")
	case TypeString:
		s, _ := Get[string](v)
		writeQuoted(&bd.b, s)
	case TypeFloat32, TypeFloat64:
		f := v.AsFloat64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			e := NewError(CodeBadValue, map[string]string{"detail": "non-finite number"})
			e.Path = path
			return e
		}
		bits := 64
		if v.Is(TypeFloat32) {
			bits = 32
		}
		s := strconv.FormatFloat(f, 'g', -1, bits)
		bd.b.WriteString(s)
		if !strings.ContainsAny(s, ".eE") {
			bd.b.WriteString(".0")
		}
	case TypeArray:
		a, _ := Get[[]Value](v)
		if len(a) == 0 {
			bd.b.WriteString("[]")
			return nil
		}
		bd.b.WriteByte('[')
		for i, e := range a {
			if i > 0 {
				bd.b.WriteByte(',')
			}
			bd.newline(level + 1)
			if err := bd.value(e, level+1, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		bd.newline(level)
		bd.b.WriteByte(']')
	case TypeObject:
		o, _ := Get[Object](v)
		if o.Len() == 0 {
			bd.b.WriteString("{}")
			return nil
		}
		bd.b.WriteByte('{')
		i := 0
		for k, e := range o.All() {
			if i > 0 {
				bd.b.WriteByte(',')
			}
			i++
			bd.newline(level + 1)
			writeQuoted(&bd.b, k)
			bd.b.WriteByte(':')
			if bd.pretty() {
				bd.b.WriteByte(' ')
			}
			if err := bd.value(e, level+1, path+"/"+escapePointer(k)); err != nil {
				return err
			}
		}
		bd.newline(level)
		bd.b.WriteByte('}')
	default:
		bd.b.WriteString(v.AsString())
	}
	return nil
}

// writeQuoted writes s as a JSON string literal.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b.WriteString(s[start:i])
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xF])
		}
		start = i + 1
	}
	b.WriteString(s[start:])
	b.WriteByte('"')
}

// escapePointer escapes a key for use as a JSON Pointer reference token.
func escapePointer(k string) string {
	if !strings.ContainsAny(k, "~/") {
		return k
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(k)
}

// Format parses text and rebuilds it with opt.
func Format(text string, opt FormatOptions) (string, error) {
	v, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Build(v, opt)
}

// Minimize parses text and rebuilds it compactly.
func Minimize(text string) (string, error) {
	return Format(text, Compact)
}
