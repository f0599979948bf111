package jsonkit

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/reoring/jsonkit/internal/lexer"
)

type parseState int

const (
	stateValue parseState = iota
	stateKey
	stateKeyValueSeparator
	stateValueSeparator
	stateEnd
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// frame is one open container. Children are attached when they complete, so
// no frame holds a pointer into another frame's storage.
type frame struct {
	kind  containerKind
	arr   []Value
	obj   Object
	seen  map[string]struct{} // keys seen while validating without building
	key   string
	skip  bool // pending member loses to an earlier duplicate
	empty bool // nothing attached yet, a closer is allowed
}

type parser struct {
	lx    *lexer.Lexer
	opt   ParseOpt
	build bool
	state parseState
	stack []frame
	root  Value
	tok   lexer.Token
}

func newParser(text string, opt ParseOpt, build bool) *parser {
	return &parser{lx: lexer.New(text), opt: opt, build: build}
}

// run drives the state machine over the whole input. On failure the
// partially built document is discarded.
func (p *parser) run() (Value, error) {
	if err := p.loop(); err != nil {
		return Value{}, err
	}
	return p.root, nil
}

func (p *parser) loop() error {
	for {
		p.tok = p.lx.Next()
		if p.tok.Kind == lexer.KindEnd {
			if le := p.lx.Err(); le != nil {
				return errorAt(CodeUnexpectedCharacter, le.Line, le.Column)
			}
			if len(p.stack) > 0 {
				return p.fail(CodeUnexpectedEnding)
			}
			return nil
		}
		if err := p.step(); err != nil {
			return err
		}
	}
}

func (p *parser) step() error {
	switch p.state {
	case stateValue:
		return p.value()
	case stateKey:
		switch p.tok.Kind {
		case lexer.KindString:
			return p.key()
		case lexer.KindEndObject:
			if p.top().empty {
				return p.close()
			}
		}
	case stateKeyValueSeparator:
		if p.tok.Kind == lexer.KindColon {
			p.state = stateValue
			return nil
		}
	case stateValueSeparator:
		top := p.top()
		switch p.tok.Kind {
		case lexer.KindComma:
			if top.kind == kindArray {
				p.state = stateValue
			} else {
				p.state = stateKey
			}
			return nil
		case lexer.KindEndObject:
			if top.kind == kindObject {
				return p.close()
			}
		case lexer.KindEndArray:
			if top.kind == kindArray {
				return p.close()
			}
		}
	case stateEnd:
		return p.fail(CodeUnexpectedEnding)
	}
	return p.fail(CodeUnexpectedToken)
}

func (p *parser) value() error {
	switch p.tok.Kind {
	case lexer.KindString:
		s, err := p.stringToken()
		if err != nil {
			return err
		}
		return p.attach(NewString(s))
	case lexer.KindLexeme:
		switch p.tok.Text {
		case "true":
			return p.attach(NewBool(true))
		case "false":
			return p.attach(NewBool(false))
		case "null":
			return p.attach(Value{})
		}
	case lexer.KindNumber:
		if !isNumber(p.tok.Text) {
			break
		}
		v, ok := interpretNumber(p.tok.Text)
		if !ok {
			return p.fail(CodeBadValue)
		}
		return p.attach(v)
	case lexer.KindBeginObject:
		return p.open(kindObject)
	case lexer.KindBeginArray:
		return p.open(kindArray)
	case lexer.KindEndArray:
		if n := len(p.stack); n > 0 && p.stack[n-1].kind == kindArray && p.stack[n-1].empty {
			return p.close()
		}
	}
	return p.fail(CodeUnexpectedToken)
}

func (p *parser) key() error {
	k, err := p.stringToken()
	if err != nil {
		return err
	}
	if k == "" {
		return p.failDetail(CodeBadKey, "empty key")
	}
	top := p.top()
	top.key, top.skip = k, false
	if p.present(top, k) {
		switch p.opt.OnDuplicateKey {
		case DuplicateError:
			return p.failDetail(CodeBadKey, "duplicate key "+strconv.Quote(k))
		case DuplicateKeepFirst:
			top.skip = true
		}
	}
	p.state = stateKeyValueSeparator
	return nil
}

func (p *parser) present(f *frame, k string) bool {
	if p.build {
		return f.obj.Has(k)
	}
	if p.opt.OnDuplicateKey != DuplicateError {
		return false
	}
	if f.seen == nil {
		f.seen = make(map[string]struct{})
	}
	_, ok := f.seen[k]
	f.seen[k] = struct{}{}
	return ok
}

func (p *parser) open(kind containerKind) error {
	if p.opt.MaxDepth > 0 && len(p.stack) >= p.opt.MaxDepth {
		return p.failDetail(CodeOutOfRange, "max depth exceeded")
	}
	p.stack = append(p.stack, frame{kind: kind, empty: true})
	if kind == kindObject {
		p.state = stateKey
	} else {
		p.state = stateValue
	}
	return nil
}

func (p *parser) close() error {
	n := len(p.stack) - 1
	f := p.stack[n]
	p.stack = p.stack[:n]
	var v Value
	if p.build {
		if f.kind == kindObject {
			v = NewObjectFrom(f.obj)
		} else {
			v = NewArrayFrom(f.arr)
		}
	}
	return p.attach(v)
}

// attach places a completed value into the innermost open container, or
// makes it the document when none is open.
func (p *parser) attach(v Value) error {
	if len(p.stack) == 0 {
		p.root = v
		p.state = stateEnd
		return nil
	}
	top := p.top()
	top.empty = false
	p.state = stateValueSeparator
	if !p.build {
		return nil
	}
	if top.kind == kindArray {
		top.arr = append(top.arr, v)
	} else if !top.skip {
		top.obj.Set(top.key, v)
	}
	return nil
}

func (p *parser) top() *frame { return &p.stack[len(p.stack)-1] }

func (p *parser) stringToken() (string, error) {
	t := p.tok.Text
	if len(t) < 2 || t[len(t)-1] != '"' || t[len(t)-2] == '\\' && !closedAfterEscape(t) {
		return "", p.fail(CodeUnexpectedEnding)
	}
	inner := t[1 : len(t)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] < 0x20 {
			return "", p.failDetail(CodeUnexpectedCharacter, "control character in string")
		}
	}
	return unescape(inner), nil
}

// closedAfterEscape reports whether a string token ending in `\"` is really
// terminated, i.e. the backslash before the final quote is itself escaped.
func closedAfterEscape(t string) bool {
	n := 0
	for i := len(t) - 2; i > 0 && t[i] == '\\'; i-- {
		n++
	}
	return n%2 == 0
}

func (p *parser) fail(code Code) error {
	return errorAt(code, p.tok.Line, p.tok.Column)
}

func (p *parser) failDetail(code Code, detail string) error {
	e := NewError(code, map[string]string{"detail": detail})
	e.Line, e.Column = p.tok.Line, p.tok.Column
	return e
}

// isNumber checks the RFC 8259 number grammar:
// -? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
func isNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := func() int {
		st := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - st
	}
	if i < len(s) && s[i] == '0' {
		i++
	} else if digits() == 0 {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}

// interpretNumber picks the narrowest type able to hold the literal. Floats
// try Float32 then Float64; integers try the 32-bit then the 64-bit width of
// their signedness.
func interpretNumber(s string) (Value, bool) {
	str := NewString(s)
	var order [2]Type
	switch {
	case strings.ContainsAny(s, ".eE"):
		order = [2]Type{TypeFloat32, TypeFloat64}
	case strings.HasPrefix(s, "-"):
		order = [2]Type{TypeInt32, TypeInt64}
	default:
		order = [2]Type{TypeUint32, TypeUint64}
	}
	for _, t := range order {
		if v, ok := str.convert(t); ok {
			return v, true
		}
	}
	return Value{}, false
}

// unescape decodes the body of a lexed string. Escapes were validated by
// the lexer. A \u escape naming a lone surrogate is kept as its escaped text.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b = append(b, c)
			continue
		}
		i++
		switch s[i] {
		case 'b':
			b = append(b, '\b')
		case 'f':
			b = append(b, '\f')
		case 'n':
			b = append(b, '\n')
		case 'r':
			b = append(b, '\r')
		case 't':
			b = append(b, '\t')
		case 'u':
			r, ok := hex4(s, i+1)
			if !ok {
				b = append(b, '\\', 'u')
				continue
			}
			switch {
			case utf16.IsSurrogate(r):
				if r2, ok := lowSurrogate(s, i+5); ok && r < 0xDC00 {
					b = utf8.AppendRune(b, utf16.DecodeRune(r, r2))
					i += 10
					continue
				}
				b = append(b, s[i-1:i+5]...)
			default:
				b = utf8.AppendRune(b, r)
			}
			i += 4
		default:
			b = append(b, s[i])
		}
	}
	return string(b)
}

func lowSurrogate(s string, i int) (rune, bool) {
	if i+1 >= len(s) || s[i] != '\\' || s[i+1] != 'u' {
		return 0, false
	}
	r, ok := hex4(s, i+2)
	return r, ok && r >= 0xDC00 && r <= 0xDFFF
}

func hex4(s string, i int) (rune, bool) {
	if i+4 > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[i:i+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
