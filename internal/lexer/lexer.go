// Package lexer splits JSON text into tokens one at a time.
//
// The lexer only classifies tokens (structural character, string, number,
// bare word); interpreting them is left to the parser. It tracks the 1-based
// line and column where the last emitted token started.
package lexer

// Kind represents token kinds produced by the lexer.
type Kind int

const (
	KindEnd Kind = iota // no more input
	KindBeginObject
	KindEndObject
	KindBeginArray
	KindEndArray
	KindColon
	KindComma
	KindString // text still quoted and escaped; may be unterminated at end of input
	KindNumber
	KindLexeme // bare word such as true, false, null
)

var kindNames = [...]string{
	KindEnd:         "end",
	KindBeginObject: "{",
	KindEndObject:   "}",
	KindBeginArray:  "[",
	KindEndArray:    "]",
	KindColon:       ":",
	KindComma:       ",",
	KindString:      "string",
	KindNumber:      "number",
	KindLexeme:      "lexeme",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is a raw lexical unit with the position of its first character.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// ErrorKind classifies lexer failures.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrUnexpectedCharacter
)

// Error describes where the lexer stopped.
type Error struct {
	Kind   ErrorKind
	Line   int
	Column int
}

type state int

const (
	stateIdle state = iota
	stateString
	stateEsc
	stateEscHex
	stateNumber
	stateLexeme
)

// Lexer is a single-pass tokenizer over one complete input buffer.
type Lexer struct {
	src    string
	pos    int
	line   int
	col    int
	tokLn  int
	tokCol int
	err    *Error
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, tokLn: 1, tokCol: 1}
}

// Pos returns the 1-based line and column where the last emitted token started.
func (l *Lexer) Pos() (line, col int) { return l.tokLn, l.tokCol }

// Offset returns the number of bytes consumed so far.
func (l *Lexer) Offset() int { return l.pos }

// Err returns the error that stopped the lexer, or nil.
func (l *Lexer) Err() *Error { return l.err }

// Next returns the next token. At the end of input it returns a KindEnd
// token; after an error it returns KindEnd and Err reports the failure.
func (l *Lexer) Next() Token {
	st := stateIdle
	start := l.pos
	hex := 0
	kind := KindEnd
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch st {
		case stateIdle:
			if isSpace(c) {
				l.advance()
				start = l.pos
				continue
			}
			l.tokLn, l.tokCol = l.line, l.col
			if k, ok := structural(c); ok {
				l.advance()
				return Token{Kind: k, Text: l.src[start:l.pos], Line: l.tokLn, Column: l.tokCol}
			}
			switch {
			case c == '"':
				st, kind = stateString, KindString
			case c == '-' || isDigit(c):
				st, kind = stateNumber, KindNumber
			case isAlpha(c):
				st, kind = stateLexeme, KindLexeme
			default:
				return l.fail()
			}
		case stateString:
			if c == '"' {
				l.advance()
				return Token{Kind: KindString, Text: l.src[start:l.pos], Line: l.tokLn, Column: l.tokCol}
			}
			if c == '\\' {
				st = stateEsc
			}
		case stateEsc:
			switch c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				st = stateString
			case 'u':
				st, hex = stateEscHex, 0
			default:
				return l.fail()
			}
		case stateEscHex:
			if !isHex(c) {
				return l.fail()
			}
			hex++
			if hex == 4 {
				st = stateString
			}
		case stateNumber:
			if !isDigit(c) && c != '+' && c != '-' && c != 'e' && c != 'E' && c != '.' {
				return Token{Kind: KindNumber, Text: l.src[start:l.pos], Line: l.tokLn, Column: l.tokCol}
			}
		case stateLexeme:
			if !isAlpha(c) {
				return Token{Kind: KindLexeme, Text: l.src[start:l.pos], Line: l.tokLn, Column: l.tokCol}
			}
		}
		l.advance()
	}
	if st == stateIdle {
		l.tokLn, l.tokCol = l.line, l.col
		return Token{Kind: KindEnd, Line: l.line, Column: l.col}
	}
	// pending token at end of input is returned as-is
	return Token{Kind: kind, Text: l.src[start:l.pos], Line: l.tokLn, Column: l.tokCol}
}

// fail records an unexpected character at the current position and forces
// the stream to end.
func (l *Lexer) fail() Token {
	l.err = &Error{Kind: ErrUnexpectedCharacter, Line: l.line, Column: l.col}
	l.pos = len(l.src)
	return Token{Kind: KindEnd, Line: l.line, Column: l.col}
}

func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func structural(c byte) (Kind, bool) {
	switch c {
	case '{':
		return KindBeginObject, true
	case '}':
		return KindEndObject, true
	case '[':
		return KindBeginArray, true
	case ']':
		return KindEndArray, true
	case ':':
		return KindColon, true
	case ',':
		return KindComma, true
	}
	return KindEnd, false
}

// isSpace accepts exactly the four JSON whitespace bytes.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
