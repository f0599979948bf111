package lexer

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var out []Token
	for i := 0; i < 100; i++ {
		tok := l.Next()
		if tok.Kind == KindEnd {
			return out
		}
		out = append(out, tok)
	}
	t.Fatalf("lexer did not terminate on %q", src)
	return nil
}

func TestLexer_Structural(t *testing.T) {
	toks := collect(t, `{ } [ ] : ,`)
	want := []Kind{KindBeginObject, KindEndObject, KindBeginArray, KindEndArray, KindColon, KindComma}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}

func TestLexer_LiteralsAreDelimitedLazily(t *testing.T) {
	toks := collect(t, `{"a":-12.5e+3,"b":[true,null]}`)
	texts := []string{`{`, `"a"`, `:`, `-12.5e+3`, `,`, `"b"`, `:`, `[`, `true`, `,`, `null`, `]`, `}`}
	if len(toks) != len(texts) {
		t.Fatalf("expected %d tokens, got %+v", len(texts), toks)
	}
	for i, s := range texts {
		if toks[i].Text != s {
			t.Fatalf("token %d: expected %q, got %q", i, s, toks[i].Text)
		}
	}
	if toks[3].Kind != KindNumber || toks[8].Kind != KindLexeme || toks[1].Kind != KindString {
		t.Fatalf("unexpected classification: %+v", toks)
	}
}

func TestLexer_AdjacentTokens(t *testing.T) {
	toks := collect(t, `123{}`)
	if len(toks) != 3 || toks[0].Text != "123" || toks[1].Kind != KindBeginObject {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	toks = collect(t, `"a"b`)
	if len(toks) != 2 || toks[0].Text != `"a"` || toks[1].Text != "b" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestLexer_Escapes(t *testing.T) {
	toks := collect(t, `"\" \\ \/ \b \f \n \r \t é \uDead"`)
	if len(toks) != 1 || toks[0].Kind != KindString {
		t.Fatalf("expected one string token, got %+v", toks)
	}

	for _, bad := range []string{`"\ubad"`, `"\x"`, `"\u12G4"`} {
		l := New(bad)
		if tok := l.Next(); tok.Kind != KindEnd {
			t.Fatalf("%s: expected forced end, got %+v", bad, tok)
		}
		if l.Err() == nil || l.Err().Kind != ErrUnexpectedCharacter {
			t.Fatalf("%s: expected unexpected character error", bad)
		}
		if tok := l.Next(); tok.Kind != KindEnd {
			t.Fatalf("%s: stream must stay ended", bad)
		}
	}
}

func TestLexer_PendingTokenAtEnd(t *testing.T) {
	l := New(`  "unterminated`)
	tok := l.Next()
	if tok.Kind != KindString || tok.Text != `"unterminated` {
		t.Fatalf("expected pending string token, got %+v", tok)
	}
	if l.Err() != nil {
		t.Fatalf("pending token is not an error by itself")
	}
	if tok := l.Next(); tok.Kind != KindEnd {
		t.Fatalf("expected clean end, got %+v", tok)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	l := New("[1,\n  @]")
	for l.Next().Kind != KindEnd {
	}
	err := l.Err()
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Line != 2 || err.Column != 3 {
		t.Fatalf("expected position 2:3, got %d:%d", err.Line, err.Column)
	}
}

func TestLexer_Positions(t *testing.T) {
	l := New("{\n  \"key\": 1\n}")
	want := [][2]int{{1, 1}, {2, 3}, {2, 8}, {2, 10}, {3, 1}}
	for i, w := range want {
		tok := l.Next()
		if tok.Line != w[0] || tok.Column != w[1] {
			t.Fatalf("token %d (%q): expected %d:%d, got %d:%d", i, tok.Text, w[0], w[1], tok.Line, tok.Column)
		}
		if ln, col := l.Pos(); ln != w[0] || col != w[1] {
			t.Fatalf("Pos mismatch for token %d", i)
		}
	}
	if tok := l.Next(); tok.Kind != KindEnd {
		t.Fatalf("expected end, got %+v", tok)
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	for _, src := range []string{"", " ", "\t\r\n"} {
		l := New(src)
		if tok := l.Next(); tok.Kind != KindEnd || l.Err() != nil {
			t.Fatalf("%q: expected clean end", src)
		}
	}
}

func TestLexer_OnlyJSONWhitespace(t *testing.T) {
	if toks := collect(t, " \t\r\n1"); len(toks) != 1 || toks[0].Text != "1" {
		t.Fatalf("expected a single number token, got %+v", toks)
	}
	for _, src := range []string{"\v1", "\f1", "\u00a01"} {
		l := New(src)
		for l.Next().Kind != KindEnd {
		}
		if l.Err() == nil {
			t.Fatalf("%q: expected unexpected character", src)
		}
	}
}
