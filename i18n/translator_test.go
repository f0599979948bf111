package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unexpected_token", nil); msg != "unexpected token" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("ja-JP")
	if msg := T("unexpected_token", nil); msg == "unexpected token" || msg == "" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	SetLanguage("fr")
	if msg := T("unexpected_token", nil); msg != "unexpected token" {
		t.Fatalf("unsupported language should fall back to english, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_DetailAndUnknownCode(t *testing.T) {
	if msg := T("out_of_range", map[string]string{"detail": "minLength 2"}); msg != "out of range: minLength 2" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := T("not_a_code", nil); msg != "not_a_code" {
		t.Fatalf("unknown codes echo back, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("bad_key", nil); msg != "X:bad_key" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("bad_key", nil); msg != "bad key" {
		t.Fatalf("nil translator must restore default, got %q", msg)
	}
}
