package jsonkit_test

import (
	"errors"
	"fmt"
	"testing"

	jsonkit "github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/i18n"
)

func TestError_Rendering(t *testing.T) {
	e := &jsonkit.Error{Code: jsonkit.CodeOutOfRange, Message: "out of range: minLength 2", Path: "/name"}
	if got := e.Error(); got != "out of range: minLength 2 [/name]" {
		t.Fatalf("unexpected rendering %q", got)
	}
	e = &jsonkit.Error{Code: jsonkit.CodeBadKey, Line: 3, Column: 9}
	if got := e.Error(); got != "bad_key (3:9)" {
		t.Fatalf("code is used when the message is empty, got %q", got)
	}
}

func TestError_CodeOf(t *testing.T) {
	if jsonkit.CodeOf(nil) != jsonkit.CodeNone {
		t.Fatalf("nil is success")
	}
	if jsonkit.CodeOf(errors.New("boom")) != jsonkit.CodeBadValue {
		t.Fatalf("foreign errors map to bad value")
	}
	wrapped := fmt.Errorf("context: %w", jsonkit.NewError(jsonkit.CodeNoMatch, nil))
	if jsonkit.CodeOf(wrapped) != jsonkit.CodeNoMatch {
		t.Fatalf("wrapped errors keep their code")
	}
	if _, ok := jsonkit.AsError(nil); ok {
		t.Fatalf("AsError(nil) must report false")
	}
}

func TestError_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	_, err := jsonkit.Parse("[1,]")
	if err == nil || err.Error() != "予期しないトークンです (1:4)" {
		t.Fatalf("expected japanese message, got %v", err)
	}
}
