package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "type" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"unexpected_character": "unexpected character",
		"unexpected_ending":    "unexpected ending",
		"unexpected_token":     "unexpected token",
		"bad_key":              "bad key",
		"bad_value":            "bad value",
		"unexpected_type":      "unexpected type",
		"no_schema":            "no schema",
		"out_of_range":         "out of range",
		"no_match":             "no match",
	},
	"ja": {
		"unexpected_character": "予期しない文字です",
		"unexpected_ending":    "予期しない終端です",
		"unexpected_token":     "予期しないトークンです",
		"bad_key":              "キーが不正です",
		"bad_value":            "値が不正です",
		"unexpected_type":      "型が不正です",
		"no_schema":            "スキーマがありません",
		"out_of_range":         "範囲外です",
		"no_match":             "一致しません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		return code
	}
	if d := data["detail"]; d != "" {
		return msg + ": " + d
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// SetLanguage switches the built-in Translator language. Any BCP 47 tag is
// accepted ("ja", "ja-JP", "en-US"); unsupported languages fall back to English.
func SetLanguage(lang string) {
	tag, _ := language.MatchStrings(matcher, strings.TrimSpace(lang))
	base, _ := tag.Base()
	l := "en"
	if base.String() == "ja" {
		l = "ja"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: l}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
