package yamlconv_test

import (
	"strconv"
	"strings"
	"testing"

	jsonkit "github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/yamlconv"
)

func TestDecode_Mapping(t *testing.T) {
	src := []byte(`
name: kit
count: 3
neg: -4
big: 0x100000000
ratio: 0.5
whole: 2.0
on: true
none: ~
tags: [a, b]
nested:
  z: 1
  a: "quoted"
`)
	v, err := yamlconv.Decode(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"big":4294967296,"count":3,"name":"kit","neg":-4,"nested":{"a":"quoted","z":1},"none":null,"on":true,"ratio":0.5,"tags":["a","b"],"whole":2.0}`
	if got := v.String(); got != want {
		t.Fatalf("unexpected document\n got %s\nwant %s", got, want)
	}
	if !v.Field("count").Is(jsonkit.TypeUint32) || !v.Field("neg").Is(jsonkit.TypeInt32) || !v.Field("big").Is(jsonkit.TypeUint64) {
		t.Fatalf("integer widths must follow JSON rules")
	}
	if !v.Field("ratio").Is(jsonkit.TypeFloat32) || !v.Field("whole").Is(jsonkit.TypeFloat32) {
		t.Fatalf("float widths must follow JSON rules")
	}
}

func TestDecode_MatchesJSON(t *testing.T) {
	j := jsonkit.MustParse(`{"a":[1,{"b":null}],"c":"d"}`)
	y, err := yamlconv.Decode([]byte("a:\n  - 1\n  - b: null\nc: d\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.Equal(y) {
		t.Fatalf("expected %s, got %s", j, y)
	}
}

func TestDecode_Aliases(t *testing.T) {
	v, err := yamlconv.Decode([]byte("base: &b {x: 1}\ncopy: *b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Field("copy").Field("x").AsInt32() != 1 {
		t.Fatalf("alias not resolved: %s", v)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := yamlconv.Decode([]byte("a: [1, 2"))
	if jsonkit.CodeOf(err) != jsonkit.CodeUnexpectedToken {
		t.Fatalf("expected syntax error, got %v", err)
	}
	_, err = yamlconv.Decode([]byte("? [1, 2]\n: v\n"))
	e, ok := jsonkit.AsError(err)
	if !ok || e.Code != jsonkit.CodeBadKey || e.Line != 1 {
		t.Fatalf("expected bad key on line 1, got %v", err)
	}
	if _, err := yamlconv.Decode([]byte("x: .inf\n")); jsonkit.CodeOf(err) != jsonkit.CodeBadValue {
		t.Fatalf("expected bad value for infinity, got %v", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	v, err := yamlconv.Decode(nil)
	if err != nil || !v.IsNone() {
		t.Fatalf("empty input must be None, got %v %v", v, err)
	}
}

func TestDecodeAll(t *testing.T) {
	docs, err := yamlconv.DecodeAll([]byte("a: 1\n---\n- x\n---\nplain\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 || !docs[0].Is(jsonkit.TypeObject) || !docs[1].Is(jsonkit.TypeArray) || docs[2].AsString() != "plain" {
		t.Fatalf("unexpected documents %v", docs)
	}
}

func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		prev := "*l" + strconv.Itoa(i-1)
		b.WriteString("l" + strconv.Itoa(i) + ": &l" + strconv.Itoa(i) + " [")
		b.WriteString(strings.TrimSuffix(strings.Repeat(prev+", ", 10), ", "))
		b.WriteString("]\n")
	}
	return b.String()
}

func TestDecode_AliasExpansionLimit(t *testing.T) {
	src := []byte(aliasBomb(7))
	_, err := yamlconv.Decode(src)
	if jsonkit.CodeOf(err) != jsonkit.CodeOutOfRange {
		t.Fatalf("expected out of range for %d-byte alias bomb, got %v", len(src), err)
	}
	if _, err := yamlconv.DecodeAll(append([]byte("a: 1\n---\n"), src...)); jsonkit.CodeOf(err) != jsonkit.CodeOutOfRange {
		t.Fatalf("expected out of range from DecodeAll, got %v", err)
	}

	// modest reuse stays within budget
	v, err := yamlconv.Decode([]byte(aliasBomb(2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Field("l2").Size() != 10 || v.Field("l2").At(9).Size() != 10 {
		t.Fatalf("unexpected expansion %s", v.Field("l2"))
	}
}
