package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reoring/jsonkit/i18n"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestRun_Usage(t *testing.T) {
	if code, _, _ := runCLI(t, ""); code != exitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if code, _, _ := runCLI(t, "", "nope"); code != exitUsage {
		t.Fatalf("expected usage exit for unknown command, got %d", code)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"a":[1,2]}`)
	bad := writeFile(t, dir, "bad.json", `[1,]`)

	if code, _, _ := runCLI(t, "", "validate", good); code != exitOK {
		t.Fatalf("expected ok, got %d", code)
	}
	code, _, stderr := runCLI(t, "", "validate", good, bad)
	if code != exitInvalid || !strings.Contains(stderr, "bad.json") || !strings.Contains(stderr, "(1:4)") {
		t.Fatalf("expected failure naming bad.json at 1:4, got %d %q", code, stderr)
	}
	if code, _, _ := runCLI(t, `{"a":1,"a":2}`, "validate", "-duplicates", "error"); code != exitInvalid {
		t.Fatalf("duplicate keys must be rejected under -duplicates error, got %d", code)
	}
	if code, _, _ := runCLI(t, `[[[]]]`, "validate", "-max-depth", "2"); code != exitInvalid {
		t.Fatalf("depth limit must be enforced, got %d", code)
	}
	if code, _, _ := runCLI(t, "", "validate", filepath.Join(dir, "missing.json")); code != exitInvalid {
		t.Fatalf("missing file must fail, got %d", code)
	}
}

func TestFormatAndMinimize(t *testing.T) {
	code, out, _ := runCLI(t, `{"b":[1, 2],"a":"x"}`, "format", "-indent", "2")
	want := "{\n  \"a\": \"x\",\n  \"b\": [\n    1,\n    2\n  ]\n}\n"
	if code != exitOK || out != want {
		t.Fatalf("unexpected format output %d %q", code, out)
	}
	code, out, _ = runCLI(t, "{ \"k\" : [ true , null ] }", "minimize")
	if code != exitOK || out != "{\"k\":[true,null]}\n" {
		t.Fatalf("unexpected minimize output %d %q", code, out)
	}
	code, out, _ = runCLI(t, `["Цена €"]`, "minimize", "-ascii")
	if code != exitOK || out != "[\"???? ?\"]\n" {
		t.Fatalf("unexpected ascii output %q", out)
	}
	if code, _, _ := runCLI(t, `{}`, "format", "-indent-char", "ab"); code != exitUsage {
		t.Fatalf("multi-byte indent char must be rejected, got %d", code)
	}
}

func TestSchemaCommand(t *testing.T) {
	dir := t.TempDir()
	sj := writeFile(t, dir, "s.json", `{"type":"string","minLength":2,"format":"email"}`)
	sy := writeFile(t, dir, "s.yaml", "type: string\nmaxLength: 1\n")

	code, _, stderr := runCLI(t, `"ab"`, "schema", "-schema", sj)
	if code != exitOK || !strings.Contains(stderr, "keywords=format") {
		t.Fatalf("expected pass with ignored-keyword warning, got %d %q", code, stderr)
	}
	if code, _, _ := runCLI(t, `"a"`, "schema", "-schema", sj); code != exitInvalid {
		t.Fatalf("short string must be rejected, got %d", code)
	}
	if code, _, _ := runCLI(t, `"ab"`, "schema", "-schema", sy); code != exitInvalid {
		t.Fatalf("yaml schema must be applied, got %d", code)
	}
	if code, _, _ := runCLI(t, `1`, "schema"); code != exitUsage {
		t.Fatalf("missing -schema must be a usage error, got %d", code)
	}
	unsupported := writeFile(t, dir, "n.json", `{"type":"object"}`)
	if code, _, _ := runCLI(t, `{}`, "schema", "-schema", unsupported); code != exitInvalid {
		t.Fatalf("unsupported schema must fail to compile, got %d", code)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cfg.yaml", "indent_size: 1\nindent_char: tab\nduplicate_keys: last\n")

	code, out, _ := runCLI(t, `{"a":1,"a":2}`, "format", "-config", cfg)
	if code != exitOK || out != "{\n\t\"a\": 2\n}\n" {
		t.Fatalf("config not applied: %d %q", code, out)
	}
	code, out, _ = runCLI(t, `{"a":1}`, "format", "-config", cfg, "-indent", "0")
	if code != exitOK || out != "{\"a\":1}\n" {
		t.Fatalf("flags must override config: %d %q", code, out)
	}
	if code, _, _ := runCLI(t, `{}`, "format", "-config", filepath.Join(dir, "none.yaml")); code != exitUsage {
		t.Fatalf("explicit missing config must fail, got %d", code)
	}
}

func TestDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, defaultConfigFile, "language: ja\nmax_depth: 1\n")
	t.Chdir(dir)
	t.Cleanup(func() { i18n.SetLanguage("en") })

	code, _, stderr := runCLI(t, `[[1]]`, "validate")
	if code != exitInvalid || !strings.Contains(stderr, "範囲外です") {
		t.Fatalf("default config must apply language and depth, got %d %q", code, stderr)
	}
}

func TestValidate_UnreadableInputsAreReported(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[1]`)
	code, _, stderr := runCLI(t, "", "validate", dir, good, good)
	if code != exitInvalid || !strings.Contains(stderr, "invalid") {
		t.Fatalf("a directory must fail validation, got %d %q", code, stderr)
	}
	if strings.Count(stderr, "good.json") != 0 {
		t.Fatalf("readable files must pass: %q", stderr)
	}
}
