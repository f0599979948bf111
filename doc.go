// Package jsonkit provides:
//
// - Value, a dynamic JSON document with strict type identity (bool, four
// integer widths, two float widths, string, array, object) and
// range-checked conversions between them
// - A JSON parser built on an explicit-stack state machine (Parse/Validate,
// ParseReader/ValidateReader for io.Reader input)
// - Text production with optional indentation (Build/Format/Minimize)
// - A single error model (*Error with Code, message, line and column)
//
// Design policy:
// - Keep only public APIs in the root package; put the lexer under internal/.
// - Schema validation lives in schema/, YAML input in yamlconv/, the UTF-8
// codec in utf8codec/ and the CLI under cmd/jsonkit.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := jsonkit.Parse(`{"b":false,"a":1}`)
//	s, err := jsonkit.Build(v)                         // {"a":1,"b":false}
//	p, err := jsonkit.Format(text, jsonkit.Pretty(2))
//	n := v.Field("a").AsInt64()
package jsonkit
