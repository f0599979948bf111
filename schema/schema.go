// Package schema compiles a subset of JSON Schema into a validator.
//
// Supported: boolean schemas, the empty schema, "$id"/"$schema" metadata,
// and the types "null", "boolean" and "string" (minLength, maxLength,
// pattern, enum). Schemas of type "number", "integer", "array" or "object"
// have their keywords checked and then fail to compile with
// CodeUnexpectedType, so an unsupported schema is never silently accepted.
//
// A compiled Definition is immutable and safe for concurrent use.
package schema

import (
	"slices"

	jsonkit "github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/variant"
	"github.com/reoring/jsonkit/yamlconv"
)

// Definition is a compiled schema document.
type Definition struct {
	root    node
	id      string
	uri     string
	ignored []string
}

// Compile parses schema text and compiles it.
func Compile(text string) (*Definition, error) {
	v, err := jsonkit.Parse(text)
	if err != nil {
		return nil, err
	}
	return CompileValue(v)
}

// CompileYAML compiles a schema written in YAML.
func CompileYAML(data []byte) (*Definition, error) {
	v, err := yamlconv.Decode(data)
	if err != nil {
		return nil, err
	}
	return CompileValue(v)
}

// CompileValue compiles an already parsed schema document. The first
// ill-typed or unrecognised keyword stops compilation.
func CompileValue(v jsonkit.Value) (*Definition, error) {
	d := &Definition{}
	switch v.Type() {
	case jsonkit.TypeBool:
		d.root = variant.Make(nodeKinds, acceptIf(v.AsBool()))
		return d, nil
	case jsonkit.TypeObject:
	default:
		return nil, unexpectedType("", v)
	}
	o := v.AsObject()
	for _, meta := range []struct {
		key string
		dst *string
	}{{"$id", &d.id}, {"$schema", &d.uri}} {
		m, ok := o.Get(meta.key)
		if !ok {
			continue
		}
		if !m.Is(jsonkit.TypeString) {
			return nil, unexpectedType("/"+meta.key, m)
		}
		*meta.dst = m.AsString()
	}
	t, ok := o.Get("type")
	if !ok {
		for _, k := range o.Keys() {
			if !isAnnotation(k) {
				return nil, fail(jsonkit.CodeUnexpectedToken, "/"+k, "unsupported keyword "+k)
			}
		}
		d.root = variant.Make(nodeKinds, acceptIf(true))
		return d, nil
	}
	if !t.Is(jsonkit.TypeString) {
		return nil, unexpectedType("/type", t)
	}
	switch name := t.AsString(); name {
	case "null":
		d.root = variant.Make(nodeKinds, nullNode{})
	case "boolean":
		d.root = variant.Make(nodeKinds, boolNode{})
	case "string":
		sn, ignored, err := compileString(o)
		if err != nil {
			return nil, err
		}
		d.root = variant.Make(nodeKinds, sn)
		d.ignored = ignored
	case "number", "integer":
		if err := checkNumber(o); err != nil {
			return nil, err
		}
		d.root = variant.Make(nodeKinds, unsupportedNode{typ: name})
	case "array", "object":
		d.root = variant.Make(nodeKinds, unsupportedNode{typ: name})
	default:
		return nil, fail(jsonkit.CodeBadValue, "/type", "unknown type "+name)
	}
	if variant.Is[unsupportedNode](d.root) {
		return nil, validateNode(d.root, jsonkit.Value{})
	}
	return d, nil
}

// Validate checks v against the schema and returns the first failing
// constraint. A nil or empty Definition fails with CodeNoSchema.
func (d *Definition) Validate(v jsonkit.Value) error {
	if d == nil || d.root.Kind() == variant.Empty {
		return fail(jsonkit.CodeNoSchema, "", "")
	}
	return validateNode(d.root, v)
}

// ValidateText parses text and validates the document.
func (d *Definition) ValidateText(text string) error {
	if d == nil || d.root.Kind() == variant.Empty {
		return fail(jsonkit.CodeNoSchema, "", "")
	}
	v, err := jsonkit.Parse(text)
	if err != nil {
		return err
	}
	return d.Validate(v)
}

// Accepts reports whether v satisfies the schema.
func (d *Definition) Accepts(v jsonkit.Value) bool { return d.Validate(v) == nil }

// ID returns the "$id" of the schema, if any.
func (d *Definition) ID() string { return d.id }

// SchemaURI returns the "$schema" dialect URI, if any.
func (d *Definition) SchemaURI() string { return d.uri }

// IgnoredKeywords lists keywords that were accepted but have no effect.
func (d *Definition) IgnoredKeywords() []string { return slices.Clone(d.ignored) }
