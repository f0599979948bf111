package schema

import (
	"regexp"
	"slices"
	"strconv"
	"unicode/utf8"

	jsonkit "github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/variant"
)

// acceptIf accepts or rejects every value.
type acceptIf bool

type nullNode struct{}

type boolNode struct{}

type stringNode struct {
	minLength *uint64
	maxLength *uint64
	pattern   *regexp.Regexp
	enum      []string
}

// unsupportedNode stands for a schema type whose keywords are recognised
// but whose validation is not implemented.
type unsupportedNode struct{ typ string }

var nodeKinds = variant.New(
	variant.Alt[acceptIf](),
	variant.Alt[nullNode](),
	variant.Alt[boolNode](),
	variant.Alt[*stringNode](),
	variant.Alt[unsupportedNode](),
)

type node = variant.Union

func validateNode(n node, v jsonkit.Value) error {
	switch n.Kind() {
	case variant.KindFor[acceptIf](nodeKinds):
		if ok, _ := variant.Get[acceptIf](n); !ok {
			return fail(jsonkit.CodeBadValue, "", "schema rejects every value")
		}
		return nil
	case variant.KindFor[nullNode](nodeKinds):
		return expectType(v, jsonkit.TypeNone)
	case variant.KindFor[boolNode](nodeKinds):
		return expectType(v, jsonkit.TypeBool)
	case variant.KindFor[*stringNode](nodeKinds):
		sn, _ := variant.Get[*stringNode](n)
		return sn.validate(v)
	case variant.KindFor[unsupportedNode](nodeKinds):
		un, _ := variant.Get[unsupportedNode](n)
		return fail(jsonkit.CodeUnexpectedType, "", "unsupported schema type "+un.typ)
	}
	return fail(jsonkit.CodeNoSchema, "", "")
}

func expectType(v jsonkit.Value, t jsonkit.Type) error {
	if v.Type() != t {
		return fail(jsonkit.CodeUnexpectedType, "", "expected "+t.String()+", got "+v.TypeName())
	}
	return nil
}

func (sn *stringNode) validate(v jsonkit.Value) error {
	if err := expectType(v, jsonkit.TypeString); err != nil {
		return err
	}
	s := v.AsString()
	n := uint64(utf8.RuneCountInString(s))
	if sn.minLength != nil && n < *sn.minLength {
		return fail(jsonkit.CodeOutOfRange, "/minLength", "minLength "+strconv.FormatUint(*sn.minLength, 10))
	}
	if sn.maxLength != nil && n > *sn.maxLength {
		return fail(jsonkit.CodeOutOfRange, "/maxLength", "maxLength "+strconv.FormatUint(*sn.maxLength, 10))
	}
	if sn.pattern != nil && !sn.pattern.MatchString(s) {
		return fail(jsonkit.CodeNoMatch, "/pattern", "pattern "+sn.pattern.String())
	}
	if len(sn.enum) > 0 && !slices.Contains(sn.enum, s) {
		return fail(jsonkit.CodeNoMatch, "/enum", strconv.Quote(s)+" is not an enum member")
	}
	return nil
}

// compileString reads the keywords a string schema understands. Unknown
// keywords are returned so that the caller can report them as ignored.
func compileString(o jsonkit.Object) (*stringNode, []string, error) {
	sn := &stringNode{}
	var ignored []string
	for k, v := range o.All() {
		var err error
		switch k {
		case "minLength":
			sn.minLength, err = length(k, v)
		case "maxLength":
			sn.maxLength, err = length(k, v)
		case "pattern":
			if !v.Is(jsonkit.TypeString) {
				return nil, nil, unexpectedType("/"+k, v)
			}
			re, rerr := regexp.Compile(v.AsString())
			if rerr != nil {
				e := fail(jsonkit.CodeBadValue, "/"+k, rerr.Error())
				e.Cause = rerr
				return nil, nil, e
			}
			sn.pattern = re
		case "enum":
			sn.enum, err = stringEnum(v)
		default:
			if !isAnnotation(k) {
				ignored = append(ignored, k)
			}
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return sn, ignored, nil
}

func length(k string, v jsonkit.Value) (*uint64, error) {
	if !v.Is(jsonkit.TypeUint32) && !v.Is(jsonkit.TypeUint64) {
		return nil, unexpectedType("/"+k, v)
	}
	n := v.AsUint64()
	return &n, nil
}

func stringEnum(v jsonkit.Value) ([]string, error) {
	if !v.Is(jsonkit.TypeArray) {
		return nil, unexpectedType("/enum", v)
	}
	arr := v.AsArray()
	if len(arr) == 0 {
		return nil, fail(jsonkit.CodeBadValue, "/enum", "enum must not be empty")
	}
	out := make([]string, 0, len(arr))
	for i, e := range arr {
		if !e.Is(jsonkit.TypeString) {
			return nil, unexpectedType("/enum/"+strconv.Itoa(i), e)
		}
		out = append(out, e.AsString())
	}
	return out, nil
}

var numberKeywords = []string{"multipleOf", "minimum", "exclusiveMinimum", "maximum", "exclusiveMaximum"}

// checkNumber verifies the keywords of a number or integer schema. Anything
// besides the numeric keywords and annotations is rejected.
func checkNumber(o jsonkit.Object) error {
	for k, v := range o.All() {
		switch {
		case slices.Contains(numberKeywords, k):
			if !v.Type().IsNumber() {
				return unexpectedType("/"+k, v)
			}
		case isAnnotation(k):
		default:
			return fail(jsonkit.CodeUnexpectedToken, "/"+k, "unexpected keyword "+k)
		}
	}
	return nil
}

// isAnnotation reports keywords that never affect validation.
func isAnnotation(k string) bool {
	switch k {
	case "type", "$id", "$schema", "$comment", "title", "description", "default", "examples":
		return true
	}
	return false
}

func unexpectedType(path string, v jsonkit.Value) *jsonkit.Error {
	return fail(jsonkit.CodeUnexpectedType, path, "got "+v.TypeName())
}

func fail(code jsonkit.Code, path, detail string) *jsonkit.Error {
	var data map[string]string
	if detail != "" {
		data = map[string]string{"detail": detail}
	}
	e := jsonkit.NewError(code, data)
	e.Path = path
	return e
}
