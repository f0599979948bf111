package jsonkit

import (
	"strings"

	json "github.com/goccy/go-json"
)

// ParseNumber interprets a JSON number literal the way Parse does, choosing
// the narrowest fitting type. Malformed literals fail with
// CodeUnexpectedToken and literals no type can hold with CodeBadValue.
func ParseNumber(lit string) (Value, error) {
	if !isNumber(lit) {
		return Value{}, NewError(CodeUnexpectedToken, map[string]string{"detail": lit})
	}
	v, ok := interpretNumber(lit)
	if !ok {
		return Value{}, NewError(CodeBadValue, map[string]string{"detail": lit})
	}
	return v, nil
}

// FromGo converts an arbitrary Go value (structs, maps, slices, scalars)
// into a Value by encoding it with go-json and parsing the result.
func FromGo(x any) (Value, error) {
	if v, ok := ValueOf(x); ok {
		return v, nil
	}
	b, err := json.Marshal(x)
	if err != nil {
		return Value{}, &Error{Code: CodeBadValue, Message: err.Error(), Cause: err}
	}
	return Parse(string(b))
}

// Decode stores v into the Go value pointed to by dst using go-json's
// decoding rules (struct tags, interfaces, numbers).
func (v Value) Decode(dst any) error {
	s, err := Build(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return &Error{Code: CodeUnexpectedType, Message: err.Error(), Cause: err}
	}
	return nil
}

// Interface returns v as plain Go data: nil, bool, the sized numeric type,
// string, []any or map[string]any.
func (v Value) Interface() any {
	switch v.Type() {
	case TypeArray:
		a := v.AsArray()
		out := make([]any, len(a))
		for i := range a {
			out[i] = a[i].Interface()
		}
		return out
	case TypeObject:
		o := v.AsObject()
		out := make(map[string]any, o.Len())
		for k, e := range o.All() {
			out[k] = e.Interface()
		}
		return out
	}
	return v.data.Value()
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	s, err := Build(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	pv, err := Parse(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*v = pv
	return nil
}
