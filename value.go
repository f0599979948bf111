package jsonkit

import (
	"math"

	"github.com/reoring/jsonkit/variant"
)

// Type is the type discriminant of a Value. The numeric order is used for
// internal mapping only, not as a semantic ordering.
type Type int

const (
	TypeNone Type = iota
	TypeBool
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeNone:    "null",
	TypeBool:    "bool",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeArray:   "array",
	TypeObject:  "object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[TypeNone]
	}
	return typeNames[t]
}

// IsInteger reports whether t is one of the integer types.
func (t Type) IsInteger() bool { return t >= TypeInt32 && t <= TypeUint64 }

// IsFloat reports whether t is Float32 or Float64.
func (t Type) IsFloat() bool { return t == TypeFloat32 || t == TypeFloat64 }

// IsNumber reports whether t is an integer or float type.
func (t Type) IsNumber() bool { return t.IsInteger() || t.IsFloat() }

// alternatives is declared in Type order so that a union discriminant equals
// the Type of the Value holding it.
var alternatives = variant.New(
	variant.Alt[bool](),
	variant.Alt[int32](),
	variant.Alt[int64](),
	variant.Alt[uint32](),
	variant.Alt[uint64](),
	variant.Alt[float32](),
	variant.Alt[float64](),
	variant.Alt[string](),
	variant.AltClone(cloneArray),
	variant.AltClone(Object.Clone),
)

// Value is a dynamic JSON document value. The zero Value is None (JSON null).
//
// Copying a Value with plain assignment shares array and object storage, the
// same way Go slices and maps do; use Clone for an independent deep copy.
type Value struct {
	typ  Type
	data variant.Union
}

// Of returns the default instance of t: false, 0, 0.0, "", an empty array
// or an empty object.
func Of(t Type) Value {
	switch t {
	case TypeBool:
		return NewBool(false)
	case TypeInt32:
		return NewInt32(0)
	case TypeInt64:
		return NewInt64(0)
	case TypeUint32:
		return NewUint32(0)
	case TypeUint64:
		return NewUint64(0)
	case TypeFloat32:
		return NewFloat32(0)
	case TypeFloat64:
		return NewFloat64(0)
	case TypeString:
		return NewString("")
	case TypeArray:
		return NewArray()
	case TypeObject:
		return NewObject()
	default:
		return Value{}
	}
}

func newValue[T any](t Type, v T) Value {
	return Value{typ: t, data: variant.Make(alternatives, v)}
}

// Null returns the None value.
func Null() Value { return Value{} }

func NewBool(b bool) Value          { return newValue(TypeBool, b) }
func NewInt32(i int32) Value        { return newValue(TypeInt32, i) }
func NewInt64(i int64) Value        { return newValue(TypeInt64, i) }
func NewUint32(u uint32) Value      { return newValue(TypeUint32, u) }
func NewUint64(u uint64) Value      { return newValue(TypeUint64, u) }
func NewFloat32(f float32) Value    { return newValue(TypeFloat32, f) }
func NewFloat64(f float64) Value    { return newValue(TypeFloat64, f) }
func NewString(s string) Value      { return newValue(TypeString, s) }
func NewArrayFrom(vs []Value) Value { return newValue(TypeArray, vs) }

// NewObjectFrom wraps o. Later writes through the returned Value are
// visible through o and its copies.
func NewObjectFrom(o Object) Value {
	if o.m == nil {
		o.m = make(map[string]*Value)
	}
	return newValue(TypeObject, o)
}

// NewArray returns an array holding elems in order.
func NewArray(elems ...Value) Value {
	return NewArrayFrom(append(make([]Value, 0, len(elems)), elems...))
}

// NewObject returns an empty object.
func NewObject() Value { return NewObjectFrom(Object{}) }

// ValueOf wraps a Go value. Supported inputs are nil, bool, the sized and
// unsized integer and float kinds, string, Value, []Value, Object, []any and
// map[string]any (recursively). It reports false for anything else.
func ValueOf(x any) (Value, bool) {
	switch t := x.(type) {
	case nil:
		return Value{}, true
	case Value:
		return t, true
	case bool:
		return NewBool(t), true
	case int8:
		return NewInt32(int32(t)), true
	case int16:
		return NewInt32(int32(t)), true
	case int32:
		return NewInt32(t), true
	case int:
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			return NewInt32(int32(t)), true
		}
		return NewInt64(int64(t)), true
	case int64:
		return NewInt64(t), true
	case uint8:
		return NewUint32(uint32(t)), true
	case uint16:
		return NewUint32(uint32(t)), true
	case uint32:
		return NewUint32(t), true
	case uint:
		if t <= math.MaxUint32 {
			return NewUint32(uint32(t)), true
		}
		return NewUint64(uint64(t)), true
	case uint64:
		return NewUint64(t), true
	case float32:
		return NewFloat32(t), true
	case float64:
		return NewFloat64(t), true
	case string:
		return NewString(t), true
	case []Value:
		return NewArrayFrom(t), true
	case Object:
		return NewObjectFrom(t), true
	case []any:
		arr := make([]Value, 0, len(t))
		for _, e := range t {
			ev, ok := ValueOf(e)
			if !ok {
				return Value{}, false
			}
			arr = append(arr, ev)
		}
		return NewArrayFrom(arr), true
	case map[string]any:
		var o Object
		for k, e := range t {
			ev, ok := ValueOf(e)
			if !ok {
				return Value{}, false
			}
			o.Set(k, ev)
		}
		return NewObjectFrom(o), true
	}
	return Value{}, false
}

// Type returns the discriminant of v.
func (v Value) Type() Type { return v.typ }

// TypeName returns the lowercase name of v's type ("null", "int32", ...).
func (v Value) TypeName() string { return v.typ.String() }

// Is reports whether v holds type t.
func (v Value) Is(t Type) bool { return v.typ == t }

// IsNone reports whether v is None.
func (v Value) IsNone() bool { return v.typ == TypeNone }

// Get returns the payload of v when it holds exactly T.
func Get[T any](v Value) (T, bool) { return variant.Get[T](v.data) }

// Clear turns v into None.
func (v *Value) Clear() {
	v.typ = TypeNone
	v.data.Clear()
}

// Swap exchanges the contents of v and o.
func (v *Value) Swap(o *Value) { *v, *o = *o, *v }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	return Value{typ: v.typ, data: v.data.Clone()}
}

// Size returns the byte size for scalars, the byte length of a string and
// the element count of arrays and objects. None has size 0.
func (v Value) Size() int {
	switch v.typ {
	case TypeBool:
		return 1
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeInt64, TypeUint64, TypeFloat64:
		return 8
	case TypeString:
		s, _ := Get[string](v)
		return len(s)
	case TypeArray:
		a, _ := Get[[]Value](v)
		return len(a)
	case TypeObject:
		o, _ := Get[Object](v)
		return o.Len()
	}
	return 0
}

// String renders v as compact JSON. Values that cannot be rendered (NaN or
// infinite floats) yield their As(TypeString) text instead.
func (v Value) String() string {
	s, err := Build(v)
	if err != nil {
		return v.AsString()
	}
	return s
}

func cloneArray(a []Value) []Value {
	if a == nil {
		return nil
	}
	out := make([]Value, len(a))
	for i := range a {
		out[i] = a[i].Clone()
	}
	return out
}

// ValueVisitor receives the payload of a Value through Accept.
type ValueVisitor interface {
	VisitNull()
	VisitBool(bool)
	VisitInt32(int32)
	VisitInt64(int64)
	VisitUint32(uint32)
	VisitUint64(uint64)
	VisitFloat32(float32)
	VisitFloat64(float64)
	VisitString(string)
	VisitArray([]Value)
	VisitObject(Object)
}

// Accept calls the one method of vis that matches v's type.
func (v Value) Accept(vis ValueVisitor) {
	v.data.Accept(variant.VisitorFunc(func(_ variant.Kind, p any) {
		switch t := p.(type) {
		case nil:
			vis.VisitNull()
		case bool:
			vis.VisitBool(t)
		case int32:
			vis.VisitInt32(t)
		case int64:
			vis.VisitInt64(t)
		case uint32:
			vis.VisitUint32(t)
		case uint64:
			vis.VisitUint64(t)
		case float32:
			vis.VisitFloat32(t)
		case float64:
			vis.VisitFloat64(t)
		case string:
			vis.VisitString(t)
		case []Value:
			vis.VisitArray(t)
		case Object:
			vis.VisitObject(t)
		}
	}))
}
