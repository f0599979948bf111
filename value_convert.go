package jsonkit

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	epsilon32 = 1.1920929e-07
	epsilon64 = 2.220446049250313e-16
)

// As converts v to type t. It never fails: a disallowed or failed
// conversion yields Of(t). None converts to the string "null" even though
// IsConvertible(TypeString) reports false for it.
func (v Value) As(t Type) Value {
	out, ok := v.convert(t)
	if !ok {
		if v.typ == TypeNone && t == TypeString {
			return NewString("null")
		}
		return Of(t)
	}
	return out
}

// IsConvertible reports whether As(t) would carry v's content over instead
// of falling back to the default of t.
func (v Value) IsConvertible(t Type) bool {
	_, ok := v.convert(t)
	return ok
}

func (v Value) AsBool() bool       { b, _ := Get[bool](v.As(TypeBool)); return b }
func (v Value) AsInt32() int32     { n, _ := Get[int32](v.As(TypeInt32)); return n }
func (v Value) AsInt64() int64     { n, _ := Get[int64](v.As(TypeInt64)); return n }
func (v Value) AsUint32() uint32   { n, _ := Get[uint32](v.As(TypeUint32)); return n }
func (v Value) AsUint64() uint64   { n, _ := Get[uint64](v.As(TypeUint64)); return n }
func (v Value) AsFloat32() float32 { f, _ := Get[float32](v.As(TypeFloat32)); return f }
func (v Value) AsFloat64() float64 { f, _ := Get[float64](v.As(TypeFloat64)); return f }
func (v Value) AsString() string   { s, _ := Get[string](v.As(TypeString)); return s }

// AsArray returns a copy of the elements of an Array value, or nil.
func (v Value) AsArray() []Value { a, _ := Get[[]Value](v); return slices.Clone(a) }

// AsObject returns a copy of the members of an Object value, or an empty
// Object.
func (v Value) AsObject() Object { o, _ := Get[Object](v); return o.shallow() }

// number is the widened payload of a Bool or numeric Value.
type number struct {
	kind rune // 'i' signed, 'u' unsigned, 'f' float
	i    int64
	u    uint64
	f    float64
}

func (v Value) number() (number, bool) {
	switch v.typ {
	case TypeBool:
		if b, _ := Get[bool](v); b {
			return number{kind: 'u', u: 1}, true
		}
		return number{kind: 'u'}, true
	case TypeInt32:
		n, _ := Get[int32](v)
		return number{kind: 'i', i: int64(n)}, true
	case TypeInt64:
		n, _ := Get[int64](v)
		return number{kind: 'i', i: n}, true
	case TypeUint32:
		n, _ := Get[uint32](v)
		return number{kind: 'u', u: uint64(n)}, true
	case TypeUint64:
		n, _ := Get[uint64](v)
		return number{kind: 'u', u: n}, true
	case TypeFloat32:
		f, _ := Get[float32](v)
		return number{kind: 'f', f: float64(f)}, true
	case TypeFloat64:
		f, _ := Get[float64](v)
		return number{kind: 'f', f: f}, true
	}
	return number{}, false
}

func (v Value) convert(t Type) (Value, bool) {
	if t == TypeNone {
		return Value{}, true
	}
	if v.typ == t {
		return v, true
	}
	switch v.typ {
	case TypeString:
		s, _ := Get[string](v)
		return parseAs(s, t)
	case TypeNone, TypeArray, TypeObject:
		return Value{}, false
	}
	n, _ := v.number()
	if t == TypeString {
		return NewString(n.format(v.typ)), true
	}
	return n.to(t)
}

func (n number) isZero() bool {
	switch n.kind {
	case 'i':
		return n.i == 0
	case 'u':
		return n.u == 0
	}
	return n.f == 0
}

func (n number) format(src Type) string {
	switch n.kind {
	case 'i':
		return strconv.FormatInt(n.i, 10)
	case 'f':
		bits := 64
		if src == TypeFloat32 {
			bits = 32
		}
		return strconv.FormatFloat(n.f, 'g', -1, bits)
	}
	if src == TypeBool {
		return strconv.FormatBool(n.u == 1)
	}
	return strconv.FormatUint(n.u, 10)
}

func (n number) to(t Type) (Value, bool) {
	if t == TypeBool {
		return NewBool(!n.isZero()), true
	}
	if n.kind == 'f' {
		switch t {
		case TypeFloat64:
			return NewFloat64(n.f), true
		case TypeFloat32:
			if !fitsFloat32(n.f) {
				return Value{}, false
			}
			return NewFloat32(float32(n.f)), true
		}
		return Value{}, false
	}
	neg := n.kind == 'i' && n.i < 0
	mag := n.u
	if n.kind == 'i' {
		mag = uint64(n.i)
	}
	switch t {
	case TypeInt32:
		if neg {
			if n.i < math.MinInt32 {
				return Value{}, false
			}
			return NewInt32(int32(n.i)), true
		}
		if mag > math.MaxInt32 {
			return Value{}, false
		}
		return NewInt32(int32(mag)), true
	case TypeInt64:
		if neg {
			return NewInt64(n.i), true
		}
		if mag > math.MaxInt64 {
			return Value{}, false
		}
		return NewInt64(int64(mag)), true
	case TypeUint32:
		if neg || mag > math.MaxUint32 {
			return Value{}, false
		}
		return NewUint32(uint32(mag)), true
	case TypeUint64:
		if neg {
			return Value{}, false
		}
		return NewUint64(mag), true
	case TypeFloat32:
		if neg {
			return NewFloat32(float32(n.i)), true
		}
		return NewFloat32(float32(mag)), true
	case TypeFloat64:
		if neg {
			return NewFloat64(float64(n.i)), true
		}
		return NewFloat64(float64(mag)), true
	}
	return Value{}, false
}

// parseAs interprets the whole of s as type t.
func parseAs(s string, t Type) (Value, bool) {
	switch t {
	case TypeBool:
		switch strings.ToLower(s) {
		case "true", "1":
			return NewBool(true), true
		case "false", "0":
			return NewBool(false), true
		}
	case TypeInt32:
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return NewInt32(int32(n)), true
		}
	case TypeInt64:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return NewInt64(n), true
		}
	case TypeUint32:
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			return NewUint32(uint32(n)), true
		}
	case TypeUint64:
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return NewUint64(n), true
		}
	case TypeFloat32:
		if f, ok := parseFloat32(s); ok {
			return NewFloat32(f), true
		}
	case TypeFloat64:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NewFloat64(f), true
		}
	}
	return Value{}, false
}

func parseFloat32(s string) (float32, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !fitsFloat32(f) {
		return 0, false
	}
	f32, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f32), true
}

// fitsFloat32 reports whether f survives narrowing without overflowing to
// infinity or underflowing to zero.
func fitsFloat32(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return true
	}
	a := math.Abs(f)
	if a > math.MaxFloat32 {
		return false
	}
	return a == 0 || float32(a) != 0
}

// Equal reports structural equality. Types must match exactly; floats are
// compared with a relative epsilon of their width.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNone:
		return true
	case TypeFloat32:
		a, _ := Get[float32](v)
		b, _ := Get[float32](o)
		return floatEqual(float64(a), float64(b), epsilon32)
	case TypeFloat64:
		a, _ := Get[float64](v)
		b, _ := Get[float64](o)
		return floatEqual(a, b, epsilon64)
	case TypeArray:
		a, _ := Get[[]Value](v)
		b, _ := Get[[]Value](o)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		a, _ := Get[Object](v)
		b, _ := Get[Object](o)
		if a.Len() != b.Len() {
			return false
		}
		for k, av := range a.All() {
			bv, ok := b.Get(k)
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	}
	return v.data.Value() == o.data.Value()
}

func floatEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	d := math.Abs(a - b)
	m := math.Max(math.Abs(a), math.Abs(b))
	if m < 1 {
		return d <= eps
	}
	return d <= eps*m
}
