package jsonkit

import (
	"slices"

	"github.com/reoring/jsonkit/variant"
)

// At returns element i of an Array, or None when v is not an Array or i is
// out of range. The result is independent of v: mutating it through its
// methods never changes v.
func (v Value) At(i int) Value {
	if p, ok := v.Index(i); ok {
		return *p
	}
	return Value{}
}

// Index returns a pointer to element i of an Array for in-place updates.
// The element storage is shared with copies of v; Clone v first to update
// only one of them. The pointer is detached by the next mutation of v.
func (v Value) Index(i int) (*Value, bool) {
	a, ok := Get[[]Value](v)
	if !ok || i < 0 || i >= len(a) {
		return nil, false
	}
	return &a[i], true
}

// HasIndex reports whether v is an Array with an element at i.
func (v Value) HasIndex(i int) bool {
	_, ok := v.Index(i)
	return ok
}

// Back returns a pointer to the last element of a non-empty Array.
func (v Value) Back() (*Value, bool) {
	a, _ := Get[[]Value](v)
	return v.Index(len(a) - 1)
}

// Field returns member key of an Object, or None when v is not an Object or
// the key is absent. Like At, the result is independent of v.
func (v Value) Field(key string) Value {
	if p, ok := v.Lookup(key); ok {
		return *p
	}
	return Value{}
}

// Lookup returns a pointer to member key of an Object for in-place updates.
// As with Index, the member is shared with copies of v.
func (v Value) Lookup(key string) (*Value, bool) {
	o, ok := Get[Object](v)
	if !ok {
		return nil, false
	}
	return o.Ref(key)
}

// Has reports whether v is an Object with member key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Slot returns a pointer to member key, creating it as None when absent.
// A v that is not an Object is first reset to an empty Object.
func (v *Value) Slot(key string) *Value {
	if p, ok := v.Lookup(key); ok {
		return p
	}
	return v.Set(key, Value{})
}

// Set stores elem under key and returns a pointer to the stored member.
// A v that is not an Object is first reset to an empty Object. Copies of v
// made earlier are not affected.
func (v *Value) Set(key string, elem Value) *Value {
	if v.typ != TypeObject {
		*v = NewObject()
	}
	o, _ := Get[Object](*v)
	o = o.shallow()
	p := o.Set(key, elem)
	variant.Set(&v.data, o)
	return p
}

// Delete removes member key and reports whether it was present.
func (v *Value) Delete(key string) bool {
	o, ok := Get[Object](*v)
	if !ok || !o.Has(key) {
		return false
	}
	o = o.shallow()
	o.Delete(key)
	variant.Set(&v.data, o)
	return true
}

// Append adds elem at the end of the array and returns a pointer to it.
// A v that is not an Array is first reset to an empty Array.
func (v *Value) Append(elem Value) *Value {
	if v.typ != TypeArray {
		*v = NewArray()
	}
	a, _ := Get[[]Value](*v)
	a = append(slices.Clip(a), elem)
	variant.Set(&v.data, a)
	return &a[len(a)-1]
}

// Insert places elem before index i (0 <= i <= Size()) of an Array and
// reports whether it did.
func (v *Value) Insert(i int, elem Value) bool {
	a, ok := Get[[]Value](*v)
	if !ok || i < 0 || i > len(a) {
		return false
	}
	variant.Set(&v.data, slices.Insert(slices.Clip(a), i, elem))
	return true
}

// Erase removes element i of an Array and reports whether it was present.
func (v *Value) Erase(i int) bool {
	a, ok := Get[[]Value](*v)
	if !ok || i < 0 || i >= len(a) {
		return false
	}
	variant.Set(&v.data, slices.Concat(a[:i], a[i+1:]))
	return true
}

// Find returns the index of the first Array element matching pred.
func (v Value) Find(pred func(Value) bool) (int, bool) {
	a, _ := Get[[]Value](v)
	i := slices.IndexFunc(a, pred)
	return i, i >= 0
}
