package jsonkit

import (
	"iter"
	"maps"
	"slices"
)

// Object is a JSON object: unique string keys iterated in sorted order.
// The zero Object is empty and ready to use.
type Object struct {
	m map[string]*Value
}

// Len returns the number of members.
func (o Object) Len() int { return len(o.m) }

// Get returns the member stored under key.
func (o Object) Get(key string) (Value, bool) {
	p, ok := o.m[key]
	if !ok {
		return Value{}, false
	}
	return *p, true
}

// Ref returns a pointer to the member stored under key. Writes through it
// are seen by every copy sharing the member. The pointer is detached once
// the key is set again or deleted.
func (o Object) Ref(key string) (*Value, bool) {
	p, ok := o.m[key]
	return p, ok
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.m[key]
	return ok
}

// Set stores v under key, replacing any previous member, and returns a
// pointer to the stored member. A replaced member is not written to, so
// values copied from it earlier keep their content.
func (o *Object) Set(key string, v Value) *Value {
	if o.m == nil {
		o.m = make(map[string]*Value)
	}
	p := new(Value)
	*p = v
	o.m[key] = p
	return p
}

// Add stores v under key only when key is absent. It reports whether the
// member was inserted.
func (o *Object) Add(key string, v Value) bool {
	if o.Has(key) {
		return false
	}
	o.Set(key, v)
	return true
}

// Delete removes key and reports whether it was present.
func (o Object) Delete(key string) bool {
	if _, ok := o.m[key]; !ok {
		return false
	}
	delete(o.m, key)
	return true
}

// Keys returns the member keys in sorted order.
func (o Object) Keys() []string {
	return slices.Sorted(maps.Keys(o.m))
}

// All iterates the members in key order.
func (o Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.Keys() {
			if !yield(k, *o.m[k]) {
				return
			}
		}
	}
}

// shallow returns an Object with its own key map sharing o's members.
func (o Object) shallow() Object {
	return Object{m: maps.Clone(o.m)}
}

// Clone returns a deep copy of o.
func (o Object) Clone() Object {
	if o.m == nil {
		return Object{}
	}
	out := Object{m: make(map[string]*Value, len(o.m))}
	for k, p := range o.m {
		c := p.Clone()
		out.m[k] = &c
	}
	return out
}
