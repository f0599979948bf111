// Package variant provides a closed tagged union.
//
// An Alternatives set fixes, at construction time, the ordered list of Go
// types a Union may hold. Discriminant 0 means "empty"; discriminants 1..n map
// to the registered alternatives in declaration order. Each alternative can
// carry a clone function that Union.Clone uses to copy the held value without
// knowing which alternative is active.
//
//	set := variant.New(variant.Alt[int64](), variant.Alt[string]())
//	u := variant.Make(set, int64(42))
//	n, ok := variant.Get[int64](u) // 42, true
//	_, ok = variant.Get[string](u) // "", false
package variant

import (
	"fmt"
	"reflect"
)

// Kind is the discriminant of a Union. Empty (0) means no alternative is held.
type Kind int

// Empty is the discriminant of a Union holding nothing.
const Empty Kind = 0

// Alternative describes one member type of an Alternatives set.
type Alternative struct {
	typ   reflect.Type
	clone func(any) any
}

// Alt registers T with plain assignment as its copy behaviour.
func Alt[T any]() Alternative {
	return Alternative{typ: reflect.TypeFor[T]()}
}

// AltClone registers T with a custom copy function, used for alternatives
// that own reference-typed storage (slices, maps).
func AltClone[T any](clone func(T) T) Alternative {
	return Alternative{
		typ: reflect.TypeFor[T](),
		clone: func(v any) any {
			return clone(v.(T))
		},
	}
}

// Alternatives is an immutable, ordered set of member types.
type Alternatives struct {
	alts  []Alternative
	index map[reflect.Type]Kind
}

// New builds an Alternatives set. It panics when the same type is registered
// twice, since discriminants must map 1:1 to types.
func New(alts ...Alternative) *Alternatives {
	s := &Alternatives{
		alts:  append([]Alternative(nil), alts...),
		index: make(map[reflect.Type]Kind, len(alts)),
	}
	for i, a := range alts {
		if _, dup := s.index[a.typ]; dup {
			panic(fmt.Sprintf("variant: duplicate alternative %s", a.typ))
		}
		s.index[a.typ] = Kind(i + 1)
	}
	return s
}

// Len reports the number of alternatives.
func (s *Alternatives) Len() int { return len(s.alts) }

// KindOf returns the discriminant assigned to t, or Empty when t is not a member.
func (s *Alternatives) KindOf(t reflect.Type) Kind {
	if s == nil {
		return Empty
	}
	return s.index[t]
}

// TypeOf returns the Go type behind discriminant k, or nil when k is out of range.
func (s *Alternatives) TypeOf(k Kind) reflect.Type {
	if s == nil || k <= Empty || int(k) > len(s.alts) {
		return nil
	}
	return s.alts[k-1].typ
}

// KindFor returns the discriminant assigned to T within s.
func KindFor[T any](s *Alternatives) Kind {
	return s.KindOf(reflect.TypeFor[T]())
}

// Union holds at most one alternative of its Alternatives set.
// The zero Union is empty and belongs to no set; Set binds it to one.
type Union struct {
	set  *Alternatives
	kind Kind
	val  any
}

// Of returns an empty Union bound to s.
func (s *Alternatives) Of() Union { return Union{set: s} }

// Make constructs a Union holding v. It panics if T is not a member of s.
func Make[T any](s *Alternatives, v T) Union {
	u := s.Of()
	if !Set(&u, v) {
		panic(fmt.Sprintf("variant: %s is not an alternative", reflect.TypeFor[T]()))
	}
	return u
}

// Set replaces the held alternative with v. The previous alternative is
// dropped first. It reports false, leaving u unchanged, when T is not a member.
func Set[T any](u *Union, v T) bool {
	k := u.set.KindOf(reflect.TypeFor[T]())
	if k == Empty {
		return false
	}
	u.Clear()
	u.kind = k
	u.val = v
	return true
}

// Get returns the held value when the discriminant matches T.
func Get[T any](u Union) (T, bool) {
	if u.kind == Empty || u.set.KindOf(reflect.TypeFor[T]()) != u.kind {
		var zero T
		return zero, false
	}
	return u.val.(T), true
}

// Is reports whether u currently holds a T.
func Is[T any](u Union) bool {
	return u.kind != Empty && u.set.KindOf(reflect.TypeFor[T]()) == u.kind
}

// Kind returns the discriminant of the held alternative.
func (u Union) Kind() Kind { return u.kind }

// Set returns the Alternatives the union is bound to (nil for a zero Union).
func (u Union) Set() *Alternatives { return u.set }

// Value returns the held value boxed in an interface, or nil when empty.
func (u Union) Value() any { return u.val }

// Clear drops the held alternative. The union stays bound to its set.
func (u *Union) Clear() {
	u.kind = Empty
	u.val = nil
}

// Clone copies u using the clone function registered for the active
// alternative, falling back to plain assignment.
func (u Union) Clone() Union {
	if u.kind == Empty {
		return Union{set: u.set}
	}
	out := u
	if fn := u.set.alts[u.kind-1].clone; fn != nil {
		out.val = fn(u.val)
	}
	return out
}

// Visitor receives the active alternative of a Union.
type Visitor interface {
	// VisitEmpty is called when the union holds nothing.
	VisitEmpty()
	// Visit is called with the discriminant and value of the held alternative.
	Visit(k Kind, v any)
}

// Accept dispatches to exactly one method of vis.
func (u Union) Accept(vis Visitor) {
	if u.kind == Empty {
		vis.VisitEmpty()
		return
	}
	vis.Visit(u.kind, u.val)
}

// VisitorFunc adapts a function to Visitor. Empty unions are reported with
// k == Empty and a nil value.
type VisitorFunc func(k Kind, v any)

func (f VisitorFunc) VisitEmpty()         { f(Empty, nil) }
func (f VisitorFunc) Visit(k Kind, v any) { f(k, v) }
