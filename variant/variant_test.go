package variant_test

import (
	"reflect"
	"testing"

	"github.com/reoring/jsonkit/variant"
)

type point struct{ X, Y int }

func newSet() *variant.Alternatives {
	return variant.New(
		variant.Alt[int64](),
		variant.Alt[string](),
		variant.AltClone(func(s []int) []int { return append([]int(nil), s...) }),
		variant.Alt[point](),
	)
}

func TestKindsFollowDeclarationOrder(t *testing.T) {
	s := newSet()
	if s.Len() != 4 {
		t.Fatalf("expected 4 alternatives, got %d", s.Len())
	}
	cases := []struct {
		kind variant.Kind
		got  variant.Kind
	}{
		{1, variant.KindFor[int64](s)},
		{2, variant.KindFor[string](s)},
		{3, variant.KindFor[[]int](s)},
		{4, variant.KindFor[point](s)},
		{variant.Empty, variant.KindFor[float64](s)},
	}
	for _, c := range cases {
		if c.got != c.kind {
			t.Fatalf("expected kind %d, got %d", c.kind, c.got)
		}
	}
	if s.TypeOf(2) != reflect.TypeFor[string]() {
		t.Fatalf("TypeOf(2) = %v", s.TypeOf(2))
	}
	if s.TypeOf(0) != nil || s.TypeOf(9) != nil {
		t.Fatalf("out-of-range kinds must map to nil")
	}
}

func TestDuplicateAlternativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate alternative")
		}
	}()
	variant.New(variant.Alt[int](), variant.Alt[int]())
}

func TestGetMatchesOnlyActiveAlternative(t *testing.T) {
	s := newSet()
	u := variant.Make(s, "hello")
	if u.Kind() != 2 {
		t.Fatalf("expected kind 2, got %d", u.Kind())
	}
	if v, ok := variant.Get[string](u); !ok || v != "hello" {
		t.Fatalf("Get[string] = %q, %v", v, ok)
	}
	if _, ok := variant.Get[int64](u); ok {
		t.Fatalf("Get[int64] must be absent for a string union")
	}
	if !variant.Is[string](u) || variant.Is[int64](u) {
		t.Fatalf("Is reports the wrong alternative")
	}
}

func TestSetReplacesAndRejectsForeignTypes(t *testing.T) {
	s := newSet()
	u := s.Of()
	if u.Kind() != variant.Empty {
		t.Fatalf("fresh union must be empty")
	}
	if !variant.Set(&u, int64(7)) {
		t.Fatalf("Set[int64] should succeed")
	}
	if !variant.Set(&u, point{1, 2}) {
		t.Fatalf("Set[point] should succeed")
	}
	if variant.Is[int64](u) {
		t.Fatalf("previous alternative must be dropped")
	}
	if variant.Set(&u, 3.5) {
		t.Fatalf("float64 is not a member and must be rejected")
	}
	if p, _ := variant.Get[point](u); p != (point{1, 2}) {
		t.Fatalf("rejected Set must leave union unchanged, got %+v", p)
	}
	u.Clear()
	if u.Kind() != variant.Empty || u.Value() != nil {
		t.Fatalf("Clear must empty the union")
	}
	if u.Set() != s {
		t.Fatalf("Clear must keep the union bound to its set")
	}
}

func TestZeroUnion(t *testing.T) {
	var u variant.Union
	if _, ok := variant.Get[int64](u); ok {
		t.Fatalf("zero union holds nothing")
	}
	if variant.Set(&u, int64(1)) {
		t.Fatalf("zero union has no alternatives to accept")
	}
	c := u.Clone()
	if c.Kind() != variant.Empty {
		t.Fatalf("clone of zero union must be empty")
	}
}

func TestCloneUsesRegisteredCopy(t *testing.T) {
	s := newSet()
	orig := []int{1, 2, 3}
	u := variant.Make(s, orig)
	c := u.Clone()
	cs, _ := variant.Get[[]int](c)
	cs[0] = 100
	if orig[0] != 1 {
		t.Fatalf("clone must not share slice storage")
	}
	if c.Kind() != u.Kind() {
		t.Fatalf("clone must preserve the discriminant")
	}
}

type recorder struct {
	empty bool
	kind  variant.Kind
	val   any
}

func (r *recorder) VisitEmpty()                 { r.empty = true }
func (r *recorder) Visit(k variant.Kind, v any) { r.kind, r.val = k, v }

func TestAcceptDispatch(t *testing.T) {
	s := newSet()
	var r recorder
	s.Of().Accept(&r)
	if !r.empty {
		t.Fatalf("empty union must call VisitEmpty")
	}

	r = recorder{}
	variant.Make(s, int64(5)).Accept(&r)
	if r.empty || r.kind != 1 || r.val.(int64) != 5 {
		t.Fatalf("unexpected visit: %+v", r)
	}

	var got variant.Kind = -1
	variant.Make(s, "x").Accept(variant.VisitorFunc(func(k variant.Kind, _ any) { got = k }))
	if got != 2 {
		t.Fatalf("VisitorFunc got kind %d", got)
	}
}
