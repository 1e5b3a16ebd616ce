package rule

import (
	"errors"
	"testing"

	"github.com/charcheck/sdk/snapshot"
)

// testRule builds a scene-level rule with the given identifier and
// dependencies.
func testRule(t *testing.T, id string, requires ...string) Rule {
	t.Helper()
	return MustNew(Spec{
		ID:          id,
		DisplayName: id,
		Category:    CategoryScene,
		Severity:    SeverityError,
		AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
		Requires:    requires,
		Check:       passingCheck,
	})
}

func categoryRule(t *testing.T, id string, c Category, requires ...string) Rule {
	t.Helper()
	return MustNew(Spec{
		ID:          id,
		DisplayName: id,
		Category:    c,
		Severity:    SeverityError,
		AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
		Requires:    requires,
		Check:       passingCheck,
	})
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(testRule(t, "a")); err != nil {
		t.Fatalf("Register(a) error = %v", err)
	}
	if !reg.Has("a") || reg.Len() != 1 {
		t.Errorf("registry state after Register: Has(a)=%v Len=%d", reg.Has("a"), reg.Len())
	}

	got, err := reg.Get("a")
	if err != nil || got.ID() != "a" {
		t.Errorf("Get(a) = %v, %v", got, err)
	}
	if _, err := reg.Get("missing"); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrRuleNotFound", err)
	}
}

func TestRegistry_RejectsDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testRule(t, "a")); err != nil {
		t.Fatalf("Register(a) error = %v", err)
	}
	err := reg.Register(testRule(t, "a"))
	if !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicateRule", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() after rejected duplicate = %d, want 1", reg.Len())
	}
}

func TestRegistry_RejectsCycle(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterAll(
		testRule(t, "a", "c"),
		testRule(t, "b", "a"),
	); err != nil {
		t.Fatalf("RegisterAll error = %v", err)
	}

	// Closing c -> b -> a -> c must fail and leave the registry unchanged.
	err := reg.Register(testRule(t, "c", "b"))
	if !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("cycle Register error = %v, want ErrCyclicDependency", err)
	}
	if reg.Has("c") || reg.Len() != 2 {
		t.Errorf("registry changed by rejected registration: Has(c)=%v Len=%d", reg.Has("c"), reg.Len())
	}

	// Self-dependency is the smallest cycle.
	err = reg.Register(testRule(t, "d", "d"))
	if !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("self-cycle Register error = %v, want ErrCyclicDependency", err)
	}
}

func TestRegistry_AllowsForwardReferences(t *testing.T) {
	reg := NewRegistry()
	// "b" is not registered yet; only ResolveOrder requires it to exist.
	if err := reg.Register(testRule(t, "a", "b")); err != nil {
		t.Fatalf("Register with forward reference error = %v", err)
	}

	if _, err := reg.ResolveOrder(); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("ResolveOrder() with unresolved dependency error = %v, want ErrRuleNotFound", err)
	}

	if err := reg.Register(testRule(t, "b")); err != nil {
		t.Fatalf("Register(b) error = %v", err)
	}
	if _, err := reg.ResolveOrder(); err != nil {
		t.Errorf("ResolveOrder() after resolving reference error = %v", err)
	}
}

func TestRegistry_ResolveOrder(t *testing.T) {
	reg := NewRegistry()
	// Registration order: d, c (needs d), b, a (needs b and c).
	if err := reg.RegisterAll(
		testRule(t, "d"),
		testRule(t, "c", "d"),
		testRule(t, "b"),
		testRule(t, "a", "b", "c"),
	); err != nil {
		t.Fatalf("RegisterAll error = %v", err)
	}

	ordered, err := reg.ResolveOrder()
	if err != nil {
		t.Fatalf("ResolveOrder() error = %v", err)
	}
	ids := ruleIDs(ordered)

	// Dependencies first, ties by registration order.
	want := []string{"d", "c", "b", "a"}
	if len(ids) != len(want) {
		t.Fatalf("ResolveOrder() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ResolveOrder() = %v, want %v", ids, want)
		}
	}
}

func TestRegistry_ResolveOrderIsStable(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterAll(
		testRule(t, "root"),
		testRule(t, "x", "root"),
		testRule(t, "y", "root"),
		testRule(t, "z", "root"),
	); err != nil {
		t.Fatalf("RegisterAll error = %v", err)
	}

	first, err := reg.ResolveOrder()
	if err != nil {
		t.Fatalf("ResolveOrder() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := reg.ResolveOrder()
		if err != nil {
			t.Fatalf("ResolveOrder() error = %v", err)
		}
		for j := range first {
			if first[j].ID() != again[j].ID() {
				t.Fatalf("ResolveOrder() unstable: %v vs %v", ruleIDs(first), ruleIDs(again))
			}
		}
	}
}

func TestRegistry_ResolveOrderByCategory(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterAll(
		categoryRule(t, "scene.base", CategoryScene),
		categoryRule(t, "mesh.check", CategoryMesh, "scene.base"),
		categoryRule(t, "texture.check", CategoryTexture),
	); err != nil {
		t.Fatalf("RegisterAll error = %v", err)
	}

	ordered, err := reg.ResolveOrder(CategoryMesh)
	if err != nil {
		t.Fatalf("ResolveOrder(mesh) error = %v", err)
	}
	ids := ruleIDs(ordered)

	// The mesh rule plus the scene dependency it needs, texture excluded.
	if len(ids) != 2 || ids[0] != "scene.base" || ids[1] != "mesh.check" {
		t.Errorf("ResolveOrder(mesh) = %v, want [scene.base mesh.check]", ids)
	}
}

func TestRegistry_TransitiveDependents(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterAll(
		testRule(t, "a"),
		testRule(t, "b", "a"),
		testRule(t, "c", "b"),
		testRule(t, "d"),
	); err != nil {
		t.Fatalf("RegisterAll error = %v", err)
	}

	got := reg.TransitiveDependents("a")
	for _, id := range []string{"a", "b", "c"} {
		if !got[id] {
			t.Errorf("TransitiveDependents(a) missing %q", id)
		}
	}
	if got["d"] {
		t.Error("TransitiveDependents(a) includes unrelated rule d")
	}

	if got := reg.TransitiveDependents("unknown"); len(got) != 0 {
		t.Errorf("TransitiveDependents(unknown) = %v, want empty", got)
	}
}

func ruleIDs(rules []Rule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID())
	}
	return ids
}
