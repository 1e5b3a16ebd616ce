package rule

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations. Use errors.Is to detect them.
var (
	// ErrDuplicateRule indicates a rule identifier is already registered.
	ErrDuplicateRule = errors.New("duplicate rule")

	// ErrCyclicDependency indicates registering a rule would create a
	// dependency cycle.
	ErrCyclicDependency = errors.New("cyclic rule dependency")

	// ErrRuleNotFound indicates a referenced rule identifier is not
	// registered.
	ErrRuleNotFound = errors.New("rule not found")
)

// Registry holds validation rules and resolves their execution order.
//
// Registration is explicit: a registry is constructed, filled, and handed to
// the engine, rather than mutated through package-level state. Forward
// dependency references are allowed during registration; they only need to
// resolve by the time ResolveOrder runs.
//
// Registry is not safe for concurrent mutation; build it during startup and
// treat it as read-only afterwards, which is how the engine uses it.
type Registry struct {
	rules map[string]Rule
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule. It fails with ErrDuplicateRule if the identifier is
// taken and with ErrCyclicDependency if the rule's dependencies close a
// cycle over already-registered rules; on failure the registry is left
// unchanged.
func (r *Registry) Register(rl Rule) error {
	id := rl.ID()
	if id == "" {
		return fmt.Errorf("register rule: empty identifier")
	}
	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("register rule %s: %w", id, ErrDuplicateRule)
	}
	r.rules[id] = rl
	r.order = append(r.order, id)
	if cycle := r.findCycle(id); cycle != nil {
		delete(r.rules, id)
		r.order = r.order[:len(r.order)-1]
		return fmt.Errorf("register rule %s: %w: %v", id, ErrCyclicDependency, cycle)
	}
	return nil
}

// RegisterAll registers rules in order, stopping at the first failure.
func (r *Registry) RegisterAll(rules ...Rule) error {
	for _, rl := range rules {
		if err := r.Register(rl); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the rule with the given identifier.
func (r *Registry) Get(id string) (Rule, error) {
	rl, ok := r.rules[id]
	if !ok {
		return nil, fmt.Errorf("get rule %s: %w", id, ErrRuleNotFound)
	}
	return rl, nil
}

// Has reports whether a rule identifier is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.rules[id]
	return ok
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// Rules returns all rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out
}

// ResolveOrder returns the rules in a stable topological order:
// dependencies always precede dependents, and ties are broken by
// registration order. When categories are given, the result is restricted
// to rules in those categories plus the transitive dependencies they need
// to run first.
//
// Fails with ErrRuleNotFound if any selected rule requires an identifier
// that is not registered.
func (r *Registry) ResolveOrder(categories ...Category) ([]Rule, error) {
	selected := r.selectByCategory(categories)

	// Close the selection over dependencies so filtered orders are still
	// runnable.
	if err := r.closeOverDependencies(selected); err != nil {
		return nil, err
	}

	// Kahn's algorithm. Candidates are scanned in registration order each
	// round, which makes the sort stable.
	indegree := make(map[string]int, len(selected))
	dependents := make(map[string][]string, len(selected))
	for id := range selected {
		for _, dep := range r.rules[id].Requires() {
			if !selected[dep] {
				continue
			}
			indegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	out := make([]Rule, 0, len(selected))
	done := make(map[string]bool, len(selected))
	for len(out) < len(selected) {
		progressed := false
		for _, id := range r.order {
			if !selected[id] || done[id] || indegree[id] > 0 {
				continue
			}
			out = append(out, r.rules[id])
			done[id] = true
			progressed = true
			for _, dep := range dependents[id] {
				indegree[dep]--
			}
		}
		if !progressed {
			// Unreachable as long as Register keeps the graph acyclic.
			return nil, fmt.Errorf("resolve order: %w", ErrCyclicDependency)
		}
	}
	return out, nil
}

// TransitiveDependents returns the identifiers of every rule that depends,
// directly or through other rules, on any of the given identifiers. The
// seed identifiers themselves are included. Unknown seeds are ignored.
func (r *Registry) TransitiveDependents(ids ...string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if r.Has(id) {
			out[id] = true
		}
	}
	// Fixed-point over the reverse dependency relation.
	for changed := true; changed; {
		changed = false
		for _, id := range r.order {
			if out[id] {
				continue
			}
			for _, dep := range r.rules[id].Requires() {
				if out[dep] {
					out[id] = true
					changed = true
					break
				}
			}
		}
	}
	return out
}

// selectByCategory marks the rules in the given categories, or every rule
// when no category is given.
func (r *Registry) selectByCategory(categories []Category) map[string]bool {
	selected := make(map[string]bool, len(r.rules))
	if len(categories) == 0 {
		for id := range r.rules {
			selected[id] = true
		}
		return selected
	}
	want := make(map[Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	for id, rl := range r.rules {
		if want[rl.Category()] {
			selected[id] = true
		}
	}
	return selected
}

// closeOverDependencies extends the selection with every transitive
// dependency, failing on unregistered identifiers.
func (r *Registry) closeOverDependencies(selected map[string]bool) error {
	queue := make([]string, 0, len(selected))
	for id := range selected {
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dep := range r.rules[id].Requires() {
			if _, ok := r.rules[dep]; !ok {
				return fmt.Errorf("rule %s requires %s: %w", id, dep, ErrRuleNotFound)
			}
			if !selected[dep] {
				selected[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return nil
}

// findCycle checks whether the rule graph reachable from start contains a
// cycle, returning the cycle path when found. Dependencies on identifiers
// not yet registered are ignored; they are validated at resolve time.
func (r *Registry) findCycle(start string) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(r.rules))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = gray
		path = append(path, id)
		for _, dep := range r.rules[id].Requires() {
			if _, ok := r.rules[dep]; !ok {
				continue
			}
			switch color[dep] {
			case gray:
				return append(path, dep)
			case white:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		color[id] = black
		path = path[:len(path)-1]
		return nil
	}
	return visit(start)
}
