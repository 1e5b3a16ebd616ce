// Package rule defines validation rules, the diagnostics they emit, and the
// registry that orders them.
//
// A Rule is a self-contained check over one kind of snapshot node. Rules are
// pure: evaluating the same node against the same snapshot always yields the
// same diagnostics, and evaluation never mutates the snapshot or any other
// rule's state. A rule that needs another rule's outcome declares it in
// Requires and reads the result through the Context's outcome table; it
// never invokes the other rule directly.
//
// The Registry holds rules keyed by identifier and resolves a stable
// topological order over the declared dependencies, so dependencies always
// run before their dependents. Duplicate identifiers and dependency cycles
// are rejected at registration time.
package rule
