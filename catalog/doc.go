// Package catalog provides the built-in validation rules for character
// assets targeting the rendering platform, plus the configuration layer
// that tunes them.
//
// The catalog mirrors the platform's published character requirements:
// structural presence checks, skeleton and naming requirements, polygon and
// hair budgets, material and texture constraints, and the quality warnings
// that do not block upload. Numeric thresholds, naming tags and the
// required bone set are configurable through a YAML file; defaults match
// the platform's current limits.
//
// Studios can extend the catalog without writing Go: catalog configuration
// files may define extra rules as CEL expressions over a node's attribute
// map. Expressions are compiled at load time and invalid ones are rejected
// before any validation runs.
//
// NewRegistry assembles everything into a rule.Registry ready to hand to
// the engine.
package catalog
