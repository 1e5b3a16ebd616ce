package rule

import (
	"strings"
	"testing"

	"github.com/charcheck/sdk/snapshot"
)

func passingCheck(node snapshot.Node, rctx *Context) ([]Diagnostic, error) {
	return nil, nil
}

func validSpec() Spec {
	return Spec{
		ID:          "mesh.test-check",
		DisplayName: "Test check",
		Category:    CategoryMesh,
		Severity:    SeverityWarning,
		AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
		Requires:    []string{"scene.mesh-present"},
		Check:       passingCheck,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr string
	}{
		{"valid spec", func(s *Spec) {}, ""},
		{"missing ID", func(s *Spec) { s.ID = "" }, "ID is required"},
		{"missing display name", func(s *Spec) { s.DisplayName = "" }, "display name"},
		{"invalid category", func(s *Spec) { s.Category = "lighting" }, "category"},
		{"invalid severity", func(s *Spec) { s.Severity = "fatal" }, "severity"},
		{"no applicable types", func(s *Spec) { s.AppliesTo = nil }, "node type"},
		{"invalid node type", func(s *Spec) { s.AppliesTo = []snapshot.NodeType{"camera"} }, "node type"},
		{"missing check", func(s *Spec) { s.Check = nil }, "check function"},
		{"no requires is fine", func(s *Spec) { s.Requires = nil }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)
			r, err := New(spec)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("New() error = %v, want nil", err)
				}
				if r == nil {
					t.Error("New() returned nil rule")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDeclaredRule_Accessors(t *testing.T) {
	r := MustNew(validSpec())

	if r.ID() != "mesh.test-check" {
		t.Errorf("ID() = %v, want mesh.test-check", r.ID())
	}
	if r.DisplayName() != "Test check" {
		t.Errorf("DisplayName() = %v, want Test check", r.DisplayName())
	}
	if r.Category() != CategoryMesh {
		t.Errorf("Category() = %v, want %v", r.Category(), CategoryMesh)
	}
	if r.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", r.Severity(), SeverityWarning)
	}
	if !r.AppliesTo(snapshot.NodeMesh) {
		t.Error("AppliesTo(NodeMesh) = false, want true")
	}
	if r.AppliesTo(snapshot.NodeTexture) {
		t.Error("AppliesTo(NodeTexture) = true, want false")
	}

	deps := r.Requires()
	if len(deps) != 1 || deps[0] != "scene.mesh-present" {
		t.Errorf("Requires() = %v, want [scene.mesh-present]", deps)
	}
	// Mutating the returned slice must not change the rule.
	deps[0] = "altered"
	if r.Requires()[0] != "scene.mesh-present" {
		t.Error("Requires() returned an aliased slice")
	}
}

func TestMustNew_PanicsOnInvalidSpec(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() did not panic on invalid spec")
		}
	}()
	MustNew(Spec{})
}

func TestFail(t *testing.T) {
	snap, _ := snapshot.Build(snapshot.SceneDesc{
		Meshes: []snapshot.MeshDesc{{Name: "Body"}},
	}, snapshot.ScopeAll)
	mesh := snap.Mesh("Body")
	if mesh == nil {
		t.Fatal("fixture mesh not found")
	}

	r := MustNew(validSpec())
	diags := Fail(r, mesh, "something is off", "fix it")
	if len(diags) != 1 {
		t.Fatalf("Fail() returned %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.RuleID != r.ID() || d.Severity != r.Severity() || d.Category != r.Category() {
		t.Errorf("Fail() diagnostic identity = %+v, want rule metadata", d)
	}
	if d.NodePath != mesh.Path() {
		t.Errorf("Fail() NodePath = %v, want %v", d.NodePath, mesh.Path())
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Fail() produced invalid diagnostic: %v", err)
	}
}

func TestContext_DependencyOutcome(t *testing.T) {
	var ctx Context
	if got := ctx.DependencyOutcome("any.rule", "/"); got != OutcomeNone {
		t.Errorf("DependencyOutcome() without table = %v, want OutcomeNone", got)
	}

	ctx.Outcomes = staticOutcomes{"scene.mesh-present": {"/": OutcomeFailed}}
	if got := ctx.DependencyOutcome("scene.mesh-present", "/"); got != OutcomeFailed {
		t.Errorf("DependencyOutcome() = %v, want OutcomeFailed", got)
	}
	if got := ctx.DependencyOutcome("scene.mesh-present", "/meshes/Body"); got != OutcomeNone {
		t.Errorf("DependencyOutcome() unrecorded node = %v, want OutcomeNone", got)
	}
}

// staticOutcomes is a fixed OutcomeLookup for tests.
type staticOutcomes map[string]map[string]Outcome

func (s staticOutcomes) Outcome(ruleID, nodePath string) Outcome {
	return s[ruleID][nodePath]
}
