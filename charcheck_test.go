package sdk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charcheck/sdk/catalog"
	"github.com/charcheck/sdk/engine"
	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// smallScene is deliberately incomplete: no skeleton, one mesh without UVs.
func smallScene() snapshot.SceneDesc {
	return snapshot.SceneDesc{
		Meshes: []snapshot.MeshDesc{
			{Name: "Prop", VertexCount: 8, PolyCount: 6},
		},
	}
}

func TestNewValidator_RequiresAdapter(t *testing.T) {
	_, err := NewValidator(WithLogger(discardLogger()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAdapter))

	var sdkErr *SDKError
	require.True(t, errors.As(err, &sdkErr))
	assert.Equal(t, KindConfiguration, sdkErr.Kind)
	assert.Equal(t, "NewValidator", sdkErr.Op)
}

func TestValidator_DefaultCatalog(t *testing.T) {
	validator, err := NewValidator(
		WithScene(smallScene()),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)

	// A skeleton-less scene fails the built-in presence check and blocks.
	assert.True(t, rep.UploadBlocking())
	var ids []string
	for _, d := range rep.Diagnostics() {
		ids = append(ids, d.RuleID)
	}
	assert.Contains(t, ids, catalog.RuleSkeletonPresent)
	assert.False(t, rep.Incomplete())
	assert.Equal(t, engine.StateIdle, validator.State())
}

func TestValidator_CustomRegistry(t *testing.T) {
	reg := rule.NewRegistry()
	require.NoError(t, reg.Register(rule.MustNew(rule.Spec{
		ID:          "studio.no-props",
		DisplayName: "No props",
		Category:    rule.CategoryMesh,
		Severity:    rule.SeverityError,
		AppliesTo:   []snapshot.NodeType{snapshot.NodeMesh},
		Check: func(node snapshot.Node, _ *rule.Context) ([]rule.Diagnostic, error) {
			return []rule.Diagnostic{{
				RuleID:   "studio.no-props",
				Severity: rule.SeverityError,
				Category: rule.CategoryMesh,
				NodePath: node.Path(),
				Message:  "Prop meshes are not allowed.",
			}}, nil
		},
	})))

	validator, err := NewValidator(
		WithScene(smallScene()),
		WithRegistry(reg),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)
	assert.Same(t, reg, validator.Registry())

	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Diagnostics(), 1)
	assert.Equal(t, "studio.no-props", rep.Diagnostics()[0].RuleID)
}

func TestValidator_ExtraRules(t *testing.T) {
	extra := rule.MustNew(rule.Spec{
		ID:          "studio.mesh-count",
		DisplayName: "Mesh count",
		Category:    rule.CategoryScene,
		Severity:    rule.SeverityInfo,
		AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
		Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
			return []rule.Diagnostic{{
				RuleID:   "studio.mesh-count",
				Severity: rule.SeverityInfo,
				Category: rule.CategoryScene,
				NodePath: node.Path(),
				Message:  "Scene inventory noted.",
			}}, nil
		},
	})

	validator, err := NewValidator(
		WithScene(smallScene()),
		WithRules(extra),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)

	var found bool
	for _, d := range rep.Diagnostics() {
		if d.RuleID == "studio.mesh-count" {
			found = true
			assert.Equal(t, rule.SeverityInfo, d.Severity)
		}
	}
	assert.True(t, found, "extra rule must run next to the catalog")
}

func TestNewValidator_ExtraRuleConflictsWithCatalog(t *testing.T) {
	clash := rule.MustNew(rule.Spec{
		ID:          catalog.RuleMeshPresent,
		DisplayName: "Mesh present clash",
		Category:    rule.CategoryScene,
		Severity:    rule.SeverityError,
		AppliesTo:   []snapshot.NodeType{snapshot.NodeScene},
		Check: func(snapshot.Node, *rule.Context) ([]rule.Diagnostic, error) {
			return nil, nil
		},
	})

	_, err := NewValidator(
		WithScene(smallScene()),
		WithRules(clash),
		WithLogger(discardLogger()),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRule))
}

func TestNewValidator_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"disabled_rules:\n  - "+catalog.RuleSkeletonPresent+"\n",
	), 0o644))

	validator, err := NewValidator(
		WithScene(smallScene()),
		WithConfigFile(path),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)
	for _, d := range rep.Diagnostics() {
		assert.NotEqual(t, catalog.RuleSkeletonPresent, d.RuleID,
			"disabled rule must not run")
	}
}

func TestNewValidator_ConfigFileMissing(t *testing.T) {
	_, err := NewValidator(
		WithScene(smallScene()),
		WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")),
		WithLogger(discardLogger()),
	)
	require.Error(t, err)

	var sdkErr *SDKError
	require.True(t, errors.As(err, &sdkErr))
	assert.Equal(t, KindConfiguration, sdkErr.Kind)
}

func TestNewValidator_CatalogConfig(t *testing.T) {
	cfg := catalog.DefaultConfig()
	cfg.PolyCountLimit = 2

	validator, err := NewValidator(
		WithScene(smallScene()), // 6 polygons
		WithCatalogConfig(cfg),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, d := range rep.Diagnostics() {
		ids = append(ids, d.RuleID)
	}
	assert.Contains(t, ids, catalog.RulePolyBudget)
}

func TestValidator_SceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
meshes:
  - name: Prop
    vertex_count: 8
    poly_count: 6
`), 0o644))

	validator, err := NewValidator(
		WithSceneFile(path),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.UploadBlocking())
}

func TestValidator_Revalidate(t *testing.T) {
	adapter := &snapshot.StaticAdapter{Desc: smallScene()}
	validator, err := NewValidator(
		WithAdapter(adapter),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	first, err := validator.Validate(context.Background())
	require.NoError(t, err)

	second, err := validator.Revalidate(context.Background(), first, "/meshes/Prop")
	require.NoError(t, err)
	assert.True(t, second.Equivalent(first), "an unchanged scene keeps its findings")

	_, err = validator.Revalidate(context.Background(), first, "meshes/Prop")
	assert.Error(t, err, "changed paths must be absolute")
}

func TestValidator_ScopedRun(t *testing.T) {
	desc := smallScene()
	desc.Textures = []snapshot.TextureDesc{
		{Name: "Stray", Format: "psd", OnDisk: true},
	}

	validator, err := NewValidator(
		WithScene(desc),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	rep, err := validator.ValidateScope(context.Background(),
		snapshot.Scope{"/textures/Stray"})
	require.NoError(t, err)

	for _, d := range rep.Diagnostics() {
		assert.Equal(t, "/textures/Stray", d.NodePath,
			"scoped runs only report on scoped nodes")
	}
}

func TestValidator_CancelWhileIdle(t *testing.T) {
	validator, err := NewValidator(
		WithScene(smallScene()),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	// Cancelling with no active run must not poison the next one.
	validator.Cancel()
	rep, err := validator.Validate(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.Incomplete())
}
