package snapshot

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Adapter captures a Snapshot from some source of scene data. Capture is a
// read-only, synchronous traversal: it never mutates the source and it
// completes before evaluation begins, so rules always observe a consistent
// point-in-time copy.
//
// Capture returns a best-effort snapshot together with any structural
// anomalies found along the way. It returns a non-nil error only when the
// source itself cannot be read at all (for example a missing scene file);
// scene content problems are anomalies, not errors.
//
// The scope restricts which nodes the snapshot keeps. The engine always
// captures with ScopeAll, because rules read cross-node state through the
// snapshot; narrower scopes serve callers that want a partial tree.
type Adapter interface {
	Capture(ctx context.Context, scope Scope) (*Snapshot, []Anomaly, error)
}

// StaticAdapter serves captures from an in-memory scene description. Host
// bindings that traverse the scene themselves hand the result over as a
// SceneDesc; tests use it to stage scenes.
type StaticAdapter struct {
	// Desc is the scene description to capture from.
	Desc SceneDesc
}

// Capture implements Adapter.
func (a *StaticAdapter) Capture(ctx context.Context, scope Scope) (*Snapshot, []Anomaly, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	snap, anomalies := Build(a.Desc, scope)
	return snap, anomalies, nil
}

// FileAdapter captures from a YAML scene description file, the interchange
// format host bindings write for out-of-process validation. The file is
// re-read on every capture so re-validation picks up edits.
type FileAdapter struct {
	// Path is the scene description file path.
	Path string
}

// Capture implements Adapter.
func (a *FileAdapter) Capture(ctx context.Context, scope Scope) (*Snapshot, []Anomaly, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene description %s: %w", a.Path, err)
	}
	var desc SceneDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, nil, fmt.Errorf("parse scene description %s: %w", a.Path, err)
	}
	snap, anomalies := Build(desc, scope)
	return snap, anomalies, nil
}
