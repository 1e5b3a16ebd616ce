package snapshot

import "strings"

// Anomaly records a structural inconsistency found while building a
// Snapshot: host state that the typed tree cannot faithfully represent,
// such as a bone pointing at a parent that does not exist. Anomalies do not
// abort capture; the engine converts them into error diagnostics before any
// rule runs.
type Anomaly struct {
	// NodePath is the path of the node the anomaly was detected on.
	NodePath string

	// Message is a human-readable description of the inconsistency.
	Message string

	// Remediation suggests how to fix the host scene, when known.
	Remediation string
}

// Scope restricts a capture or validation run to a set of subtree paths.
// A nil or empty Scope covers the whole scene.
type Scope []string

// ScopeAll is the whole-scene scope.
var ScopeAll Scope

// IsAll returns true if the scope does not restrict anything.
func (s Scope) IsAll() bool { return len(s) == 0 }

// Contains reports whether a node path falls inside the scope. A scope
// entry covers the node at that exact path and every descendant.
func (s Scope) Contains(path string) bool {
	if s.IsAll() {
		return true
	}
	for _, prefix := range s {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Snapshot is an immutable point-in-time copy of the validated parts of a
// character asset. Build snapshots through a Builder or an Adapter; the
// zero value is empty but usable.
type Snapshot struct {
	root      *Scene
	skeletons []*Skeleton
	meshes    []*Mesh
	materials []*Material
	textures  []*Texture

	byPath map[string]Node
}

// Root returns the scene root node. Its path is "/", which makes it an
// ancestor of every other node for dependency purposes.
func (s *Snapshot) Root() *Scene { return s.root }

// Skeletons returns every captured skeleton in capture order. The host
// scene usually contains exactly one, but validation must be able to see
// duplicates to report them.
func (s *Snapshot) Skeletons() []*Skeleton { return s.skeletons }

// MainSkeleton returns the skeleton driving the character: the single
// captured skeleton, or the first one tagged with the BODY naming suffix
// when the scene contains several. Returns nil for a scene without
// skeletons.
func (s *Snapshot) MainSkeleton() *Skeleton {
	if len(s.skeletons) == 0 {
		return nil
	}
	if len(s.skeletons) == 1 {
		return s.skeletons[0]
	}
	for _, sk := range s.skeletons {
		if strings.HasSuffix(sk.Name(), "BODY") {
			return sk
		}
	}
	return s.skeletons[0]
}

// Meshes returns every captured mesh in capture order.
func (s *Snapshot) Meshes() []*Mesh { return s.meshes }

// Mesh returns the named mesh, or nil.
func (s *Snapshot) Mesh(name string) *Mesh {
	for _, m := range s.meshes {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Materials returns every captured material in capture order.
func (s *Snapshot) Materials() []*Material { return s.materials }

// Material returns the named material, or nil.
func (s *Snapshot) Material(name string) *Material {
	for _, m := range s.materials {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Textures returns every captured texture in capture order.
func (s *Snapshot) Textures() []*Texture { return s.textures }

// Texture returns the named texture, or nil.
func (s *Snapshot) Texture(name string) *Texture {
	for _, t := range s.textures {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Lookup resolves a node path, returning nil if the snapshot holds no node
// at that path.
func (s *Snapshot) Lookup(path string) Node {
	return s.byPath[path]
}

// Contains reports whether the snapshot holds a node at the given path.
func (s *Snapshot) Contains(path string) bool {
	_, ok := s.byPath[path]
	return ok
}

// NodesOfType returns every node of the given type in capture order,
// restricted to the scope.
func (s *Snapshot) NodesOfType(t NodeType, scope Scope) []Node {
	var out []Node
	appendNode := func(n Node) {
		if scope.Contains(n.Path()) {
			out = append(out, n)
		}
	}
	switch t {
	case NodeScene:
		appendNode(s.root)
	case NodeSkeleton:
		for _, sk := range s.skeletons {
			appendNode(sk)
		}
	case NodeBone:
		for _, sk := range s.skeletons {
			for _, b := range sk.bones {
				appendNode(b)
			}
		}
	case NodeMesh:
		for _, m := range s.meshes {
			appendNode(m)
		}
	case NodeMaterial:
		for _, m := range s.materials {
			appendNode(m)
		}
	case NodeTexture:
		for _, tx := range s.textures {
			appendNode(tx)
		}
	}
	return out
}

// Walk visits every node in the snapshot in deterministic order: the scene
// root, then skeletons (each followed by its bones), meshes, materials and
// textures. The walk stops early if fn returns false.
func (s *Snapshot) Walk(fn func(Node) bool) {
	if !fn(s.root) {
		return
	}
	for _, sk := range s.skeletons {
		if !fn(sk) {
			return
		}
		for _, b := range sk.bones {
			if !fn(b) {
				return
			}
		}
	}
	for _, m := range s.meshes {
		if !fn(m) {
			return
		}
	}
	for _, m := range s.materials {
		if !fn(m) {
			return
		}
	}
	for _, t := range s.textures {
		if !fn(t) {
			return
		}
	}
}

// NodeCount returns the total number of nodes in the snapshot.
func (s *Snapshot) NodeCount() int { return len(s.byPath) }
