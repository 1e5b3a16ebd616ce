package snapshot

import "fmt"

// NodeType identifies the kind of scene node a path points at.
type NodeType string

const (
	// NodeScene is the snapshot root. Exactly one scene node exists per
	// snapshot; scene-level rules (presence checks) attach to it, and its
	// path "/" is an ancestor of every other node.
	NodeScene NodeType = "scene"

	// NodeSkeleton is an armature object driving body animation.
	NodeSkeleton NodeType = "skeleton"

	// NodeBone is a single bone inside a skeleton hierarchy.
	NodeBone NodeType = "bone"

	// NodeMesh is a polygonal mesh object.
	NodeMesh NodeType = "mesh"

	// NodeMaterial is a material definition bound to mesh slots.
	NodeMaterial NodeType = "material"

	// NodeTexture is an image texture referenced by materials.
	NodeTexture NodeType = "texture"
)

// IsValid returns true if the node type is one of the known kinds.
func (t NodeType) IsValid() bool {
	switch t {
	case NodeScene, NodeSkeleton, NodeBone, NodeMesh, NodeMaterial, NodeTexture:
		return true
	default:
		return false
	}
}

// String returns the string representation of the node type.
func (t NodeType) String() string {
	return string(t)
}

// AllNodeTypes returns every node type the snapshot schema defines, scene
// root first.
func AllNodeTypes() []NodeType {
	return []NodeType{NodeScene, NodeSkeleton, NodeBone, NodeMesh, NodeMaterial, NodeTexture}
}

// Node is the common view over every typed node in a Snapshot. Concrete
// types are *Skeleton, *Bone, *Mesh, *Material and *Texture; rules type-switch
// on the concrete type after checking Type.
type Node interface {
	// Type reports the node kind.
	Type() NodeType

	// Name is the host-side object name, unique within its kind.
	Name() string

	// Path is the stable, slash-separated address of the node inside the
	// snapshot (for example "/skeletons/Hero_BODY/Hips"). Diagnostics
	// reference nodes by path.
	Path() string

	// ParentPath is the path of the enclosing node, or "" for top-level
	// nodes. It exists for path reconstruction and ancestor checks only.
	ParentPath() string

	// Attrs exposes the node's attributes as a flat map for expression
	// rules. The map is rebuilt on every call; mutating it has no effect
	// on the node.
	Attrs() map[string]any
}

// base carries the identity fields shared by every node. The builder fills
// it in; nothing outside this package can alter it afterwards.
type base struct {
	name       string
	path       string
	parentPath string
}

func (b base) Name() string       { return b.name }
func (b base) Path() string       { return b.path }
func (b base) ParentPath() string { return b.parentPath }

// Scene is the root node of a snapshot. It carries no host data of its
// own; it exists so scene-level rules have a node to report against.
type Scene struct {
	base

	snap *Snapshot
}

// Type implements Node.
func (s *Scene) Type() NodeType { return NodeScene }

// Snapshot returns the snapshot this scene node roots.
func (s *Scene) Snapshot() *Snapshot { return s.snap }

// Attrs implements Node.
func (s *Scene) Attrs() map[string]any {
	return map[string]any{
		"name":           s.name,
		"skeleton_count": len(s.snap.skeletons),
		"mesh_count":     len(s.snap.meshes),
		"material_count": len(s.snap.materials),
		"texture_count":  len(s.snap.textures),
	}
}

// Skeleton is an armature and the root of a bone hierarchy.
type Skeleton struct {
	base

	// InPosePosition reports whether the armature is set to pose position
	// rather than rest position.
	InPosePosition bool

	bones  []*Bone
	byName map[string]*Bone
}

// Type implements Node.
func (s *Skeleton) Type() NodeType { return NodeSkeleton }

// Bones returns the skeleton's bones in capture order.
func (s *Skeleton) Bones() []*Bone { return s.bones }

// Bone returns the named bone, or nil if the skeleton has no such bone.
func (s *Skeleton) Bone(name string) *Bone { return s.byName[name] }

// Attrs implements Node.
func (s *Skeleton) Attrs() map[string]any {
	return map[string]any{
		"name":             s.name,
		"in_pose_position": s.InPosePosition,
		"bone_count":       len(s.bones),
	}
}

// Bone is a single bone. Hierarchy inside the skeleton is expressed through
// ParentBone; the skeleton itself is the node parent.
type Bone struct {
	base

	// ParentBone is the name of the parent bone, or "" for a root bone.
	ParentBone string

	// Deform reports whether the bone deforms mesh geometry.
	Deform bool

	// RotationMode is the host rotation order for the bone (for example
	// "XYZ" or "QUATERNION").
	RotationMode string

	// Connected reports whether the bone head is locked to its parent's
	// tail.
	Connected bool

	// LocalLocation reports whether bone location is interpreted in the
	// bone's local space.
	LocalLocation bool

	skeleton *Skeleton
}

// Type implements Node.
func (b *Bone) Type() NodeType { return NodeBone }

// Skeleton returns the skeleton this bone belongs to.
func (b *Bone) Skeleton() *Skeleton { return b.skeleton }

// Parent resolves the parent bone, or nil for a root bone or a dangling
// parent reference.
func (b *Bone) Parent() *Bone {
	if b.ParentBone == "" || b.skeleton == nil {
		return nil
	}
	return b.skeleton.Bone(b.ParentBone)
}

// Attrs implements Node.
func (b *Bone) Attrs() map[string]any {
	return map[string]any{
		"name":           b.name,
		"parent_bone":    b.ParentBone,
		"deform":         b.Deform,
		"rotation_mode":  b.RotationMode,
		"connected":      b.Connected,
		"local_location": b.LocalLocation,
	}
}

// Blendshape is a shape key on a mesh.
type Blendshape struct {
	// Name is the shape key name.
	Name string

	// Muted reports whether the shape key is muted; muted shapes receive
	// animation data but do not display it.
	Muted bool
}

// Mesh is a polygonal mesh object.
type Mesh struct {
	base

	// VertexCount is the evaluated vertex count.
	VertexCount int

	// PolyCount is the evaluated polygon count, subdivision included.
	PolyCount int

	// UVChannels is the number of UV layers on the mesh.
	UVChannels int

	// MaterialSlots holds the material name bound to each slot, in slot
	// order. An empty string marks an unassigned slot.
	MaterialSlots []string

	// Blendshapes holds the mesh's shape keys, basis excluded.
	Blendshapes []Blendshape

	// HiddenFromRender reports whether the object is disabled in renders.
	HiddenFromRender bool

	// HairStrands is the rendered hair strand count contributed by the
	// mesh's particle systems and curve modifiers.
	HairStrands int
}

// Type implements Node.
func (m *Mesh) Type() NodeType { return NodeMesh }

// Blendshape returns the named shape key, or nil if the mesh has none by
// that name.
func (m *Mesh) Blendshape(name string) *Blendshape {
	for i := range m.Blendshapes {
		if m.Blendshapes[i].Name == name {
			return &m.Blendshapes[i]
		}
	}
	return nil
}

// Attrs implements Node.
func (m *Mesh) Attrs() map[string]any {
	shapes := make([]string, 0, len(m.Blendshapes))
	for _, bs := range m.Blendshapes {
		shapes = append(shapes, bs.Name)
	}
	return map[string]any{
		"name":               m.name,
		"vertex_count":       m.VertexCount,
		"poly_count":         m.PolyCount,
		"uv_channels":        m.UVChannels,
		"material_slots":     append([]string(nil), m.MaterialSlots...),
		"blendshapes":        shapes,
		"hidden_from_render": m.HiddenFromRender,
		"hair_strands":       m.HairStrands,
	}
}

// MaterialType classifies how the platform shades a material.
type MaterialType string

const (
	// MaterialSurface is a standard PBR surface material.
	MaterialSurface MaterialType = "surface"

	// MaterialFlat is an unlit, flat-shaded material.
	MaterialFlat MaterialType = "flat"

	// MaterialHair is a hair/fur shading material.
	MaterialHair MaterialType = "hair"
)

// IsValid returns true if the material type is supported by the platform.
func (t MaterialType) IsValid() bool {
	switch t {
	case MaterialSurface, MaterialFlat, MaterialHair:
		return true
	default:
		return false
	}
}

// String returns the string representation of the material type.
func (t MaterialType) String() string { return string(t) }

// Material is a material definition.
type Material struct {
	base

	// MaterialType is the platform shading model the material maps to.
	MaterialType MaterialType

	// TextureRefs holds the names of Texture nodes the material's shader
	// graph samples.
	TextureRefs []string
}

// Type implements Node.
func (m *Material) Type() NodeType { return NodeMaterial }

// Attrs implements Node.
func (m *Material) Attrs() map[string]any {
	return map[string]any{
		"name":          m.name,
		"material_type": string(m.MaterialType),
		"texture_refs":  append([]string(nil), m.TextureRefs...),
	}
}

// Texture is an image texture.
type Texture struct {
	base

	// FilePath is the host-side path of the image file.
	FilePath string

	// Format is the lowercase file extension without the dot ("png",
	// "exr", ...).
	Format string

	// Width and Height are the image resolution in pixels.
	Width  int
	Height int

	// ColorSpace is the host color-space name ("sRGB", "Non-Color", ...).
	ColorSpace string

	// OnDisk reports whether the image file was found next to the asset
	// at capture time. Packed images are always considered on disk.
	OnDisk bool
}

// Type implements Node.
func (t *Texture) Type() NodeType { return NodeTexture }

// Attrs implements Node.
func (t *Texture) Attrs() map[string]any {
	return map[string]any{
		"name":        t.name,
		"file_path":   t.FilePath,
		"format":      t.Format,
		"width":       t.Width,
		"height":      t.Height,
		"color_space": t.ColorSpace,
		"on_disk":     t.OnDisk,
	}
}

// joinPath builds a node path from segments. Paths always start with a
// slash and never end with one.
func joinPath(segments ...string) string {
	path := ""
	for _, s := range segments {
		path = fmt.Sprintf("%s/%s", path, s)
	}
	return path
}
