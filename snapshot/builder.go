package snapshot

import "fmt"

// SceneDesc is the host-neutral description of a scene that snapshots are
// built from. Host adapters fill one in from native scene data; the YAML
// scene description files consumed by FileAdapter unmarshal into the same
// shape.
type SceneDesc struct {
	Skeletons []SkeletonDesc `yaml:"skeletons"`
	Meshes    []MeshDesc     `yaml:"meshes"`
	Materials []MaterialDesc `yaml:"materials"`
	Textures  []TextureDesc  `yaml:"textures"`
}

// SkeletonDesc describes one armature.
type SkeletonDesc struct {
	Name           string     `yaml:"name"`
	InPosePosition bool       `yaml:"in_pose_position"`
	Bones          []BoneDesc `yaml:"bones"`
}

// BoneDesc describes one bone inside a skeleton.
type BoneDesc struct {
	Name          string `yaml:"name"`
	Parent        string `yaml:"parent"`
	Deform        bool   `yaml:"deform"`
	RotationMode  string `yaml:"rotation_mode"`
	Connected     bool   `yaml:"connected"`
	LocalLocation bool   `yaml:"local_location"`
}

// MeshDesc describes one mesh object.
type MeshDesc struct {
	Name             string           `yaml:"name"`
	VertexCount      int              `yaml:"vertex_count"`
	PolyCount        int              `yaml:"poly_count"`
	UVChannels       int              `yaml:"uv_channels"`
	MaterialSlots    []string         `yaml:"material_slots"`
	Blendshapes      []BlendshapeDesc `yaml:"blendshapes"`
	HiddenFromRender bool             `yaml:"hidden_from_render"`
	HairStrands      int              `yaml:"hair_strands"`
}

// BlendshapeDesc describes one shape key on a mesh.
type BlendshapeDesc struct {
	Name  string `yaml:"name"`
	Muted bool   `yaml:"muted"`
}

// MaterialDesc describes one material.
type MaterialDesc struct {
	Name         string   `yaml:"name"`
	MaterialType string   `yaml:"material_type"`
	TextureRefs  []string `yaml:"texture_refs"`
}

// TextureDesc describes one image texture.
type TextureDesc struct {
	Name       string `yaml:"name"`
	FilePath   string `yaml:"file_path"`
	Format     string `yaml:"format"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ColorSpace string `yaml:"color_space"`
	OnDisk     bool   `yaml:"on_disk"`
}

// Builder assembles a SceneDesc incrementally. It is a convenience for host
// adapters and tests; Build on the finished description does the real work.
type Builder struct {
	desc SceneDesc
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// AddSkeleton appends a skeleton description.
func (b *Builder) AddSkeleton(d SkeletonDesc) *Builder {
	b.desc.Skeletons = append(b.desc.Skeletons, d)
	return b
}

// AddMesh appends a mesh description.
func (b *Builder) AddMesh(d MeshDesc) *Builder {
	b.desc.Meshes = append(b.desc.Meshes, d)
	return b
}

// AddMaterial appends a material description.
func (b *Builder) AddMaterial(d MaterialDesc) *Builder {
	b.desc.Materials = append(b.desc.Materials, d)
	return b
}

// AddTexture appends a texture description.
func (b *Builder) AddTexture(d TextureDesc) *Builder {
	b.desc.Textures = append(b.desc.Textures, d)
	return b
}

// Desc returns the accumulated scene description.
func (b *Builder) Desc() SceneDesc { return b.desc }

// Snapshot builds the snapshot from the accumulated description. See Build.
func (b *Builder) Snapshot(scope Scope) (*Snapshot, []Anomaly) {
	return Build(b.desc, scope)
}

// Build converts a scene description into an immutable Snapshot, keeping
// only nodes inside the scope. Structural inconsistencies are collected as
// anomalies; the returned snapshot is always usable.
//
// Detected anomalies:
//   - duplicate node names within a kind (the later node is dropped)
//   - a bone whose parent bone does not exist in the same skeleton
//   - a bone parent chain that loops back on itself
func Build(desc SceneDesc, scope Scope) (*Snapshot, []Anomaly) {
	snap := &Snapshot{byPath: make(map[string]Node)}
	snap.root = &Scene{base: base{name: "scene", path: "/"}, snap: snap}
	snap.byPath["/"] = snap.root
	var anomalies []Anomaly

	add := func(n Node) bool {
		if _, dup := snap.byPath[n.Path()]; dup {
			anomalies = append(anomalies, Anomaly{
				NodePath:    n.Path(),
				Message:     fmt.Sprintf("duplicate %s name %q; the later object was ignored", n.Type(), n.Name()),
				Remediation: "Rename the duplicate object so every name is unique.",
			})
			return false
		}
		snap.byPath[n.Path()] = n
		return true
	}

	for _, sd := range desc.Skeletons {
		sk := &Skeleton{
			base:           base{name: sd.Name, path: joinPath("skeletons", sd.Name)},
			InPosePosition: sd.InPosePosition,
			byName:         make(map[string]*Bone),
		}
		if !scope.Contains(sk.Path()) && !scopeTouchesSubtree(scope, sk.Path()) {
			continue
		}
		if !add(sk) {
			continue
		}
		for _, bd := range sd.Bones {
			bone := &Bone{
				base: base{
					name:       bd.Name,
					path:       joinPath("skeletons", sd.Name, bd.Name),
					parentPath: sk.Path(),
				},
				ParentBone:    bd.Parent,
				Deform:        bd.Deform,
				RotationMode:  bd.RotationMode,
				Connected:     bd.Connected,
				LocalLocation: bd.LocalLocation,
				skeleton:      sk,
			}
			if !scope.Contains(bone.Path()) {
				continue
			}
			if !add(bone) {
				continue
			}
			sk.bones = append(sk.bones, bone)
			sk.byName[bone.Name()] = bone
		}
		anomalies = append(anomalies, checkBoneHierarchy(sk)...)
		snap.skeletons = append(snap.skeletons, sk)
	}

	for _, md := range desc.Meshes {
		mesh := &Mesh{
			base:             base{name: md.Name, path: joinPath("meshes", md.Name)},
			VertexCount:      md.VertexCount,
			PolyCount:        md.PolyCount,
			UVChannels:       md.UVChannels,
			MaterialSlots:    append([]string(nil), md.MaterialSlots...),
			HiddenFromRender: md.HiddenFromRender,
			HairStrands:      md.HairStrands,
		}
		for _, bs := range md.Blendshapes {
			mesh.Blendshapes = append(mesh.Blendshapes, Blendshape{Name: bs.Name, Muted: bs.Muted})
		}
		if !scope.Contains(mesh.Path()) {
			continue
		}
		if add(mesh) {
			snap.meshes = append(snap.meshes, mesh)
		}
	}

	for _, md := range desc.Materials {
		mat := &Material{
			base:         base{name: md.Name, path: joinPath("materials", md.Name)},
			MaterialType: MaterialType(md.MaterialType),
			TextureRefs:  append([]string(nil), md.TextureRefs...),
		}
		if !scope.Contains(mat.Path()) {
			continue
		}
		if add(mat) {
			snap.materials = append(snap.materials, mat)
		}
	}

	for _, td := range desc.Textures {
		tex := &Texture{
			base:       base{name: td.Name, path: joinPath("textures", td.Name)},
			FilePath:   td.FilePath,
			Format:     td.Format,
			Width:      td.Width,
			Height:     td.Height,
			ColorSpace: td.ColorSpace,
			OnDisk:     td.OnDisk,
		}
		if !scope.Contains(tex.Path()) {
			continue
		}
		if add(tex) {
			snap.textures = append(snap.textures, tex)
		}
	}

	return snap, anomalies
}

// scopeTouchesSubtree reports whether any scope entry addresses a node
// under root, so a skeleton is still captured when only one of its bones is
// in scope.
func scopeTouchesSubtree(scope Scope, root string) bool {
	if scope.IsAll() {
		return true
	}
	for _, prefix := range scope {
		if len(prefix) > len(root) && prefix[:len(root)] == root && prefix[len(root)] == '/' {
			return true
		}
	}
	return false
}

// checkBoneHierarchy flags dangling parent references and parent loops.
func checkBoneHierarchy(sk *Skeleton) []Anomaly {
	var anomalies []Anomaly
	for _, bone := range sk.bones {
		if bone.ParentBone != "" && sk.Bone(bone.ParentBone) == nil {
			anomalies = append(anomalies, Anomaly{
				NodePath:    bone.Path(),
				Message:     fmt.Sprintf("bone %q references missing parent bone %q", bone.Name(), bone.ParentBone),
				Remediation: "Reparent the bone to an existing bone or clear its parent.",
			})
			continue
		}
		// Loop detection: walk up at most bone-count steps.
		seen := 0
		for cur := bone.Parent(); cur != nil; cur = cur.Parent() {
			seen++
			if seen > len(sk.bones) {
				anomalies = append(anomalies, Anomaly{
					NodePath:    bone.Path(),
					Message:     fmt.Sprintf("bone %q is part of a parent cycle", bone.Name()),
					Remediation: "Break the bone parent cycle so the hierarchy is a tree.",
				})
				break
			}
		}
	}
	return anomalies
}
