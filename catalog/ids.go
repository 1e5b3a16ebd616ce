package catalog

// Identifiers of the built-in rules, for dependency declarations, severity
// overrides and report filtering.
const (
	RuleSkeletonPresent = "scene.skeleton-present"
	RuleMeshPresent     = "scene.mesh-present"

	RuleBodySuffix  = "naming.body-suffix"
	RuleSingleBody  = "naming.single-body"
	RuleFaceSuffix  = "naming.face-suffix"
	RuleSingleFace  = "naming.single-face"
	RuleObjectNames = "naming.object-names"

	RuleHipsBone      = "skeleton.hips-bone"
	RulePosePosition  = "skeleton.pose-position"
	RuleHipsRelations = "skeleton.hips-relations"
	RuleRotationMode  = "skeleton.rotation-mode"
	RuleStandardBones = "skeleton.standard-bones"
	RuleIKChains      = "skeleton.ik-chains"

	RulePolyBudget       = "mesh.poly-budget"
	RuleHairBudget       = "mesh.hair-budget"
	RuleUVChannels       = "mesh.uv-channels"
	RuleFaceBlendshapes  = "mesh.face-blendshapes"
	RuleRenderVisibility = "mesh.render-visibility"
	RuleMutedBlendshapes = "mesh.muted-blendshapes"
	RuleGazeBlendshapes  = "mesh.gaze-blendshapes"

	RuleSlotsResolve    = "material.slots-resolve"
	RuleTypeSupported   = "material.type-supported"
	RuleTexturesResolve = "material.textures-resolve"
	RuleUVRequired      = "material.uv-required"

	RuleTextureExists     = "texture.file-exists"
	RuleTextureFormat     = "texture.file-format"
	RuleTextureResolution = "texture.resolution-ceiling"
	RuleTextureColorSpace = "texture.color-space"
)
