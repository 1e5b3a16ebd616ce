package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/charcheck/sdk/rule"
)

// Config tunes the built-in rule catalog. The zero value is not usable;
// start from DefaultConfig or LoadConfig.
type Config struct {
	// PolyCountLimit is the maximum summed polygon count per character.
	PolyCountLimit int `yaml:"poly_count_limit"`

	// HairStrandLimit is the maximum summed rendered hair strand count.
	HairStrandLimit int `yaml:"hair_strand_limit"`

	// TextureFormats lists the accepted texture file extensions,
	// lowercase without the dot.
	TextureFormats []string `yaml:"texture_formats"`

	// TextureEdgeLimit is the resolution ceiling per texture edge in
	// pixels; larger textures draw a warning.
	TextureEdgeLimit int `yaml:"texture_edge_limit"`

	// ColorSpaces lists the accepted texture color-space names.
	ColorSpaces []string `yaml:"color_spaces"`

	// BodySuffix is the naming tag for the main armature.
	BodySuffix string `yaml:"body_suffix"`

	// FaceSuffix is the naming tag for the main face mesh.
	FaceSuffix string `yaml:"face_suffix"`

	// HipsBone is the name of the mandatory root pose bone.
	HipsBone string `yaml:"hips_bone"`

	// RequiredBones lists the standard humanoid bones; missing ones draw
	// a warning.
	RequiredBones []string `yaml:"required_bones"`

	// IKChains lists root/end bone pairs the platform builds IK from.
	IKChains [][2]string `yaml:"ik_chains"`

	// EyeBones lists the bone names treated as eye rigs.
	EyeBones []string `yaml:"eye_bones"`

	// GazeBlendshapes lists the blendshapes eye controls need.
	GazeBlendshapes []string `yaml:"gaze_blendshapes"`

	// BoneRotationMode is the rotation order every pose bone must use.
	BoneRotationMode string `yaml:"bone_rotation_mode"`

	// DisabledRules lists rule identifiers to leave out of the registry.
	// Rules depending on a disabled rule lose that dependency.
	DisabledRules []string `yaml:"disabled_rules"`

	// SeverityOverrides remaps rule severities by identifier, for studios
	// that promote warnings to errors or relax the defaults.
	SeverityOverrides map[string]string `yaml:"severity_overrides"`

	// CustomRules declares additional expression rules.
	CustomRules []ExprRuleConfig `yaml:"custom_rules"`
}

// ExprRuleConfig declares one CEL expression rule. The expression sees two
// variables: "node", the inspected node's attribute map, and "scene", the
// scene root's attribute map. It must evaluate to a boolean; false raises
// the configured diagnostic.
type ExprRuleConfig struct {
	ID          string   `yaml:"id"`
	DisplayName string   `yaml:"display_name"`
	Category    string   `yaml:"category"`
	Severity    string   `yaml:"severity"`
	AppliesTo   []string `yaml:"applies_to"`
	Requires    []string `yaml:"requires"`
	Expr        string   `yaml:"expr"`
	Message     string   `yaml:"message"`
	Remediation string   `yaml:"remediation"`
}

// DefaultConfig returns the catalog defaults, matching the platform's
// published character requirements.
func DefaultConfig() Config {
	return Config{
		PolyCountLimit:   1_500_000,
		HairStrandLimit:  100_000,
		TextureFormats:   []string{"jpg", "jpeg", "png", "tif", "tiff", "exr"},
		TextureEdgeLimit: 8192,
		ColorSpaces:      []string{"sRGB", "Non-Color", "Linear", "Raw"},
		BodySuffix:       "BODY",
		FaceSuffix:       "FACE",
		HipsBone:         "Hips",
		RequiredBones: []string{
			"Hips", "Spine", "Chest", "Neck", "Head",
			"LeftShoulder", "LeftArm", "LeftForeArm", "LeftHand",
			"RightShoulder", "RightArm", "RightForeArm", "RightHand",
			"LeftUpLeg", "LeftLeg", "LeftFoot",
			"RightUpLeg", "RightLeg", "RightFoot",
		},
		IKChains: [][2]string{
			{"LeftArm", "LeftHand"},
			{"RightArm", "RightHand"},
			{"LeftUpLeg", "LeftFoot"},
			{"RightUpLeg", "RightFoot"},
		},
		EyeBones:         []string{"LeftEye", "RightEye"},
		GazeBlendshapes:  []string{"eyeDn", "eyeL", "eyeR", "eyeUp"},
		BoneRotationMode: "XYZ",
	}
}

// LoadConfig reads a YAML catalog configuration and merges it over the
// defaults: zero-valued fields keep their default, so a file only needs to
// name what it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read catalog config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse catalog config %s: %w", path, err)
	}
	merged := mergeDefaults(cfg)
	if err := merged.Validate(); err != nil {
		return Config{}, fmt.Errorf("catalog config %s: %w", path, err)
	}
	return merged, nil
}

// mergeDefaults fills zero-valued scalar fields back in from the defaults.
// Slices unmarshal over the defaults already; only explicit empty lists
// clear them, which is intentional.
func mergeDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.PolyCountLimit == 0 {
		cfg.PolyCountLimit = def.PolyCountLimit
	}
	if cfg.HairStrandLimit == 0 {
		cfg.HairStrandLimit = def.HairStrandLimit
	}
	if cfg.TextureEdgeLimit == 0 {
		cfg.TextureEdgeLimit = def.TextureEdgeLimit
	}
	if cfg.BodySuffix == "" {
		cfg.BodySuffix = def.BodySuffix
	}
	if cfg.FaceSuffix == "" {
		cfg.FaceSuffix = def.FaceSuffix
	}
	if cfg.HipsBone == "" {
		cfg.HipsBone = def.HipsBone
	}
	if cfg.BoneRotationMode == "" {
		cfg.BoneRotationMode = def.BoneRotationMode
	}
	return cfg
}

// Validate checks the configuration for values the catalog cannot work
// with.
func (c Config) Validate() error {
	if c.PolyCountLimit < 1 {
		return fmt.Errorf("poly_count_limit must be positive, got %d", c.PolyCountLimit)
	}
	if c.HairStrandLimit < 1 {
		return fmt.Errorf("hair_strand_limit must be positive, got %d", c.HairStrandLimit)
	}
	if c.TextureEdgeLimit < 1 {
		return fmt.Errorf("texture_edge_limit must be positive, got %d", c.TextureEdgeLimit)
	}
	if len(c.TextureFormats) == 0 {
		return fmt.Errorf("texture_formats must not be empty")
	}
	for id, sev := range c.SeverityOverrides {
		if _, err := rule.ParseSeverity(sev); err != nil {
			return fmt.Errorf("severity override for %s: %w", id, err)
		}
	}
	for i, cr := range c.CustomRules {
		if cr.ID == "" {
			return fmt.Errorf("custom rule %d: id is required", i)
		}
		if cr.Expr == "" {
			return fmt.Errorf("custom rule %s: expr is required", cr.ID)
		}
	}
	return nil
}
