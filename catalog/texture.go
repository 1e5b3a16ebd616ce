package catalog

import (
	"fmt"
	"strings"

	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// textureSpecs holds image texture checks: file presence, accepted
// formats, and the soft resolution and color-space limits.
func textureSpecs(cfg Config) []rule.Spec {
	return []rule.Spec{
		{
			ID:          RuleTextureExists,
			DisplayName: "Texture file present",
			Category:    rule.CategoryTexture,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeTexture},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				tex := node.(*snapshot.Texture)
				if tex.OnDisk {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:      RuleTextureExists,
					Severity:    rule.SeverityError,
					Category:    rule.CategoryTexture,
					NodePath:    tex.Path(),
					Message:     fmt.Sprintf("Missing texture file! Texture %q was not found at %q.", tex.Name(), tex.FilePath),
					Remediation: "Place all texture files used by the character in the same directory as the asset file.",
				}}, nil
			},
		},
		{
			ID:          RuleTextureFormat,
			DisplayName: "Texture file format",
			Category:    rule.CategoryTexture,
			Severity:    rule.SeverityError,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeTexture},
			Requires:    []string{RuleTextureExists},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				tex := node.(*snapshot.Texture)
				format := strings.ToLower(tex.Format)
				for _, allowed := range cfg.TextureFormats {
					if format == allowed {
						return nil, nil
					}
				}
				return []rule.Diagnostic{{
					RuleID:   RuleTextureFormat,
					Severity: rule.SeverityError,
					Category: rule.CategoryTexture,
					NodePath: tex.Path(),
					Message: fmt.Sprintf("Unsupported texture file format %q on texture %q. Supported file formats: %s.",
						tex.Format, tex.Name(), strings.Join(cfg.TextureFormats, ", ")),
					Remediation: "Convert the texture to one of the supported formats.",
				}}, nil
			},
		},
		{
			ID:          RuleTextureResolution,
			DisplayName: "Texture resolution ceiling",
			Category:    rule.CategoryTexture,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeTexture},
			Requires:    []string{RuleTextureExists},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				tex := node.(*snapshot.Texture)
				if tex.Width <= cfg.TextureEdgeLimit && tex.Height <= cfg.TextureEdgeLimit {
					return nil, nil
				}
				return []rule.Diagnostic{{
					RuleID:   RuleTextureResolution,
					Severity: rule.SeverityWarning,
					Category: rule.CategoryTexture,
					NodePath: tex.Path(),
					Message: fmt.Sprintf("Very large texture! Texture %q is %dx%d, above the recommended %d pixels per edge, which slows processing.",
						tex.Name(), tex.Width, tex.Height, cfg.TextureEdgeLimit),
					Remediation: "Downscale the texture unless the extra resolution is essential.",
				}}, nil
			},
		},
		{
			ID:          RuleTextureColorSpace,
			DisplayName: "Texture color space",
			Category:    rule.CategoryTexture,
			Severity:    rule.SeverityWarning,
			AppliesTo:   []snapshot.NodeType{snapshot.NodeTexture},
			Requires:    []string{RuleTextureExists},
			Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
				tex := node.(*snapshot.Texture)
				// Unset color space means the host default; nothing to say.
				if tex.ColorSpace == "" {
					return nil, nil
				}
				for _, allowed := range cfg.ColorSpaces {
					if tex.ColorSpace == allowed {
						return nil, nil
					}
				}
				return []rule.Diagnostic{{
					RuleID:   RuleTextureColorSpace,
					Severity: rule.SeverityWarning,
					Category: rule.CategoryTexture,
					NodePath: tex.Path(),
					Message: fmt.Sprintf("Unexpected color space %q on texture %q. Colors may shift during processing. Expected one of: %s.",
						tex.ColorSpace, tex.Name(), strings.Join(cfg.ColorSpaces, ", ")),
					Remediation: "Set the texture's color space to a supported value.",
				}}, nil
			},
		},
	}
}
