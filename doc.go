// Package sdk provides the CharCheck validation SDK for 3D character assets.
//
// CharCheck inspects a character scene (skeleton, meshes, materials and
// textures), evaluates a configurable catalog of validation rules against an
// immutable snapshot of that scene, and produces a deterministic report that
// decides whether the asset is fit for upload.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Snapshot: an immutable, typed capture of the scene taken through an
//     Adapter, so a validation run never races with host-application edits
//   - Rule: a pure check with an identifier, severity, node-type
//     applicability and an explicit dependency set
//   - Registry: the rule collection; rejects duplicates and dependency
//     cycles at registration and resolves a stable evaluation order
//   - Engine: drives capture and evaluation through an explicit lifecycle,
//     honoring dependencies, cancellation and incremental re-validation
//   - Report: the immutable result with diagnostics, skips, derived severity
//     counts and the upload-blocking verdict
//
// # Getting Started
//
// Wrap a scene source in an adapter and run the built-in catalog:
//
//	import "github.com/charcheck/sdk"
//
//	validator, err := sdk.NewValidator(
//	    sdk.WithSceneFile("character.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, err := validator.Validate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if rep.UploadBlocking() {
//	    rep.Export(os.Stdout, report.FormatText)
//	}
//
// # Custom Rules
//
// Rules are plain values built from a Spec; register them next to the
// built-in catalog or replace it entirely:
//
//	r := rule.MustNew(rule.Spec{
//	    ID:        "mesh.manifold",
//	    Category:  rule.CategoryMesh,
//	    Severity:  rule.SeverityWarning,
//	    AppliesTo: []snapshot.NodeType{snapshot.NodeMesh},
//	    Check: func(node snapshot.Node, rctx *rule.Context) ([]rule.Diagnostic, error) {
//	        // check logic here
//	        return nil, nil
//	    },
//	})
//
// Declarative rules can also be written as CEL expressions in the catalog
// configuration file; they are compiled and type-checked at load time.
//
// # Error Handling
//
// The SDK uses sentinel errors and a structured error type:
//
//	if errors.Is(err, sdk.ErrRunInProgress) {
//	    // a run is already active on this validator
//	}
//
// # Observability
//
// The engine emits OpenTelemetry spans and metrics when a tracer or meter is
// supplied:
//
//	validator, err := sdk.NewValidator(
//	    sdk.WithAdapter(adapter),
//	    sdk.WithTracer(otel.Tracer("charcheck")),
//	    sdk.WithMeter(otel.Meter("charcheck")),
//	)
//
// # Thread Safety
//
// A Validator serializes runs: starting a run while another is active
// returns ErrRunInProgress. Cancel is safe to call from any goroutine.
// Snapshots and reports are immutable and safe to share.
package sdk
