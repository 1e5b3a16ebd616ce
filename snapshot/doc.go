// Package snapshot defines the immutable scene-graph snapshot that the
// validation engine and all rules operate on.
//
// A Snapshot is a point-in-time, host-neutral copy of the parts of a 3D
// character asset that validation cares about: skeletons and their bones,
// meshes, materials, and textures. Host integrations never hand live scene
// objects to the engine; an Adapter translates the host's native scene data
// into a SceneDesc and the package builds the typed node tree from it.
//
// Snapshots are read-only after construction. Re-validation always captures
// a fresh Snapshot rather than mutating an existing one, so rules can assume
// a consistent scene for the whole run.
//
// Two adapters ship with the package:
//
//   - StaticAdapter wraps an in-memory SceneDesc. Host bindings that already
//     traverse the scene themselves use this, and so do tests.
//   - FileAdapter loads a SceneDesc from a YAML scene description file, the
//     interchange shape host bindings dump for out-of-process validation.
//
// Structural problems discovered while building the tree (a bone whose
// parent does not exist, duplicate node names) do not abort capture. They
// are returned as Anomaly values alongside a best-effort Snapshot, and the
// engine turns them into error diagnostics before any rule runs.
package snapshot
