// Package scene loads declarative graph descriptions from YAML and builds
// runnable laneflow graphs out of them.
//
// A scene document declares the shared subgraph configuration (capacity,
// block size, fill, allocation mode), scalar leaves, block nodes (mutable
// leaves and operator nodes wired by name), reductions, and an optional list
// of initial writes.
//
// Loading is two-phase, mirroring a schema-first pipeline:
//
//  1. The YAML document is validated against the embedded CUE schema
//     (schema.cue): field types, name shapes, and ranges fail fast with
//     positioned messages before any graph is built.
//  2. Build resolves references and constructs the graph. References must
//     point at earlier declarations, so a cyclic scene is unrepresentable -
//     the loader reports an unknown-node error instead of looping.
//
// The scene layer is a thin collaborator shim over the graph/ops packages:
// it owns naming and wiring, never recomputation semantics.
package scene
