// Package frame defines the data contract between the algorithm execution
// backend and the rendering engine.
//
// A [Session] is an ordered batch of [Frame] values, each a complete,
// self-contained snapshot of algorithm state. Frames carry typed structure
// snapshots (arrays, stacks, queues, linked lists, trees, graphs) plus an
// optional flat variable table.
//
// # References, not pointers
//
// Tree child ids and graph edge endpoints are lookup keys into flat node
// collections. The snapshot types expose Node(id) accessors that return an
// explicit ok result; a reference that does not resolve (a dangling
// reference) is the caller's signal to skip the dependent visual element.
//
// # Highlight data stays raw
//
// The backend emits highlight data in several historical shapes. Snapshot
// types keep the field as json.RawMessage; pkg/annotate canonicalizes it at
// the rendering boundary so the rest of the engine sees one representation.
package frame
