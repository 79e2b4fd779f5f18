// Package scene turns frame snapshots into renderer-agnostic visual
// descriptions.
//
// Each structure category has a renderer producing a Group of positioned
// elements (rects, circles, connectors, text); Compose lays the groups out
// for a whole frame. Renderers never return errors: malformed, empty, or
// unsupported input degrades to labeled placeholder groups so one bad
// structure can never take down a frame. Sinks in pkg/render/sink consume
// the resulting Scene.
package scene
