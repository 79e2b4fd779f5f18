// Package render turns composed scenes into output artifacts.
//
// # Overview
//
// Rendering is split into three layers:
//
//   - [scene] builds the visual description (groups of primitive shapes)
//     for one frame of a session
//   - [sink] serializes a scene to SVG, JSON, PNG, or PDF
//   - [dot] exports graph and tree snapshots as Graphviz DOT
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The sinks use them for
// their raster and document outputs.
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Degradation
//
// Scene composition never fails: malformed or empty structure snapshots
// render as labeled placeholders, and the sinks clamp non-finite geometry
// and re-validate colors at the serialization boundary.
//
// [scene]: github.com/algoviz/algoviz/pkg/render/scene
// [sink]: github.com/algoviz/algoviz/pkg/render/sink
// [dot]: github.com/algoviz/algoviz/pkg/render/dot
package render
