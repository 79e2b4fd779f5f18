// Package sink serializes composed scenes into output formats.
//
// SVG is the native format; JSON is the data interchange format for frontend
// renderers; PNG and PDF convert from SVG via rsvg-convert. Every sink
// revalidates colors and clamps geometry to finite non-negative values at the
// serialization boundary, so a scene assembled by hand is as safe to export
// as one produced by scene.Compose.
package sink
