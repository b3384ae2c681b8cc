// Package text carries the shaped-glyph output type the tiling package's
// TextRun primitives are keyed on.
//
// The font loading, shaping, and rasterization pipeline that produces a
// ShapedGlyph is out of scope here; this package holds only the result
// type, matching the narrow seam tiling borrows it through.
package text
