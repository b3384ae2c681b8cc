// Package tiling assembles a scene's render tasks into GPU-ready draw
// batches.
//
// A frame is built in three stages. First, the scene's primitives are wrapped
// in a dependency graph of render tasks (blurs, clip masks, cached
// sub-scenes) rooted at the tasks that write directly to the screen.
// Second, the tasks are grouped into render passes in dependency order and
// packed into shared render-target atlases, each pass consuming the outputs
// of earlier passes. Third, within each pass, primitives are coalesced into
// draw batches that share GPU pipeline state, while preserving the draw
// order required for correct alpha blending.
//
// tiling does not compute primitive geometry, rasterize glyphs, decode
// images, or submit GPU commands; it orchestrates the collaborators that do.
package tiling
