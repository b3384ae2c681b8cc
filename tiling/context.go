package tiling

import (
	"github.com/gogpu/frame/internal/color"
	"github.com/gogpu/frame/text"
)

// RenderTargetContext is the read-only view over the resolved scene that a
// pass build borrows immutably for its entire duration (§5). It is supplied
// by the frame builder and never mutated by tiling.
type RenderTargetContext struct {
	StackingContexts []StackingContext
	ClipScrollGroups []ClipScrollGroup
	Primitives       PrimitiveSource
	ResourceCache    ResourceCache
}

// PrimitiveSource resolves a PrimitiveIndex to the metadata and bounding
// rect the batch assembler needs. The primitive store itself — geometry,
// clip computation, GPU address assignment — lives upstream and is out of
// scope here (§1); this interface is the narrow seam tiling borrows it
// through.
type PrimitiveSource interface {
	Metadata(idx PrimitiveIndex) *PrimitiveMetadata
	BoundingRect(idx PrimitiveIndex) (DeviceRect, bool)
}

// ResourceCache resolves an image mask key to the texture and GPU address
// ClipBatcher needs to emit an image-clip instance (§4.4). Implemented
// externally; out of scope here (§1).
type ResourceCache interface {
	ResolveImageMask(key ImageMaskKey) (TextureHandle, GPUAddress, error)
}

// GPUAddress is a byte or slot offset into shared GPU storage.
type GPUAddress int32

// RenderMode selects how a TextRun primitive is anti-aliased.
type RenderMode uint8

const (
	RenderModeAlpha RenderMode = iota
	RenderModeSubpixel
)

// PrimitiveMetadata is the resolved, read-only description of one
// primitive that the batch assembler needs to derive a batch key and emit
// instance rows. It is produced by the external primitive store; tiling
// never mutates it.
type PrimitiveMetadata struct {
	Kind PrimitiveKind

	GlobalPrimID  int32
	PrimAddress   GPUAddress
	LayerIndex    int32
	GPUDataAddr   GPUAddress
	GPUDataCount  int32
	ResourceAddr  GPUAddress
	IsAxisAligned bool
	IsOpaque      bool
	IsComplex     bool

	// ClipTask is the resolved clip-mask task for this primitive, if any.
	ClipTask    RenderTaskId
	HasClipTask bool

	// Textures backs AlphaBatchKey.Textures for kinds that sample a texture.
	Textures [3]TextureHandle

	// Glyphs is populated for TextRun primitives: one entry per glyph,
	// positioned and ready for GPU rendering. This is the module's existing
	// text-shaping output type, reused directly rather than duplicated.
	Glyphs []text.ShapedGlyph

	BlurRadius    int32
	RenderMode    RenderMode
	SubpixelColor color.ColorU8

	// CacheTaskIndex names the child-pass task a CacheImage/BoxShadow
	// primitive's data came from (§4.5.1).
	CacheTaskIndex RenderTaskIndex
}
