package tiling

import (
	"fmt"

	"github.com/gogpu/frame/internal/color"
)

// PrimitiveKind is the closed taxonomy of primitives the core encodes into
// PrimitiveInstance rows. Geometry, clip, and style computation for each
// kind happen upstream (out of scope, §1); tiling only flattens the
// resolved metadata to GPU records.
type PrimitiveKind uint8

const (
	PrimitiveRectangle PrimitiveKind = iota
	PrimitiveTextRun
	PrimitiveImage
	PrimitiveImageRect
	PrimitiveYuvImage
	PrimitiveBorder
	PrimitiveAlignedGradient
	PrimitiveAngleGradient
	PrimitiveRadialGradient
	PrimitiveBoxShadow
	PrimitiveCacheImage
)

func (k PrimitiveKind) String() string {
	names := [...]string{
		"Rectangle", "TextRun", "Image", "ImageRect", "YuvImage", "Border",
		"AlignedGradient", "AngleGradient", "RadialGradient", "BoxShadow",
		"CacheImage",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "PrimitiveKind(?)"
}

// AlphaBatchKind is the closed tagged union of what an AlphaBatchKey's kind
// field may hold: the primitive kinds above, plus the three non-primitive
// alpha render items.
type AlphaBatchKind uint8

const (
	BatchRectangle AlphaBatchKind = iota
	BatchTextRun
	BatchImage
	BatchImageRect
	BatchYuvImage
	BatchBorder
	BatchAlignedGradient
	BatchAngleGradient
	BatchRadialGradient
	BatchBoxShadow
	BatchCacheImage
	BatchBlend
	BatchHardwareComposite
	BatchComposite
)

func (k AlphaBatchKind) String() string {
	names := [...]string{
		"Rectangle", "TextRun", "Image", "ImageRect", "YuvImage", "Border",
		"AlignedGradient", "AngleGradient", "RadialGradient", "BoxShadow",
		"CacheImage", "Blend", "HardwareComposite", "Composite",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "AlphaBatchKind(?)"
}

// batchKindForPrimitive maps a primitive kind to its batch kind; the two
// enums share ordinal layout for the primitive-kind range by construction,
// but this indirection keeps that an implementation detail rather than a
// cross-package assumption.
func batchKindForPrimitive(k PrimitiveKind) AlphaBatchKind {
	return AlphaBatchKind(k)
}

// AlphaBatchKeyFlags are orthogonal pipeline-state bits folded into the
// batch key fingerprint.
type AlphaBatchKeyFlags uint8

const (
	FlagNeedsClipping AlphaBatchKeyFlags = 1 << iota
	FlagAxisAligned
)

// BlendModeKind tags the closed set of blend modes a batch may use.
type BlendModeKind uint8

const (
	BlendNone BlendModeKind = iota
	BlendAlpha
	BlendPremultipliedAlpha
	BlendSubpixel
)

func (k BlendModeKind) String() string {
	switch k {
	case BlendNone:
		return "None"
	case BlendAlpha:
		return "Alpha"
	case BlendPremultipliedAlpha:
		return "PremultipliedAlpha"
	case BlendSubpixel:
		return "Subpixel"
	default:
		return "BlendModeKind(?)"
	}
}

// BlendMode is BlendNone/Alpha/PremultipliedAlpha, or Subpixel carrying the
// text color the subpixel resolve shader needs.
type BlendMode struct {
	Kind  BlendModeKind
	Color color.ColorU8 // only meaningful when Kind == BlendSubpixel
}

// GetBlendMode derives the blend mode for a primitive per §4.5.2.
//
// needsBlending must already fold in "transform is complex OR primitive
// not opaque OR has clip task" — that OR is the caller's responsibility
// since it depends on context tiling does not own (the transform and clip
// resolution upstream).
func GetBlendMode(needsBlending bool, meta *PrimitiveMetadata) BlendMode {
	switch meta.Kind {
	case PrimitiveTextRun:
		if meta.BlurRadius == 0 {
			if meta.RenderMode == RenderModeSubpixel {
				return BlendMode{Kind: BlendSubpixel, Color: meta.SubpixelColor}
			}
			return BlendMode{Kind: BlendAlpha}
		}
		// Subpixel AA is disabled once blurred.
		return BlendMode{Kind: BlendAlpha}

	case PrimitiveImage, PrimitiveImageRect, PrimitiveAlignedGradient,
		PrimitiveAngleGradient, PrimitiveRadialGradient:
		if needsBlending {
			return BlendMode{Kind: BlendPremultipliedAlpha}
		}
		return BlendMode{Kind: BlendNone}

	default:
		if needsBlending {
			return BlendMode{Kind: BlendAlpha}
		}
		return BlendMode{Kind: BlendNone}
	}
}

// TextureHandle identifies a GPU texture an AlphaBatchKey slot may bind.
// The zero value is the "invalid"/uninitialised sentinel: it is compatible
// with any other handle in AlphaBatchKey.IsCompatibleWith.
type TextureHandle struct {
	ID    uint32
	Valid bool
}

// InvalidTexture is the uninitialised sentinel texture slot.
var InvalidTexture = TextureHandle{}

func texturesCompatible(a, b TextureHandle) bool {
	if !a.Valid || !b.Valid {
		return true
	}
	return a.ID == b.ID
}

// AlphaBatchKey is the pipeline-state fingerprint two primitives must share
// to land in the same PrimitiveBatch (§3).
type AlphaBatchKey struct {
	Kind      AlphaBatchKind
	Flags     AlphaBatchKeyFlags
	BlendMode BlendMode
	Textures  [3]TextureHandle
}

// IsCompatibleWith reports whether two keys may share a batch: kind, flags,
// and blend mode must match exactly, and every texture slot must either be
// identical or have at least one side be the invalid sentinel.
func (k AlphaBatchKey) IsCompatibleWith(o AlphaBatchKey) bool {
	if k.Kind != o.Kind || k.Flags != o.Flags {
		return false
	}
	if k.BlendMode.Kind != o.BlendMode.Kind {
		return false
	}
	if k.BlendMode.Kind == BlendSubpixel && k.BlendMode.Color != o.BlendMode.Color {
		return false
	}
	for i := range k.Textures {
		if !texturesCompatible(k.Textures[i], o.Textures[i]) {
			return false
		}
	}
	return true
}

func (k AlphaBatchKey) String() string {
	return fmt.Sprintf("AlphaBatchKey{%v flags=%02b blend=%v}", k.Kind, k.Flags, k.BlendMode.Kind)
}

// PrimitiveBatchItem records the origin of one row in a PrimitiveBatch's
// data, used only during batch-merge overlap tests (§4.5); it is not part
// of the wire-level output.
type PrimitiveBatchItem struct {
	BoundingRect DeviceRect
}

// PrimitiveBatch is a set of draws sharing pipeline state, submitted to
// the GPU as one call. Composite batches hold exactly one instance and are
// never merged into (§4.5 step 1c).
type PrimitiveBatch struct {
	Key   AlphaBatchKey
	Data  []PrimitiveInstance
	Items []PrimitiveBatchItem
}

// NewInstancesBatch creates an empty growable batch for the given key.
func NewInstancesBatch(key AlphaBatchKey) *PrimitiveBatch {
	return &PrimitiveBatch{Key: key}
}

// NewCompositeBatch creates a standalone single-instance batch; Composite
// items always get one of these and are never coalesced (§4.5).
func NewCompositeBatch(key AlphaBatchKey, inst PrimitiveInstance, item PrimitiveBatchItem) *PrimitiveBatch {
	return &PrimitiveBatch{Key: key, Data: []PrimitiveInstance{inst}, Items: []PrimitiveBatchItem{item}}
}

// Push appends one row to a growable batch.
func (b *PrimitiveBatch) Push(inst PrimitiveInstance, item PrimitiveBatchItem) {
	b.Data = append(b.Data, inst)
	b.Items = append(b.Items, item)
}

// OverlapsAny reports whether any existing item in this batch intersects
// rect — the overlap test that bounds the alpha-batch merge scan (§4.5
// step 2).
func (b *PrimitiveBatch) OverlapsAny(rect DeviceRect) bool {
	for _, item := range b.Items {
		if item.BoundingRect.Intersects(rect) {
			return true
		}
	}
	return false
}
