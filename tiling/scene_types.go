package tiling

// StackingContext is a compositable sub-scene with a bounding rect in
// device space and attached filter/mix-blend operations.
//
// Invariant: BoundingRect is the union of all contributing primitive
// device rects; an empty context is marked not visible and elided from
// the render graph upstream, before it ever reaches tiling.
type StackingContext struct {
	BoundingRect DeviceRect
	Visible      bool

	Filters      []Filter
	MixBlendMode MixBlendMode

	// ClipScrollGroupIndices names the ClipScrollGroups attached to this
	// context, indexing RenderTargetContext.ClipScrollGroups.
	ClipScrollGroupIndices []int
}

// ClipScrollGroup pairs a stacking context with a scroll layer, owning a
// transformed bounding rect and the index of this group's transform matrix
// in GPU packed-layer storage.
type ClipScrollGroup struct {
	TransformedBoundingRect DeviceRect
	PackedLayerIndex        int32
}

// FilterKind is the closed set of Blend filter operations §4.5.1 encodes
// into PrimitiveInstance.SubIndex via the fixed filter-to-code mapping.
type FilterKind uint8

const (
	FilterBlur FilterKind = iota
	FilterContrast
	FilterGrayscale
	FilterHueRotate
	FilterInvert
	FilterSaturate
	FilterSepia
	FilterBrightness
	FilterOpacity
)

func (f FilterKind) String() string {
	names := [...]string{
		"Blur", "Contrast", "Grayscale", "HueRotate", "Invert", "Saturate",
		"Sepia", "Brightness", "Opacity",
	}
	if int(f) < len(names) {
		return names[f]
	}
	return "FilterKind(?)"
}

// filterCode is the fixed filter-to-code mapping from §4.5.1: Blur=0,
// Contrast=1, Grayscale=2, HueRotate=3, Invert=4, Saturate=5, Sepia=6,
// Brightness=7, Opacity=8. FilterKind's ordinal values already match this
// table by construction; filterCode exists so the mapping has one named
// place to read rather than being implied by enum declaration order.
func filterCode(f FilterKind) int32 { return int32(f) }

// AngleFloatToFixed is the fixed-point scale HueRotate's angle argument is
// divided by before it is scaled by 65535 and rounded into the instance's
// fixed-point amount field (§4.5.1, S4). HueRotate is the only filter whose
// amount is divided by it.
const AngleFloatToFixed = 65536.0

// Filter is one stacking-context filter operation. Amount's unit depends
// on Kind: a blur radius for Blur, a multiplier for Contrast/Saturate/
// Sepia/Brightness/Opacity, an angle in radians for HueRotate, unused for
// Grayscale/Invert.
type Filter struct {
	Kind   FilterKind
	Amount float64
}

// MixBlendMode selects how a stacking context composites over its backdrop
// (CSS mix-blend-mode semantics); tiling only carries the mode's integer
// code through to the Composite instance's SubIndex (§4.5.1).
type MixBlendMode int32
