package tiling

import "encoding/binary"

// PrimitiveInstance is the fixed-width GPU record every alpha-batch row
// flattens to. Geometry and clip computation happen upstream; this struct
// only carries the integer addresses and sentinels a shader needs to find
// that data.
//
// Sentinels: ClipTaskIndex == OpaqueTaskIndex means "no clip mask applies".
// GlobalPrimID == -1 and LayerIndex == -1 mark non-primitive rows (blend,
// composite, hardware-composite).
type PrimitiveInstance struct {
	GlobalPrimID  int32
	PrimAddress   int32
	TaskIndex     int32
	ClipTaskIndex int32
	LayerIndex    int32
	SubIndex      int32
	UserData      [2]int32
	ZSortIndex    int32
}

// instanceByteSize is the wire size of one PrimitiveInstance row: nine
// little-endian int32 fields.
const instanceByteSize = 9 * 4

// AppendTo serialises the instance as nine little-endian int32 fields in
// the order listed below (ZSortIndex before UserData, unlike the Go struct
// declaration) and appends them to buf, returning the extended slice.
//
// Field order follows the source struct's declared order exactly
// (global_prim_id, prim_address, task_index, clip_task_index, layer_index,
// sub_index, z_sort_index, user_data[0], user_data[1]) rather than the
// alternate ordering floated in some wire-format notes, since no shader
// source is in scope here to confirm GPU-side layout (§9 Open Question;
// resolved in the accompanying design notes).
func (p PrimitiveInstance) AppendTo(buf []byte) []byte {
	var tmp [instanceByteSize]byte
	binary.LittleEndian.PutUint32(tmp[0:4], uint32(p.GlobalPrimID))
	binary.LittleEndian.PutUint32(tmp[4:8], uint32(p.PrimAddress))
	binary.LittleEndian.PutUint32(tmp[8:12], uint32(p.TaskIndex))
	binary.LittleEndian.PutUint32(tmp[12:16], uint32(p.ClipTaskIndex))
	binary.LittleEndian.PutUint32(tmp[16:20], uint32(p.LayerIndex))
	binary.LittleEndian.PutUint32(tmp[20:24], uint32(p.SubIndex))
	binary.LittleEndian.PutUint32(tmp[24:28], uint32(p.ZSortIndex))
	binary.LittleEndian.PutUint32(tmp[28:32], uint32(p.UserData[0]))
	binary.LittleEndian.PutUint32(tmp[32:36], uint32(p.UserData[1]))
	return append(buf, tmp[:]...)
}

// AlphaRenderItemKind tags the closed union of things an AlphaBatcher scan
// processes: a resolved scene primitive, or one of the three compositing
// operations that have no backing primitive of their own.
type AlphaRenderItemKind uint8

const (
	ItemPrimitive AlphaRenderItemKind = iota
	ItemBlend
	ItemHardwareComposite
	ItemComposite
)

// AlphaRenderItem is one entry in a task's alpha or opaque item list.
type AlphaRenderItem struct {
	Kind AlphaRenderItemKind

	// Prim is valid when Kind == ItemPrimitive.
	Prim PrimitiveIndex

	// StackingContext is valid for Blend/HardwareComposite/Composite items,
	// whose bounding rect is the stacking context's rather than a
	// primitive's (§4.5 step 1).
	StackingContext int

	Filter       Filter
	SrcTask      RenderTaskId
	BackdropTask RenderTaskId
	MixBlend     MixBlendMode
}

// BoundingRect resolves the item's device bounding rect, used for the
// overlap test during alpha-batch merge scanning (§4.5 step 2).
func (item AlphaRenderItem) BoundingRect(ctx *RenderTargetContext) DeviceRect {
	switch item.Kind {
	case ItemPrimitive:
		rect, ok := ctx.Primitives.BoundingRect(item.Prim)
		if !ok {
			abortf("no bounding rect for primitive %d", item.Prim)
		}
		return rect
	default:
		return ctx.StackingContexts[item.StackingContext].BoundingRect
	}
}

// BatchKey derives the AlphaBatchKey for this item (§4.5 step 1).
func (item AlphaRenderItem) BatchKey(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) AlphaBatchKey {
	switch item.Kind {
	case ItemPrimitive:
		meta := ctx.Primitives.Metadata(item.Prim)
		needsBlending := meta.IsComplex || !meta.IsOpaque || meta.HasClipTask
		flags := AlphaBatchKeyFlags(0)
		if meta.HasClipTask {
			flags |= FlagNeedsClipping
		}
		if meta.IsAxisAligned {
			flags |= FlagAxisAligned
		}
		return AlphaBatchKey{
			Kind:      batchKindForPrimitive(meta.Kind),
			Flags:     flags,
			BlendMode: GetBlendMode(needsBlending, meta),
			Textures:  meta.Textures,
		}
	case ItemBlend:
		return AlphaBatchKey{Kind: BatchBlend, BlendMode: BlendMode{Kind: BlendAlpha}}
	case ItemHardwareComposite:
		return AlphaBatchKey{Kind: BatchHardwareComposite, BlendMode: BlendMode{Kind: BlendPremultipliedAlpha}}
	case ItemComposite:
		return AlphaBatchKey{Kind: BatchComposite, BlendMode: BlendMode{Kind: BlendPremultipliedAlpha}}
	default:
		abortf("unknown alpha render item kind %d", item.Kind)
		panic("unreachable")
	}
}

// clipTaskIndexOrOpaque resolves a primitive's clip task to its dense
// index, or OpaqueTaskIndex if it has none.
func clipTaskIndexOrOpaque(meta *PrimitiveMetadata, tasks *RenderTaskCollection, pass int) int32 {
	if !meta.HasClipTask {
		return int32(OpaqueTaskIndex)
	}
	return int32(tasks.GetTaskIndex(meta.ClipTask, pass))
}

// encodePrimitive appends the per-kind instance rows for one primitive
// item, per the table in §4.5.1. Every kind's only variation is which
// fields carry which semantic integers.
func encodePrimitive(meta *PrimitiveMetadata, taskIndex RenderTaskIndex, tasks *RenderTaskCollection, pass int, emit func(PrimitiveInstance)) {
	clipIdx := clipTaskIndexOrOpaque(meta, tasks, pass)
	base := PrimitiveInstance{
		GlobalPrimID:  meta.GlobalPrimID,
		PrimAddress:   int32(meta.PrimAddress),
		TaskIndex:     int32(taskIndex),
		ClipTaskIndex: clipIdx,
		LayerIndex:    meta.LayerIndex,
	}

	switch meta.Kind {
	case PrimitiveRectangle:
		inst := base
		inst.SubIndex = 0
		inst.UserData = [2]int32{0, 0}
		emit(inst)

	case PrimitiveTextRun:
		for i := range meta.Glyphs {
			inst := base
			inst.SubIndex = int32(meta.GPUDataAddr) + int32(i)
			inst.UserData[0] = int32(meta.ResourceAddr) + int32(i)
			emit(inst)
		}

	case PrimitiveImage, PrimitiveImageRect:
		inst := base
		inst.UserData[0] = int32(meta.ResourceAddr)
		emit(inst)

	case PrimitiveYuvImage:
		inst := base
		inst.UserData[0] = int32(meta.ResourceAddr)
		emit(inst)

	case PrimitiveBorder:
		for seg := int32(0); seg < 8; seg++ {
			inst := base
			inst.SubIndex = seg
			emit(inst)
		}

	case PrimitiveAlignedGradient:
		for i := int32(0); i < meta.GPUDataCount-1; i++ {
			inst := base
			inst.SubIndex = int32(meta.GPUDataAddr) + i
			emit(inst)
		}

	case PrimitiveAngleGradient, PrimitiveRadialGradient:
		inst := base
		inst.SubIndex = int32(meta.GPUDataAddr)
		inst.UserData[0] = meta.GPUDataCount
		emit(inst)

	case PrimitiveBoxShadow:
		for i := int32(0); i < meta.GPUDataCount; i++ {
			inst := base
			inst.SubIndex = int32(meta.GPUDataAddr) + i
			inst.UserData[0] = int32(meta.CacheTaskIndex)
			emit(inst)
		}

	case PrimitiveCacheImage:
		inst := base
		inst.UserData[0] = int32(meta.CacheTaskIndex)
		emit(inst)

	default:
		abortf("unknown primitive kind %v in primitive encoder", meta.Kind)
	}
}

// encodeBlend appends the single instance for a Blend item (§4.5.1).
// SubIndex carries the filter-mode code; UserData carries the source task
// index and a fixed-point amount. HueRotate divides its angle by
// AngleFloatToFixed before scaling to the instance's 16-bit fixed range.
func encodeBlend(filter Filter, srcTask RenderTaskIndex) PrimitiveInstance {
	amount := filter.Amount
	if filter.Kind == FilterHueRotate {
		amount /= AngleFloatToFixed
	}
	return PrimitiveInstance{
		GlobalPrimID:  -1,
		LayerIndex:    -1,
		ClipTaskIndex: int32(OpaqueTaskIndex),
		SubIndex:      filterCode(filter.Kind),
		UserData:      [2]int32{int32(srcTask), int32(round(amount * 65535))},
	}
}

// encodeHardwareComposite appends the single instance for a
// HardwareComposite item.
func encodeHardwareComposite(srcTask RenderTaskIndex) PrimitiveInstance {
	return PrimitiveInstance{
		GlobalPrimID:  -1,
		LayerIndex:    -1,
		ClipTaskIndex: int32(OpaqueTaskIndex),
		UserData:      [2]int32{int32(srcTask), 0},
	}
}

// encodeComposite appends the single instance for a Composite item.
// SubIndex carries the mix-blend mode code; UserData carries the backdrop
// and source task indices.
func encodeComposite(mix MixBlendMode, backdropTask, srcTask RenderTaskIndex) PrimitiveInstance {
	return PrimitiveInstance{
		GlobalPrimID:  -1,
		LayerIndex:    -1,
		ClipTaskIndex: int32(OpaqueTaskIndex),
		SubIndex:      int32(mix),
		UserData:      [2]int32{int32(backdropTask), int32(srcTask)},
	}
}

// round rounds x to the nearest integer, ties away from zero — matching
// the source's round-half-away-from-zero rounding for fixed-point amounts.
func round(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}
	return int64(x - 0.5)
}
