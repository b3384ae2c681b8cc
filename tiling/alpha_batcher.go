package tiling

// MaxAlphaBatchScanDepth bounds how many of the most recent alpha batches
// the merge scan inspects before giving up and appending a new batch
// (§4.5 step 2, §8 property 5). The bound together with the overlap test
// preserves draw order among overlapping primitives while still allowing
// aggressive coalescing of disjoint ones; its value is a heuristic whose
// optimum depends on scene characteristics (§9 Open Question) and is kept
// as a single named constant rather than inlined at each call site.
const MaxAlphaBatchScanDepth = 10

// stagedItem pairs an AlphaRenderItem with the task it was produced for,
// since a ColorRenderTarget's AlphaBatcher accumulates items across every
// Alpha task dispatched to that target before building its batches once.
type stagedItem struct {
	task RenderTaskIndex
	item AlphaRenderItem
}

// AlphaBatcher coalesces the opaque and translucent primitive draws of one
// color render target into state-compatible batches, in the draw order
// required for correct alpha blending (§4.5).
type AlphaBatcher struct {
	AlphaBatches  []*PrimitiveBatch
	OpaqueBatches []*PrimitiveBatch

	alphaItems  []stagedItem
	opaqueItems []stagedItem
}

// NewAlphaBatcher creates an empty batcher.
func NewAlphaBatcher() *AlphaBatcher {
	return &AlphaBatcher{}
}

// StageTask appends one Alpha task's items to the batcher's pending lists.
// Items are not batched until Build runs; a target may stage several Alpha
// tasks before building once.
func (b *AlphaBatcher) StageTask(taskIndex RenderTaskIndex, alphaItems, opaqueItems []AlphaRenderItem) {
	for _, it := range alphaItems {
		b.alphaItems = append(b.alphaItems, stagedItem{task: taskIndex, item: it})
	}
	for _, it := range opaqueItems {
		b.opaqueItems = append(b.opaqueItems, stagedItem{task: taskIndex, item: it})
	}
}

// Build runs the translucent merge scan followed by the opaque reverse
// bucketing pass (§4.5). pass is the pass index items' clip/cache task ids
// resolve against.
func (b *AlphaBatcher) Build(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	b.buildAlpha(ctx, tasks, pass)
	b.buildOpaque(ctx, tasks, pass)
}

// buildAlpha processes translucent items in input order, merging each into
// one of the last MaxAlphaBatchScanDepth batches when compatible and not
// blocked by an overlap with an earlier, incompatible draw (§4.5 step 1-4).
func (b *AlphaBatcher) buildAlpha(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	for _, staged := range b.alphaItems {
		item := staged.item
		key := item.BatchKey(ctx, tasks, pass)
		rect := item.BoundingRect(ctx)

		if item.Kind == ItemComposite {
			inst := encodeComposite(item.MixBlend, tasks.GetTaskIndex(item.BackdropTask, pass), tasks.GetTaskIndex(item.SrcTask, pass))
			b.AlphaBatches = append(b.AlphaBatches, NewCompositeBatch(key, inst, PrimitiveBatchItem{BoundingRect: rect}))
			continue
		}

		batch := b.findAlphaMergeTarget(key, rect)
		if batch == nil {
			batch = NewInstancesBatch(key)
			b.AlphaBatches = append(b.AlphaBatches, batch)
		}
		pushItem(batch, ctx, item, staged.task, tasks, pass, rect)
	}
}

// findAlphaMergeTarget scans the last MaxAlphaBatchScanDepth alpha batches
// in reverse. A compatible batch is reused immediately. An incompatible
// batch whose items overlap rect halts the scan: reordering past it would
// change visible output, so no batch further back may be used either.
func (b *AlphaBatcher) findAlphaMergeTarget(key AlphaBatchKey, rect DeviceRect) *PrimitiveBatch {
	n := len(b.AlphaBatches)
	depth := min(n, MaxAlphaBatchScanDepth)
	for i := 0; i < depth; i++ {
		batch := b.AlphaBatches[n-1-i]
		if batch.Key.IsCompatibleWith(key) {
			return batch
		}
		if batch.OverlapsAny(rect) {
			return nil
		}
	}
	return nil
}

// buildOpaque processes opaque items in reverse input order (depth testing
// makes draw order immaterial for opaque primitives) using a monotonic
// cursor: it only ever advances forward through OpaqueBatches, so the scan
// is amortised linear rather than the alpha pass's bounded rescan (§4.5,
// §8 property 6).
func (b *AlphaBatcher) buildOpaque(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	cursor := 0
	for i := len(b.opaqueItems) - 1; i >= 0; i-- {
		staged := b.opaqueItems[i]
		item := staged.item
		key := item.BatchKey(ctx, tasks, pass)

		for cursor < len(b.OpaqueBatches) && !b.OpaqueBatches[cursor].Key.IsCompatibleWith(key) {
			cursor++
		}
		if cursor == len(b.OpaqueBatches) {
			b.OpaqueBatches = append(b.OpaqueBatches, NewInstancesBatch(key))
		}
		pushItem(b.OpaqueBatches[cursor], ctx, item, staged.task, tasks, pass, DeviceRect{})
	}
}

// pushItem encodes item's instance row(s) and pushes them onto batch.
// Primitive items may expand to several rows (TextRun, Border,
// AlignedGradient, BoxShadow); every other kind produces exactly one.
func pushItem(batch *PrimitiveBatch, ctx *RenderTargetContext, item AlphaRenderItem, taskIndex RenderTaskIndex, tasks *RenderTaskCollection, pass int, rect DeviceRect) {
	switch item.Kind {
	case ItemPrimitive:
		meta := ctx.Primitives.Metadata(item.Prim)
		encodePrimitive(meta, taskIndex, tasks, pass, func(inst PrimitiveInstance) {
			batch.Push(inst, PrimitiveBatchItem{BoundingRect: rect})
		})
	case ItemBlend:
		inst := encodeBlend(item.Filter, tasks.GetTaskIndex(item.SrcTask, pass))
		batch.Push(inst, PrimitiveBatchItem{BoundingRect: rect})
	case ItemHardwareComposite:
		inst := encodeHardwareComposite(tasks.GetTaskIndex(item.SrcTask, pass))
		batch.Push(inst, PrimitiveBatchItem{BoundingRect: rect})
	case ItemComposite:
		inst := encodeComposite(item.MixBlend, tasks.GetTaskIndex(item.BackdropTask, pass), tasks.GetTaskIndex(item.SrcTask, pass))
		batch.Push(inst, PrimitiveBatchItem{BoundingRect: rect})
	default:
		abortf("unknown alpha render item kind %d", item.Kind)
	}
}
