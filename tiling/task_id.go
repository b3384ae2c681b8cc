package tiling

import "fmt"

// TaskIdKind tags which variant a RenderTaskId holds.
type TaskIdKind uint8

const (
	// TaskIdStatic identifies a task with a slot reserved at frame creation.
	TaskIdStatic TaskIdKind = iota
	// TaskIdDynamic identifies a task resolved per pass by structural key.
	TaskIdDynamic
)

func (k TaskIdKind) String() string {
	switch k {
	case TaskIdStatic:
		return "Static"
	case TaskIdDynamic:
		return "Dynamic"
	default:
		return "TaskIdKind(?)"
	}
}

// RenderTaskId is a tagged union identifying a render task either by a
// stable static index or by a structural key resolved within a pass.
//
// Do not hold a RenderTaskId across passes expecting it to resolve to the
// same GPU record; resolve it through a RenderTaskCollection scoped to the
// pass that produced it.
type RenderTaskId struct {
	kind  TaskIdKind
	index RenderTaskIndex
	key   TaskKey
}

// RenderTaskIndex addresses a dense per-task GPU record.
type RenderTaskIndex int32

// OpaqueTaskIndex is the sentinel meaning "no clip mask applies" when
// carried in PrimitiveInstance.ClipTaskIndex, and more generally "absent
// task" wherever a RenderTaskIndex is optional.
const OpaqueTaskIndex RenderTaskIndex = 1<<31 - 1 // math.MaxInt32, as i32::MAX

// TaskKey is a structural identity for a dynamic render task, e.g. "cache
// primitive P" or "vertical blur radius R of primitive P". Keys must be
// comparable so they can be used as map keys.
type TaskKey struct {
	Kind TaskKeyKind
	Prim PrimitiveIndex
	Aux  int32 // radius, device rect hash, or other kind-specific discriminator
}

// TaskKeyKind distinguishes the structural shape of a TaskKey without
// requiring a full RenderTaskKind (which also carries non-key payload).
type TaskKeyKind uint8

const (
	TaskKeyCachePrimitive TaskKeyKind = iota
	TaskKeyVerticalBlur
	TaskKeyHorizontalBlur
	TaskKeyCacheMask
	TaskKeyReadback
)

// StaticTaskId builds a RenderTaskId referring to a pre-reserved static slot.
func StaticTaskId(idx RenderTaskIndex) RenderTaskId {
	return RenderTaskId{kind: TaskIdStatic, index: idx}
}

// DynamicTaskId builds a RenderTaskId referring to a structurally keyed task.
func DynamicTaskId(key TaskKey) RenderTaskId {
	return RenderTaskId{kind: TaskIdDynamic, key: key}
}

// Kind reports whether this id is Static or Dynamic.
func (id RenderTaskId) Kind() TaskIdKind { return id.kind }

// StaticIndex returns the static index and true, or (0, false) if this id
// is Dynamic.
func (id RenderTaskId) StaticIndex() (RenderTaskIndex, bool) {
	if id.kind != TaskIdStatic {
		return 0, false
	}
	return id.index, true
}

// DynamicKey returns the dynamic key and true, or (TaskKey{}, false) if
// this id is Static.
func (id RenderTaskId) DynamicKey() (TaskKey, bool) {
	if id.kind != TaskIdDynamic {
		return TaskKey{}, false
	}
	return id.key, true
}

func (id RenderTaskId) String() string {
	switch id.kind {
	case TaskIdStatic:
		return fmt.Sprintf("Static(%d)", id.index)
	case TaskIdDynamic:
		return fmt.Sprintf("Dynamic(%+v)", id.key)
	default:
		return "RenderTaskId(?)"
	}
}
