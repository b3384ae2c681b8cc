package tiling

import "fmt"

// dynamicKey scopes a TaskKey by the pass it was resolved in; (key, pass)
// is the unit of deduplication for dynamic tasks (§3, §4.3).
type dynamicKey struct {
	key  TaskKey
	pass int
}

// dynamicEntry is what RenderTaskCollection remembers for one dynamic
// allocation: its dense index and the device rect it resolved to.
type dynamicEntry struct {
	index RenderTaskIndex
	rect  DeviceRect
}

// RenderTaskCollection is the registry mapping task identities — a static
// index or a (dynamic key, pass) pair — to dense task-data indices, and
// owns the per-task GPU records those indices address.
//
// It is shared mutably across pass builds in strict ascending pass order;
// within a pass build all other borrows of it are read-only lookups.
type RenderTaskCollection struct {
	records []TaskData
	dynamic map[dynamicKey]dynamicEntry
}

// TaskData is the dense per-task GPU record RenderTaskCollection stores,
// indexed by RenderTaskIndex.
type TaskData struct {
	Kind RenderTaskKind
	Rect DeviceRect
}

// NewRenderTaskCollection preallocates staticCount empty task-data slots;
// indices [0, staticCount) belong to static ids.
func NewRenderTaskCollection(staticCount int) *RenderTaskCollection {
	return &RenderTaskCollection{
		records: make([]TaskData, staticCount),
		dynamic: make(map[dynamicKey]dynamicEntry),
	}
}

// Add records task's GPU data at its id's resolved slot.
//
// For a Static id, the slot is pre-reserved; Add simply writes the record
// at that index and returns it. For a Dynamic id, Add appends a new
// record and registers (key, pass) -> {index, rect}, where rect comes
// from the task's now-resolved dynamic location.
//
// Precondition: (key, pass) must not have been inserted before; violating
// this is a fatal invariant break (§7), since it means the caller failed
// to deduplicate via GetDynamicAllocation first.
func (c *RenderTaskCollection) Add(task *RenderTask, pass int) RenderTaskIndex {
	switch task.Id.Kind() {
	case TaskIdStatic:
		idx, _ := task.Id.StaticIndex()
		c.records[idx] = TaskData{Kind: task.Kind, Rect: task.Location.rectOrZero()}
		return idx

	case TaskIdDynamic:
		key, _ := task.Id.DynamicKey()
		dk := dynamicKey{key: key, pass: pass}
		if _, exists := c.dynamic[dk]; exists {
			abortf("dynamic task key inserted twice in pass %d: %+v", pass, key)
		}
		idx := RenderTaskIndex(len(c.records))
		rect := task.Location.rect()
		c.records = append(c.records, TaskData{Kind: task.Kind, Rect: rect})
		c.dynamic[dk] = dynamicEntry{index: idx, rect: rect}
		return idx

	default:
		abortf("unknown render task id kind %v", task.Id.Kind())
		panic("unreachable")
	}
}

// GetTaskIndex resolves id to its dense index within pass. Static ids
// resolve directly; Dynamic ids are looked up by (key, pass). An unknown
// dynamic key is a programming error: the caller referenced a task that
// was never added in this pass.
func (c *RenderTaskCollection) GetTaskIndex(id RenderTaskId, pass int) RenderTaskIndex {
	if idx, ok := id.StaticIndex(); ok {
		return idx
	}
	key, _ := id.DynamicKey()
	entry, ok := c.dynamic[dynamicKey{key: key, pass: pass}]
	if !ok {
		abortf("unresolved dynamic render task key %+v in pass %d", key, pass)
	}
	return entry.index
}

// GetDynamicAllocation looks up an existing allocation for (pass, key),
// used by RenderPass.Build to deduplicate identical dynamic tasks before
// allocating a new target slot.
func (c *RenderTaskCollection) GetDynamicAllocation(pass int, key TaskKey) (index RenderTaskIndex, rect DeviceRect, ok bool) {
	entry, found := c.dynamic[dynamicKey{key: key, pass: pass}]
	if !found {
		return 0, DeviceRect{}, false
	}
	return entry.index, entry.rect, true
}

// Len returns the number of dense task-data records, static and dynamic
// combined.
func (c *RenderTaskCollection) Len() int { return len(c.records) }

// Record returns the GPU record stored at idx.
func (c *RenderTaskCollection) Record(idx RenderTaskIndex) TaskData {
	if int(idx) < 0 || int(idx) >= len(c.records) {
		abortf("render task index %d out of range [0,%d)", idx, len(c.records))
	}
	return c.records[idx]
}

func (c *RenderTaskCollection) String() string {
	return fmt.Sprintf("RenderTaskCollection{records:%d dynamic:%d}", len(c.records), len(c.dynamic))
}

// rectOrZero returns rect() if this location has been placed, else a
// zero rect — used for Static ids and Fixed locations, where there is no
// allocated origin to derive a rect from.
func (l RenderTaskLocation) rectOrZero() DeviceRect {
	origin, ok := l.Origin()
	if !ok {
		return DeviceRect{}
	}
	return DeviceRect{
		X: float32(origin.X), Y: float32(origin.Y),
		Width: float32(l.size.Width), Height: float32(l.size.Height),
	}
}
