package canvas

import "sort"

// DefaultHistoryCapacity is the number of operations kept for undo when
// no explicit capacity is configured.
const DefaultHistoryCapacity = 100

// CellChange records the net effect of one gesture at one coordinate.
type CellChange struct {
	X      int
	Y      int
	Before Cell
	After  Cell
}

// Operation is the finalized, coalesced set of cell changes from one
// gesture, sorted by (y, x). It is the unit of undo and redo and is not
// modified after being pushed to a History.
type Operation struct {
	changes []CellChange
}

// Changes returns the operation's cell changes in (y, x) order.
func (op Operation) Changes() []CellChange {
	return op.changes
}

// IsEmpty reports whether the operation carries no changes.
func (op Operation) IsEmpty() bool {
	return len(op.changes) == 0
}

// ApplyBefore writes every change's prior value back to the canvas,
// restoring the state from before the operation.
func (op Operation) ApplyBefore(c *Canvas) {
	for _, ch := range op.changes {
		c.Set(ch.X, ch.Y, ch.Before)
	}
}

// ApplyAfter writes every change's new value to the canvas, restoring
// the state from after the operation.
func (op Operation) ApplyAfter(c *Canvas) {
	for _, ch := range op.changes {
		c.Set(ch.X, ch.Y, ch.After)
	}
}

type gridPoint struct {
	x, y int
}

// OperationBuilder accumulates the coalesced diff of one in-progress
// gesture, writing each change through to the canvas as it arrives so
// the screen reflects the edit immediately. For a coordinate touched
// more than once, Before keeps the value seen at first touch and After
// keeps the value of the last write.
type OperationBuilder struct {
	changes map[gridPoint]CellChange
}

// NewOperationBuilder returns an empty builder.
func NewOperationBuilder() *OperationBuilder {
	return &OperationBuilder{changes: make(map[gridPoint]CellChange)}
}

// Apply records and performs one cell write. Writes outside the canvas
// are ignored, as are writes whose value equals the cell's current
// value. The no-op check compares against the current grid value, not
// the recorded Before, so re-crossing an already painted cell within a
// gesture never dirties the diff.
func (b *OperationBuilder) Apply(c *Canvas, x, y int, next Cell) {
	if !c.InBounds(x, y) {
		return
	}

	current := c.Get(x, y)
	if next == current {
		return
	}

	key := gridPoint{x, y}
	if entry, ok := b.changes[key]; ok {
		entry.After = next
		b.changes[key] = entry
	} else {
		b.changes[key] = CellChange{X: x, Y: y, Before: current, After: next}
	}
	c.Set(x, y, next)
}

// IsEmpty reports whether no effective writes were recorded.
func (b *OperationBuilder) IsEmpty() bool {
	return len(b.changes) == 0
}

// Finalize returns the accumulated changes as an Operation sorted by
// (y, x). Entries whose Before equals After are dropped: a cell painted
// away and back within one gesture has no net effect, and keeping it
// would store an operation that undoes to nothing.
func (b *OperationBuilder) Finalize() Operation {
	changes := make([]CellChange, 0, len(b.changes))
	for _, ch := range b.changes {
		if ch.Before == ch.After {
			continue
		}
		changes = append(changes, ch)
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Y != changes[j].Y {
			return changes[i].Y < changes[j].Y
		}
		return changes[i].X < changes[j].X
	})
	return Operation{changes: changes}
}

// History holds the undo and redo stacks of completed operations. The
// undo side is bounded: pushing past capacity evicts the oldest entry.
type History struct {
	undo     []Operation
	redo     []Operation
	capacity int
}

// NewHistory creates a history bounded to capacity operations. A
// capacity of zero or less uses DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Push stores a completed operation and clears the redo stack. Empty
// operations are discarded. When the undo stack exceeds capacity the
// oldest entry is evicted.
func (h *History) Push(op Operation) {
	if op.IsEmpty() {
		return
	}
	h.undo = append(h.undo, op)
	h.redo = nil
	if over := len(h.undo) - h.capacity; over > 0 {
		copy(h.undo, h.undo[over:])
		h.undo = h.undo[:h.capacity]
	}
}

// Undo reverts the most recent operation on the canvas and moves it to
// the redo stack. Returns false when there is nothing to undo.
func (h *History) Undo(c *Canvas) bool {
	if len(h.undo) == 0 {
		return false
	}
	op := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	op.ApplyBefore(c)
	h.redo = append(h.redo, op)
	return true
}

// Redo reapplies the most recently undone operation and moves it back
// to the undo stack. Returns false when there is nothing to redo.
func (h *History) Redo(c *Canvas) bool {
	if len(h.redo) == 0 {
		return false
	}
	op := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	op.ApplyAfter(c)
	h.undo = append(h.undo, op)
	return true
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Len returns the number of operations on the undo stack.
func (h *History) Len() int {
	return len(h.undo)
}

// Clear empties both stacks. Used when a different canvas replaces the
// current one, since undo entries for the old grid are meaningless.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
