package canvas

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ===========================================================================
// OperationBuilder
// ===========================================================================

func TestBuilderWritesThrough(t *testing.T) {
	c := New(4, 4)
	b := NewOperationBuilder()

	b.Apply(c, 1, 1, NewCell('x', ColorRed))

	require.Equal(t, NewCell('x', ColorRed), c.Get(1, 1), "apply should write to the canvas immediately")
	require.False(t, b.IsEmpty())
}

func TestBuilderIgnoresOutOfBounds(t *testing.T) {
	c := New(3, 3)
	b := NewOperationBuilder()

	b.Apply(c, -1, 0, NewCell('x', ColorRed))
	b.Apply(c, 3, 0, NewCell('x', ColorRed))
	b.Apply(c, 0, 99, NewCell('x', ColorRed))

	require.True(t, b.IsEmpty(), "out-of-bounds writes should record nothing")
	require.True(t, b.Finalize().IsEmpty())
}

func TestBuilderSkipsNoopWrites(t *testing.T) {
	c := New(3, 3)
	c.Set(1, 1, NewCell('x', ColorRed))
	b := NewOperationBuilder()

	// Writing the value a cell already holds records nothing.
	b.Apply(c, 1, 1, NewCell('x', ColorRed))
	require.True(t, b.IsEmpty(), "writing the current value should be a no-op")

	// Repeated strokes over a cell already painted this gesture are
	// also no-ops at apply time.
	b.Apply(c, 0, 0, NewCell('o', ColorBlue))
	b.Apply(c, 0, 0, NewCell('o', ColorBlue))
	op := b.Finalize()
	require.Len(t, op.Changes(), 1, "repainting the same value should not add entries")
}

func TestBuilderCoalescesFirstBeforeLastAfter(t *testing.T) {
	c := New(3, 3)
	c.Set(2, 0, NewCell('a', ColorGreen))
	b := NewOperationBuilder()

	b.Apply(c, 2, 0, NewCell('b', ColorBlue))
	b.Apply(c, 2, 0, NewCell('c', ColorCyan))

	op := b.Finalize()
	require.Len(t, op.Changes(), 1)
	ch := op.Changes()[0]
	require.Equal(t, NewCell('a', ColorGreen), ch.Before, "before should be the value at first touch")
	require.Equal(t, NewCell('c', ColorCyan), ch.After, "after should be the value of the last write")
}

func TestBuilderFinalizeSortsByRowThenColumn(t *testing.T) {
	c := New(5, 5)
	b := NewOperationBuilder()

	// Touch cells in scrambled order.
	b.Apply(c, 3, 2, NewCell('d', ColorRed))
	b.Apply(c, 0, 0, NewCell('a', ColorRed))
	b.Apply(c, 1, 2, NewCell('c', ColorRed))
	b.Apply(c, 4, 0, NewCell('b', ColorRed))

	op := b.Finalize()
	changes := op.Changes()
	require.Len(t, changes, 4)
	for i := 1; i < len(changes); i++ {
		prev, cur := changes[i-1], changes[i]
		ordered := prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X)
		require.True(t, ordered, "changes must be sorted by (y, x): %v then %v", prev, cur)
	}
}

func TestBuilderDropsNetNoopEntries(t *testing.T) {
	c := New(3, 3)
	c.Set(1, 1, NewCell('a', ColorGreen))
	b := NewOperationBuilder()

	// Paint away and back: a -> b -> a.
	b.Apply(c, 1, 1, NewCell('b', ColorBlue))
	b.Apply(c, 1, 1, NewCell('a', ColorGreen))

	op := b.Finalize()
	require.True(t, op.IsEmpty(), "a cell restored to its first-touch value has no net effect")

	// The degenerate entry must not sneak into history either.
	h := NewHistory(10)
	h.Push(op)
	require.False(t, h.CanUndo(), "empty operations are never stored")
}

func TestBuilderRoundTripLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 8).Draw(rt, "w")
		h := rapid.IntRange(1, 8).Draw(rt, "h")
		c := New(w, h)

		// Seed some initial content.
		seeds := rapid.IntRange(0, 10).Draw(rt, "seeds")
		for i := 0; i < seeds; i++ {
			x := rapid.IntRange(0, w-1).Draw(rt, "sx")
			y := rapid.IntRange(0, h-1).Draw(rt, "sy")
			c.Set(x, y, NewCell(rune('A'+i), ColorYellow))
		}
		pre := c.Clone()

		// One gesture of arbitrary writes, some off grid.
		b := NewOperationBuilder()
		writes := rapid.IntRange(0, 30).Draw(rt, "writes")
		for i := 0; i < writes; i++ {
			x := rapid.IntRange(-2, w+1).Draw(rt, "x")
			y := rapid.IntRange(-2, h+1).Draw(rt, "y")
			ch := rune('a' + rapid.IntRange(0, 25).Draw(rt, "ch"))
			color := Color(rapid.IntRange(0, 8).Draw(rt, "color"))
			b.Apply(c, x, y, NewCell(ch, color))
		}
		post := c.Clone()
		op := b.Finalize()

		// Replaying the before values on the post-gesture grid rebuilds
		// the pre-gesture grid, and vice versa.
		undone := post.Clone()
		op.ApplyBefore(undone)
		require.True(rt, undone.Equal(pre), "ApplyBefore should restore the pre-gesture grid")

		redone := pre.Clone()
		op.ApplyAfter(redone)
		require.True(rt, redone.Equal(post), "ApplyAfter should restore the post-gesture grid")
	})
}

// ===========================================================================
// History
// ===========================================================================

func paintOp(t *testing.T, c *Canvas, x, y int, cell Cell) Operation {
	t.Helper()
	b := NewOperationBuilder()
	b.Apply(c, x, y, cell)
	op := b.Finalize()
	require.False(t, op.IsEmpty(), "test operation should not be empty")
	return op
}

func TestHistoryDefaultCapacity(t *testing.T) {
	require.Equal(t, DefaultHistoryCapacity, NewHistory(0).capacity, "zero capacity uses the default")
	require.Equal(t, DefaultHistoryCapacity, NewHistory(-5).capacity, "negative capacity uses the default")
	require.Equal(t, 7, NewHistory(7).capacity)
}

func TestHistoryUndoRedoInverse(t *testing.T) {
	c := New(3, 3)
	h := NewHistory(10)

	op := paintOp(t, c, 1, 1, NewCell('x', ColorRed))
	afterApply := c.Clone()
	h.Push(op)

	require.True(t, h.Undo(c), "undo should succeed with one operation stored")
	require.True(t, c.Get(1, 1).IsBlank(), "undo should restore the blank cell")

	require.True(t, h.Redo(c), "redo should succeed after an undo")
	require.True(t, c.Equal(afterApply), "redo should restore the post-apply grid exactly")
}

func TestHistoryEmptyStacksReportFalse(t *testing.T) {
	c := New(2, 2)
	h := NewHistory(5)

	require.False(t, h.Undo(c), "undo on an empty history reports false")
	require.False(t, h.Redo(c), "redo on an empty history reports false")
	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())
}

func TestHistoryPushClearsRedo(t *testing.T) {
	c := New(3, 3)
	h := NewHistory(10)

	h.Push(paintOp(t, c, 0, 0, NewCell('a', ColorRed)))
	require.True(t, h.Undo(c))
	require.True(t, h.CanRedo())

	h.Push(paintOp(t, c, 1, 1, NewCell('b', ColorBlue)))
	require.False(t, h.CanRedo(), "a new edit after undo discards the redo stack")
	require.False(t, h.Redo(c))
}

func TestHistoryIgnoresEmptyOperations(t *testing.T) {
	h := NewHistory(10)
	h.Push(Operation{})
	require.False(t, h.CanUndo(), "empty operations are not stored")
}

func TestHistoryCapacityEvictsOldest(t *testing.T) {
	c := New(10, 1)
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Push(paintOp(t, c, i, 0, NewCell(rune('a'+i), ColorGreen)))
	}
	require.Equal(t, 3, h.Len(), "history never holds more than capacity entries")

	// Only the newest three operations can be undone.
	require.True(t, h.Undo(c))
	require.True(t, h.Undo(c))
	require.True(t, h.Undo(c))
	require.False(t, h.Undo(c), "evicted operations are unrecoverable")

	// The two oldest writes survive because their operations were evicted.
	require.Equal(t, NewCell('a', ColorGreen), c.Get(0, 0))
	require.Equal(t, NewCell('b', ColorGreen), c.Get(1, 0))
	require.True(t, c.Get(2, 0).IsBlank(), "undone cells are blank again")
}

func TestHistoryClear(t *testing.T) {
	c := New(3, 3)
	h := NewHistory(10)

	h.Push(paintOp(t, c, 0, 0, NewCell('a', ColorRed)))
	require.True(t, h.Undo(c))
	h.Push(paintOp(t, c, 1, 0, NewCell('b', ColorRed)))

	h.Clear()
	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())
	require.Equal(t, 0, h.Len())
}

func TestHistoryUndoAfterShrinkIsSafe(t *testing.T) {
	c := New(4, 4)
	h := NewHistory(10)

	h.Push(paintOp(t, c, 3, 3, NewCell('x', ColorRed)))
	c.ResizePreserve(2, 2)

	// The undo writes land outside the shrunken grid and are ignored.
	require.True(t, h.Undo(c), "undo still pops the operation")
	require.Equal(t, 2, c.Width())
	require.Equal(t, 2, c.Height())
}

func TestHistoryInverseLawProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 6).Draw(rt, "w")
		hgt := rapid.IntRange(1, 6).Draw(rt, "h")
		c := New(w, hgt)
		h := NewHistory(100)

		gestures := rapid.IntRange(1, 8).Draw(rt, "gestures")
		states := []*Canvas{c.Clone()}
		for g := 0; g < gestures; g++ {
			b := NewOperationBuilder()
			writes := rapid.IntRange(1, 10).Draw(rt, "writes")
			for i := 0; i < writes; i++ {
				x := rapid.IntRange(0, w-1).Draw(rt, "x")
				y := rapid.IntRange(0, hgt-1).Draw(rt, "y")
				ch := rune('a' + rapid.IntRange(0, 25).Draw(rt, "ch"))
				b.Apply(c, x, y, NewCell(ch, ColorWhite))
			}
			op := b.Finalize()
			h.Push(op)
			if !op.IsEmpty() {
				states = append(states, c.Clone())
			}
		}

		// Unwind completely, checking each intermediate state, then
		// replay forward and check again.
		undone := 0
		for h.Undo(c) {
			undone++
			require.True(rt, c.Equal(states[len(states)-1-undone]), "undo %d should restore snapshot", undone)
		}
		for i := undone; i > 0; i-- {
			require.True(rt, h.Redo(c), "redo should be available")
			require.True(rt, c.Equal(states[len(states)-i]), "redo should restore snapshot")
		}
		require.True(rt, c.Equal(states[len(states)-1]), "full redo ends at the final state")
	})
}
