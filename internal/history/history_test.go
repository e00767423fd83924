package history

import (
	"testing"
)

type counterAction struct {
	delta   int
	neutral bool
}

func add(s int, a counterAction) int {
	return s + a.delta
}

func wrapped(limit int) func(History[int], counterAction) History[int] {
	return Wrap(add, Options[int, counterAction]{
		Limit:   limit,
		Neutral: func(a counterAction) bool { return a.neutral },
	})
}

func TestUndoRedoRoundTrip(t *testing.T) {
	reduce := wrapped(10)
	h := New(0)
	h = reduce(h, counterAction{delta: 1})
	h = reduce(h, counterAction{delta: 2})

	h = h.Undo()
	if h.Present != 1 {
		t.Errorf("Present after undo = %d, expected 1", h.Present)
	}
	h = h.Undo()
	if h.Present != 0 {
		t.Errorf("Present after second undo = %d, expected 0", h.Present)
	}
	h = h.Redo().Redo()
	if h.Present != 3 {
		t.Errorf("Present after redo = %d, expected 3", h.Present)
	}
	if h.RedoSize() != 0 || h.UndoSize() != 2 {
		t.Errorf("UndoSize/RedoSize = %d/%d, expected 2/0", h.UndoSize(), h.RedoSize())
	}
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	h := New(5)
	if h.Undo().Present != 5 || h.Redo().Present != 5 {
		t.Error("Undo/Redo on empty stacks should be a no-op")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("Fresh history should not be able to undo or redo")
	}
}

func TestNewActionClearsFuture(t *testing.T) {
	reduce := wrapped(10)
	h := reduce(New(0), counterAction{delta: 1})
	h = h.Undo()
	if !h.CanRedo() {
		t.Fatal("Expected redo to be available after undo")
	}

	h = reduce(h, counterAction{delta: 5})
	if h.CanRedo() {
		t.Error("Recording a new action should clear the future")
	}
	if h.Present != 5 {
		t.Errorf("Present = %d, expected 5", h.Present)
	}
}

func TestLimitDropsOldest(t *testing.T) {
	reduce := wrapped(3)
	h := New(0)
	for i := 0; i < 5; i++ {
		h = reduce(h, counterAction{delta: 1})
	}

	if h.UndoSize() != 3 {
		t.Fatalf("UndoSize() = %d, expected 3", h.UndoSize())
	}
	for h.CanUndo() {
		h = h.Undo()
	}
	if h.Present != 2 {
		t.Errorf("Oldest reachable state = %d, expected 2", h.Present)
	}
}

func TestDefaultLimit(t *testing.T) {
	reduce := wrapped(0)
	h := New(0)
	for i := 0; i < DefaultLimit+4; i++ {
		h = reduce(h, counterAction{delta: 1})
	}
	if h.UndoSize() != DefaultLimit {
		t.Errorf("UndoSize() = %d, expected %d", h.UndoSize(), DefaultLimit)
	}
}

func TestNeutralActionsAreNotRecorded(t *testing.T) {
	reduce := wrapped(10)
	h := reduce(New(0), counterAction{delta: 1})
	h = reduce(h, counterAction{delta: 10, neutral: true})

	if h.Present != 11 {
		t.Errorf("Present = %d, expected 11", h.Present)
	}
	if h.UndoSize() != 1 {
		t.Errorf("UndoSize() = %d, expected 1", h.UndoSize())
	}
}

func TestNoopTransitionIsNotRecorded(t *testing.T) {
	reduce := wrapped(10)
	h := reduce(New(0), counterAction{delta: 0})
	if h.CanUndo() {
		t.Error("A transition that leaves the state unchanged should not be recorded")
	}
}

func TestClearAndSnapshots(t *testing.T) {
	reduce := wrapped(10)
	h := reduce(New(0), counterAction{delta: 1})
	h = reduce(h, counterAction{delta: 1})
	h = h.Undo()

	snaps := h.Snapshots()
	expected := []int{0, 1, 2}
	if len(snaps) != len(expected) {
		t.Fatalf("Snapshots() = %v, expected %v", snaps, expected)
	}
	for i := range expected {
		if snaps[i] != expected[i] {
			t.Errorf("Snapshots()[%d] = %d, expected %d", i, snaps[i], expected[i])
		}
	}

	h = h.Clear()
	if h.CanUndo() || h.CanRedo() || h.Present != 1 {
		t.Errorf("Clear() = %+v, expected present 1 with empty stacks", h)
	}
}
