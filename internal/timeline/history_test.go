package timeline

import "testing"

func TestHistoryBoundedDepth(t *testing.T) {
	m := NewManager(WithHistoryDepth(3))
	m.Initialize(sec(60))

	for i := 0; i < 5; i++ {
		if err := m.DeleteSegment(0, sec(5)); err != nil {
			t.Fatalf("delete %d failed: %v", i, err)
		}
	}
	if m.Current().TotalDuration() != sec(35) {
		t.Fatalf("unexpected total after deletes: %s", m.Current().TotalDuration())
	}

	changed := 0
	for i := 0; i < 4; i++ {
		if m.Undo() {
			changed++
		}
	}
	if changed != 3 {
		t.Fatalf("expected exactly 3 effective undos, got %d", changed)
	}
	if m.Current().TotalDuration() != sec(50) {
		t.Fatalf("expected 50s after 3 undos, got %s", m.Current().TotalDuration())
	}
}

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(0)
	s0 := NewSegmentList(sec(10))
	s1, _ := s0.Delete(sec(2), sec(4))

	h.Push(s0)
	back := h.Undo(s1)
	if back.TotalDuration() != sec(10) {
		t.Fatalf("undo returned wrong state: %s", back)
	}
	if !h.CanRedo() || h.CanUndo() {
		t.Fatalf("unexpected stack state after undo")
	}
	forward := h.Redo(back)
	if forward.TotalDuration() != sec(8) {
		t.Fatalf("redo returned wrong state: %s", forward)
	}
	if h.CanRedo() || !h.CanUndo() {
		t.Fatalf("unexpected stack state after redo")
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(10)
	s := NewSegmentList(sec(10))
	h.Push(s)
	h.Undo(s)
	if !h.CanRedo() {
		t.Fatalf("expected redo after undo")
	}
	h.Push(s)
	if h.CanRedo() {
		t.Fatalf("push must clear redo stack")
	}
}

func TestHistoryEmptyStacksReturnCurrent(t *testing.T) {
	h := NewHistory(5)
	s := NewSegmentList(sec(10))
	if got := h.Undo(s); got != s {
		t.Fatalf("undo on empty stack must return current unchanged")
	}
	if got := h.Redo(s); got != s {
		t.Fatalf("redo on empty stack must return current unchanged")
	}
	if h.UndoDepth() != 0 || h.RedoDepth() != 0 {
		t.Fatalf("no-op undo/redo must not touch stacks")
	}
}

func TestHistoryPushSnapshotsAreIndependent(t *testing.T) {
	h := NewHistory(0)
	s := NewSegmentList(sec(10))
	h.Push(s)
	s.intervals[0].SourceEnd = sec(1)

	got := h.Undo(NewSegmentList(sec(1)))
	if got.TotalDuration() != sec(10) {
		t.Fatalf("pushed snapshot aliases live list: %s", got)
	}
}

func TestHistoryNegativeDepthIsUnbounded(t *testing.T) {
	h := NewHistory(-4)
	if h.MaxDepth() != 0 {
		t.Fatalf("expected unbounded depth, got %d", h.MaxDepth())
	}
	s := NewSegmentList(sec(1))
	for i := 0; i < 250; i++ {
		h.Push(s)
	}
	if h.UndoDepth() != 250 {
		t.Fatalf("expected 250 entries, got %d", h.UndoDepth())
	}
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("clear must empty both stacks")
	}
}
