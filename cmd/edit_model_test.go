package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlihgenel/videoedit-cli/internal/export"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

func newTestEditModel(t *testing.T, total time.Duration) editModel {
	t.Helper()
	return newEditModel(context.Background(), "klip.mp4", testManager(t, total), dryRunSettings(), time.Second)
}

func press(t *testing.T, m editModel, keys ...string) editModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		em, ok := next.(editModel)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
		m = em
	}
	return m
}

func repeat(k string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = k
	}
	return out
}

func TestEditModelMarkDeleteUndoRedo(t *testing.T) {
	m := newTestEditModel(t, 60*time.Second)

	m = press(t, m, repeat("l", 5)...)
	m = press(t, m, "i")
	m = press(t, m, repeat("l", 5)...)
	m = press(t, m, "o", "d")

	if got := m.manager.Current().TotalDuration(); got != 55*time.Second {
		t.Fatalf("expected 55s after delete, got %s", got)
	}
	if m.playhead != 5*time.Second || m.hasIn || m.hasOut {
		t.Fatalf("unexpected state after delete: playhead=%s in=%v out=%v", m.playhead, m.hasIn, m.hasOut)
	}
	if len(m.edits) != 1 || !strings.HasPrefix(m.edits[0], "delete virtual") {
		t.Fatalf("unexpected edits: %v", m.edits)
	}

	m = press(t, m, "u")
	if got := m.manager.Current().TotalDuration(); got != 60*time.Second {
		t.Fatalf("expected 60s after undo, got %s", got)
	}
	m = press(t, m, "r")
	if got := m.manager.Current().TotalDuration(); got != 55*time.Second {
		t.Fatalf("expected 55s after redo, got %s", got)
	}
	m = press(t, m, "r")
	if !m.statusErr {
		t.Fatalf("redo with empty stack must report an error")
	}
}

func TestEditModelDeleteNeedsMarks(t *testing.T) {
	m := newTestEditModel(t, 60*time.Second)
	m = press(t, m, "i", "d")
	if !m.statusErr || m.manager.CanUndo() {
		t.Fatalf("delete without out mark must fail: %q", m.status)
	}
}

func TestEditModelSeekClamps(t *testing.T) {
	m := newTestEditModel(t, 3*time.Second)
	m = press(t, m, repeat("l", 5)...)
	if m.playhead != 3*time.Second {
		t.Fatalf("expected playhead clamped to 3s, got %s", m.playhead)
	}
	m = press(t, m, "g")
	if m.playhead != 0 {
		t.Fatalf("expected playhead at start, got %s", m.playhead)
	}
	m = press(t, m, "h")
	if m.playhead != 0 {
		t.Fatalf("playhead must not go negative, got %s", m.playhead)
	}
}

func TestTimelineStepLadder(t *testing.T) {
	cases := []struct {
		in   time.Duration
		up   time.Duration
		down time.Duration
	}{
		{time.Second, 2 * time.Second, 500 * time.Millisecond},
		{100 * time.Millisecond, 500 * time.Millisecond, 100 * time.Millisecond},
		{time.Minute, time.Minute, 30 * time.Second},
		{3 * time.Second, 5 * time.Second, 2 * time.Second},
	}
	for _, c := range cases {
		if got := increaseTimelineStep(c.in); got != c.up {
			t.Fatalf("increase(%s) = %s, want %s", c.in, got, c.up)
		}
		if got := decreaseTimelineStep(c.in); got != c.down {
			t.Fatalf("decrease(%s) = %s, want %s", c.in, got, c.down)
		}
	}

	m := newTestEditModel(t, 60*time.Second)
	m = press(t, m, "]", "]")
	if m.step != 5*time.Second {
		t.Fatalf("expected 5s step, got %s", m.step)
	}
}

func TestEditModelPlaybackSkipsDeletedRegion(t *testing.T) {
	m := newTestEditModel(t, 60*time.Second)
	if err := m.manager.Apply(timeline.DeleteCommand{Start: 10 * time.Second, End: 20 * time.Second}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	m.playhead = 9 * time.Second

	next, cmd := m.togglePlayback()
	m = next.(editModel)
	if !m.playing || cmd == nil {
		t.Fatalf("expected playback to start")
	}

	m = m.advancePlayback(2 * time.Second)
	if !m.playing {
		t.Fatalf("playback must continue after skipping a gap")
	}
	if m.playhead != 10*time.Second || m.transport.Position() != 20*time.Second {
		t.Fatalf("expected skip to source 20s, got playhead=%s source=%s", m.playhead, m.transport.Position())
	}

	m = m.advancePlayback(time.Minute)
	if m.playing || m.playhead != 50*time.Second {
		t.Fatalf("expected playback to end at 50s, got playing=%v playhead=%s", m.playing, m.playhead)
	}

	next, _ = m.Update(playTickMsg(time.Now()))
	if next.(editModel).playing {
		t.Fatalf("tick after end must not restart playback")
	}
}

func TestEditModelExportFlow(t *testing.T) {
	m := newTestEditModel(t, 60*time.Second)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = next.(editModel)
	if !m.exporting || cmd == nil {
		t.Fatalf("expected export to start")
	}

	m = press(t, m, "l")
	if m.playhead != 0 {
		t.Fatalf("keys must be ignored while exporting")
	}

	next, _ = m.Update(exportDoneMsg{out: exportOutcome{Plan: export.Plan{Output: "klip_edited.mp4"}}})
	m = next.(editModel)
	if m.exporting || m.lastOut != "klip_edited.mp4" || m.statusErr {
		t.Fatalf("unexpected state after export: %+v", m.status)
	}
	if !strings.Contains(m.View(), "Video Düzenleyici") {
		t.Fatalf("view must render the title")
	}
}
