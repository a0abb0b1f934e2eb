package playback

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

func editedManager(t *testing.T) *timeline.Manager {
	t.Helper()
	m := timeline.NewManager()
	m.Initialize(60 * time.Second)
	if err := m.DeleteSegment(10*time.Second, 20*time.Second); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := m.DeleteSegment(40*time.Second, 50*time.Second); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// Kalan: [0,10) [20,50)
	return m
}

func TestMonitorSkipsGap(t *testing.T) {
	m := editedManager(t)
	tr := NewSimulatedTransport(60 * time.Second)
	tr.Play()
	tr.Seek(12 * time.Second)

	var seen []Event
	mon := NewMonitor(tr, m, WithEventHandler(func(e Event) { seen = append(seen, e) }))
	ev := mon.Check()
	if ev.Kind != EventSkipped || ev.To != 20*time.Second {
		t.Fatalf("expected skip to 20s, got %+v", ev)
	}
	if tr.Position() != 20*time.Second || !tr.Playing() {
		t.Fatalf("transport not moved: pos=%s playing=%v", tr.Position(), tr.Playing())
	}
	if len(seen) != 1 {
		t.Fatalf("expected one event, got %d", len(seen))
	}
}

func TestMonitorStopsAfterLastSegment(t *testing.T) {
	m := editedManager(t)
	tr := NewSimulatedTransport(60 * time.Second)
	tr.Play()
	tr.Seek(55 * time.Second)

	ev := NewMonitor(tr, m).Check()
	if ev.Kind != EventEnded || ev.To != 50*time.Second {
		t.Fatalf("expected end at 50s, got %+v", ev)
	}
	if tr.Playing() {
		t.Fatalf("transport must be paused at the end")
	}
}

func TestMonitorIgnoresKeptPositionsAndPausedTransport(t *testing.T) {
	m := editedManager(t)
	tr := NewSimulatedTransport(60 * time.Second)
	tr.Seek(15 * time.Second)
	mon := NewMonitor(tr, m)
	if ev := mon.Check(); ev.Kind != EventNone {
		t.Fatalf("paused transport must not be moved: %+v", ev)
	}
	tr.Play()
	tr.Seek(10 * time.Second)
	// 10s silinen aralığın başıdır ve önceki segmentin kapalı ucuna denk gelir.
	if ev := mon.Check(); ev.Kind != EventNone {
		t.Fatalf("position on kept boundary must not skip: %+v", ev)
	}
}

func TestSimulatedPlaybackVisitsOnlyKeptTime(t *testing.T) {
	m := editedManager(t)
	tr := NewSimulatedTransport(60 * time.Second)
	mon := NewMonitor(tr, m)
	tr.Play()

	step := 500 * time.Millisecond
	for i := 0; i < 1000 && tr.Playing(); i++ {
		tr.Advance(step)
		mon.Check()
		if _, ok := m.Current().SourceToVirtual(tr.Position()); !ok && tr.Playing() {
			t.Fatalf("playhead left in gap at %s", tr.Position())
		}
	}
	if tr.Playing() {
		t.Fatalf("playback never finished")
	}
	if tr.Position() != 50*time.Second {
		t.Fatalf("expected to stop at 50s, got %s", tr.Position())
	}
}

func TestMonitorRunStopsOnCancel(t *testing.T) {
	m := editedManager(t)
	tr := NewSimulatedTransport(60 * time.Second)
	tr.Play()
	tr.Seek(55 * time.Second)

	var skipped atomic.Int32
	mon := NewMonitor(tr, m, WithInterval(time.Millisecond), WithEventHandler(func(Event) { skipped.Add(1) }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for skipped.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("monitor never ran")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if tr.Playing() {
		t.Fatalf("expected transport paused after last segment")
	}
}
