package timeline

import (
	"errors"
	"testing"
	"time"
)

func sec(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func mustList(t *testing.T, intervals ...Interval) *SegmentList {
	t.Helper()
	l, err := SegmentListFrom(intervals...)
	if err != nil {
		t.Fatalf("SegmentListFrom failed: %v", err)
	}
	return l
}

func assertIntervals(t *testing.T, l *SegmentList, want ...Interval) {
	t.Helper()
	got := l.Intervals()
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d: %s", len(want), len(got), l)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("interval %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDeleteSplitsSingleInterval(t *testing.T) {
	l := NewSegmentList(sec(60))
	next, err := l.Delete(sec(10), sec(20))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if next.TotalDuration() != sec(50) {
		t.Fatalf("unexpected total: %s", next.TotalDuration())
	}
	assertIntervals(t, next,
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(20), SourceEnd: sec(60)},
	)
	assertIntervals(t, l, Interval{SourceStart: 0, SourceEnd: sec(60)})
}

func TestSourceToVirtualInGap(t *testing.T) {
	l, err := NewSegmentList(sec(60)).Delete(sec(10), sec(20))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := l.SourceToVirtual(sec(15)); ok {
		t.Fatalf("expected 15s to be in a deleted gap")
	}
	v, ok := l.SourceToVirtual(sec(25))
	if !ok || v != sec(15) {
		t.Fatalf("expected 25s -> 15s, got %s (ok=%v)", v, ok)
	}
}

func TestDeleteAcrossMultipleIntervals(t *testing.T) {
	l := mustList(t,
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(20), SourceEnd: sec(30)},
		Interval{SourceStart: sec(40), SourceEnd: sec(50)},
	)
	next, err := l.Delete(sec(5), sec(25))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	assertIntervals(t, next,
		Interval{SourceStart: 0, SourceEnd: sec(5)},
		Interval{SourceStart: sec(45), SourceEnd: sec(50)},
	)
}

func TestDeleteTouchingBoundaryTrims(t *testing.T) {
	cases := []struct {
		name  string
		start time.Duration
		end   time.Duration
		want  []Interval
	}{
		{
			name:  "leading edge",
			start: 0,
			end:   sec(10),
			want:  []Interval{{SourceStart: sec(10), SourceEnd: sec(60)}},
		},
		{
			name:  "trailing edge",
			start: sec(50),
			end:   sec(60),
			want:  []Interval{{SourceStart: 0, SourceEnd: sec(50)}},
		},
		{
			name:  "whole timeline",
			start: 0,
			end:   sec(60),
			want:  nil,
		},
		{
			name:  "end beyond total clamps",
			start: sec(30),
			end:   sec(500),
			want:  []Interval{{SourceStart: 0, SourceEnd: sec(30)}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NewSegmentList(sec(60)).Delete(tc.start, tc.end)
			if err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			assertIntervals(t, next, tc.want...)
		})
	}
}

func TestDeleteDropsCoveredInterval(t *testing.T) {
	l := mustList(t,
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(20), SourceEnd: sec(30)},
		Interval{SourceStart: sec(40), SourceEnd: sec(50)},
	)
	// Sanal [10s, 20s) tam olarak ortadaki aralıktır.
	next, err := l.Delete(sec(10), sec(20))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	assertIntervals(t, next,
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(40), SourceEnd: sec(50)},
	)
}

func TestDeleteRejectsInvalidRange(t *testing.T) {
	l := NewSegmentList(sec(60))
	if _, err := l.Delete(sec(20), sec(20)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := l.Delete(sec(20), sec(10)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := l.Delete(-sec(10), sec(5)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("negative start must be ErrOutOfBounds, got %v", err)
	}
	if l.TotalDuration() != sec(60) {
		t.Fatalf("receiver changed: %s", l.TotalDuration())
	}
	if _, err := l.Delete(sec(60), sec(70)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := NewSegmentList(0).Delete(0, sec(1)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds on empty list, got %v", err)
	}
}

func TestVirtualToSourceBoundaryPolicy(t *testing.T) {
	l := mustList(t,
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(20), SourceEnd: sec(30)},
	)
	cases := []struct {
		virtual time.Duration
		want    time.Duration
	}{
		{virtual: -sec(1), want: 0},
		{virtual: 0, want: 0},
		{virtual: sec(5), want: sec(5)},
		{virtual: sec(10), want: sec(20)}, // iç sınır bir sonraki aralığa ait
		{virtual: sec(15), want: sec(25)},
		{virtual: sec(20), want: sec(30)}, // son an gerçek sona denk gelir
		{virtual: sec(99), want: sec(30)},
	}
	for _, tc := range cases {
		if got := l.VirtualToSource(tc.virtual); got != tc.want {
			t.Fatalf("VirtualToSource(%s): expected %s, got %s", tc.virtual, tc.want, got)
		}
	}
	if got := NewSegmentList(0).VirtualToSource(sec(3)); got != 0 {
		t.Fatalf("expected 0 for empty list, got %s", got)
	}
}

func TestDeleteKeepsInvariantsAndConservesDuration(t *testing.T) {
	l := NewSegmentList(sec(600))
	edits := []struct{ start, end time.Duration }{
		{sec(100), sec(130)},
		{sec(10), sec(11)},
		{sec(0), sec(5)},
		{sec(200), sec(350)},
		{sec(95), sec(96)},
		{sec(400) + 250*time.Millisecond, sec(410)},
		{sec(3), sec(4)},
	}

	expected := l.TotalDuration()
	for i, e := range edits {
		next, err := l.Delete(e.start, e.end)
		if err != nil {
			t.Fatalf("edit %d failed: %v", i, err)
		}
		removed := e.end - e.start
		if e.end > l.TotalDuration() {
			removed = l.TotalDuration() - e.start
		}
		expected -= removed
		if next.TotalDuration() != expected {
			t.Fatalf("edit %d: expected total %s, got %s", i, expected, next.TotalDuration())
		}
		if err := next.Validate(); err != nil {
			t.Fatalf("edit %d broke invariants: %v", i, err)
		}
		l = next
	}

	step := 250 * time.Millisecond
	for v := time.Duration(0); v <= l.TotalDuration(); v += step {
		back, ok := l.SourceToVirtual(l.VirtualToSource(v))
		if !ok || back != v {
			t.Fatalf("round trip failed for %s: got %s (ok=%v)", v, back, ok)
		}
	}
	back, ok := l.SourceToVirtual(l.VirtualToSource(l.TotalDuration()))
	if !ok || back != l.TotalDuration() {
		t.Fatalf("round trip failed at end: got %s", back)
	}
}

func TestRepeatedSubSecondEditsDoNotDrift(t *testing.T) {
	l := NewSegmentList(sec(10))
	for i := 0; i < 30; i++ {
		next, err := l.Delete(100*time.Millisecond, 100*time.Millisecond+time.Millisecond/3)
		if err != nil {
			t.Fatalf("edit %d failed: %v", i, err)
		}
		l = next
	}
	want := sec(10) - 30*(time.Millisecond/3)
	if l.TotalDuration() != want {
		t.Fatalf("expected %s, got %s", want, l.TotalDuration())
	}
}

func TestSegmentListFromRejectsOverlap(t *testing.T) {
	_, err := SegmentListFrom(
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(5), SourceEnd: sec(15)},
	)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := SegmentListFrom(Interval{SourceStart: sec(3), SourceEnd: sec(3)}); err == nil {
		t.Fatalf("expected error for empty interval")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewSegmentList(sec(30))
	c := l.Clone()
	c.intervals[0].SourceEnd = sec(5)
	if l.TotalDuration() != sec(30) {
		t.Fatalf("clone shares storage with original")
	}
}

func TestDeletedRegionsAndNextKept(t *testing.T) {
	l := mustList(t,
		Interval{SourceStart: sec(5), SourceEnd: sec(10)},
		Interval{SourceStart: sec(20), SourceEnd: sec(30)},
	)
	assertIntervals(t, &SegmentList{intervals: l.DeletedRegions(sec(40))},
		Interval{SourceStart: 0, SourceEnd: sec(5)},
		Interval{SourceStart: sec(10), SourceEnd: sec(20)},
		Interval{SourceStart: sec(30), SourceEnd: sec(40)},
	)

	next, ok := l.NextKeptAfter(sec(12))
	if !ok || next.SourceStart != sec(20) {
		t.Fatalf("unexpected next kept interval: %s (ok=%v)", next, ok)
	}
	if _, ok := l.NextKeptAfter(sec(31)); ok {
		t.Fatalf("expected no interval after 31s")
	}
}

func TestIntervalBasics(t *testing.T) {
	iv, err := NewInterval(sec(2), sec(5))
	if err != nil {
		t.Fatalf("NewInterval failed: %v", err)
	}
	if iv.Duration() != sec(3) {
		t.Fatalf("unexpected duration: %s", iv.Duration())
	}
	if !iv.Contains(sec(2)) || !iv.Contains(sec(5)) || iv.Contains(sec(6)) {
		t.Fatalf("Contains must be inclusive on both ends")
	}
	if _, err := NewInterval(sec(5), sec(5)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestVirtualOffset(t *testing.T) {
	l := mustList(t,
		Interval{SourceStart: 0, SourceEnd: sec(10)},
		Interval{SourceStart: sec(20), SourceEnd: sec(30)},
	)
	cases := []struct {
		source time.Duration
		want   time.Duration
	}{
		{source: sec(5), want: sec(5)},
		{source: sec(15), want: sec(10)},
		{source: sec(25), want: sec(15)},
		{source: sec(40), want: sec(20)},
	}
	for _, tc := range cases {
		if got := l.VirtualOffset(tc.source); got != tc.want {
			t.Fatalf("VirtualOffset(%s): expected %s, got %s", tc.source, tc.want, got)
		}
	}
}
