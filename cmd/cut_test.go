package cmd

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/report"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

func quietUI(t *testing.T) {
	t.Helper()
	prev := ui.Out
	ui.Out = io.Discard
	t.Cleanup(func() { ui.Out = prev })
}

func testManager(t *testing.T, total time.Duration) *timeline.Manager {
	t.Helper()
	m := timeline.NewManager()
	m.Initialize(total)
	return m
}

func mustRanges(t *testing.T, spec string) []timeline.Range {
	t.Helper()
	r, err := timeline.ParseRanges(spec)
	if err != nil {
		t.Fatalf("parse ranges failed: %v", err)
	}
	return r
}

func TestApplyDeletesVirtualIsSequential(t *testing.T) {
	quietUI(t)
	m := testManager(t, 60*time.Second)

	edits, err := applyDeletes(m, mustRanges(t, "10-20,10-20"), false)
	if err != nil {
		t.Fatalf("applyDeletes failed: %v", err)
	}
	if len(edits) != 2 {
		t.Fatalf("unexpected edits: %v", edits)
	}
	got := m.Current().Intervals()
	want := []timeline.Interval{{SourceStart: 0, SourceEnd: 10 * time.Second}, {SourceStart: 30 * time.Second, SourceEnd: 60 * time.Second}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected intervals: %v", got)
	}
	if undo, _ := m.HistoryDepth(); undo != 2 {
		t.Fatalf("expected two undo entries, got %d", undo)
	}
}

func TestApplyDeletesSourceCoordinates(t *testing.T) {
	quietUI(t)
	m := testManager(t, 60*time.Second)

	edits, err := applyDeletes(m, mustRanges(t, "40-50,10-20,15-18"), true)
	if err != nil {
		t.Fatalf("applyDeletes failed: %v", err)
	}
	got := m.Current().Intervals()
	want := []timeline.Interval{
		{SourceStart: 0, SourceEnd: 10 * time.Second},
		{SourceStart: 20 * time.Second, SourceEnd: 40 * time.Second},
		{SourceStart: 50 * time.Second, SourceEnd: 60 * time.Second},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected intervals: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected interval %d: %v", i, got[i])
		}
	}
	if len(edits) != 3 || edits[2][:4] != "noop" {
		t.Fatalf("expected already deleted range to be a noop: %v", edits)
	}
}

func TestApplyDeletesOutOfBounds(t *testing.T) {
	quietUI(t)
	m := testManager(t, 30*time.Second)
	if _, err := applyDeletes(m, mustRanges(t, "40-50"), false); err == nil {
		t.Fatalf("expected out of bounds error")
	}
	if m.CanUndo() {
		t.Fatalf("failed delete must not record history")
	}
}

func TestMapPoint(t *testing.T) {
	list, err := timeline.NewSegmentList(60*time.Second).Delete(10*time.Second, 20*time.Second)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	r := mapPoint(list, mapFromVirtual, 15*time.Second)
	if r.Source != 25*time.Second || r.Deleted || r.Clamped {
		t.Fatalf("unexpected virtual mapping: %+v", r)
	}

	r = mapPoint(list, mapFromSource, 25*time.Second)
	if r.Virtual != 15*time.Second || r.Deleted {
		t.Fatalf("unexpected source mapping: %+v", r)
	}

	r = mapPoint(list, mapFromSource, 15*time.Second)
	if !r.Deleted || r.Virtual != 10*time.Second {
		t.Fatalf("expected deleted source time to map to next kept moment: %+v", r)
	}

	r = mapPoint(list, mapFromVirtual, 90*time.Second)
	if !r.Clamped || r.Virtual != 50*time.Second || r.Source != 60*time.Second {
		t.Fatalf("expected clamped mapping: %+v", r)
	}
}

func TestRunExportDryRun(t *testing.T) {
	quietUI(t)
	dir := t.TempDir()
	prevOut := outputDir
	outputDir = ""
	t.Cleanup(func() { outputDir = prevOut })

	m := testManager(t, 60*time.Second)
	if err := m.DeleteSegment(10*time.Second, 20*time.Second); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	input := filepath.Join(dir, "klip.mp4")
	out, err := runExport(context.Background(), exportJob{
		Input:          input,
		SourceDuration: 60 * time.Second,
		List:           m.Current(),
	}, exportSettings{
		Codec:        media.CodecCopy,
		OnConflict:   media.ConflictVersioned,
		MetadataMode: media.MetadataAuto,
		Report:       report.FormatMD,
		DryRun:       true,
	}, nil)
	if err != nil {
		t.Fatalf("runExport failed: %v", err)
	}
	if !out.DryRun || out.Output() != filepath.Join(dir, "klip_edited.mp4") {
		t.Fatalf("unexpected dry-run outcome: %+v", out)
	}
	if len(out.Plan.Kept) != 2 || out.Plan.RemovedTotal != 10*time.Second {
		t.Fatalf("unexpected plan: %+v", out.Plan)
	}
	if out.ReportPath != "" || out.EDLPath != "" {
		t.Fatalf("dry-run must not write artifacts: %+v", out)
	}
}

func TestExportOutputPath(t *testing.T) {
	prevOut := outputDir
	t.Cleanup(func() { outputDir = prevOut })

	outputDir = ""
	if got := exportOutputPath("/v/klip.mov", "/x/son.mp4", "mp4"); got != "/x/son.mp4" {
		t.Fatalf("explicit output must win, got %s", got)
	}
	if got := exportOutputPath("/v/klip.mov", "", ""); got != filepath.Join("/v", "klip_edited.mov") {
		t.Fatalf("unexpected default output: %s", got)
	}
	outputDir = "/cikti"
	if got := exportOutputPath("/v/klip.mov", "", "mkv"); got != filepath.Join("/cikti", "klip_edited.mkv") {
		t.Fatalf("unexpected output dir path: %s", got)
	}
}
