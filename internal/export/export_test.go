package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

func editedList(t *testing.T) *timeline.SegmentList {
	t.Helper()
	l, err := timeline.NewSegmentList(60 * time.Second).Delete(10*time.Second, 20*time.Second)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	return l
}

func TestBuildPlan(t *testing.T) {
	dir := t.TempDir()
	plan, err := BuildPlan(editedList(t), Options{
		Input:          filepath.Join(dir, "talk.mp4"),
		Codec:          "auto",
		SourceDuration: 60 * time.Second,
	})
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	if plan.Output != filepath.Join(dir, "talk_edited.mp4") {
		t.Fatalf("unexpected output: %s", plan.Output)
	}
	if plan.Codec != media.CodecCopy {
		t.Fatalf("expected copy codec, got %s", plan.Codec)
	}
	if plan.OutputDuration != 50*time.Second || plan.RemovedTotal != 10*time.Second {
		t.Fatalf("unexpected durations: out=%s removed=%s", plan.OutputDuration, plan.RemovedTotal)
	}
	if len(plan.Kept) != 2 || len(plan.Removed) != 1 {
		t.Fatalf("unexpected kept/removed: %d/%d", len(plan.Kept), len(plan.Removed))
	}
	if plan.ConflictPolicy != media.ConflictVersioned || plan.MetadataMode != media.MetadataAuto {
		t.Fatalf("unexpected defaults: %+v", plan)
	}
}

func TestBuildPlanRejectsEmptyList(t *testing.T) {
	if _, err := BuildPlan(timeline.NewSegmentList(0), Options{Input: "a.mp4"}); err == nil {
		t.Fatalf("expected error for empty list")
	}
	if _, err := BuildPlan(editedList(t), Options{Input: "a.mp4", TargetFormat: "png"}); err == nil {
		t.Fatalf("expected error for non-video target")
	}
}

func TestBuildPlanSkipPolicy(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(out, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	plan, err := BuildPlan(editedList(t), Options{Input: "in.mp4", Output: out, OnConflict: "skip"})
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	if !plan.WouldSkip {
		t.Fatalf("expected skip")
	}
	res, err := Render(context.Background(), plan, false, nil)
	if err != nil || !res.Skipped {
		t.Fatalf("expected skipped render, got %+v (%v)", res, err)
	}
}

func TestPartAndConcatArgs(t *testing.T) {
	plan, err := BuildPlan(editedList(t), Options{
		Input:        "in.mov",
		Output:       filepath.Join(t.TempDir(), "out.mp4"),
		TargetFormat: "mp4",
		Quality:      80,
		MetadataMode: "strip",
	})
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}

	part := strings.Join(plan.PartArgs(1, "/tmp/p2.mp4", false), " ")
	for _, want := range []string{"-ss 20", "-i in.mov", "-t 40", "libx264", "-crf 20"} {
		if !strings.Contains(part, want) {
			t.Fatalf("part args missing %q: %s", want, part)
		}
	}

	concat := strings.Join(plan.ConcatArgs("/tmp/list.txt", true), " ")
	for _, want := range []string{"-f concat", "-c copy", "-map_metadata -1", "+faststart"} {
		if !strings.Contains(concat, want) {
			t.Fatalf("concat args missing %q: %s", want, concat)
		}
	}
	if strings.Contains(concat, "-loglevel") {
		t.Fatalf("verbose concat must not silence ffmpeg: %s", concat)
	}
}

func TestConcatListEscapesQuotes(t *testing.T) {
	got := ConcatList([]string{"/tmp/a.mp4", "/tmp/it's.mp4"})
	want := "file '/tmp/a.mp4'\nfile '/tmp/it'\\''s.mp4'\n"
	if got != want {
		t.Fatalf("unexpected concat list:\n%s", got)
	}
}

func TestWriteEDL(t *testing.T) {
	plan, err := BuildPlan(editedList(t), Options{Input: "talk show.mp4", Output: filepath.Join(t.TempDir(), "o.mp4")})
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteEDL(&buf, plan, EDLOptions{Reel: "talk show reel"}); err != nil {
		t.Fatalf("WriteEDL failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "TITLE: talk show\nFCM: NON-DROP FRAME\n") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	wantLines := []string{
		"001  talk_sho AA/V  C        00:00:00:00 00:00:10:00 00:00:00:00 00:00:10:00",
		"002  talk_sho AA/V  C        00:00:20:00 00:01:00:00 00:00:10:00 00:00:50:00",
		"* FROM CLIP NAME: talk show.mp4",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Fatalf("missing line %q in:\n%s", line, out)
		}
	}
}

func TestFrameTimecode(t *testing.T) {
	if got := FrameTimecode(time.Hour+time.Second+520*time.Millisecond, 25); got != "01:00:01:13" {
		t.Fatalf("unexpected timecode: %s", got)
	}
	if got := FrameTimecode(-time.Second, 30); got != "00:00:00:00" {
		t.Fatalf("unexpected timecode: %s", got)
	}
}
