package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/export"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

func sampleCutList(t *testing.T) CutList {
	t.Helper()
	l, err := timeline.SegmentListFrom(
		timeline.Interval{SourceStart: 0, SourceEnd: 5 * time.Second},
		timeline.Interval{SourceStart: 45 * time.Second, SourceEnd: 50 * time.Second},
	)
	if err != nil {
		t.Fatalf("SegmentListFrom failed: %v", err)
	}
	plan, err := export.BuildPlan(l, export.Options{
		Input:          "talk.mp4",
		Output:         filepath.Join(t.TempDir(), "talk_edited.mp4"),
		SourceDuration: 50 * time.Second,
	})
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	return CutList{
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Plan:        plan,
		Edits:       []string{"delete 00:00:05 -> 00:00:25"},
	}
}

func TestRenderTXT(t *testing.T) {
	data, err := Render("txt", sampleCutList(t))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"Output duration: 00:00:10",
		"- [2] 00:00:45 -> 00:00:50 (00:00:05) @ 00:00:05",
		"- [1] 00:00:05 -> 00:00:45 (00:00:40)",
		"- delete 00:00:05 -> 00:00:25",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("txt report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := Render("json", sampleCutList(t))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var payload jsonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload.Kept) != 2 || len(payload.Removed) != 1 {
		t.Fatalf("unexpected rows: %+v", payload)
	}
	if payload.GeneratedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected timestamp: %s", payload.GeneratedAt)
	}
}

func TestRenderHTMLUsesTables(t *testing.T) {
	data, err := Render("html", sampleCutList(t))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<h2 id=\"kept-segments\">") {
		t.Fatalf("html report missing table or heading:\n%s", out)
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := Render("pdf", sampleCutList(t))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
}

func TestRenderOffAndInvalid(t *testing.T) {
	data, err := Render("", sampleCutList(t))
	if err != nil || data != nil {
		t.Fatalf("off format must produce nothing: %v", err)
	}
	if _, err := Render("docx", sampleCutList(t)); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestWriteAndDefaultPath(t *testing.T) {
	c := sampleCutList(t)
	path := DefaultPath(filepath.Join(t.TempDir(), "out", "talk_edited.mp4"), "markdown")
	if !strings.HasSuffix(path, "talk_edited.cutlist.md") {
		t.Fatalf("unexpected default path: %s", path)
	}
	if err := Write(path, "md", c); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "| 1 | 00:00:00 | 00:00:05 | 00:00:05 | 00:00:00 |") {
		t.Fatalf("unexpected markdown:\n%s", data)
	}
}
