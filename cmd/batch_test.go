package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlihgenel/videoedit-cli/internal/batch"
	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/report"
)

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func dryRunSettings() exportSettings {
	return exportSettings{
		Codec:        media.CodecAuto,
		OnConflict:   media.ConflictVersioned,
		MetadataMode: media.MetadataAuto,
		Report:       report.FormatOff,
		DryRun:       true,
	}
}

func TestCollectScriptFiles(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "a.json"), "{}")
	writeScript(t, filepath.Join(dir, "a.cutlist.json"), "{}")
	writeScript(t, filepath.Join(dir, "alt", "b.json"), "{}")
	writeScript(t, filepath.Join(dir, "notlar.txt"), "x")

	flat, err := collectScriptFiles(dir, false)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(flat) != 1 || filepath.Base(flat[0]) != "a.json" {
		t.Fatalf("unexpected flat result: %v", flat)
	}

	all, err := collectScriptFiles(dir, true)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unexpected recursive result: %v", all)
	}

	globbed, err := collectScriptFiles(filepath.Join(dir, "*.json"), false)
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(globbed) != 1 {
		t.Fatalf("unexpected glob result: %v", globbed)
	}
}

func TestRunScriptBatchDryRun(t *testing.T) {
	quietUI(t)
	dir := t.TempDir()
	prevOut, prevWorkers := outputDir, workers
	outputDir, workers = "", 2
	t.Cleanup(func() { outputDir, workers = prevOut, prevWorkers })

	good := filepath.Join(dir, "iyi.json")
	writeScript(t, good, `{
  "source": "klip.mp4",
  "duration": "60s",
  "ops": [
    {"op": "delete", "start": "10", "end": "20"},
    {"op": "delete", "start": "40", "end": "50", "space": "source"}
  ]
}`)
	bad := filepath.Join(dir, "bozuk.json")
	writeScript(t, bad, `{
  "source": "klip.mp4",
  "duration": "30s",
  "ops": [{"op": "delete", "start": "40", "end": "50"}]
}`)

	run := runScriptBatch(context.Background(), []string{good, bad}, dryRunSettings(), false)
	if run.Summary.Total != 2 || run.Summary.Succeeded != 1 || run.Summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", run.Summary)
	}

	var ok batch.JobResult
	for _, r := range run.Results {
		if r.Job.ScriptPath == good {
			ok = r
		}
	}
	if !ok.Success || ok.Outcome.Kept != 2 {
		t.Fatalf("unexpected result for valid script: %+v", ok)
	}
	if ok.Outcome.OutputPath != filepath.Join(dir, "klip_edited.mp4") {
		t.Fatalf("unexpected output path: %s", ok.Outcome.OutputPath)
	}
	if len(run.Summary.Errors) != 1 || run.Summary.Errors[0].ScriptFile != bad {
		t.Fatalf("unexpected errors: %+v", run.Summary.Errors)
	}
}

func TestWriteBatchReportFile(t *testing.T) {
	quietUI(t)
	dir := t.TempDir()
	script := filepath.Join(dir, "iyi.json")
	writeScript(t, script, `{"source": "klip.mp4", "duration": "10s", "ops": [{"op": "delete", "start": "1", "end": "2"}]}`)

	run := runScriptBatch(context.Background(), []string{script}, dryRunSettings(), false)
	path := filepath.Join(dir, "rapor", "batch.txt")
	if err := writeBatchReport("text", path, run); err != nil {
		t.Fatalf("writeBatchReport failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report failed: %v", err)
	}
	if !strings.Contains(string(data), "iyi.json") {
		t.Fatalf("report must mention the script: %s", data)
	}

	if err := writeBatchReport("off", filepath.Join(dir, "yok.txt"), run); err != nil {
		t.Fatalf("off report failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "yok.txt")); !os.IsNotExist(err) {
		t.Fatalf("off report must not write a file")
	}
}
