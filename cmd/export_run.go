package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/batch"
	"github.com/mlihgenel/videoedit-cli/internal/export"
	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/metrics"
	"github.com/mlihgenel/videoedit-cli/internal/report"
	"github.com/mlihgenel/videoedit-cli/internal/script"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// appMetrics süreç boyunca tek registry'dir; watch --metrics-addr bunu yayınlar.
var appMetrics = metrics.New()

// exportJob tek bir düzenlenmiş videonun dışa aktarma girdisidir.
type exportJob struct {
	Input          string
	Output         string
	SourceDuration time.Duration
	List           *timeline.SegmentList
	Edits          []string
	EDLPath        string
	ReportPath     string
}

// exportOutcome dışa aktarma sonrası üretilen dosyalardır.
type exportOutcome struct {
	Plan       export.Plan   `json:"plan"`
	Result     export.Result `json:"result"`
	DryRun     bool          `json:"dry_run"`
	ReportPath string        `json:"report_path,omitempty"`
	EDLPath    string        `json:"edl_path,omitempty"`
}

// Output gerçek ya da planlanan çıktı yoludur.
func (o exportOutcome) Output() string {
	if o.Result.Output != "" {
		return o.Result.Output
	}
	return o.Plan.Output
}

func newManager(extra ...timeline.Option) *timeline.Manager {
	opts := []timeline.Option{
		timeline.WithHistoryDepth(historyDepth),
		timeline.WithObserver(appMetrics.Observer()),
	}
	return timeline.NewManager(append(opts, extra...)...)
}

// sourceDurationFor --duration verilmişse onu, yoksa ffprobe sonucunu döner.
func sourceDurationFor(ctx context.Context, input, raw string) (time.Duration, error) {
	if strings.TrimSpace(raw) != "" {
		d, err := timeline.ParseTimecode(raw)
		if err != nil {
			return 0, fmt.Errorf("gecersiz --duration: %w", err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("--duration pozitif olmali")
		}
		return d, nil
	}
	if _, err := os.Stat(input); err != nil {
		return 0, fmt.Errorf("dosya bulunamadi: %s", input)
	}
	d, err := media.ProbeDuration(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("video suresi okunamadi (--duration ile verebilirsiniz): %w", err)
	}
	return d, nil
}

func exportOutputPath(input, explicit, target string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if target == "" {
		target = media.DetectFormat(input)
	}
	return media.BuildOutputPath(input, outputDir, target, "")
}

// runExport planı kurar, dry-run değilse ffmpeg ile uygular; ardından EDL ve
// kesim listesi raporunu yazar.
func runExport(ctx context.Context, job exportJob, s exportSettings, progress export.Progress) (exportOutcome, error) {
	plan, err := export.BuildPlan(job.List, export.Options{
		Input:          job.Input,
		Output:         exportOutputPath(job.Input, job.Output, s.To),
		TargetFormat:   s.To,
		Codec:          s.Codec,
		Quality:        s.Quality,
		MetadataMode:   s.MetadataMode,
		OnConflict:     s.OnConflict,
		SourceDuration: job.SourceDuration,
		Verbose:        verbose,
	})
	if err != nil {
		return exportOutcome{}, err
	}

	out := exportOutcome{Plan: plan, DryRun: s.DryRun}
	if s.DryRun {
		return out, nil
	}

	res, err := export.Render(ctx, plan, verbose, progress)
	switch {
	case err != nil:
		appMetrics.ObserveExport("failed", 0)
		return out, err
	case res.Skipped:
		appMetrics.ObserveExport("skipped", 0)
		out.Result = res
		return out, nil
	}
	appMetrics.ObserveExport("success", res.Elapsed)
	out.Result = res

	if job.EDLPath != "" {
		if err := writeEDLFile(ctx, job.EDLPath, plan); err != nil {
			return out, err
		}
		out.EDLPath = job.EDLPath
	}

	format := report.NormalizeFormat(s.Report)
	if format != report.FormatOff {
		path := job.ReportPath
		if path == "" {
			path = report.DefaultPath(res.Output, format)
		}
		cut := report.CutList{GeneratedAt: time.Now(), Plan: plan, Edits: job.Edits}
		if err := report.Write(path, format, cut); err != nil {
			return out, err
		}
		out.ReportPath = path
	}
	return out, nil
}

func writeEDLFile(ctx context.Context, path string, plan export.Plan) error {
	fps := export.DefaultEDLFrameRate
	if info, err := media.Probe(ctx, plan.Input); err == nil && info.FrameRate.Valid() {
		fps = info.FrameRate.Nominal()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("EDL dizini olusturulamadi: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("EDL yazilamadi: %w", err)
	}
	defer f.Close()
	if err := export.WriteEDL(f, plan, export.EDLOptions{FrameRate: fps}); err != nil {
		return fmt.Errorf("EDL yazilamadi: %w", err)
	}
	return f.Close()
}

// scriptOutcome bir betiğin çalıştırma ve dışa aktarma sonucudur.
type scriptOutcome struct {
	Run    *script.Result
	Export exportOutcome
}

// runScriptFile betiği yükler, yeni bir Manager üzerinde çalıştırır ve sonucu dışa aktarır.
func runScriptFile(ctx context.Context, path string, base exportSettings) (scriptOutcome, error) {
	s, err := script.Load(path)
	if err != nil {
		appMetrics.ObserveScript("invalid")
		return scriptOutcome{}, batch.Permanent(err)
	}

	res, err := script.Run(ctx, s, script.Config{
		HistoryDepth: historyDepth,
		Observers:    []func(timeline.Change){appMetrics.Observer()},
	})
	if err != nil {
		appMetrics.ObserveScript("failed")
		if ctx.Err() == nil {
			err = batch.Permanent(err)
		}
		return scriptOutcome{Run: res}, err
	}
	appMetrics.ObserveScript("success")

	out, err := runExport(ctx, exportJob{
		Input:          s.SourcePath(),
		Output:         s.OutputPath(),
		SourceDuration: res.SourceDuration,
		List:           res.Final(),
		Edits:          res.Edits(),
		EDLPath:        s.EDLPath(),
	}, base.withScript(s), nil)
	return scriptOutcome{Run: res, Export: out}, err
}

func writeTextReport(path string, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("rapor dizini olusturulamadi: %w", err)
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
