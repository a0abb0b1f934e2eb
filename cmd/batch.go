package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/batch"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var (
	batchFlags      exportFlags
	batchRecursive  bool
	batchReport     string
	batchReportFile string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dizin veya glob>",
	Short: "Birden fazla edit betiğini toplu uygula",
	Long: `Bir dizindeki veya glob pattern'e uyan tüm edit betiklerini (.json) paralel
olarak çalıştırır ve her birinin sonucunu dışa aktarır. Her betik kendi
zaman çizelgesi üzerinde bağımsız çalışır.

Örnekler:
  videoedit-cli batch ./betikler
  videoedit-cli batch ./betikler --recursive --workers 4
  videoedit-cli batch "bolum-*.json" --profile web-h264
  videoedit-cli batch ./betikler --dry-run --output-format json
  videoedit-cli batch ./betikler --retry 2 --batch-report json --batch-report-file rapor.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := batchFlags.resolve(cmd)
		if err != nil {
			return err
		}
		if batch.NormalizeReportFormat(batchReport) == "" {
			return fmt.Errorf("gecersiz batch-report formati: %s (off|txt|json)", batchReport)
		}

		files, err := collectScriptFiles(args[0], batchRecursive)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		if len(files) == 0 {
			ui.PrintWarning("Edit betiği bulunamadı.")
			return nil
		}

		if !isJSONOutput() {
			ui.PrintInfo(fmt.Sprintf("%d adet edit betiği bulundu", len(files)))
			for _, f := range files {
				ui.PrintDebug("  %s", f)
			}
			if settings.DryRun {
				ui.PrintInfo("Ön izleme modu (--dry-run) — dışa aktarma yapılmayacak.")
			}
			fmt.Println()
		}

		run := runScriptBatch(cmd.Context(), files, settings, !isJSONOutput())
		if err := writeBatchReport(batchReport, batchReportFile, run); err != nil {
			return err
		}

		if isJSONOutput() {
			out, err := batch.RenderReport(batch.ReportJSON, run.Summary, run.Results, run.StartedAt, run.EndedAt)
			if err != nil {
				return err
			}
			fmt.Print(out)
		} else {
			printBatchRun(run)
		}

		if run.Summary.Failed > 0 {
			return fmt.Errorf("%d betik uygulanamadi", run.Summary.Failed)
		}
		return nil
	},
}

// batchRun bir toplu çalıştırmanın sonuçlarıdır.
type batchRun struct {
	Results   []batch.JobResult
	Summary   batch.Summary
	StartedAt time.Time
	EndedAt   time.Time
}

func collectScriptFiles(source string, recursive bool) ([]string, error) {
	info, err := os.Stat(source)
	if err == nil && info.IsDir() {
		files, err := batch.CollectScripts(source, recursive)
		if err != nil {
			return nil, fmt.Errorf("dizin taranamadi: %w", err)
		}
		return files, nil
	}
	files, err := batch.CollectScriptsFromGlob(source)
	if err != nil {
		return nil, fmt.Errorf("glob pattern hatasi: %w", err)
	}
	return files, nil
}

// runScriptBatch betikleri worker pool üzerinde çalıştırır.
func runScriptBatch(ctx context.Context, files []string, settings exportSettings, showProgress bool) batchRun {
	jobs := make([]batch.Job, len(files))
	for i, f := range files {
		jobs[i] = batch.Job{ScriptPath: f}
	}

	pool := batch.NewPool(workers)
	pool.SetRetry(settings.Retry, settings.RetryDelay)
	if showProgress {
		pb := ui.NewProgressBar(len(jobs), "Uygulanıyor")
		pool.OnProgress = func(completed, total int) {
			pb.Update(completed)
		}
	}

	startedAt := time.Now()
	results := pool.Execute(ctx, jobs, scriptRunner(settings))
	endedAt := time.Now()

	return batchRun{
		Results:   results,
		Summary:   batch.GetSummary(results, endedAt.Sub(startedAt)),
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}
}

func scriptRunner(settings exportSettings) batch.Runner {
	return func(ctx context.Context, job batch.Job) (batch.Outcome, error) {
		out, err := runScriptFile(ctx, job.ScriptPath, settings)
		if err != nil {
			return batch.Outcome{}, err
		}
		plan := out.Export.Plan
		return batch.Outcome{
			OutputPath: out.Export.Output(),
			Kept:       len(plan.Kept),
			Duration:   plan.OutputDuration,
			Skipped:    out.Export.Result.Skipped,
		}, nil
	}
}

func printBatchRun(run batchRun) {
	s := run.Summary
	ui.PrintBatchSummary(s.Total, s.Succeeded, s.Skipped, s.Failed, s.Duration)
	if len(s.Errors) > 0 {
		ui.PrintError("Uygulanamayan betikler:")
		for _, e := range s.Errors {
			fmt.Printf("  %s %s: %s (deneme: %d)\n", ui.IconError, e.ScriptFile, e.Error, e.Attempts)
		}
		fmt.Println()
	}
}

func writeBatchReport(format, path string, run batchRun) error {
	format = batch.NormalizeReportFormat(format)
	if format == batch.ReportOff {
		return nil
	}
	content, err := batch.RenderReport(format, run.Summary, run.Results, run.StartedAt, run.EndedAt)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := writeTextReport(path, content); err != nil {
		return fmt.Errorf("batch raporu yazilamadi: %w", err)
	}
	ui.PrintInfo(fmt.Sprintf("Batch raporu yazıldı: %s", path))
	return nil
}

func init() {
	batchFlags.register(batchCmd, false)
	batchCmd.Flags().BoolVarP(&batchRecursive, "recursive", "r", false, "Alt dizinleri de tara")
	batchCmd.Flags().StringVar(&batchReport, "batch-report", batch.ReportOff, "Toplu iş raporu: off, txt, json")
	batchCmd.Flags().StringVar(&batchReportFile, "batch-report-file", "", "Toplu iş raporu dosya yolu (varsayılan: stdout)")

	rootCmd.AddCommand(batchCmd)
}
