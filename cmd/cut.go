package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/export"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var (
	cutFlags    exportFlags
	cutDelete   string
	cutSource   bool
	cutDuration string
)

var cutCmd = &cobra.Command{
	Use:   "cut <video>",
	Short: "Videodan aralık sil ve sonucu dışa aktar",
	Long: `Verilen aralıkları sırayla siler ve kalan kısımları tek bir video olarak
dışa aktarır. Aralıklar varsayılan olarak sanal zamandadır: her silme bir önceki
silmeden sonra kalan videoya göre yorumlanır. --source ile aralıklar orijinal
dosyanın zamanına göre verilir.

Örnekler:
  videoedit-cli cut klip.mp4 --delete "00:00:10-00:00:20"
  videoedit-cli cut klip.mp4 --delete "10-20,30-35" --codec copy
  videoedit-cli cut klip.mp4 --delete "40-50,10-20" --source --edl klip.edl
  videoedit-cli cut klip.mp4 --delete "5-8" --report md --dry-run
  videoedit-cli cut klip.mp4 --delete "1:00-1:30" --profile web-h264 -o ./cikti`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		jsonOutput := isJSONOutput()

		settings, err := cutFlags.resolve(cmd)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		ranges, err := timeline.ParseRanges(cutDelete)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		total, err := sourceDurationFor(cmd.Context(), input, cutDuration)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		m := newManager()
		m.Initialize(total)
		edits, err := applyDeletes(m, ranges, cutSource)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		if !jsonOutput {
			for _, e := range edits {
				ui.PrintDebug("%s", e)
			}
			ui.PrintSegments(m.Current())
		}

		started := time.Now()
		out, err := runExport(cmd.Context(), exportJob{
			Input:          input,
			SourceDuration: total,
			List:           m.Current(),
			Edits:          edits,
			EDLPath:        cutFlags.edl,
			ReportPath:     cutFlags.reportFile,
		}, settings, exportProgress(jsonOutput))

		if jsonOutput {
			payload := map[string]any{
				"input":   input,
				"edits":   edits,
				"export":  out,
				"success": err == nil,
			}
			if err != nil {
				payload["error"] = err.Error()
			}
			if printErr := printJSON(payload); printErr != nil {
				return printErr
			}
			return err
		}
		if err != nil {
			ui.PrintError(fmt.Sprintf("Dışa aktarma başarısız: %s", err.Error()))
			return err
		}
		printExportOutcome(out, time.Since(started))
		return nil
	},
}

// applyDeletes aralıkları sırayla siler. source true ise her aralık güncel
// listeye göre sanal zamana çevrilir; tamamen silinmiş aralıklar atlanır.
func applyDeletes(m *timeline.Manager, ranges []timeline.Range, source bool) ([]string, error) {
	edits := make([]string, 0, len(ranges))
	for _, r := range ranges {
		start, end := r.Start, r.End
		space := "virtual"
		if source {
			space = "source"
			cur := m.Current()
			start, end = cur.VirtualOffset(r.Start), cur.VirtualOffset(r.End)
			if end <= start {
				edits = append(edits, fmt.Sprintf("noop source %s -> %s", timeline.FormatTimecode(r.Start), timeline.FormatTimecode(r.End)))
				continue
			}
		}

		before := m.Current().TotalDuration()
		if err := m.Apply(timeline.DeleteCommand{Start: start, End: end}); err != nil {
			return edits, fmt.Errorf("%s -> %s silinemedi: %w",
				timeline.FormatTimecode(start), timeline.FormatTimecode(end), err)
		}
		rangeText := fmt.Sprintf("%s -> %s", timeline.FormatTimecode(start), timeline.FormatTimecode(end))
		if !isJSONOutput() {
			ui.PrintCut(rangeText, before, m.Current().TotalDuration())
		}
		edits = append(edits, fmt.Sprintf("delete %s %s", space, rangeText))
	}
	return edits, nil
}

func exportProgress(quiet bool) export.Progress {
	if quiet {
		return nil
	}
	var pb *ui.ProgressBar
	return func(done, total int) {
		if pb == nil {
			pb = ui.NewProgressBar(total, "Parçalar")
		}
		pb.Update(done)
	}
}

func printExportOutcome(out exportOutcome, elapsed time.Duration) {
	plan := out.Plan
	if plan.CodecNote != "" {
		ui.PrintDebug("codec: %s", plan.CodecNote)
	}
	switch {
	case out.DryRun:
		ui.PrintInfo("Ön izleme modu (--dry-run) — dışa aktarma yapılmadı.")
		ui.PrintExport(plan.Input, plan.Output)
		if plan.WouldSkip {
			ui.PrintWarning("Çıktı zaten var; on-conflict=skip nedeniyle atlanacak.")
		}
	case out.Result.Skipped:
		ui.PrintWarning(fmt.Sprintf("Çıktı zaten var, atlandı: %s", out.Output()))
		return
	default:
		ui.PrintExport(plan.Input, out.Output())
		ui.PrintSuccess(fmt.Sprintf("Dışa aktarıldı (%d parça)", out.Result.Parts))
	}

	ui.PrintInfo(fmt.Sprintf("Kaynak: %s  Sonuç: %s  Silinen: %s",
		timeline.FormatTimecode(plan.SourceDuration),
		timeline.FormatTimecode(plan.OutputDuration),
		timeline.FormatTimecode(plan.RemovedTotal)))
	if out.EDLPath != "" {
		ui.PrintInfo(fmt.Sprintf("EDL yazıldı: %s", out.EDLPath))
	}
	if out.ReportPath != "" {
		ui.PrintInfo(fmt.Sprintf("Kesim listesi yazıldı: %s", out.ReportPath))
	}
	if !out.DryRun {
		ui.PrintDuration(elapsed)
	}
}

func init() {
	cutFlags.register(cutCmd, true)
	cutCmd.Flags().StringVarP(&cutDelete, "delete", "d", "", "Silinecek aralıklar (ör: 00:00:10-00:00:20,30-35)")
	cutCmd.Flags().BoolVar(&cutSource, "source", false, "Aralıklar kaynak dosya zamanında")
	cutCmd.Flags().StringVar(&cutDuration, "duration", "", "Kaynak süresi (ffprobe yoksa, ör: 00:05:00)")
	cutCmd.MarkFlagRequired("delete")

	rootCmd.AddCommand(cutCmd)
}
