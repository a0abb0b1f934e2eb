package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/script"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var applyFlags exportFlags

var applyCmd = &cobra.Command{
	Use:   "apply <betik.json>",
	Short: "Edit betiğini çalıştır ve sonucu dışa aktar",
	Long: `JSON formatında tanımlanan edit betiğini (delete, undo, redo, reset adımları)
sırayla uygular ve son zaman çizelgesini dışa aktarır. Betikteki yollar betiğin
bulunduğu dizine göredir; komut satırında verilen flag'ler betikten önceliklidir.

Örnek betik:
  {
    "source": "klip.mp4",
    "ops": [
      {"op": "delete", "start": "00:00:10", "end": "00:00:20"},
      {"op": "delete", "start": "40", "end": "50", "space": "source"},
      {"op": "undo"}
    ]
  }

Örnekler:
  videoedit-cli apply duzenleme.json
  videoedit-cli apply duzenleme.json --profile archive --edl duzenleme.edl
  videoedit-cli apply duzenleme.json --dry-run --output-format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		jsonOutput := isJSONOutput()

		settings, err := applyFlags.resolve(cmd)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		s, err := script.Load(path)
		if err != nil {
			appMetrics.ObserveScript("invalid")
			ui.PrintError(err.Error())
			return err
		}
		if !jsonOutput {
			ui.PrintInfo(fmt.Sprintf("Betik çalıştırılıyor: %s", path))
		}

		res, err := script.Run(cmd.Context(), s, script.Config{
			HistoryDepth: historyDepth,
			Observers:    []func(timeline.Change){appMetrics.Observer()},
		})
		if res != nil && !jsonOutput {
			printScriptSteps(res)
		}
		if err != nil {
			appMetrics.ObserveScript("failed")
			ui.PrintError(fmt.Sprintf("Betik başarısız: %s", err.Error()))
			return err
		}
		appMetrics.ObserveScript("success")

		edlPath := s.EDLPath()
		if applyFlags.edl != "" {
			edlPath = applyFlags.edl
		}
		job := exportJob{
			Input:          s.SourcePath(),
			Output:         s.OutputPath(),
			SourceDuration: res.SourceDuration,
			List:           res.Final(),
			Edits:          res.Edits(),
			EDLPath:        edlPath,
			ReportPath:     applyFlags.reportFile,
		}

		started := time.Now()
		out, err := runExport(cmd.Context(), job, settings.withScript(s), exportProgress(jsonOutput))
		if jsonOutput {
			payload := map[string]any{
				"script":  path,
				"steps":   res.Steps,
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

func printScriptSteps(res *script.Result) {
	rows := make([][]string, 0, len(res.Steps))
	for _, st := range res.Steps {
		rows = append(rows, []string{
			fmt.Sprintf("%d", st.Index),
			st.Op,
			st.Status,
			timeline.FormatTimecode(st.Total),
			st.Detail,
		})
	}
	ui.PrintTable([]string{"#", "İşlem", "Durum", "Süre", "Detay"}, rows)
}

func init() {
	applyFlags.register(applyCmd, true)
	rootCmd.AddCommand(applyCmd)
}
