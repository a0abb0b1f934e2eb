package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

const (
	mapFromVirtual = "virtual"
	mapFromSource  = "source"
)

var (
	mapAt       []string
	mapFrom     string
	mapDelete   string
	mapSource   bool
	mapDuration string
)

// mapResult tek bir zaman noktasının iki koordinattaki karşılığıdır.
type mapResult struct {
	Input   string        `json:"input"`
	From    string        `json:"from"`
	Virtual time.Duration `json:"virtual_ns"`
	Source  time.Duration `json:"source_ns"`
	// Deleted kaynak zamanı silinmiş bir bölgeye düşüyorsa true; Virtual o
	// zaman bir sonraki korunan anı gösterir.
	Deleted bool `json:"deleted"`
	Clamped bool `json:"clamped,omitempty"`
}

var mapCmd = &cobra.Command{
	Use:   "map <video>",
	Short: "Sanal ve kaynak zaman arasında dönüşüm yap",
	Long: `Silmeler uygulandıktan sonra bir zaman noktasının düzenlenmiş videodaki
(sanal) ve orijinal dosyadaki (kaynak) karşılığını gösterir. Dışa aktarma yapmaz.

Örnekler:
  videoedit-cli map klip.mp4 --delete "10-20" --at 15
  videoedit-cli map klip.mp4 --delete "10-20" --at 15 --from source
  videoedit-cli map klip.mp4 --delete "10-20,5-8" --at 0 --at 30 --at 1:00 --duration 2:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		from := strings.ToLower(strings.TrimSpace(mapFrom))
		if from != mapFromVirtual && from != mapFromSource {
			return fmt.Errorf("gecersiz --from: %s (virtual|source)", mapFrom)
		}
		if len(mapAt) == 0 {
			return fmt.Errorf("en az bir --at degeri belirtmelisiniz")
		}

		total, err := sourceDurationFor(cmd.Context(), input, mapDuration)
		if err != nil {
			return err
		}
		m := newManager()
		m.Initialize(total)
		if strings.TrimSpace(mapDelete) != "" {
			ranges, err := timeline.ParseRanges(mapDelete)
			if err != nil {
				return err
			}
			if _, err := applyDeletes(m, ranges, mapSource); err != nil {
				return err
			}
		}

		results := make([]mapResult, 0, len(mapAt))
		for _, raw := range mapAt {
			t, err := timeline.ParseTimecode(raw)
			if err != nil {
				return err
			}
			r := mapPoint(m.Current(), from, t)
			r.Input = raw
			results = append(results, r)
		}

		if isJSONOutput() {
			return printJSON(map[string]any{
				"input":           input,
				"source_duration": total,
				"virtual_total":   m.Current().TotalDuration(),
				"segments":        m.Current().Intervals(),
				"points":          results,
			})
		}

		ui.PrintSegments(m.Current())
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			note := ""
			switch {
			case r.Deleted:
				note = "silinmiş bölge"
			case r.Clamped:
				note = "sınıra çekildi"
			}
			rows = append(rows, []string{
				r.Input,
				r.From,
				timeline.FormatTimecode(r.Virtual),
				timeline.FormatTimecode(r.Source),
				note,
			})
		}
		ui.PrintTable([]string{"Değer", "Kaynak", "Sanal", "Kaynak Zamanı", "Not"}, rows)
		return nil
	},
}

func mapPoint(list *timeline.SegmentList, from string, t time.Duration) mapResult {
	if from == mapFromSource {
		r := mapResult{From: from, Source: t}
		v, ok := list.SourceToVirtual(t)
		if !ok {
			v = list.VirtualOffset(t)
			r.Deleted = true
		}
		r.Virtual = v
		return r
	}

	r := mapResult{From: mapFromVirtual, Virtual: t}
	if total := list.TotalDuration(); t > total {
		r.Virtual = total
		r.Clamped = true
	}
	r.Source = list.VirtualToSource(t)
	return r
}

func init() {
	mapCmd.Flags().StringArrayVar(&mapAt, "at", nil, "Dönüştürülecek zaman (birden fazla verilebilir)")
	mapCmd.Flags().StringVar(&mapFrom, "from", mapFromVirtual, "Girdi koordinatı: virtual, source")
	mapCmd.Flags().StringVarP(&mapDelete, "delete", "d", "", "Önce uygulanacak silmeler (ör: 10-20,30-35)")
	mapCmd.Flags().BoolVar(&mapSource, "source", false, "Silme aralıkları kaynak zamanında")
	mapCmd.Flags().StringVar(&mapDuration, "duration", "", "Kaynak süresi (ffprobe yoksa)")

	rootCmd.AddCommand(mapCmd)
}
