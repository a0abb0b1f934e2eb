package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/playback"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var (
	previewDelete   string
	previewSource   bool
	previewDuration string
	previewFrom     string
	previewSpeed    int
)

// previewReport önizleme boyunca görülen olaylardır.
type previewReport struct {
	Events   []previewEvent `json:"events"`
	Position time.Duration  `json:"final_source_ns"`
	Elapsed  time.Duration  `json:"elapsed_ns"`
}

type previewEvent struct {
	Kind string        `json:"kind"`
	From time.Duration `json:"from_ns"`
	To   time.Duration `json:"to_ns"`
}

var previewCmd = &cobra.Command{
	Use:   "preview <video>",
	Short: "Silmelerle oynatmayı görüntüsüz simüle et",
	Long: `Silmeler uygulandıktan sonra oynatmayı sanal bir saatle simüle eder ve
silinen bölgelerin atlandığı noktaları listeler. Görüntü çözülmez.

Örnekler:
  videoedit-cli preview klip.mp4 --delete "10-20,40-45"
  videoedit-cli preview klip.mp4 --delete "10-20" --from 0:05 --speed 20
  videoedit-cli preview klip.mp4 --delete "1:00-1:30" --source --duration 5:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if previewSpeed <= 0 {
			return fmt.Errorf("--speed pozitif olmali")
		}
		total, err := sourceDurationFor(cmd.Context(), input, previewDuration)
		if err != nil {
			return err
		}

		m := newManager()
		m.Initialize(total)
		if strings.TrimSpace(previewDelete) != "" {
			ranges, err := timeline.ParseRanges(previewDelete)
			if err != nil {
				return err
			}
			if _, err := applyDeletes(m, ranges, previewSource); err != nil {
				return err
			}
		}

		var start time.Duration
		if strings.TrimSpace(previewFrom) != "" {
			if start, err = timeline.ParseTimecode(previewFrom); err != nil {
				return fmt.Errorf("gecersiz --from: %w", err)
			}
		}

		onEvent := func(ev playback.Event) {
			if isJSONOutput() {
				return
			}
			switch ev.Kind {
			case playback.EventSkipped:
				ui.PrintInfo(fmt.Sprintf("Atlandı: %s -> %s", timeline.FormatTimecode(ev.From), timeline.FormatTimecode(ev.To)))
			case playback.EventEnded:
				ui.PrintInfo(fmt.Sprintf("Bitti: %s", timeline.FormatTimecode(ev.To)))
			}
		}

		report, err := runPreview(cmd.Context(), m, start, previewSpeed, playback.DefaultInterval, onEvent)
		if err != nil {
			return err
		}
		if isJSONOutput() {
			return printJSON(report)
		}
		ui.PrintSuccess(fmt.Sprintf("Önizleme tamamlandı: %d atlama, son konum %s",
			countSkips(report.Events), timeline.FormatTimecode(report.Position)))
		return nil
	},
}

// runPreview transport'u speed katı hızla ilerletir ve Monitor.Run ile
// silinmiş bölgeleri atlatır. Oynatma durunca döner.
func runPreview(ctx context.Context, m *timeline.Manager, start time.Duration, speed int, tick time.Duration, onEvent func(playback.Event)) (previewReport, error) {
	transport := playback.NewSimulatedTransport(m.SourceDuration())
	transport.Seek(m.Current().VirtualToSource(start))
	transport.Play()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		events []previewEvent
	)
	handler := func(ev playback.Event) {
		mu.Lock()
		events = append(events, previewEvent{Kind: eventKindName(ev.Kind), From: ev.From, To: ev.To})
		mu.Unlock()
		if onEvent != nil {
			onEvent(ev)
		}
	}

	monitor := playback.NewMonitor(transport, m,
		playback.WithInterval(tick),
		playback.WithEventHandler(handler),
	)

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	began := time.Now()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			transport.Advance(tick * time.Duration(speed))
			if !transport.Playing() {
				break loop
			}
		}
	}
	cancel()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return previewReport{}, err
	}
	if err := ctx.Err(); err != nil && transport.Playing() {
		return previewReport{}, err
	}

	mu.Lock()
	defer mu.Unlock()
	return previewReport{
		Events:   events,
		Position: transport.Position(),
		Elapsed:  time.Since(began),
	}, nil
}

func eventKindName(k playback.EventKind) string {
	switch k {
	case playback.EventSkipped:
		return "skipped"
	case playback.EventEnded:
		return "ended"
	}
	return "none"
}

func countSkips(events []previewEvent) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == "skipped" {
			n++
		}
	}
	return n
}

func init() {
	previewCmd.Flags().StringVarP(&previewDelete, "delete", "d", "", "Silinecek aralıklar (örn: 10-20,1:05-1:10)")
	previewCmd.Flags().BoolVar(&previewSource, "source", false, "Aralıklar kaynak video zamanında")
	previewCmd.Flags().StringVar(&previewDuration, "duration", "", "Kaynak süresi (ffprobe yoksa)")
	previewCmd.Flags().StringVar(&previewFrom, "from", "", "Başlangıç konumu (sanal zaman)")
	previewCmd.Flags().IntVar(&previewSpeed, "speed", 10, "Simülasyon hız çarpanı")

	rootCmd.AddCommand(previewCmd)
}
