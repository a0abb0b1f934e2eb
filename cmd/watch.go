package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/batch"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
	"github.com/mlihgenel/videoedit-cli/internal/watch"
)

var (
	watchFlags       exportFlags
	watchRecursive   bool
	watchInterval    time.Duration
	watchSettle      time.Duration
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dizin>",
	Short: "Klasörü izleyip yeni edit betiklerini otomatik uygula",
	Long: `Belirtilen klasörü izler; yeni eklenen ya da değişen edit betiklerini (.json)
yazımı bittikten sonra çalıştırıp sonucu dışa aktarır. Mümkünse dosya sistemi
olayları, değilse periyodik tarama kullanılır.

--metrics-addr verilirse Prometheus metrikleri /metrics üzerinden yayınlanır.

Örnekler:
  videoedit-cli watch ./betikler
  videoedit-cli watch ./betikler --recursive --profile fast-copy
  videoedit-cli watch ./betikler --metrics-addr :9108 --retry 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		settings, err := watchFlags.resolve(cmd)
		if err != nil {
			return err
		}

		engine, err := watch.NewAdaptiveWatcher(root, batch.IsScriptFile, watchRecursive, watchSettle)
		if err != nil {
			ui.PrintWarning(fmt.Sprintf("Olay tabanlı izleme açılamadı, taramaya geçiliyor: %s", err.Error()))
		}
		if err := engine.Bootstrap(); err != nil {
			return err
		}
		defer engine.Close()

		ctx := cmd.Context()
		if watchMetricsAddr != "" {
			startMetricsServer(ctx, watchMetricsAddr)
		}

		ui.PrintInfo(fmt.Sprintf("İzleme başladı: %s (%s)", root, engine.Mode()))
		ui.PrintInfo("Durdurmak için Ctrl+C kullanın.")

		handle := func(ctx context.Context, files []string) {
			for _, f := range files {
				ui.PrintDebug("hazir: %s", f)
			}
			run := runScriptBatch(ctx, files, settings, false)
			printBatchRun(run)
		}
		onErr := func(err error) {
			ui.PrintError(fmt.Sprintf("İzleme hatası: %s", err.Error()))
		}

		if err := watch.Run(ctx, engine, watchInterval, handle, onErr); err != nil {
			return err
		}
		ui.PrintInfo("İzleme durduruldu.")
		return nil
	},
}

func startMetricsServer(ctx context.Context, addr string) {
	ready := make(chan string, 1)
	go func() {
		if err := appMetrics.Serve(ctx, addr, ready); err != nil && !errors.Is(err, context.Canceled) {
			ui.PrintError(fmt.Sprintf("Metrik sunucusu durdu: %s", err.Error()))
		}
	}()
	select {
	case bound := <-ready:
		ui.PrintInfo(fmt.Sprintf("Metrikler: http://%s/metrics", bound))
	case <-time.After(2 * time.Second):
	}
}

func init() {
	watchFlags.register(watchCmd, false)
	watchCmd.Flags().BoolVarP(&watchRecursive, "recursive", "r", false, "Alt dizinleri de izle")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "Klasör tarama aralığı")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "Dosyanın stabil sayılması için bekleme süresi")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Prometheus metrik adresi (ör: :9108)")

	rootCmd.AddCommand(watchCmd)
}
