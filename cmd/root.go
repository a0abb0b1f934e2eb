package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/config"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var (
	verbose      bool
	outputDir    string
	workers      int
	historyDepth int
	outputFormat string

	activeProjectConfig     *config.ProjectConfig
	activeProjectConfigPath string

	appVersion = "dev"
	appDate    = ""
)

// SetVersionInfo build-time version bilgisini ayarlar
func SetVersionInfo(version, date string) {
	if strings.TrimSpace(version) != "" {
		appVersion = version
	}
	appDate = strings.TrimSpace(date)
	if appDate == "" || appDate == "unknown" {
		appDate = time.Now().Format("2006-01-02 15:04:05")
	}
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf(
		"VideoEdit CLI v%s\nTarih:  %s\nGo:     %s\nOS:     %s/%s\n",
		appVersion, appDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

var rootCmd = &cobra.Command{
	Use:   "videoedit-cli",
	Short: "VideoEdit CLI - kaynagi bozmayan video kesim araci",
	Long: `VideoEdit CLI — Videolarınızdan aralık silin, geri alın, yeniden yapın ve
sonucu tek seferde dışa aktarın. Kaynak dosya hiçbir zaman değiştirilmez;
düzenleme, korunan kaynak aralıklarının sıralı listesidir.

Koordinatlar:
  Sanal zaman   Düzenlenmiş videodaki konum (silinen kısımlar atlanır)
  Kaynak zaman  Orijinal dosyadaki konum

Örnekler:
  videoedit-cli edit klip.mp4
  videoedit-cli cut klip.mp4 --delete "00:00:10-00:00:20,30-35"
  videoedit-cli cut klip.mp4 --delete "40-50" --source --edl klip.edl --report md
  videoedit-cli map klip.mp4 --delete "10-20" --at 15
  videoedit-cli preview klip.mp4 --delete "10-20"
  videoedit-cli apply duzenleme.json
  videoedit-cli batch ./betikler --workers 4
  videoedit-cli watch ./betikler --metrics-addr :9108
  videoedit-cli doctor`,
	Version: appVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := parseOutputMode(outputFormat); err != nil {
			return err
		}
		if err := loadProjectConfig(); err != nil {
			return err
		}
		if err := applyRootDefaults(cmd); err != nil {
			return err
		}
		ui.SetVerbose(verbose)
		if activeProjectConfigPath != "" {
			ui.PrintDebug("proje ayarlari: %s", activeProjectConfigPath)
		}
		if p, err := config.Path(); err == nil {
			ui.PrintDebug("uygulama ayarlari: %s", p)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintBanner(appVersion)
		if config.IsFirstRun() {
			ui.PrintInfo("İlk çalıştırma: ffmpeg kurulumunu 'videoedit-cli doctor' ile kontrol edin.")
			if err := config.MarkFirstRunDone(); err != nil {
				ui.PrintDebug("ilk calistirma kaydedilemedi: %v", err)
			}
		}
		return cmd.Help()
	},
}

func loadProjectConfig() error {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	cfg, path, err := config.LoadProjectConfig(cwd)
	if err != nil {
		return fmt.Errorf("proje ayarlari okunamadi: %w", err)
	}
	activeProjectConfig = cfg
	activeProjectConfigPath = path
	return nil
}

// Execute CLI'ı çalıştırır. Ctrl+C bağlamı iptal eder; ffmpeg süreçleri de sonlanır.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Detaylı çıktı modu")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Çıktı dizini (varsayılan: kaynak dizin)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Paralel worker sayısı (batch/watch)")
	rootCmd.PersistentFlags().IntVar(&historyDepth, "history-depth", timeline.DefaultHistoryDepth, "Geri alma geçmişi derinliği (0 = sınırsız)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", string(outputText), "Çıktı biçimi: text, json")

	SetVersionInfo(appVersion, appDate)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Hata: %s\n\n", err.Error())
		cmd.Usage()
		return err
	})
}
