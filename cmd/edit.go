package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var (
	editFlags    exportFlags
	editDuration string
	editStep     time.Duration
)

var editCmd = &cobra.Command{
	Use:   "edit <video>",
	Short: "Etkileşimli zaman çizelgesi düzenleyicisi",
	Long: `Videoyu terminalde zaman çizelgesi olarak açar. Giriş/çıkış işaretleriyle
aralık silebilir, geri alıp yineleyebilir, silinen kısımları atlayarak
önizleme yapabilir ve sonucu dışa aktarabilirsiniz.

Tuşlar:
  ←/→      Oynatma kafasını adım kadar kaydır
  [ ]      Adımı azalt/artır
  i / o    Giriş/çıkış işareti
  d        İşaretli aralığı sil
  u / r    Geri al / yinele
  space    Önizleme oynat/durdur
  e        Dışa aktar
  q        Çık

Örnekler:
  videoedit-cli edit klip.mp4
  videoedit-cli edit klip.mp4 --step 5s --profile web-h264
  videoedit-cli edit klip.mp4 --duration 00:10:00 --edl klip.edl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		settings, err := editFlags.resolve(cmd)
		if err != nil {
			return err
		}
		total, err := sourceDurationFor(cmd.Context(), input, editDuration)
		if err != nil {
			return err
		}

		step := editStep
		if !cmd.Flags().Changed("step") {
			step = timelineStepDefault()
		}

		m := newManager()
		m.Initialize(total)

		model := newEditModel(cmd.Context(), input, m, settings, step)
		final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return fmt.Errorf("duzenleyici hatasi: %w", err)
		}

		if em, ok := final.(editModel); ok {
			if em.lastOut != "" {
				ui.PrintSuccess(fmt.Sprintf("Son çıktı: %s", em.lastOut))
			}
			ui.PrintSegments(em.manager.Current())
		}
		return nil
	},
}

func init() {
	editFlags.register(editCmd, true)
	editCmd.Flags().StringVar(&editDuration, "duration", "", "Kaynak süresi (ffprobe yoksa, ör: 00:05:00)")
	editCmd.Flags().DurationVar(&editStep, "step", time.Second, "Başlangıç adım süresi")

	rootCmd.AddCommand(editCmd)
}
