package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var (
	infoDelete string
	infoSource bool
)

var infoCmd = &cobra.Command{
	Use:   "info <video>",
	Short: "Video hakkında detaylı bilgi göster",
	Long: `Bir videonun format, boyut, süre, çözünürlük, codec ve kare hızı bilgilerini gösterir.
EDL üretiminde kullanılan kare hızı buradan okunur.

Örnekler:
  videoedit-cli info klip.mp4
  videoedit-cli info klip.mov --output-format json
  videoedit-cli info klip.mp4 --delete "10-20,1:00-1:15"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := media.Probe(cmd.Context(), args[0])
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		var edited *infoEdit
		if strings.TrimSpace(infoDelete) != "" {
			if edited, err = previewInfoEdit(info.Duration, infoDelete, infoSource); err != nil {
				return err
			}
		}

		if isJSONOutput() {
			return printJSON(struct {
				media.Info
				Edit *infoEdit `json:"edit,omitempty"`
			}{info, edited})
		}

		printVideoInfo(info)
		if edited != nil {
			fmt.Println()
			ui.PrintSegments(edited.list)
			ui.PrintInfo(fmt.Sprintf("Düzenlenmiş süre: %s (%s silinecek)",
				timeline.FormatTimecode(edited.OutputDuration), timeline.FormatTimecode(edited.Removed)))
		}
		return nil
	},
}

// infoEdit info çıktısına eklenen düzenleme özetidir.
type infoEdit struct {
	Edits          []string      `json:"edits"`
	Segments       int           `json:"segments"`
	OutputDuration time.Duration `json:"output_duration_ns"`
	Removed        time.Duration `json:"removed_ns"`

	list *timeline.SegmentList
}

func previewInfoEdit(total time.Duration, spec string, source bool) (*infoEdit, error) {
	if total <= 0 {
		return nil, fmt.Errorf("video suresi bilinmiyor, --delete uygulanamaz")
	}
	ranges, err := timeline.ParseRanges(spec)
	if err != nil {
		return nil, err
	}
	m := newManager()
	m.Initialize(total)
	edits, err := applyDeletes(m, ranges, source)
	if err != nil {
		return nil, err
	}
	list := m.Current()
	return &infoEdit{
		Edits:          edits,
		Segments:       list.Len(),
		OutputDuration: list.TotalDuration(),
		Removed:        total - list.TotalDuration(),
		list:           list,
	}, nil
}

func init() {
	infoCmd.Flags().StringVarP(&infoDelete, "delete", "d", "", "Silinecek aralıklar; düzenlenmiş süreyi de gösterir")
	infoCmd.Flags().BoolVar(&infoSource, "source", false, "Aralıklar kaynak video zamanında")
	rootCmd.AddCommand(infoCmd)
}

func printVideoInfo(info media.Info) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E2E8F0")).
		Width(16)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748B"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#334155")).
		Padding(1, 2).
		MarginTop(1)

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s  %s", ui.IconVideo, info.FileName)))
	lines = append(lines, dimStyle.Render(strings.Repeat("─", 40)))

	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Format", strings.ToUpper(info.Format)))
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Boyut", info.SizeText))
	if info.Duration > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Süre", timeline.FormatTimecode(info.Duration)))
	}
	if info.Resolution != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Çözünürlük", info.Resolution))
	}
	if info.VideoCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Video Codec", info.VideoCodec))
	}
	if info.AudioCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Ses Codec", info.AudioCodec))
	}
	if info.Bitrate != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Bitrate", info.Bitrate))
	}
	if info.FrameRate.Valid() {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "FPS", info.FrameRate.String()))
	}
	if info.Channels > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Kanal", channelLabel(info.Channels)))
	}
	if info.SampleRate > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Örnekleme", fmt.Sprintf("%d Hz", info.SampleRate)))
	}

	fmt.Println(boxStyle.Render(strings.Join(lines, "\n")))
}

func formatInfoLine(labelStyle, valueStyle lipgloss.Style, label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func channelLabel(n int) string {
	switch n {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%d", n)
	}
}
