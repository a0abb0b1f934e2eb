package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Color ANSI renk kodları
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
)

// Icons kullanıcı dostu ikonlar
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️ "
	IconInfo    = "ℹ️ "
	IconCut     = "✂️ "
	IconVideo   = "🎬"
	IconBatch   = "📦"
	IconDone    = "🎉"
	IconTime    = "⏱️ "
	IconFolder  = "📁"
	IconDebug   = "🔎"
)

// Out tüm yardımcıların yazdığı hedeftir; testler değiştirebilir.
var Out io.Writer = os.Stdout

var verboseEnabled atomic.Bool

// SetVerbose PrintDebug çıktısını açar/kapatır.
func SetVerbose(v bool) { verboseEnabled.Store(v) }

// Verbose debug çıktısının açık olup olmadığını döner.
func Verbose() bool { return verboseEnabled.Load() }

// PrintBanner uygulama başlığını yazdırır
func PrintBanner(version string) {
	title := fmt.Sprintf("VideoEdit CLI  v%s", version)
	fmt.Fprintln(Out, Cyan+Bold)
	fmt.Fprintln(Out, "  ╔═══════════════════════════════════════════════╗")
	fmt.Fprintf(Out, "  ║   %-44s║\n", title)
	fmt.Fprintf(Out, "  ║   %-44s║\n", "Kaynagi bozmayan video kesim araci")
	fmt.Fprintln(Out, "  ╚═══════════════════════════════════════════════╝"+Reset)
}

// PrintSuccess başarılı mesaj
func PrintSuccess(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconSuccess, Green, msg, Reset)
}

// PrintError hata mesajı
func PrintError(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconError, Red, msg, Reset)
}

// PrintWarning uyarı mesajı
func PrintWarning(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconWarning, Yellow, msg, Reset)
}

// PrintInfo bilgi mesajı
func PrintInfo(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconInfo, Blue, msg, Reset)
}

// PrintDebug yalnızca --verbose açıkken yazar.
func PrintDebug(format string, args ...any) {
	if !Verbose() {
		return
	}
	fmt.Fprintf(Out, "%s %s%s%s\n", IconDebug, Dim, fmt.Sprintf(format, args...), Reset)
}

// PrintCut bir silme işlemini gösterir
func PrintCut(rangeText string, before, after time.Duration) {
	fmt.Fprintf(Out, "%s %s%s%s  %s → %s%s%s\n", IconCut, Magenta, rangeText, Reset,
		FormatDuration(before), Green, FormatDuration(after), Reset)
}

// PrintExport dışa aktarma mesajı
func PrintExport(input, output string) {
	fmt.Fprintf(Out, "%s  %s%s%s → %s%s%s\n", IconVideo, Dim, input, Reset, Green, output, Reset)
}

// PrintDuration süre bilgisi
func PrintDuration(d time.Duration) {
	fmt.Fprintf(Out, "%s  Süre: %s%s%s\n", IconTime, Cyan, FormatDuration(d), Reset)
}

// ProgressBar ilerleme çubuğu gösterir
type ProgressBar struct {
	Total   int
	Current int
	Width   int
	Label   string
}

// NewProgressBar yeni bir progress bar oluşturur
func NewProgressBar(total int, label string) *ProgressBar {
	return &ProgressBar{
		Total: total,
		Width: 40,
		Label: label,
	}
}

// Update ilerlemeyi günceller
func (pb *ProgressBar) Update(current int) {
	if pb.Total <= 0 {
		return
	}
	pb.Current = min(current, pb.Total)
	filled := pb.Width * pb.Current / pb.Total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.Width-filled)

	fmt.Fprintf(Out, "\r  %s%s%s [%s%s%s] %s%d%%%s (%d/%d)",
		Bold, pb.Label, Reset,
		Green, bar, Reset,
		Cyan, pb.Current*100/pb.Total, Reset,
		pb.Current, pb.Total)

	if pb.Current >= pb.Total {
		fmt.Fprintln(Out)
	}
}

// PrintTable basit bir kutu çizgili tablo yazdırır
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	border := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return "  " + left + strings.Join(parts, mid) + right
	}
	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-len([]rune(s)))
	}

	fmt.Fprintln(Out, border("┌", "┬", "┐"))
	line := "  │"
	for i, h := range headers {
		line += " " + Bold + pad(h, widths[i]) + Reset + " │"
	}
	fmt.Fprintln(Out, line)
	fmt.Fprintln(Out, border("├", "┼", "┤"))

	for _, row := range rows {
		line := "  │"
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line += " " + pad(cell, widths[i]) + " │"
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintln(Out, border("└", "┴", "┘"))
}

// PrintBatchSummary toplu iş özetini yazdırır
func PrintBatchSummary(total, succeeded, skipped, failed int, duration time.Duration) {
	fmt.Fprintln(Out)
	fmt.Fprintf(Out, "  %s %sToplu Düzenleme Tamamlandı%s\n", IconDone, Bold, Reset)
	fmt.Fprintln(Out, "  "+strings.Repeat("─", 40))
	fmt.Fprintf(Out, "  Toplam:    %s%d%s betik\n", Cyan, total, Reset)
	fmt.Fprintf(Out, "  Başarılı:  %s%d%s betik\n", Green, succeeded, Reset)
	if skipped > 0 {
		fmt.Fprintf(Out, "  Atlanan:   %s%d%s betik\n", Yellow, skipped, Reset)
	}
	if failed > 0 {
		fmt.Fprintf(Out, "  Başarısız: %s%d%s betik\n", Red, failed, Reset)
	}
	fmt.Fprintf(Out, "  Süre:      %s%s%s\n", Yellow, FormatDuration(duration), Reset)
	fmt.Fprintln(Out)
}

// FormatDuration süreyi okunabilir formata çevirir
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
