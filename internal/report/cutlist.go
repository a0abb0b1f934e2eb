package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/export"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

const (
	FormatOff  = "off"
	FormatTXT  = "txt"
	FormatJSON = "json"
	FormatMD   = "md"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// CutList bir düzenleme oturumunun rapora girecek özetidir.
type CutList struct {
	GeneratedAt time.Time
	Plan        export.Plan
	Edits       []string
}

// Row korunan ya da silinen bir aralığın rapor satırıdır.
type Row struct {
	Index        int    `json:"index"`
	SourceStart  string `json:"source_start"`
	SourceEnd    string `json:"source_end"`
	Duration     string `json:"duration"`
	VirtualStart string `json:"virtual_start,omitempty"`
}

type jsonPayload struct {
	GeneratedAt    string   `json:"generated_at"`
	Input          string   `json:"input"`
	Output         string   `json:"output"`
	Codec          string   `json:"codec"`
	SourceDuration string   `json:"source_duration"`
	OutputDuration string   `json:"output_duration"`
	RemovedTotal   string   `json:"removed_duration"`
	Kept           []Row    `json:"kept"`
	Removed        []Row    `json:"removed"`
	Edits          []string `json:"edits,omitempty"`
}

// NormalizeFormat rapor formatını normalize eder; geçersizse "" döner.
func NormalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatOff:
		return FormatOff
	case "text":
		return FormatTXT
	case "markdown":
		return FormatMD
	case FormatTXT, FormatJSON, FormatMD, FormatHTML, FormatPDF:
		return f
	default:
		return ""
	}
}

// KeptRows korunan aralıkları sanal başlangıçlarıyla birlikte döner.
func (c CutList) KeptRows() []Row {
	rows := make([]Row, 0, len(c.Plan.Kept))
	var virtual time.Duration
	for i, iv := range c.Plan.Kept {
		rows = append(rows, Row{
			Index:        i + 1,
			SourceStart:  timeline.FormatTimecode(iv.SourceStart),
			SourceEnd:    timeline.FormatTimecode(iv.SourceEnd),
			Duration:     timeline.FormatTimecode(iv.Duration()),
			VirtualStart: timeline.FormatTimecode(virtual),
		})
		virtual += iv.Duration()
	}
	return rows
}

// RemovedRows silinen kaynak aralıklarını döner.
func (c CutList) RemovedRows() []Row {
	rows := make([]Row, 0, len(c.Plan.Removed))
	for i, iv := range c.Plan.Removed {
		rows = append(rows, Row{
			Index:       i + 1,
			SourceStart: timeline.FormatTimecode(iv.SourceStart),
			SourceEnd:   timeline.FormatTimecode(iv.SourceEnd),
			Duration:    timeline.FormatTimecode(iv.Duration()),
		})
	}
	return rows
}

// Render kesim listesini istenen formatta üretir. off için nil döner.
func Render(format string, c CutList) ([]byte, error) {
	if c.GeneratedAt.IsZero() {
		c.GeneratedAt = time.Now()
	}
	switch NormalizeFormat(format) {
	case FormatOff:
		return nil, nil
	case FormatTXT:
		return []byte(renderTXT(c)), nil
	case FormatJSON:
		return renderJSON(c)
	case FormatMD:
		return []byte(renderMarkdown(c)), nil
	case FormatHTML:
		return renderHTML(c)
	case FormatPDF:
		return renderPDF(c)
	default:
		return nil, fmt.Errorf("gecersiz report formati: %s", format)
	}
}

// Write raporu dosyaya yazar.
func Write(path, format string, c CutList) error {
	data, err := Render(format, c)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("rapor dizini olusturulamadi: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("rapor yazilamadi: %w", err)
	}
	return nil
}

// DefaultPath çıktı dosyasının yanında "<ad>.cutlist.<format>" yolunu üretir.
func DefaultPath(output, format string) string {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return base + ".cutlist." + NormalizeFormat(format)
}

func renderTXT(c CutList) string {
	var b strings.Builder
	b.WriteString("Cut List\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated:       %s\n", c.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Input:           %s\n", c.Plan.Input)
	fmt.Fprintf(&b, "Output:          %s\n", c.Plan.Output)
	fmt.Fprintf(&b, "Codec:           %s\n", c.Plan.Codec)
	fmt.Fprintf(&b, "Source duration: %s\n", timeline.FormatTimecode(c.Plan.SourceDuration))
	fmt.Fprintf(&b, "Output duration: %s\n", timeline.FormatTimecode(c.Plan.OutputDuration))
	fmt.Fprintf(&b, "Removed:         %s\n", timeline.FormatTimecode(c.Plan.RemovedTotal))

	b.WriteString("\nKept:\n")
	for _, r := range c.KeptRows() {
		fmt.Fprintf(&b, "- [%d] %s -> %s (%s) @ %s\n", r.Index, r.SourceStart, r.SourceEnd, r.Duration, r.VirtualStart)
	}
	if rows := c.RemovedRows(); len(rows) > 0 {
		b.WriteString("\nRemoved:\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "- [%d] %s -> %s (%s)\n", r.Index, r.SourceStart, r.SourceEnd, r.Duration)
		}
	}
	if len(c.Edits) > 0 {
		b.WriteString("\nEdits:\n")
		for _, e := range c.Edits {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	return b.String()
}

func renderJSON(c CutList) ([]byte, error) {
	payload := jsonPayload{
		GeneratedAt:    c.GeneratedAt.Format(time.RFC3339),
		Input:          c.Plan.Input,
		Output:         c.Plan.Output,
		Codec:          c.Plan.Codec,
		SourceDuration: timeline.FormatTimecode(c.Plan.SourceDuration),
		OutputDuration: timeline.FormatTimecode(c.Plan.OutputDuration),
		RemovedTotal:   timeline.FormatTimecode(c.Plan.RemovedTotal),
		Kept:           c.KeptRows(),
		Removed:        c.RemovedRows(),
		Edits:          c.Edits,
	}
	return json.MarshalIndent(payload, "", "  ")
}

func renderMarkdown(c CutList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Cut List: %s\n\n", filepath.Base(c.Plan.Input))
	fmt.Fprintf(&b, "- **Output:** `%s`\n", c.Plan.Output)
	fmt.Fprintf(&b, "- **Codec:** %s\n", c.Plan.Codec)
	fmt.Fprintf(&b, "- **Source duration:** %s\n", timeline.FormatTimecode(c.Plan.SourceDuration))
	fmt.Fprintf(&b, "- **Output duration:** %s\n", timeline.FormatTimecode(c.Plan.OutputDuration))
	fmt.Fprintf(&b, "- **Removed:** %s\n\n", timeline.FormatTimecode(c.Plan.RemovedTotal))

	b.WriteString("## Kept segments\n\n")
	b.WriteString("| # | Source in | Source out | Duration | Timeline in |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range c.KeptRows() {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", r.Index, r.SourceStart, r.SourceEnd, r.Duration, r.VirtualStart)
	}

	if rows := c.RemovedRows(); len(rows) > 0 {
		b.WriteString("\n## Removed ranges\n\n")
		b.WriteString("| # | Source in | Source out | Duration |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", r.Index, r.SourceStart, r.SourceEnd, r.Duration)
		}
	}

	if len(c.Edits) > 0 {
		b.WriteString("\n## Edits\n\n")
		for i, e := range c.Edits {
			fmt.Fprintf(&b, "%d. %s\n", i+1, e)
		}
	}
	return b.String()
}

func renderHTML(c CutList) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownToHTML(&buf, "Cut List", []byte(renderMarkdown(c))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
