package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// Çekirdek PDF fontları cp1252 olduğundan Türkçe karakterler sadeleştirilir.
var latinReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "C", "ğ", "g", "Ğ", "G", "ı", "i", "İ", "I",
	"ö", "o", "Ö", "O", "ş", "s", "Ş", "S", "ü", "u", "Ü", "U",
	"→", "->", "—", "-",
)

func renderPDF(c CutList) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetMargins(20, 20, 20)
	p.SetAutoPageBreak(true, 20)
	p.SetTitle("Cut List", false)
	p.AddPage()

	p.SetFont("Helvetica", "B", 18)
	p.CellFormat(0, 10, latinReplacer.Replace("Cut List: "+filepath.Base(c.Plan.Input)), "", 1, "", false, 0, "")
	p.Ln(2)

	p.SetFont("Helvetica", "", 10)
	summary := [][2]string{
		{"Output", c.Plan.Output},
		{"Codec", c.Plan.Codec},
		{"Source duration", timeline.FormatTimecode(c.Plan.SourceDuration)},
		{"Output duration", timeline.FormatTimecode(c.Plan.OutputDuration)},
		{"Removed", timeline.FormatTimecode(c.Plan.RemovedTotal)},
	}
	for _, kv := range summary {
		p.SetFont("Helvetica", "B", 10)
		p.CellFormat(40, 6, kv[0], "", 0, "", false, 0, "")
		p.SetFont("Helvetica", "", 10)
		p.CellFormat(0, 6, latinReplacer.Replace(kv[1]), "", 1, "", false, 0, "")
	}

	kept := [][]string{{"#", "Source in", "Source out", "Duration", "Timeline in"}}
	for _, r := range c.KeptRows() {
		kept = append(kept, []string{fmt.Sprint(r.Index), r.SourceStart, r.SourceEnd, r.Duration, r.VirtualStart})
	}
	pdfHeading(p, "Kept segments")
	pdfTable(p, kept)

	if rows := c.RemovedRows(); len(rows) > 0 {
		removed := [][]string{{"#", "Source in", "Source out", "Duration"}}
		for _, r := range rows {
			removed = append(removed, []string{fmt.Sprint(r.Index), r.SourceStart, r.SourceEnd, r.Duration})
		}
		pdfHeading(p, "Removed ranges")
		pdfTable(p, removed)
	}

	if len(c.Edits) > 0 {
		pdfHeading(p, "Edits")
		p.SetFont("Helvetica", "", 9.5)
		for i, e := range c.Edits {
			p.MultiCell(0, 5, latinReplacer.Replace(fmt.Sprintf("%d. %s", i+1, e)), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf olusturulamadi: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfHeading(p *gofpdf.Fpdf, text string) {
	p.Ln(4)
	p.SetFont("Helvetica", "B", 13)
	p.CellFormat(0, 8, text, "", 1, "", false, 0, "")
}

// pdfTable ilk satırı başlık olarak çizer; sütunlar eşit genişliktedir.
func pdfTable(p *gofpdf.Fpdf, rows [][]string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}
	pageWidth, _ := p.GetPageSize()
	left, _, right, _ := p.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(rows[0]))
	const cellHeight = 7.0

	p.SetDrawColor(200, 200, 200)
	for i, row := range rows {
		if i == 0 {
			p.SetFont("Helvetica", "B", 9.5)
			p.SetFillColor(240, 240, 240)
		} else {
			p.SetFont("Helvetica", "", 9.5)
		}
		for _, cell := range row {
			p.CellFormat(colWidth, cellHeight, " "+latinReplacer.Replace(cell), "1", 0, "", i == 0, 0, "")
		}
		p.Ln(cellHeight)
	}
}
