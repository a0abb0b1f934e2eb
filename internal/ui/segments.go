package ui

import (
	"fmt"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// SegmentRows segment listesini tablo satırlarına çevirir.
// Sütunlar: sıra, sanal başlangıç, kaynak başlangıç, kaynak bitiş, süre.
func SegmentRows(list *timeline.SegmentList) [][]string {
	rows := make([][]string, 0, list.Len())
	var acc time.Duration
	for i, iv := range list.Intervals() {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			timeline.FormatTimecode(acc),
			timeline.FormatTimecode(iv.SourceStart),
			timeline.FormatTimecode(iv.SourceEnd),
			timeline.FormatTimecode(iv.Duration()),
		})
		acc += iv.Duration()
	}
	return rows
}

// PrintSegments kalan segmentleri ve toplam süreyi yazdırır.
func PrintSegments(list *timeline.SegmentList) {
	PrintTable([]string{"#", "Sanal", "Kaynak Baş.", "Kaynak Bit.", "Süre"}, SegmentRows(list))
	fmt.Fprintf(Out, "  Toplam: %s%s%s (%d segment)\n", Cyan, timeline.FormatTimecode(list.TotalDuration()), Reset, list.Len())
}
