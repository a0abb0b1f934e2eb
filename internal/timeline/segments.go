package timeline

import (
	"fmt"
	"strings"
	"time"
)

// SegmentList korunan kaynak aralıklarının sıralı ve çakışmasız listesidir.
// Aralıkların art arda eklenmesi sanal zaman çizelgesini oluşturur.
//
// Yayınlanmış bir liste değiştirilmez: Delete yeni bir liste döner. Bu sayede
// Manager okuyuculara kilitsiz olarak tam bir liste gösterebilir.
type SegmentList struct {
	intervals []Interval
}

// NewSegmentList [0, total) tek aralığından oluşan liste döner.
// total <= 0 ise boş liste döner.
func NewSegmentList(total time.Duration) *SegmentList {
	if total <= 0 {
		return &SegmentList{}
	}
	return &SegmentList{intervals: []Interval{{SourceStart: 0, SourceEnd: total}}}
}

// SegmentListFrom verilen aralıklardan liste kurar ve invariant'ları doğrular.
func SegmentListFrom(intervals ...Interval) (*SegmentList, error) {
	l := &SegmentList{intervals: make([]Interval, len(intervals))}
	copy(l.intervals, intervals)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate sıralama, çakışmasızlık ve pozitif süre koşullarını kontrol eder.
func (l *SegmentList) Validate() error {
	for i, iv := range l.intervals {
		if iv.SourceEnd <= iv.SourceStart {
			return fmt.Errorf("%w: segment[%d] %s", ErrInvalidRange, i, iv)
		}
		if i > 0 && iv.SourceStart < l.intervals[i-1].SourceEnd {
			return fmt.Errorf("%w: segment[%d] %s oncekiyle cakisiyor", ErrInvalidRange, i, iv)
		}
	}
	return nil
}

// Len korunan aralık sayısını döner.
func (l *SegmentList) Len() int {
	return len(l.intervals)
}

// At i. aralığı döner.
func (l *SegmentList) At(i int) Interval {
	return l.intervals[i]
}

// Intervals aralıkların kopyasını döner.
func (l *SegmentList) Intervals() []Interval {
	out := make([]Interval, len(l.intervals))
	copy(out, l.intervals)
	return out
}

// TotalDuration sanal zaman çizelgesinin uzunluğudur.
func (l *SegmentList) TotalDuration() time.Duration {
	var total time.Duration
	for _, iv := range l.intervals {
		total += iv.Duration()
	}
	return total
}

// Clone bağımsız bir kopya döner.
func (l *SegmentList) Clone() *SegmentList {
	return &SegmentList{intervals: l.Intervals()}
}

// VirtualToSource sanal zamanı kaynak zamana çevirir.
//
// İç sınırlar bir sonraki aralığa aittir; son aralığın üst sınırı dahildir ki
// çizelgenin son anı içeriğin gerçek sonuna denk gelsin. Toplam süreyi aşan
// değerler son aralığın sonuna, negatif değerler ilk aralığın başına sabitlenir.
func (l *SegmentList) VirtualToSource(virtual time.Duration) time.Duration {
	if len(l.intervals) == 0 {
		return 0
	}
	if virtual < 0 {
		return l.intervals[0].SourceStart
	}

	var acc time.Duration
	last := len(l.intervals) - 1
	for i, iv := range l.intervals {
		next := acc + iv.Duration()
		if virtual < next || (i == last && virtual <= next) {
			return iv.SourceStart + (virtual - acc)
		}
		acc = next
	}
	return l.intervals[last].SourceEnd
}

// SourceToVirtual kaynak zamanı sanal zamana çevirir. Zaman silinmiş bir
// boşluktaysa ok=false döner; bu bir hata değildir.
func (l *SegmentList) SourceToVirtual(source time.Duration) (virtual time.Duration, ok bool) {
	var acc time.Duration
	for _, iv := range l.intervals {
		if iv.Contains(source) {
			return acc + (source - iv.SourceStart), true
		}
		acc += iv.Duration()
	}
	return 0, false
}

// Delete sanal [virtualStart, virtualEnd) aralığını silinmiş yeni bir liste döner.
// Alıcı liste değişmez.
func (l *SegmentList) Delete(virtualStart, virtualEnd time.Duration) (*SegmentList, error) {
	if virtualEnd <= virtualStart {
		return nil, fmt.Errorf("%w: bitis (%s) baslangictan (%s) buyuk olmali",
			ErrInvalidRange, FormatTimecode(virtualEnd), FormatTimecode(virtualStart))
	}
	total := l.TotalDuration()
	if virtualStart < 0 || virtualStart >= total {
		return nil, fmt.Errorf("%w: baslangic %s, toplam sure %s",
			ErrOutOfBounds, FormatTimecode(virtualStart), FormatTimecode(total))
	}

	sourceStart := l.VirtualToSource(virtualStart)
	sourceEnd := l.VirtualToSource(virtualEnd)

	rebuilt := make([]Interval, 0, len(l.intervals)+1)
	for _, iv := range l.intervals {
		switch {
		case iv.SourceEnd <= sourceStart, iv.SourceStart >= sourceEnd:
			rebuilt = append(rebuilt, iv)
		case iv.SourceStart < sourceStart && iv.SourceEnd > sourceEnd:
			rebuilt = append(rebuilt,
				Interval{SourceStart: iv.SourceStart, SourceEnd: sourceStart},
				Interval{SourceStart: sourceEnd, SourceEnd: iv.SourceEnd},
			)
		case iv.SourceStart >= sourceStart && iv.SourceEnd > sourceEnd:
			rebuilt = append(rebuilt, Interval{SourceStart: sourceEnd, SourceEnd: iv.SourceEnd})
		case iv.SourceStart < sourceStart && iv.SourceEnd <= sourceEnd:
			rebuilt = append(rebuilt, Interval{SourceStart: iv.SourceStart, SourceEnd: sourceStart})
		default:
			// Aralık tamamen silinen bölgenin içinde.
		}
	}

	return &SegmentList{intervals: rebuilt}, nil
}

// DeletedRegions [0, sourceDuration) içinde korunmayan boşlukları döner.
// sourceDuration <= 0 ise son aralığın sonu kullanılır.
func (l *SegmentList) DeletedRegions(sourceDuration time.Duration) []Interval {
	var gaps []Interval
	var cursor time.Duration
	for _, iv := range l.intervals {
		if iv.SourceStart > cursor {
			gaps = append(gaps, Interval{SourceStart: cursor, SourceEnd: iv.SourceStart})
		}
		cursor = iv.SourceEnd
	}
	if sourceDuration > cursor {
		gaps = append(gaps, Interval{SourceStart: cursor, SourceEnd: sourceDuration})
	}
	return gaps
}

// VirtualOffset source'tan önce korunan toplam süredir. SourceToVirtual'dan
// farklı olarak boşluktaki zamanları bir sonraki korunan ana yansıtır.
func (l *SegmentList) VirtualOffset(source time.Duration) time.Duration {
	var acc time.Duration
	for _, iv := range l.intervals {
		if source <= iv.SourceStart {
			break
		}
		acc += min(source, iv.SourceEnd) - iv.SourceStart
	}
	return acc
}

// NextKeptAfter başlangıcı source'tan büyük ilk aralığı döner.
func (l *SegmentList) NextKeptAfter(source time.Duration) (Interval, bool) {
	for _, iv := range l.intervals {
		if iv.SourceStart > source {
			return iv, true
		}
	}
	return Interval{}, false
}

func (l *SegmentList) String() string {
	parts := make([]string, 0, len(l.intervals))
	for _, iv := range l.intervals {
		parts = append(parts, iv.String())
	}
	return strings.Join(parts, " ")
}
