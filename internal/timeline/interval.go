package timeline

import (
	"fmt"
	"time"
)

// Interval kaynak videoda korunan tek bir zaman aralığıdır.
// Oluşturulduktan sonra değiştirilmez; silme işlemi yeni aralıklar üretir.
type Interval struct {
	SourceStart time.Duration `json:"source_start"`
	SourceEnd   time.Duration `json:"source_end"`
}

// NewInterval start < end koşulunu doğrulayarak aralık oluşturur.
func NewInterval(start, end time.Duration) (Interval, error) {
	if end <= start {
		return Interval{}, fmt.Errorf("%w: %s -> %s", ErrInvalidRange, start, end)
	}
	return Interval{SourceStart: start, SourceEnd: end}, nil
}

// Duration aralığın uzunluğunu döner.
func (iv Interval) Duration() time.Duration {
	return iv.SourceEnd - iv.SourceStart
}

// Contains t iki uçta da dahil olacak şekilde aralık içindeyse true döner.
func (iv Interval) Contains(t time.Duration) bool {
	return t >= iv.SourceStart && t <= iv.SourceEnd
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", FormatTimecode(iv.SourceStart), FormatTimecode(iv.SourceEnd))
}
