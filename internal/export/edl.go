package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// DefaultEDLFrameRate kare hızı bilinmediğinde kullanılır.
const DefaultEDLFrameRate = 25

const edlReelLength = 8

// EDLOptions CMX 3600 çıktısı ayarlarıdır.
type EDLOptions struct {
	Title     string
	FrameRate int
	Reel      string
}

// WriteEDL korunan segmentleri CMX 3600 (non-drop frame) olarak yazar.
// Her segment bir cut olayıdır; kayıt zamanları sanal zaman çizelgesindendir.
func WriteEDL(w io.Writer, plan Plan, opts EDLOptions) error {
	fps := opts.FrameRate
	if fps <= 0 {
		fps = DefaultEDLFrameRate
	}
	title := opts.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(plan.Input), filepath.Ext(plan.Input))
	}
	reel := opts.Reel
	if reel == "" {
		reel = "AX"
	}
	reel = sanitizeReel(reel)

	if _, err := fmt.Fprintf(w, "TITLE: %s\nFCM: NON-DROP FRAME\n\n", title); err != nil {
		return err
	}

	var record time.Duration
	for i, iv := range plan.Kept {
		recordOut := record + iv.Duration()
		_, err := fmt.Fprintf(w, "%03d  %-8s AA/V  C        %s %s %s %s\n",
			i+1,
			reel,
			FrameTimecode(iv.SourceStart, fps),
			FrameTimecode(iv.SourceEnd, fps),
			FrameTimecode(record, fps),
			FrameTimecode(recordOut, fps),
		)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "* FROM CLIP NAME: %s\n\n", filepath.Base(plan.Input)); err != nil {
			return err
		}
		record = recordOut
	}
	return nil
}

// FrameTimecode süreyi HH:MM:SS:FF olarak yazar; kareler aşağı yuvarlanır.
func FrameTimecode(d time.Duration, fps int) string {
	if d < 0 {
		d = 0
	}
	frames := int64(d) * int64(fps) / int64(time.Second)
	perHour := int64(fps) * 3600
	perMinute := int64(fps) * 60
	hours := frames / perHour
	minutes := (frames % perHour) / perMinute
	seconds := (frames % perMinute) / int64(fps)
	ff := frames % int64(fps)
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, ff)
}

func sanitizeReel(name string) string {
	name = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
	if len(name) > edlReelLength {
		name = name[:edlReelLength]
	}
	if name == "" {
		return "AX"
	}
	return name
}
