package profile

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/report"
)

// Definition dışa aktarma profilidir.
// nil pointer ve boş string alanlar "profil bu alanı zorlamıyor" anlamına gelir.
type Definition struct {
	Name         string
	Description  string
	TargetFormat string
	Codec        string
	Quality      *int
	OnConflict   string
	MetadataMode string
	Report       string
	Retry        *int
	RetryDelay   *time.Duration
}

var builtins = map[string]Definition{
	"fast-copy": {
		Name:         "fast-copy",
		Description:  "Yeniden kodlamadan hizli kesim (anahtar kare hassasiyeti)",
		Codec:        media.CodecCopy,
		OnConflict:   media.ConflictVersioned,
		MetadataMode: media.MetadataPreserve,
		Report:       report.FormatOff,
		Retry:        intPtr(0),
	},
	"web-h264": {
		Name:         "web-h264",
		Description:  "Web icin H.264/AAC mp4, faststart",
		TargetFormat: "mp4",
		Codec:        media.CodecReencode,
		Quality:      intPtr(75),
		OnConflict:   media.ConflictVersioned,
		MetadataMode: media.MetadataStrip,
		Report:       report.FormatTXT,
		Retry:        intPtr(1),
		RetryDelay:   durationPtr(500 * time.Millisecond),
	},
	"archive": {
		Name:         "archive",
		Description:  "Yuksek kalite mkv, metadata korunur, JSON kesim listesi",
		TargetFormat: "mkv",
		Codec:        media.CodecReencode,
		Quality:      intPtr(100),
		OnConflict:   media.ConflictVersioned,
		MetadataMode: media.MetadataPreserve,
		Report:       report.FormatJSON,
		Retry:        intPtr(2),
		RetryDelay:   durationPtr(time.Second),
	},
}

// Resolve isimden profil döner.
func Resolve(name string) (Definition, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Definition{}, fmt.Errorf("profil adi bos")
	}
	p, ok := builtins[key]
	if !ok {
		return Definition{}, fmt.Errorf("profil bulunamadi: %s (mevcut: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names profil isimlerini alfabetik döner.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func intPtr(v int) *int { return &v }

func durationPtr(v time.Duration) *time.Duration { return &v }
