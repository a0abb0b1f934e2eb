package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/profile"
	"github.com/mlihgenel/videoedit-cli/internal/report"
	"github.com/mlihgenel/videoedit-cli/internal/script"
)

// exportFlags dışa aktarma yapan komutların ortak flag'leridir.
type exportFlags struct {
	to         string
	codec      string
	quality    int
	profile    string
	onConflict string
	preserveMD bool
	stripMD    bool
	report     string
	dryRun     bool

	// Tek dosya komutları
	reportFile string
	edl        string

	// Toplu komutlar
	retry      int
	retryDelay time.Duration
}

// exportSettings flag, ortam, proje ayarı ve profilden çözülmüş değerlerdir.
type exportSettings struct {
	To           string
	Codec        string
	Quality      int
	OnConflict   string
	MetadataMode string
	Report       string
	DryRun       bool
	Retry        int
	RetryDelay   time.Duration

	// explicit kullanıcının komut satırında verdiği alanlardır; betik bunları ezemez.
	explicit map[string]bool
}

func (f *exportFlags) register(cmd *cobra.Command, single bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.to, "to", "t", "", "Hedef video formatı (varsayılan: kaynak formatı)")
	fs.StringVar(&f.codec, "codec", media.CodecAuto, "Codec: auto, copy, reencode")
	fs.IntVarP(&f.quality, "quality", "q", 0, "Yeniden kodlama kalitesi (1-100)")
	fs.StringVar(&f.profile, "profile", "", "Hazır profil (ör: fast-copy, web-h264, archive)")
	fs.StringVar(&f.onConflict, "on-conflict", media.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	fs.BoolVar(&f.preserveMD, "preserve-metadata", false, "Metadata bilgisini koru")
	fs.BoolVar(&f.stripMD, "strip-metadata", false, "Metadata bilgisini temizle")
	fs.StringVar(&f.report, "report", report.FormatOff, "Kesim listesi raporu: off, txt, json, md, html, pdf")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Ön izleme — dışa aktarmadan planı göster")

	if single {
		fs.StringVar(&f.reportFile, "report-file", "", "Rapor dosya yolu (varsayılan: <çıktı>.cutlist.<format>)")
		fs.StringVar(&f.edl, "edl", "", "CMX 3600 EDL dosya yolu")
		return
	}
	fs.IntVar(&f.retry, "retry", 0, "Başarısız işler için otomatik tekrar sayısı")
	fs.DurationVar(&f.retryDelay, "retry-delay", 500*time.Millisecond, "Retry denemeleri arası bekleme (örn: 500ms, 2s)")
}

func (f *exportFlags) resolve(cmd *cobra.Command) (exportSettings, error) {
	applyQualityDefault(cmd, "quality", &f.quality)
	applyOnConflictDefault(cmd, "on-conflict", &f.onConflict)
	applyCodecDefault(cmd, "codec", &f.codec)
	applyReportDefault(cmd, "report", &f.report)
	applyMetadataDefault(cmd, "preserve-metadata", &f.preserveMD, "strip-metadata", &f.stripMD)
	if cmd.Flags().Lookup("retry") != nil {
		applyRetryDefaults(cmd, "retry", &f.retry, "retry-delay", &f.retryDelay)
	}

	if p, ok, err := resolveProfile(f.profile); err != nil {
		return exportSettings{}, err
	} else if ok {
		f.applyProfile(cmd, p)
	}

	metadataMode, err := metadataModeFromFlags(f.preserveMD, f.stripMD)
	if err != nil {
		return exportSettings{}, err
	}

	s := exportSettings{
		To:           media.NormalizeFormat(f.to),
		Codec:        f.codec,
		Quality:      f.quality,
		OnConflict:   f.onConflict,
		MetadataMode: metadataMode,
		Report:       f.report,
		DryRun:       f.dryRun,
		Retry:        f.retry,
		RetryDelay:   f.retryDelay,
		explicit:     map[string]bool{},
	}
	for _, name := range []string{"to", "codec", "quality", "report", "preserve-metadata", "strip-metadata"} {
		if cmd.Flags().Changed(name) {
			s.explicit[name] = true
		}
	}
	return s, s.validate()
}

func (f *exportFlags) applyProfile(cmd *cobra.Command, p profile.Definition) {
	changed := cmd.Flags().Changed
	if p.TargetFormat != "" && !changed("to") {
		f.to = p.TargetFormat
	}
	if p.Codec != "" && !changed("codec") {
		f.codec = p.Codec
	}
	if p.Quality != nil && !changed("quality") {
		f.quality = *p.Quality
	}
	if p.OnConflict != "" && !changed("on-conflict") {
		f.onConflict = p.OnConflict
	}
	if p.Report != "" && !changed("report") {
		f.report = p.Report
	}
	if p.Retry != nil && cmd.Flags().Lookup("retry") != nil && !changed("retry") {
		f.retry = *p.Retry
	}
	if p.RetryDelay != nil && cmd.Flags().Lookup("retry-delay") != nil && !changed("retry-delay") {
		f.retryDelay = *p.RetryDelay
	}
	if p.MetadataMode != "" && !changed("preserve-metadata") && !changed("strip-metadata") {
		switch media.NormalizeMetadataMode(p.MetadataMode) {
		case media.MetadataPreserve:
			f.preserveMD, f.stripMD = true, false
		case media.MetadataStrip:
			f.preserveMD, f.stripMD = false, true
		}
	}
}

func (s exportSettings) validate() error {
	if media.NormalizeCodec(s.Codec) == "" {
		return fmt.Errorf("gecersiz codec: %s (auto|copy|reencode)", s.Codec)
	}
	if s.Quality < 0 || s.Quality > 100 {
		return fmt.Errorf("quality 1-100 araliginda olmali")
	}
	if media.NormalizeConflictPolicy(s.OnConflict) == "" {
		return fmt.Errorf("gecersiz on-conflict politikasi: %s", s.OnConflict)
	}
	if report.NormalizeFormat(s.Report) == "" {
		return fmt.Errorf("gecersiz report formati: %s", s.Report)
	}
	if s.To != "" && !media.IsVideoFormat(s.To) {
		return fmt.Errorf("desteklenmeyen hedef format: %s", s.To)
	}
	return nil
}

// withScript betikte verilen alanları uygular; komut satırında açıkça
// verilen flag'ler betikten önceliklidir.
func (s exportSettings) withScript(sc *script.Script) exportSettings {
	out := s
	if sc.To != "" && !s.explicit["to"] {
		out.To = media.NormalizeFormat(sc.To)
	}
	if sc.Codec != "" && !s.explicit["codec"] {
		out.Codec = sc.Codec
	}
	if sc.Quality > 0 && !s.explicit["quality"] {
		out.Quality = sc.Quality
	}
	if sc.Report != "" && !s.explicit["report"] {
		out.Report = sc.Report
	}
	if sc.MetadataMode != "" && !s.explicit["preserve-metadata"] && !s.explicit["strip-metadata"] {
		out.MetadataMode = sc.MetadataMode
	}
	return out
}

func resolveProfile(name string) (profile.Definition, bool, error) {
	if name == "" {
		return profile.Definition{}, false, nil
	}
	p, err := profile.Resolve(name)
	if err != nil {
		return profile.Definition{}, false, err
	}
	return p, true, nil
}

func metadataModeFromFlags(preserve bool, strip bool) (string, error) {
	if preserve && strip {
		return "", fmt.Errorf("--preserve-metadata ve --strip-metadata birlikte kullanilamaz")
	}
	if preserve {
		return media.MetadataPreserve, nil
	}
	if strip {
		return media.MetadataStrip, nil
	}
	return media.MetadataAuto, nil
}
