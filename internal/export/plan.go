package export

import (
	"fmt"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// Options dışa aktarma ayarlarıdır.
type Options struct {
	Input          string
	Output         string
	TargetFormat   string
	Codec          string
	Quality        int
	MetadataMode   string
	OnConflict     string
	SourceDuration time.Duration
	Verbose        bool
}

// Plan korunan segmentlerin nasıl birleştirileceğini tarif eder.
// Dry-run çıktısı, rapor ve EDL aynı plandan üretilir.
type Plan struct {
	Input          string              `json:"input"`
	Output         string              `json:"output"`
	TargetFormat   string              `json:"target_format"`
	Codec          string              `json:"codec"`
	CodecNote      string              `json:"codec_note,omitempty"`
	Quality        int                 `json:"quality"`
	MetadataMode   string              `json:"metadata_mode"`
	ConflictPolicy string              `json:"on_conflict"`
	WouldSkip      bool                `json:"would_skip"`
	SourceDuration time.Duration       `json:"source_duration_ns"`
	OutputDuration time.Duration       `json:"output_duration_ns"`
	RemovedTotal   time.Duration       `json:"removed_duration_ns"`
	Kept           []timeline.Interval `json:"kept"`
	Removed        []timeline.Interval `json:"removed"`
}

// BuildPlan segment listesinden dışa aktarma planı üretir. Dosya sistemi
// yalnızca çıktı çakışması için okunur.
func BuildPlan(list *timeline.SegmentList, opts Options) (Plan, error) {
	if list == nil || list.Len() == 0 {
		return Plan{}, fmt.Errorf("korunan segment yok, silinen aralik tum videoyu kapsiyor")
	}

	target := media.NormalizeFormat(opts.TargetFormat)
	if target == "" {
		target = media.DetectFormat(opts.Input)
	}
	if !media.IsVideoFormat(target) {
		return Plan{}, fmt.Errorf("desteklenmeyen hedef format: %s", target)
	}

	codec, note, err := media.ResolveCodec(opts.Input, target, opts.Codec)
	if err != nil {
		return Plan{}, err
	}

	metadata := media.NormalizeMetadataMode(opts.MetadataMode)
	if metadata == "" {
		return Plan{}, fmt.Errorf("gecersiz metadata modu: %s", opts.MetadataMode)
	}
	policy := media.NormalizeConflictPolicy(opts.OnConflict)
	if policy == "" {
		return Plan{}, fmt.Errorf("gecersiz on-conflict politikasi: %s", opts.OnConflict)
	}

	output := opts.Output
	if output == "" {
		output = media.BuildOutputPath(opts.Input, "", target, "")
	}
	resolved, skip, err := media.ResolveOutputPath(opts.Input, output, policy)
	if err != nil {
		return Plan{}, err
	}

	sourceDuration := opts.SourceDuration
	if sourceDuration <= 0 {
		sourceDuration = list.At(list.Len() - 1).SourceEnd
	}
	removed := list.DeletedRegions(sourceDuration)
	var removedTotal time.Duration
	for _, r := range removed {
		removedTotal += r.Duration()
	}

	return Plan{
		Input:          opts.Input,
		Output:         resolved,
		TargetFormat:   target,
		Codec:          codec,
		CodecNote:      note,
		Quality:        opts.Quality,
		MetadataMode:   metadata,
		ConflictPolicy: policy,
		WouldSkip:      skip,
		SourceDuration: sourceDuration,
		OutputDuration: list.TotalDuration(),
		RemovedTotal:   removedTotal,
		Kept:           list.Intervals(),
		Removed:        removed,
	}, nil
}

// PartArgs i. korunan segmenti partPath'e çıkaran ffmpeg argümanlarıdır.
func (p Plan) PartArgs(i int, partPath string, verbose bool) []string {
	iv := p.Kept[i]
	args := media.QuietArgs(verbose)
	args = append(args,
		"-ss", timeline.FormatSeconds(iv.SourceStart),
		"-i", p.Input,
		"-t", timeline.FormatSeconds(iv.Duration()),
		"-map", "0:v:0", "-map", "0:a?",
	)
	args = append(args, media.CodecArgs(p.TargetFormat, p.Codec, p.Quality)...)
	args = append(args, "-avoid_negative_ts", "make_zero", "-y", partPath)
	return args
}

// ConcatArgs parça listesini tek çıktıda birleştiren ffmpeg argümanlarıdır.
// Parçalar zaten hedef codec ile üretildiği için akışlar kopyalanır.
func (p Plan) ConcatArgs(listPath string, verbose bool) []string {
	args := media.QuietArgs(verbose)
	args = append(args, "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy")
	args = append(args, media.MetadataArgs(p.MetadataMode)...)
	if p.TargetFormat == "mp4" || p.TargetFormat == "m4v" || p.TargetFormat == "mov" {
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, "-y", p.Output)
	return args
}
