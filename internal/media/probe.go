package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// Info ffprobe ile okunan medya bilgileridir.
type Info struct {
	Path       string        `json:"path"`
	FileName   string        `json:"file_name"`
	Format     string        `json:"format"`
	Size       int64         `json:"size_bytes"`
	SizeText   string        `json:"size_text"`
	Duration   time.Duration `json:"duration_ns"`
	VideoCodec string        `json:"video_codec,omitempty"`
	AudioCodec string        `json:"audio_codec,omitempty"`
	Bitrate    string        `json:"bitrate,omitempty"`
	Width      int           `json:"width,omitempty"`
	Height     int           `json:"height,omitempty"`
	Resolution string        `json:"resolution,omitempty"`
	FrameRate  FrameRate     `json:"frame_rate"`
	Channels   int           `json:"channels,omitempty"`
	SampleRate int           `json:"sample_rate,omitempty"`
}

// FrameRate "30000/1001" gibi rasyonel kare hızıdır.
type FrameRate struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

// Valid pay ve payda pozitifse true döner.
func (f FrameRate) Valid() bool {
	return f.Num > 0 && f.Den > 0
}

// Nominal EDL zaman kodu için tam sayı kare hızı (29.97 -> 30).
func (f FrameRate) Nominal() int {
	if !f.Valid() {
		return 0
	}
	return (f.Num + f.Den - 1) / f.Den
}

func (f FrameRate) String() string {
	if !f.Valid() {
		return "-"
	}
	if f.Den == 1 {
		return strconv.Itoa(f.Num)
	}
	return fmt.Sprintf("%.3f", float64(f.Num)/float64(f.Den))
}

// ParseFrameRate "25", "30000/1001" biçimlerini okur.
func ParseFrameRate(raw string) FrameRate {
	numRaw, denRaw, ok := strings.Cut(strings.TrimSpace(raw), "/")
	num, err := strconv.Atoi(numRaw)
	if err != nil {
		return FrameRate{}
	}
	den := 1
	if ok {
		den, err = strconv.Atoi(denRaw)
		if err != nil || den <= 0 {
			return FrameRate{}
		}
	}
	return FrameRate{Num: num, Den: den}
}

type ffprobeResult struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width,omitempty"`
		Height     int    `json:"height,omitempty"`
		RFrameRate string `json:"r_frame_rate,omitempty"`
		Channels   int    `json:"channels,omitempty"`
		SampleRate string `json:"sample_rate,omitempty"`
	} `json:"streams"`
}

// ProbeDuration kaynak süresini nanosaniye hassasiyetinde okur.
func ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	ffprobePath, err := FindFFprobe()
	if err != nil {
		return 0, err
	}
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe sure okunamadi (%s): %w", path, err)
	}
	return ParseProbeDuration(string(out))
}

// ParseProbeDuration ffprobe'un ondalık saniye çıktısını float kullanmadan çevirir.
func ParseProbeDuration(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "N/A" {
		return 0, fmt.Errorf("sure bilgisi yok")
	}
	d, err := timeline.ParseTimecode(value)
	if err != nil {
		return 0, fmt.Errorf("sure okunamadi: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sure sifir")
	}
	return d, nil
}

// Probe dosya ve ffprobe bilgilerini toplar.
func Probe(ctx context.Context, path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("dosya bulunamadi: %w", err)
	}

	ffprobePath, err := FindFFprobe()
	if err != nil {
		return Info{}, err
	}
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe calistirilamadi: %w", err)
	}

	info, err := ParseProbeJSON(out)
	if err != nil {
		return Info{}, err
	}
	info.Path = path
	info.FileName = filepath.Base(path)
	info.Format = strings.ToUpper(DetectFormat(path))
	info.Size = stat.Size()
	info.SizeText = FormatSize(stat.Size())
	return info, nil
}

// ParseProbeJSON "-show_format -show_streams" JSON çıktısını okur.
func ParseProbeJSON(data []byte) (Info, error) {
	var result ffprobeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return Info{}, fmt.Errorf("ffprobe ciktisi okunamadi: %w", err)
	}

	var info Info
	if result.Format.Duration != "" {
		if d, err := ParseProbeDuration(result.Format.Duration); err == nil {
			info.Duration = d
		}
	}
	if result.Format.BitRate != "" {
		if br, err := strconv.ParseInt(result.Format.BitRate, 10, 64); err == nil {
			info.Bitrate = fmt.Sprintf("%d kbps", br/1000)
		}
	}

	for _, s := range result.Streams {
		switch s.CodecType {
		case "video":
			if info.VideoCodec != "" {
				continue
			}
			info.VideoCodec = s.CodecName
			if s.Width > 0 && s.Height > 0 {
				info.Width = s.Width
				info.Height = s.Height
				info.Resolution = fmt.Sprintf("%dx%d", s.Width, s.Height)
			}
			info.FrameRate = ParseFrameRate(s.RFrameRate)
		case "audio":
			if info.AudioCodec != "" {
				continue
			}
			info.AudioCodec = s.CodecName
			info.Channels = s.Channels
			if sr, err := strconv.Atoi(s.SampleRate); err == nil {
				info.SampleRate = sr
			}
		}
	}
	return info, nil
}

// FormatSize dosya boyutunu okunabilir hale getirir.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
