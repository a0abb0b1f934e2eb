package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseProbeDurationIsExact(t *testing.T) {
	d, err := ParseProbeDuration("60.016000\n")
	if err != nil {
		t.Fatalf("ParseProbeDuration failed: %v", err)
	}
	if d != 60*time.Second+16*time.Millisecond {
		t.Fatalf("unexpected duration: %s", d)
	}
	if _, err := ParseProbeDuration("N/A"); err == nil {
		t.Fatalf("expected error for N/A")
	}
	if _, err := ParseProbeDuration("0.000000"); err == nil {
		t.Fatalf("expected error for zero duration")
	}
}

func TestParseProbeJSON(t *testing.T) {
	raw := `{
  "format": {"duration": "12.500000", "bit_rate": "2048000"},
  "streams": [
    {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "r_frame_rate": "30000/1001"},
    {"codec_type": "audio", "codec_name": "aac", "channels": 2, "sample_rate": "48000"}
  ]
}`
	info, err := ParseProbeJSON([]byte(raw))
	if err != nil {
		t.Fatalf("ParseProbeJSON failed: %v", err)
	}
	if info.Duration != 12500*time.Millisecond {
		t.Fatalf("unexpected duration: %s", info.Duration)
	}
	if info.Resolution != "1920x1080" || info.VideoCodec != "h264" {
		t.Fatalf("unexpected video info: %+v", info)
	}
	if info.FrameRate.Nominal() != 30 {
		t.Fatalf("unexpected nominal fps: %d", info.FrameRate.Nominal())
	}
	if info.SampleRate != 48000 || info.Channels != 2 || info.Bitrate != "2048 kbps" {
		t.Fatalf("unexpected audio info: %+v", info)
	}
}

func TestParseFrameRate(t *testing.T) {
	if fr := ParseFrameRate("25"); fr.Nominal() != 25 || fr.String() != "25" {
		t.Fatalf("unexpected frame rate: %+v", fr)
	}
	if fr := ParseFrameRate("24000/1001"); fr.Nominal() != 24 {
		t.Fatalf("unexpected nominal: %d", fr.Nominal())
	}
	if fr := ParseFrameRate("0/0"); fr.Valid() {
		t.Fatalf("expected invalid frame rate")
	}
}

func TestResolveCodec(t *testing.T) {
	codec, _, err := ResolveCodec("in.mp4", "mp4", "auto")
	if err != nil || codec != CodecCopy {
		t.Fatalf("expected copy for same format, got %s (%v)", codec, err)
	}
	codec, note, err := ResolveCodec("in.mov", "mp4", "")
	if err != nil || codec != CodecReencode || note == "" {
		t.Fatalf("expected reencode with note, got %s %q (%v)", codec, note, err)
	}
	if _, _, err := ResolveCodec("in.mov", "mp4", "copy"); err == nil {
		t.Fatalf("expected error for copy across formats")
	}
	if _, _, err := ResolveCodec("in.mp4", "mp4", "bogus"); err == nil {
		t.Fatalf("expected error for invalid codec")
	}
}

func TestCodecArgs(t *testing.T) {
	if got := strings.Join(CodecArgs("mp4", CodecCopy, 0), " "); got != "-c copy" {
		t.Fatalf("unexpected copy args: %s", got)
	}
	args := strings.Join(CodecArgs("mp4", CodecReencode, 90), " ")
	if !strings.Contains(args, "-crf 20") || !strings.Contains(args, "libx264") {
		t.Fatalf("unexpected reencode args: %s", args)
	}
	if args := strings.Join(ReencodeArgs("webm", 10), " "); !strings.Contains(args, "-crf 36") {
		t.Fatalf("unexpected webm args: %s", args)
	}
}

func TestMetadataArgs(t *testing.T) {
	if got := MetadataArgs("strip"); len(got) != 2 || got[1] != "-1" {
		t.Fatalf("unexpected strip args: %v", got)
	}
	if got := MetadataArgs("auto"); got != nil {
		t.Fatalf("auto must not add args: %v", got)
	}
	if NormalizeMetadataMode("weird") != "" {
		t.Fatalf("expected invalid mode")
	}
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip.mp4")
	target := filepath.Join(dir, "clip_edited.mp4")

	got, skip, err := ResolveOutputPath(source, target, ConflictVersioned)
	if err != nil || skip || got != target {
		t.Fatalf("missing file must resolve to itself: %s %v %v", got, skip, err)
	}

	for _, p := range []string{target, filepath.Join(dir, "clip_edited_v2.mp4")} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	got, _, err = ResolveOutputPath(source, target, ConflictVersioned)
	if err != nil || got != filepath.Join(dir, "clip_edited_v3.mp4") {
		t.Fatalf("unexpected versioned path: %s (%v)", got, err)
	}
	if got, skip, _ := ResolveOutputPath(source, target, ConflictSkip); !skip || got != target {
		t.Fatalf("expected skip")
	}
	if got, _, _ := ResolveOutputPath(source, target, ConflictOverwrite); got != target {
		t.Fatalf("overwrite must keep the path, got %s", got)
	}
	if _, _, err := ResolveOutputPath(source, target, "nope"); err == nil {
		t.Fatalf("expected error for invalid policy")
	}
}

func TestResolveOutputPathProtectsSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(source, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	for _, policy := range []string{ConflictOverwrite, ConflictSkip, ConflictVersioned} {
		_, _, err := ResolveOutputPath(source, filepath.Join(dir, ".", "clip.mp4"), policy)
		if !errors.Is(err, ErrSourceOverwrite) {
			t.Fatalf("%s: expected ErrSourceOverwrite, got %v", policy, err)
		}
	}
}

func TestBuildOutputPath(t *testing.T) {
	got := BuildOutputPath("/videos/talk.mov", "/out", "mp4", "")
	if got != filepath.Join("/out", "talk_edited.mp4") {
		t.Fatalf("unexpected output path: %s", got)
	}
	got = BuildOutputPath("/videos/talk.mov", "", "", "final")
	if got != filepath.Join("/videos", "final.mov") {
		t.Fatalf("unexpected output path: %s", got)
	}
	if !IsVideoFormat(".MKV") || IsVideoFormat("png") {
		t.Fatalf("unexpected video format detection")
	}
}

func TestFindToolMissing(t *testing.T) {
	t.Setenv("FFPROBE_PATH", "")
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("missing") }
	defer func() { lookPath = orig }()

	if _, err := FindFFprobe(); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}

	fake := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("FFPROBE_PATH", fake)
	if got, err := FindFFprobe(); err != nil || got != fake {
		t.Fatalf("expected env path, got %s (%v)", got, err)
	}
}
