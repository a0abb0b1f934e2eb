package media

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CodecAuto     = "auto"
	CodecCopy     = "copy"
	CodecReencode = "reencode"

	MetadataAuto     = "auto"
	MetadataPreserve = "preserve"
	MetadataStrip    = "strip"
)

// NormalizeCodec codec modunu normalize eder; geçersizse "" döner.
func NormalizeCodec(codec string) string {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case "", CodecAuto:
		return CodecAuto
	case CodecCopy:
		return CodecCopy
	case CodecReencode, "re-encode":
		return CodecReencode
	default:
		return ""
	}
}

// ResolveCodec auto modunu kaynak ve hedef formata göre copy/reencode'a çözer.
// note kullanıcıya gösterilecek açıklamadır.
func ResolveCodec(inputPath, targetFormat, requested string) (codec string, note string, err error) {
	mode := NormalizeCodec(requested)
	if mode == "" {
		return "", "", fmt.Errorf("gecersiz codec modu: %s (auto|copy|reencode)", requested)
	}

	inputFormat := DetectFormat(inputPath)
	targetFormat = NormalizeFormat(targetFormat)

	switch mode {
	case CodecReencode:
		return CodecReencode, "", nil
	case CodecCopy:
		if inputFormat != "" && targetFormat != "" && inputFormat != targetFormat {
			return "", "", fmt.Errorf("--codec copy yalnizca ayni formatta guvenlidir (%s -> %s)", inputFormat, targetFormat)
		}
		return CodecCopy, "", nil
	default:
		if inputFormat == "" || targetFormat == "" {
			return CodecReencode, "codec auto: format tespit edilemedi, reencode secildi.", nil
		}
		if inputFormat == targetFormat {
			return CodecCopy, fmt.Sprintf("codec auto: %s -> %s ayni format, copy secildi.", inputFormat, targetFormat), nil
		}
		return CodecReencode, fmt.Sprintf("codec auto: %s -> %s farkli format, reencode secildi.", inputFormat, targetFormat), nil
	}
}

// CodecArgs birleştirme adımının codec argümanlarını döner.
func CodecArgs(targetFormat, codec string, quality int) []string {
	if codec == CodecCopy {
		return []string{"-c", "copy"}
	}
	return ReencodeArgs(targetFormat, quality)
}

// ReencodeArgs hedef formata göre encoder argümanlarını döner.
func ReencodeArgs(targetFormat string, quality int) []string {
	crf := CRF(quality)

	switch NormalizeFormat(targetFormat) {
	case "webm":
		return []string{
			"-c:v", "libvpx-vp9",
			"-crf", strconv.Itoa(min(crf+6, 40)),
			"-b:v", "0",
			"-row-mt", "1",
			"-c:a", "libopus",
			"-b:a", "128k",
		}
	case "avi":
		return []string{
			"-c:v", "mpeg4",
			"-q:v", strconv.Itoa(QScale(quality)),
			"-c:a", "mp3",
			"-b:a", "192k",
		}
	case "wmv":
		return []string{"-c:v", "wmv2", "-c:a", "wmav2"}
	case "flv":
		return []string{"-c:v", "flv", "-c:a", "mp3", "-ar", "44100"}
	case "mp4", "m4v", "mov":
		return []string{
			"-c:v", "libx264",
			"-crf", strconv.Itoa(crf),
			"-preset", "medium",
			"-pix_fmt", "yuv420p",
			"-movflags", "+faststart",
			"-c:a", "aac",
			"-b:a", "128k",
		}
	default:
		return []string{
			"-c:v", "libx264",
			"-crf", strconv.Itoa(crf),
			"-preset", "medium",
			"-pix_fmt", "yuv420p",
			"-c:a", "aac",
			"-b:a", "128k",
		}
	}
}

// CRF 1-100 kalite değerini x264/vp9 CRF'ine çevirir; 0 varsayılan demektir.
func CRF(quality int) int {
	switch {
	case quality <= 0:
		return 23
	case quality <= 25:
		return 30
	case quality <= 50:
		return 27
	case quality <= 75:
		return 24
	default:
		return 20
	}
}

// QScale mpeg4 için kalite ölçeği.
func QScale(quality int) int {
	switch {
	case quality <= 0:
		return 5
	case quality <= 25:
		return 8
	case quality <= 50:
		return 6
	case quality <= 75:
		return 4
	default:
		return 2
	}
}

// NormalizeMetadataMode metadata modunu normalize eder; geçersizse "" döner.
func NormalizeMetadataMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", MetadataAuto:
		return MetadataAuto
	case MetadataPreserve:
		return MetadataPreserve
	case MetadataStrip:
		return MetadataStrip
	default:
		return ""
	}
}

// MetadataArgs metadata moduna göre ffmpeg argümanlarını döner.
func MetadataArgs(mode string) []string {
	switch NormalizeMetadataMode(mode) {
	case MetadataStrip:
		return []string{"-map_metadata", "-1"}
	case MetadataPreserve:
		return []string{"-map_metadata", "0"}
	default:
		return nil
	}
}
