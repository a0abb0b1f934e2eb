package media

import (
	"path/filepath"
	"slices"
	"strings"
)

// VideoFormats düzenlenebilir ve dışa aktarılabilir video kapsayıcıları.
var VideoFormats = []string{"mp4", "mov", "mkv", "avi", "webm", "m4v", "wmv", "flv"}

// NormalizeFormat uzantıyı küçük harfe çevirir ve baştaki noktayı atar.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	format = strings.TrimPrefix(format, ".")
	if format == "mpeg4" {
		return "mp4"
	}
	return format
}

// DetectFormat dosya uzantısından format algılar.
func DetectFormat(path string) string {
	return NormalizeFormat(filepath.Ext(path))
}

// IsVideoFormat format desteklenen bir video kapsayıcısıysa true döner.
func IsVideoFormat(format string) bool {
	return slices.Contains(VideoFormats, NormalizeFormat(format))
}

// BuildOutputPath düzenlenmiş çıktı için yol üretir: "<ad>_edited.<format>".
func BuildOutputPath(inputPath, outputDir, targetFormat, customName string) string {
	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if customName != "" {
		baseName = customName
	} else {
		baseName += "_edited"
	}

	if targetFormat == "" {
		targetFormat = DetectFormat(inputPath)
	}
	outputFile := baseName + "." + NormalizeFormat(targetFormat)

	if outputDir != "" {
		return filepath.Join(outputDir, outputFile)
	}
	return filepath.Join(filepath.Dir(inputPath), outputFile)
}
