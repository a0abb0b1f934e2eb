package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConflictOverwrite = "overwrite"
	ConflictSkip      = "skip"
	ConflictVersioned = "versioned"
)

// maxVersions versioned politikasının deneyeceği en yüksek sürüm numarasıdır.
const maxVersions = 999

// ErrSourceOverwrite çıktı yolu kaynak videonun kendisine denk geldiğinde döner.
// Kaynak dosya hiçbir politikada değiştirilmez.
var ErrSourceOverwrite = errors.New("cikti kaynak videonun uzerine yazamaz")

// NormalizeConflictPolicy boş değerde versioned döner, geçersiz değerde "".
func NormalizeConflictPolicy(policy string) string {
	switch p := strings.ToLower(strings.TrimSpace(policy)); p {
	case ConflictOverwrite, ConflictSkip:
		return p
	case ConflictVersioned, "":
		return ConflictVersioned
	}
	return ""
}

// ResolveOutputPath dışa aktarma hedefini politikaya göre çözer. skip=true
// dönerse dışa aktarma atlanmalıdır. versioned politikası "klip_edited_v2.mp4"
// biçiminde ilk boş adı seçer.
func ResolveOutputPath(source, path, policy string) (resolved string, skip bool, err error) {
	normalized := NormalizeConflictPolicy(policy)
	if normalized == "" {
		return "", false, fmt.Errorf("gecersiz on-conflict politikasi: %s", policy)
	}
	if sameFile(source, path) {
		return "", false, fmt.Errorf("%w: %s", ErrSourceOverwrite, path)
	}

	exists, err := fileExists(path)
	if err != nil || !exists {
		return path, false, err
	}

	switch normalized {
	case ConflictOverwrite:
		return path, false, nil
	case ConflictSkip:
		return path, true, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for v := 2; v <= maxVersions; v++ {
		candidate := fmt.Sprintf("%s_v%d%s", base, v, ext)
		if sameFile(source, candidate) {
			continue
		}
		taken, err := fileExists(candidate)
		if err != nil {
			return "", false, err
		}
		if !taken {
			return candidate, false, nil
		}
	}
	return "", false, fmt.Errorf("bos surum adi bulunamadi: %s", path)
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, err
}

// sameFile iki yolun aynı dosyayı gösterip göstermediğine bakar; dosyalar
// henüz yoksa temizlenmiş mutlak yolları karşılaştırır.
func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
