package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/media"
)

// Result tamamlanan bir dışa aktarmanın özetidir.
type Result struct {
	Output  string
	Parts   int
	Skipped bool
	Elapsed time.Duration
}

// Progress her parça tamamlandığında çağrılır.
type Progress func(done, total int)

// Render planı ffmpeg ile uygular: her korunan segment ayrı bir parçaya
// çıkarılır, ardından concat demuxer ile birleştirilir.
func Render(ctx context.Context, plan Plan, verbose bool, progress Progress) (Result, error) {
	started := time.Now()
	if plan.WouldSkip {
		return Result{Output: plan.Output, Skipped: true}, nil
	}
	if len(plan.Kept) == 0 {
		return Result{}, fmt.Errorf("korunan segment yok")
	}

	ffmpegPath, err := media.FindFFmpeg()
	if err != nil {
		return Result{}, err
	}

	if dir := filepath.Dir(plan.Output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, fmt.Errorf("cikti dizini olusturulamadi: %w", err)
		}
	}

	tempDir, err := os.MkdirTemp("", "videoedit-export-*")
	if err != nil {
		return Result{}, fmt.Errorf("gecici klasor olusturulamadi: %w", err)
	}
	defer os.RemoveAll(tempDir)

	parts := make([]string, 0, len(plan.Kept))
	for i := range plan.Kept {
		partPath := filepath.Join(tempDir, fmt.Sprintf("part_%03d.%s", i+1, plan.TargetFormat))
		if err := media.Run(ctx, ffmpegPath, plan.PartArgs(i, partPath, verbose), "segment parcasi uretilemedi"); err != nil {
			return Result{}, err
		}
		if hasContent(partPath) {
			parts = append(parts, partPath)
		}
		if progress != nil {
			progress(i+1, len(plan.Kept))
		}
	}
	if len(parts) == 0 {
		return Result{}, fmt.Errorf("hicbir segment parcasi uretilemedi")
	}

	listPath := filepath.Join(tempDir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(ConcatList(parts)), 0644); err != nil {
		return Result{}, fmt.Errorf("concat listesi yazilamadi: %w", err)
	}
	if err := media.Run(ctx, ffmpegPath, plan.ConcatArgs(listPath, verbose), "birlestirme hatasi"); err != nil {
		return Result{}, err
	}

	return Result{Output: plan.Output, Parts: len(parts), Elapsed: time.Since(started)}, nil
}

// ConcatList ffmpeg concat demuxer'ının okuyacağı dosya listesini üretir.
func ConcatList(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(p, "'", `'\''`))
		b.WriteString("'\n")
	}
	return b.String()
}

func hasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
