package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrToolNotFound ffmpeg ya da ffprobe sistemde bulunamadığında döner.
var ErrToolNotFound = errors.New("arac bulunamadi")

// lookPath testlerde değiştirilebilir.
var lookPath = exec.LookPath

// FindFFmpeg ffmpeg'in yolunu bulur. FFMPEG_PATH ortam değişkeni önceliklidir.
func FindFFmpeg() (string, error) {
	return findTool("ffmpeg", "FFMPEG_PATH")
}

// FindFFprobe ffprobe'un yolunu bulur. FFPROBE_PATH ortam değişkeni önceliklidir.
func FindFFprobe() (string, error) {
	return findTool("ffprobe", "FFPROBE_PATH")
}

func findTool(name, envKey string) (string, error) {
	if envPath := strings.TrimSpace(os.Getenv(envKey)); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	candidates := []string{name}
	switch runtime.GOOS {
	case "darwin":
		candidates = append(candidates, "/opt/homebrew/bin/"+name, "/usr/local/bin/"+name)
	case "linux":
		candidates = append(candidates, "/usr/bin/"+name, "/usr/local/bin/"+name)
	}

	for _, c := range candidates {
		if path, err := lookPath(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s (kurulum icin: videoedit-cli doctor --install)", ErrToolNotFound, name)
}

// Run ffmpeg'i verilen argümanlarla çalıştırır; hata durumunda çıktıyı ekler.
func Run(ctx context.Context, ffmpegPath string, args []string, prefix string) error {
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", prefix, ctxErr)
		}
		return fmt.Errorf("%s: %s\n%s", prefix, err.Error(), strings.TrimSpace(string(out)))
	}
	return nil
}

// QuietArgs verbose kapalıyken ffmpeg log seviyesini düşürür.
func QuietArgs(verbose bool) []string {
	if verbose {
		return nil
	}
	return []string{"-hide_banner", "-loglevel", "error"}
}
