package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const projectConfigFileName = ".videoedit.toml"

// ProjectConfig proje bazlı CLI varsayılanlarını tutar.
type ProjectConfig struct {
	DefaultOutput string        `toml:"default_output"`
	Workers       int           `toml:"workers"`
	Quality       int           `toml:"quality"`
	OnConflict    string        `toml:"on_conflict"`
	Retry         int           `toml:"retry"`
	RetryDelay    time.Duration `toml:"retry_delay"`
	ReportFormat  string        `toml:"report_format"`
	HistoryDepth  int           `toml:"history_depth"`
	Codec         string        `toml:"codec"`
	MetadataMode  string        `toml:"metadata_mode"`
	TimelineStep  time.Duration `toml:"timeline_step"`
}

// LoadProjectConfig currentDir'den yukarı doğru .videoedit.toml arar.
// Dosya yoksa (nil, "", nil) döner.
func LoadProjectConfig(currentDir string) (*ProjectConfig, string, error) {
	path, err := findProjectConfigPath(currentDir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", nil
	}

	cfg, err := parseProjectConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func findProjectConfigPath(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", errors.New("gecersiz calisma dizini")
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, projectConfigFileName)
		info, statErr := os.Stat(candidate)
		if statErr == nil && !info.IsDir() {
			return candidate, nil
		}
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return "", statErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func parseProjectConfig(path string) (*ProjectConfig, error) {
	cfg := &ProjectConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%s:%d %s", path, perr.Position.Line, perr.Message)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.OnConflict = strings.ToLower(strings.TrimSpace(cfg.OnConflict))
	cfg.ReportFormat = strings.ToLower(strings.TrimSpace(cfg.ReportFormat))
	cfg.Codec = strings.ToLower(strings.TrimSpace(cfg.Codec))
	cfg.MetadataMode = strings.ToLower(strings.TrimSpace(cfg.MetadataMode))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *ProjectConfig) validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("workers 0 veya daha buyuk olmali")
	case c.Quality < 0 || c.Quality > 100:
		return fmt.Errorf("quality 0-100 araliginda olmali")
	case c.Retry < 0:
		return fmt.Errorf("retry 0 veya daha buyuk olmali")
	case c.RetryDelay < 0:
		return fmt.Errorf("retry_delay negatif olamaz")
	case c.HistoryDepth < 0:
		return fmt.Errorf("history_depth 0 veya daha buyuk olmali")
	case c.TimelineStep < 0:
		return fmt.Errorf("timeline_step negatif olamaz")
	}
	return nil
}
