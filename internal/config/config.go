package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const appConfigFile = "config.json"

// AppConfig kullanıcı bazlı uygulama yapılandırmasıdır (~/.videoedit/config.json).
type AppConfig struct {
	FirstRunCompleted bool   `json:"first_run_completed"`
	DefaultOutputDir  string `json:"default_output_dir,omitempty"`
	// HistoryDepth 0 ise geri alma derinliği için yerleşik varsayılan kullanılır.
	HistoryDepth int `json:"history_depth,omitempty"`
}

// Path uygulama yapılandırma dosyasının yoludur.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".videoedit", appConfigFile), nil
}

// LoadConfig yapılandırmayı okur. Dosya yoksa, okunamıyorsa ya da bozuksa
// boş yapılandırma döner; CLI bu durumda varsayılanlarla çalışır.
func LoadConfig() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return &AppConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &AppConfig{}, nil
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return &AppConfig{}, nil
	}
	if cfg.HistoryDepth < 0 {
		cfg.HistoryDepth = 0
	}
	return &cfg, nil
}

// SaveConfig yapılandırmayı geçici dosya üzerinden yazar; yarım kalan bir
// yazım mevcut dosyayı bozmaz.
func SaveConfig(cfg *AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, appConfigFile+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Update yapılandırmayı okuyup fn ile değiştirir ve kaydeder.
func Update(fn func(*AppConfig)) error {
	cfg, _ := LoadConfig()
	fn(cfg)
	return SaveConfig(cfg)
}

func IsFirstRun() bool {
	cfg, _ := LoadConfig()
	return !cfg.FirstRunCompleted
}

func MarkFirstRunDone() error {
	return Update(func(c *AppConfig) { c.FirstRunCompleted = true })
}

// GetDefaultOutputDir kayıtlı varsayılan çıktı dizinini döner.
func GetDefaultOutputDir() string {
	cfg, _ := LoadConfig()
	return cfg.DefaultOutputDir
}

// GetHistoryDepth kayıtlı geri alma derinliğini döner; 0 kayıt yok demektir.
func GetHistoryDepth() int {
	cfg, _ := LoadConfig()
	return cfg.HistoryDepth
}
