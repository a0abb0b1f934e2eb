package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

const (
	OpDelete = "delete"
	OpUndo   = "undo"
	OpRedo   = "redo"
	OpReset  = "reset"

	SpaceVirtual = "virtual"
	SpaceSource  = "source"
)

// Script bir kaynak videoya sırayla uygulanacak düzenlemeleri tanımlar.
type Script struct {
	Source string `json:"source"`
	// Duration ffprobe yoksa kaynak süresini belirtir ("60s", "00:01:00").
	Duration     string `json:"duration,omitempty"`
	HistoryDepth int    `json:"history_depth,omitempty"`

	Output       string `json:"output,omitempty"`
	To           string `json:"to,omitempty"`
	Codec        string `json:"codec,omitempty"`
	Quality      int    `json:"quality,omitempty"`
	MetadataMode string `json:"metadata_mode,omitempty"`
	Report       string `json:"report,omitempty"`
	EDL          string `json:"edl,omitempty"`

	Ops []Op `json:"ops"`

	// path Load ile okunan dosyanın yoludur; göreli yollar buna göre çözülür.
	path string
}

// Op tek bir düzenleme adımıdır.
type Op struct {
	Op    string `json:"op"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	// Space start/end'in koordinat sistemidir: virtual (varsayılan) ya da source.
	Space string `json:"space,omitempty"`
}

// Load JSON düzenleme betiğini okur ve doğrular.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("duzenleme betigi parse hatasi (%s): %w", filepath.Base(path), err)
	}
	s.path = path
	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &s, nil
}

// Path betiğin okunduğu dosya yoludur.
func (s *Script) Path() string {
	return s.path
}

// SourcePath kaynak yolunu betiğin bulunduğu dizine göre çözer.
func (s *Script) SourcePath() string {
	return s.resolve(s.Source)
}

// OutputPath çıktı yolunu betiğin bulunduğu dizine göre çözer; boşsa "".
func (s *Script) OutputPath() string {
	if strings.TrimSpace(s.Output) == "" {
		return ""
	}
	return s.resolve(s.Output)
}

// EDLPath EDL yolunu betiğin bulunduğu dizine göre çözer; boşsa "".
func (s *Script) EDLPath() string {
	if strings.TrimSpace(s.EDL) == "" {
		return ""
	}
	return s.resolve(s.EDL)
}

func (s *Script) resolve(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || s.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(s.path), p)
}

// SourceDuration betikte verilen süreyi döner; verilmemişse ok=false.
func (s *Script) SourceDuration() (time.Duration, bool, error) {
	if strings.TrimSpace(s.Duration) == "" {
		return 0, false, nil
	}
	d, err := timeline.ParseTimecode(s.Duration)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

// Validate betik alanlarını ve adımlarını doğrular.
func Validate(s *Script) error {
	if strings.TrimSpace(s.Source) == "" {
		return fmt.Errorf("source zorunlu")
	}
	if len(s.Ops) == 0 {
		return fmt.Errorf("en az bir op gerekli")
	}
	if d, ok, err := s.SourceDuration(); err != nil {
		return fmt.Errorf("gecersiz duration: %w", err)
	} else if ok && d <= 0 {
		return fmt.Errorf("duration pozitif olmali")
	}
	if s.Quality < 0 || s.Quality > 100 {
		return fmt.Errorf("quality 0 (varsayilan) ya da 1-100 araliginda olmali")
	}

	for i, op := range s.Ops {
		switch normalizeOp(op.Op) {
		case OpDelete:
			start, end, err := op.bounds()
			if err != nil {
				return fmt.Errorf("op[%d]: %w", i, err)
			}
			if end <= start {
				return fmt.Errorf("op[%d]: %w: %s -> %s", i, timeline.ErrInvalidRange, op.Start, op.End)
			}
			if sp := normalizeSpace(op.Space); sp == "" {
				return fmt.Errorf("op[%d]: gecersiz space: %s (virtual|source)", i, op.Space)
			}
		case OpUndo, OpRedo, OpReset:
		case "":
			return fmt.Errorf("op[%d]: op zorunlu", i)
		default:
			return fmt.Errorf("op[%d]: desteklenmeyen op: %s", i, op.Op)
		}
	}
	return nil
}

func (o Op) bounds() (time.Duration, time.Duration, error) {
	start, err := timeline.ParseTimecode(o.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("gecersiz start: %w", err)
	}
	end, err := timeline.ParseTimecode(o.End)
	if err != nil {
		return 0, 0, fmt.Errorf("gecersiz end: %w", err)
	}
	return start, end, nil
}

func normalizeOp(op string) string {
	return strings.ToLower(strings.TrimSpace(op))
}

func normalizeSpace(space string) string {
	switch strings.ToLower(strings.TrimSpace(space)) {
	case "", SpaceVirtual:
		return SpaceVirtual
	case SpaceSource:
		return SpaceSource
	default:
		return ""
	}
}
