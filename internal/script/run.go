package script

import (
	"context"
	"fmt"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

const (
	StatusApplied = "applied"
	StatusNoop    = "noop"
	StatusFailed  = "failed"
)

// ProbeFunc kaynak süresini okur.
type ProbeFunc func(ctx context.Context, path string) (time.Duration, error)

// Config betik çalıştırma ayarlarıdır.
type Config struct {
	// HistoryDepth betik kendi değerini vermezse kullanılır.
	HistoryDepth int
	// Probe nil ise ffprobe kullanılır.
	Probe     ProbeFunc
	Observers []func(timeline.Change)
}

// StepResult tek bir op'un sonucudur.
type StepResult struct {
	Index  int           `json:"index"`
	Op     string        `json:"op"`
	Status string        `json:"status"`
	Detail string        `json:"detail,omitempty"`
	Total  time.Duration `json:"total_ns"`
}

// Result betik çalıştırma sonucudur.
type Result struct {
	Script         *Script
	SourceDuration time.Duration
	Manager        *timeline.Manager
	Steps          []StepResult
	StartedAt      time.Time
	EndedAt        time.Time
}

// Final son segment listesidir.
func (r *Result) Final() *timeline.SegmentList {
	return r.Manager.Current()
}

// Edits uygulanan adımların okunabilir kaydıdır.
func (r *Result) Edits() []string {
	out := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.Status != StatusApplied {
			continue
		}
		if s.Detail != "" {
			out = append(out, s.Op+" "+s.Detail)
		} else {
			out = append(out, s.Op)
		}
	}
	return out
}

// Run betiği yeni bir Manager üzerinde sırayla çalıştırır. Hatalı bir op
// çalıştırmayı durdurur; önceki adımların durumu korunur.
func Run(ctx context.Context, s *Script, cfg Config) (*Result, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	duration, ok, err := s.SourceDuration()
	if err != nil {
		return nil, err
	}
	if !ok {
		probe := cfg.Probe
		if probe == nil {
			probe = media.ProbeDuration
		}
		duration, err = probe(ctx, s.SourcePath())
		if err != nil {
			return nil, fmt.Errorf("kaynak suresi okunamadi (betige duration ekleyebilirsiniz): %w", err)
		}
	}

	depth := cfg.HistoryDepth
	if s.HistoryDepth != 0 {
		depth = s.HistoryDepth
	}
	opts := []timeline.Option{timeline.WithHistoryDepth(depth)}
	for _, obs := range cfg.Observers {
		opts = append(opts, timeline.WithObserver(obs))
	}
	m := timeline.NewManager(opts...)
	m.Initialize(duration)

	result := &Result{
		Script:         s,
		SourceDuration: duration,
		Manager:        m,
		Steps:          make([]StepResult, 0, len(s.Ops)),
		StartedAt:      time.Now(),
	}
	defer func() { result.EndedAt = time.Now() }()

	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		step, err := apply(m, op, duration)
		step.Index = i + 1
		step.Total = m.Current().TotalDuration()
		result.Steps = append(result.Steps, step)
		if err != nil {
			return result, fmt.Errorf("op[%d] %s: %w", i, step.Op, err)
		}
	}
	return result, nil
}

func apply(m *timeline.Manager, op Op, sourceDuration time.Duration) (StepResult, error) {
	name := normalizeOp(op.Op)
	step := StepResult{Op: name}

	switch name {
	case OpDelete:
		start, end, err := op.bounds()
		if err != nil {
			step.Status = StatusFailed
			return step, err
		}
		space := normalizeSpace(op.Space)
		if space == SpaceSource {
			cur := m.Current()
			start, end = cur.VirtualOffset(start), cur.VirtualOffset(end)
			if end <= start {
				step.Status = StatusNoop
				step.Detail = fmt.Sprintf("kaynak %s -> %s zaten silinmis", op.Start, op.End)
				return step, nil
			}
		}
		if err := m.Apply(timeline.DeleteCommand{Start: start, End: end}); err != nil {
			step.Status = StatusFailed
			step.Detail = err.Error()
			return step, err
		}
		step.Status = StatusApplied
		step.Detail = fmt.Sprintf("%s %s -> %s", space, timeline.FormatTimecode(start), timeline.FormatTimecode(end))
	case OpUndo:
		step.Status = statusFor(m.Undo())
	case OpRedo:
		step.Status = statusFor(m.Redo())
	case OpReset:
		m.Initialize(sourceDuration)
		step.Status = StatusApplied
	default:
		step.Status = StatusFailed
		return step, fmt.Errorf("desteklenmeyen op: %s", op.Op)
	}
	return step, nil
}

func statusFor(changed bool) string {
	if changed {
		return StatusApplied
	}
	return StatusNoop
}
