package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Job bir edit betiği işini temsil eder
type Job struct {
	ScriptPath string
	OutputPath string
	SkipReason string
}

// Outcome bir betiğin başarılı çalıştırma çıktısıdır
type Outcome struct {
	OutputPath string
	Kept       int
	Duration   time.Duration
	Skipped    bool
}

// Runner tek bir işi çalıştırır. Permanent ile işaretlenmemiş hatalarda iş
// yeniden denenir.
type Runner func(ctx context.Context, job Job) (Outcome, error)

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent yeniden denemenin sonucu değiştirmeyeceği hatayı işaretler
// (bozuk betik, zaman çizelgesi dışına taşan silme gibi).
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// IsPermanent hata zincirinde Permanent işareti varsa true döner.
func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// JobResult bir işin sonucunu tutar
type JobResult struct {
	Job        Job
	Outcome    Outcome
	Success    bool
	Skipped    bool
	Attempts   int
	OutputSize int64
	SkipReason string
	Error      error
	Duration   time.Duration
}

// Pool worker pool'u yönetir
type Pool struct {
	Workers    int
	RetryMax   int
	RetryDelay time.Duration
	Results    []JobResult
	mu         sync.Mutex
	processed  atomic.Int64
	totalJobs  int
	OnProgress func(completed, total int)
}

// NewPool yeni bir worker pool oluşturur
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// ffmpeg süreçleri zaten çok çekirdekli
	maxWorkers := runtime.NumCPU() * 2
	if workers > maxWorkers {
		workers = maxWorkers
	}

	return &Pool{
		Workers:    workers,
		RetryDelay: 500 * time.Millisecond,
	}
}

// SetRetry retry davranışını ayarlar.
func (p *Pool) SetRetry(max int, delay time.Duration) {
	if max < 0 {
		max = 0
	}
	p.RetryMax = max

	if delay >= 0 {
		p.RetryDelay = delay
	}
}

// Execute işleri paralel çalıştırır. İlerleme tamamlanma sırasıyla bildirilir,
// sonuçlar betik yoluna göre sıralı döner.
func (p *Pool) Execute(ctx context.Context, jobs []Job, run Runner) []JobResult {
	p.totalJobs = len(jobs)
	p.Results = make([]JobResult, 0, len(jobs))
	p.processed.Store(0)

	if len(jobs) == 0 {
		return p.Results
	}

	workers := p.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers <= 0 {
		workers = 1
	}

	jobChan := make(chan Job, len(jobs))
	resultChan := make(chan JobResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				resultChan <- p.processJob(ctx, job, run)
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		p.mu.Lock()
		p.Results = append(p.Results, result)
		p.mu.Unlock()

		completed := int(p.processed.Add(1))
		if p.OnProgress != nil {
			p.OnProgress(completed, p.totalJobs)
		}
	}

	sort.SliceStable(p.Results, func(i, j int) bool {
		return p.Results[i].Job.ScriptPath < p.Results[j].Job.ScriptPath
	})
	return p.Results
}

func (p *Pool) processJob(ctx context.Context, job Job, run Runner) JobResult {
	start := time.Now()

	if job.SkipReason != "" {
		return JobResult{
			Job:        job,
			Skipped:    true,
			SkipReason: job.SkipReason,
			Duration:   time.Since(start),
		}
	}

	if job.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0755); err != nil {
			return JobResult{
				Job:      job,
				Attempts: 1,
				Error:    fmt.Errorf("cikti dizini olusturulamadi: %w", err),
				Duration: time.Since(start),
			}
		}
	}

	attempts := p.RetryMax + 1
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			attempts = attempt
			break
		}

		out, err := run(ctx, job)
		if err == nil {
			if out.Skipped {
				return JobResult{
					Job:        job,
					Outcome:    out,
					Skipped:    true,
					Attempts:   attempt,
					SkipReason: "output_exists",
					Duration:   time.Since(start),
				}
			}
			var size int64
			if info, statErr := os.Stat(out.OutputPath); statErr == nil {
				size = info.Size()
			}
			return JobResult{
				Job:        job,
				Outcome:    out,
				Success:    true,
				Attempts:   attempt,
				OutputSize: size,
				Duration:   time.Since(start),
			}
		}

		lastErr = err
		if IsPermanent(err) {
			attempts = attempt
			break
		}
		if attempt < attempts && p.RetryDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.RetryDelay):
			}
		}
	}

	return JobResult{
		Job:      job,
		Attempts: attempts,
		Error:    lastErr,
		Duration: time.Since(start),
	}
}

// Summary toplu iş sonuçlarını özetler
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Duration  time.Duration
	// EditedTotal başarılı betiklerin düzenlenmiş sürelerinin toplamıdır.
	EditedTotal time.Duration
	Errors      []JobError
}

// JobError başarısız olan bir işin hata bilgisi
type JobError struct {
	ScriptFile string
	Error      string
	Attempts   int
}

// GetSummary iş sonuçlarından özet oluşturur
func GetSummary(results []JobResult, totalDuration time.Duration) Summary {
	s := Summary{
		Total:    len(results),
		Duration: totalDuration,
	}

	for _, r := range results {
		switch {
		case r.Success:
			s.Succeeded++
			s.EditedTotal += r.Outcome.Duration
		case r.Skipped:
			s.Skipped++
		default:
			s.Failed++
			msg := "bilinmeyen hata"
			if r.Error != nil {
				msg = r.Error.Error()
			}
			s.Errors = append(s.Errors, JobError{
				ScriptFile: r.Job.ScriptPath,
				Error:      msg,
				Attempts:   r.Attempts,
			})
		}
	}

	return s
}

// CollectScripts dizindeki *.json edit betiklerini sıralı toplar
func CollectScripts(dir string, recursive bool) ([]string, error) {
	var files []string

	walkFn := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if IsScriptFile(path) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dir, walkFn); err != nil {
		return nil, fmt.Errorf("dizin taranamadi: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// IsScriptFile yolun bir edit betiği olup olmadığını uzantıdan anlar.
func IsScriptFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(strings.ToLower(base), ".cutlist.json") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".json")
}

// CollectScriptsFromGlob glob pattern ile betik toplar
func CollectScriptsFromGlob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob pattern hatasi: %w", err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() || !IsScriptFile(m) {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
