package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultSettle bir dosyanın yazımı bitti sayılmadan önce sabit kalması gereken süredir.
const DefaultSettle = 1500 * time.Millisecond

// Engine izleme arka ucudur. Events nil dönebilir; o zaman yalnızca Poll kullanılır.
type Engine interface {
	Bootstrap() error
	Poll(now time.Time) ([]string, error)
	Events() <-chan struct{}
	Close() error
	Mode() string
}

// MatchFunc izlenecek dosyaları seçer.
type MatchFunc func(path string) bool

type fileState struct {
	Size       int64
	ModTime    time.Time
	LastChange time.Time
	Processed  bool
}

// Watcher polling tabanlı dosya izleyicisidir.
type Watcher struct {
	Root      string
	Match     MatchFunc
	Recursive bool
	SettleFor time.Duration

	states map[string]fileState
}

// NewWatcher yeni bir watcher oluşturur. match nil ise her dosya izlenir.
func NewWatcher(root string, match MatchFunc, recursive bool, settleFor time.Duration) *Watcher {
	if settleFor <= 0 {
		settleFor = DefaultSettle
	}
	if match == nil {
		match = func(string) bool { return true }
	}
	return &Watcher{
		Root:      root,
		Match:     match,
		Recursive: recursive,
		SettleFor: settleFor,
		states:    make(map[string]fileState),
	}
}

// Bootstrap mevcut dosyaları "zaten işlenmiş" olarak kaydeder.
func (w *Watcher) Bootstrap() error {
	now := time.Now()
	return w.scan(func(path string, info os.FileInfo) error {
		w.states[path] = fileState{
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			LastChange: now,
			Processed:  true,
		}
		return nil
	})
}

// Poll yeni/degisen ve stabilize olmuş dosyaları sıralı döner.
func (w *Watcher) Poll(now time.Time) ([]string, error) {
	seen := make(map[string]struct{})
	var ready []string

	err := w.scan(func(path string, info os.FileInfo) error {
		seen[path] = struct{}{}
		state, ok := w.states[path]

		if !ok {
			w.states[path] = fileState{
				Size:       info.Size(),
				ModTime:    info.ModTime(),
				LastChange: now,
			}
			return nil
		}

		if state.Size != info.Size() || !state.ModTime.Equal(info.ModTime()) {
			state.Size = info.Size()
			state.ModTime = info.ModTime()
			state.LastChange = now
			state.Processed = false
			w.states[path] = state
			return nil
		}

		if !state.Processed && now.Sub(state.LastChange) >= w.SettleFor {
			state.Processed = true
			w.states[path] = state
			ready = append(ready, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for path := range w.states {
		if _, ok := seen[path]; !ok {
			delete(w.states, path)
		}
	}

	sort.Strings(ready)
	return ready, nil
}

// Events polling modunda olay kanalı yoktur.
func (w *Watcher) Events() <-chan struct{} { return nil }

func (w *Watcher) Close() error { return nil }

func (w *Watcher) Mode() string { return "polling" }

func (w *Watcher) checkRoot() error {
	info, err := os.Stat(w.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("watch yolu dizin olmalidir: %s", w.Root)
	}
	return nil
}

// walkDirs izlenecek dizinleri (kök dahil) sırayla fn'e verir.
func (w *Watcher) walkDirs(fn func(dir string) error) error {
	if err := w.checkRoot(); err != nil {
		return err
	}
	if !w.Recursive {
		return fn(w.Root)
	}
	return w.walkDirFrom(w.Root, fn)
}

func (w *Watcher) walkDirFrom(start string, fn func(dir string) error) error {
	return filepath.WalkDir(start, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.Root && isTransient(path) {
			return filepath.SkipDir
		}
		return fn(path)
	})
}

func (w *Watcher) scan(onFile func(path string, info os.FileInfo) error) error {
	if err := w.checkRoot(); err != nil {
		return err
	}

	walkFn := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == w.Root {
				return nil
			}
			if !w.Recursive || isTransient(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if isTransient(path) || !w.Match(path) {
			return nil
		}
		info, statErr := d.Info()
		if statErr != nil {
			return nil
		}
		return onFile(path, info)
	}

	return filepath.WalkDir(w.Root, walkFn)
}
