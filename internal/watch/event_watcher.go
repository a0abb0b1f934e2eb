package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventWatcher fsnotify bildirimlerini tarama tetikleyicisine çevirir.
// Hangi betiğin hazır olduğuna yine polling Watcher karar verir; bildirimler
// yalnızca bir sonraki taramayı öne çeker.
type EventWatcher struct {
	scanner *Watcher
	notify  *fsnotify.Watcher

	wake     chan struct{}
	stop     chan struct{}
	loopDone chan struct{}
	started  bool
	once     sync.Once
}

// NewEventWatcher verilen tarayıcının üzerine fsnotify bağlar.
func NewEventWatcher(scanner *Watcher) (*EventWatcher, error) {
	n, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &EventWatcher{
		scanner:  scanner,
		notify:   n,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

// NewAdaptiveWatcher fsnotify'ı dener; kurulamazsa yalnızca polling döner.
// Dönen hata bilgi amaçlıdır, Engine her durumda kullanılabilir.
func NewAdaptiveWatcher(root string, match MatchFunc, recursive bool, settleFor time.Duration) (Engine, error) {
	scanner := NewWatcher(root, match, recursive, settleFor)
	ew, err := NewEventWatcher(scanner)
	if err != nil {
		return scanner, err
	}
	return ew, nil
}

// Bootstrap mevcut betikleri işlenmiş sayar ve dizinleri bildirime kaydeder.
func (w *EventWatcher) Bootstrap() error {
	if err := w.scanner.Bootstrap(); err != nil {
		return err
	}
	if err := w.scanner.walkDirs(w.notify.Add); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

func (w *EventWatcher) Poll(now time.Time) ([]string, error) {
	return w.scanner.Poll(now)
}

func (w *EventWatcher) Events() <-chan struct{} { return w.wake }

// Close bildirim döngüsünü durdurur ve bitmesini bekler.
func (w *EventWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.notify.Close()
		if w.started {
			<-w.loopDone
		}
	})
	return err
}

func (w *EventWatcher) Mode() string { return "event+polling" }

func (w *EventWatcher) loop() {
	defer close(w.loopDone)
	for {
		select {
		case <-w.stop:
			return
		case evt, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if w.relevant(evt) {
				w.signal()
			}
		case _, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			// Kaçan bildirimleri bir sonraki tarama yakalar.
			w.signal()
		}
	}
}

// relevant betik dosyalarını ve yeni alt dizinleri ayıklar. Yeni dizinler
// recursive modda bildirime eklenir; içine kopyalanan betikler taramada görünür.
func (w *EventWatcher) relevant(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod || isTransient(evt.Name) {
		return false
	}
	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if !w.scanner.Recursive {
				return false
			}
			_ = w.scanner.walkDirFrom(evt.Name, w.notify.Add)
			return true
		}
	}
	return w.scanner.Match(evt.Name)
}

func (w *EventWatcher) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// isTransient editörlerin kayıt sırasında bıraktığı gizli, yedek ve takas
// dosyalarını tanır.
func isTransient(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"):
		return true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".swp", ".swx", ".tmp", ".part", ".crdownload":
		return true
	}
	return false
}
