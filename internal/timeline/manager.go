package timeline

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Op bir durum değişikliğinin türüdür.
type Op string

const (
	OpReset  Op = "reset"
	OpDelete Op = "delete"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
)

// Change gözlemcilere bildirilen durum değişikliğidir.
type Change struct {
	Op        Op
	Before    *SegmentList
	After     *SegmentList
	UndoDepth int
	RedoDepth int
}

// Command Manager'a gönderilen düzenleme mesajıdır.
type Command interface {
	op() Op
}

// DeleteCommand sanal [Start, End) aralığını siler.
type DeleteCommand struct {
	Start time.Duration
	End   time.Duration
}

// UndoCommand son düzenlemeyi geri alır.
type UndoCommand struct{}

// RedoCommand geri alınan düzenlemeyi yineler.
type RedoCommand struct{}

// ResetCommand durumu verilen kaynak süresiyle sıfırlar.
type ResetCommand struct {
	Duration time.Duration
}

func (DeleteCommand) op() Op { return OpDelete }
func (UndoCommand) op() Op   { return OpUndo }
func (RedoCommand) op() Op   { return OpRedo }
func (ResetCommand) op() Op  { return OpReset }

// Option Manager ayarıdır.
type Option func(*Manager)

// WithHistoryDepth geri alma derinliğini ayarlar (<= 0 sınırsız).
func WithHistoryDepth(depth int) Option {
	return func(m *Manager) {
		m.history = NewHistory(depth)
	}
}

// WithObserver her durum değişikliğinden sonra çağrılacak fonksiyonu ekler.
// Gözlemci Manager kilidi tutulurken çağrılır, Manager'ı tekrar çağırmamalıdır.
func WithObserver(fn func(Change)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// Manager düzenleme modelinin tek değişiklik giriş noktasıdır.
//
// Yazıcılar mu ile sıralanır. Güncel liste atomic pointer ile yayınlanır ve
// yayından sonra değiştirilmez; okuyucular kilitsizdir ve her zaman
// değişiklik öncesi ya da sonrası tam bir liste görür.
type Manager struct {
	mu             sync.Mutex
	current        atomic.Pointer[SegmentList]
	sourceDuration atomic.Int64
	history        *History
	observers      []func(Change)
}

// NewManager boş bir Manager oluşturur; Initialize ile kaynak süresi verilmelidir.
func NewManager(opts ...Option) *Manager {
	m := &Manager{history: NewHistory(DefaultHistoryDepth)}
	for _, opt := range opts {
		opt(m)
	}
	m.current.Store(NewSegmentList(0))
	return m
}

// Initialize durumu [0, total) tek aralığına sıfırlar ve geçmişi temizler.
func (m *Manager) Initialize(total time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.current.Load()
	m.history.Clear()
	after := NewSegmentList(total)
	m.sourceDuration.Store(int64(total))
	m.current.Store(after)
	m.notify(OpReset, before, after)
}

// Current güncel segment listesidir. Dönen liste değiştirilmemelidir.
func (m *Manager) Current() *SegmentList {
	return m.current.Load()
}

// SourceDuration Initialize ile verilen kaynak süresidir.
func (m *Manager) SourceDuration() time.Duration {
	return time.Duration(m.sourceDuration.Load())
}

// DeleteSegment sanal aralığı siler. Hata durumunda ne geçmiş ne de güncel
// durum değişir.
func (m *Manager) DeleteSegment(virtualStart, virtualEnd time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.current.Load()
	after, err := before.Delete(virtualStart, virtualEnd)
	if err != nil {
		return err
	}
	m.history.Push(before)
	m.current.Store(after)
	m.notify(OpDelete, before, after)
	return nil
}

// Undo son düzenlemeyi geri alır. Geri alınacak bir şey yoksa sessizce
// false döner.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.current.Load()
	after := m.history.Undo(before)
	if after == before {
		return false
	}
	m.current.Store(after)
	m.notify(OpUndo, before, after)
	return true
}

// Redo geri alınan düzenlemeyi yineler. Yinelenecek bir şey yoksa sessizce
// false döner.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.current.Load()
	after := m.history.Redo(before)
	if after == before {
		return false
	}
	m.current.Store(after)
	m.notify(OpRedo, before, after)
	return true
}

// CanUndo geri alma komutunun anlamlı olup olmadığını döner.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.CanUndo()
}

// CanRedo yineleme komutunun anlamlı olup olmadığını döner.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.CanRedo()
}

// HistoryDepth geri alma ve yineleme yığınlarının derinliğini döner.
func (m *Manager) HistoryDepth() (undo int, redo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.UndoDepth(), m.history.RedoDepth()
}

// Apply komut mesajını ilgili işleme yönlendirir.
func (m *Manager) Apply(cmd Command) error {
	switch c := cmd.(type) {
	case DeleteCommand:
		return m.DeleteSegment(c.Start, c.End)
	case UndoCommand:
		m.Undo()
		return nil
	case RedoCommand:
		m.Redo()
		return nil
	case ResetCommand:
		m.Initialize(c.Duration)
		return nil
	default:
		return fmt.Errorf("desteklenmeyen komut: %T", cmd)
	}
}

func (m *Manager) notify(op Op, before, after *SegmentList) {
	if len(m.observers) == 0 {
		return
	}
	change := Change{
		Op:        op,
		Before:    before,
		After:     after,
		UndoDepth: m.history.UndoDepth(),
		RedoDepth: m.history.RedoDepth(),
	}
	for _, fn := range m.observers {
		fn(change)
	}
}
