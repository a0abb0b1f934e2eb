package playback

import (
	"context"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// DefaultInterval konum denetiminin varsayılan sıklığıdır.
const DefaultInterval = 50 * time.Millisecond

// Transport oynatıcının konum ve kontrol arayüzüdür. Konumlar kaynak zamandadır.
type Transport interface {
	Position() time.Duration
	Seek(time.Duration)
	Playing() bool
	Pause()
}

// Segments güncel segment listesini sağlar; timeline.Manager bunu karşılar.
type Segments interface {
	Current() *timeline.SegmentList
}

// EventKind bir denetim adımının sonucudur.
type EventKind int

const (
	EventNone EventKind = iota
	EventSkipped
	EventEnded
)

// Event Check sonucunu taşır.
type Event struct {
	Kind EventKind
	From time.Duration
	To   time.Duration
}

// Monitor oynatma konumunu izler; konum silinmiş bir boşluğa girerse bir
// sonraki korunan segmente atlar, sonrası yoksa oynatmayı durdurur.
type Monitor struct {
	transport Transport
	segments  Segments
	interval  time.Duration
	onEvent   func(Event)
}

// Option Monitor ayarıdır.
type Option func(*Monitor)

// WithInterval denetim sıklığını ayarlar.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithEventHandler atlama ve bitiş olaylarında çağrılır.
func WithEventHandler(fn func(Event)) Option {
	return func(m *Monitor) {
		m.onEvent = fn
	}
}

// NewMonitor yeni bir izleyici oluşturur.
func NewMonitor(t Transport, s Segments, opts ...Option) *Monitor {
	m := &Monitor{transport: t, segments: s, interval: DefaultInterval}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Check tek bir denetim adımı yapar.
func (m *Monitor) Check() Event {
	if !m.transport.Playing() {
		return Event{}
	}
	list := m.segments.Current()
	pos := m.transport.Position()
	if _, ok := list.SourceToVirtual(pos); ok {
		return Event{}
	}

	var ev Event
	if next, ok := list.NextKeptAfter(pos); ok {
		m.transport.Seek(next.SourceStart)
		ev = Event{Kind: EventSkipped, From: pos, To: next.SourceStart}
	} else {
		m.transport.Pause()
		end := pos
		if list.Len() > 0 {
			end = list.At(list.Len() - 1).SourceEnd
		}
		m.transport.Seek(end)
		ev = Event{Kind: EventEnded, From: pos, To: end}
	}
	if m.onEvent != nil {
		m.onEvent(ev)
	}
	return ev
}

// Run ctx iptal edilene kadar her aralıkta Check çağırır.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Check()
		}
	}
}
