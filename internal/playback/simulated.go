package playback

import (
	"sync"
	"time"
)

// SimulatedTransport gerçek bir oynatıcı olmadan ilerleyen bir saattir.
// Terminal önizlemesi ve testler için kullanılır.
type SimulatedTransport struct {
	mu       sync.Mutex
	position time.Duration
	duration time.Duration
	playing  bool
}

// NewSimulatedTransport kaynak süresi verilen bir transport oluşturur.
func NewSimulatedTransport(duration time.Duration) *SimulatedTransport {
	return &SimulatedTransport{duration: duration}
}

func (s *SimulatedTransport) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *SimulatedTransport) Seek(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = min(max(pos, 0), s.duration)
}

func (s *SimulatedTransport) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *SimulatedTransport) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position < s.duration {
		s.playing = true
	}
}

func (s *SimulatedTransport) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// Advance oynatılıyorsa konumu d kadar ilerletir; kaynak sonunda durur.
func (s *SimulatedTransport) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing {
		return
	}
	s.position += d
	if s.position >= s.duration {
		s.position = s.duration
		s.playing = false
	}
}
