package scroll

import (
	"sync"
	"time"

	"github.com/dgallion1/docnav/internal/doctree"
)

// Input is one raw scroll measurement from a viewer.
type Input struct {
	ScrollY float64 `json:"scroll_y"`
	Anchors Anchors `json:"anchors"`
}

// Session couples a Tracker with a Debouncer for one mounted viewer.
// Raw inputs are coalesced; only the latest input of a burst is evaluated.
type Session struct {
	mu        sync.Mutex
	tracker   *Tracker
	debouncer *Debouncer
	outline   func() []doctree.Heading
	notify    func(activeID string)
	pending   Input
	closed    bool
}

// NewSession creates a session. outline supplies the current, fully
// rendered outline; notify receives the active id after each quiet period.
func NewSession(lookahead float64, debounce time.Duration, outline func() []doctree.Heading, notify func(activeID string)) *Session {
	s := &Session{
		tracker: NewTracker(lookahead),
		outline: outline,
		notify:  notify,
	}
	s.debouncer = NewDebouncer(debounce, s.fire)
	return s
}

// OnScroll records a raw measurement and schedules evaluation.
func (s *Session) OnScroll(in Input) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = in
	s.mu.Unlock()
	s.debouncer.Schedule()
}

func (s *Session) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	in := s.pending
	s.mu.Unlock()

	active := s.tracker.OnScroll(in.ScrollY, s.outline(), in.Anchors)
	if s.notify != nil {
		s.notify(active)
	}
}

// Active returns the last evaluated active id.
func (s *Session) Active() string {
	return s.tracker.Active()
}

// Close tears the session down; pending evaluations are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.debouncer.Cancel()
}
