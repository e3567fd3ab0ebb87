package scroll

import (
	"sync"

	"github.com/dgallion1/docnav/internal/doctree"
)

// DefaultLookahead is added to the scroll offset so a heading counts as
// passed slightly before it reaches the top edge under a fixed header.
const DefaultLookahead = 150

// AnchorLocator resolves the top offset of a heading's rendered anchor.
type AnchorLocator interface {
	AnchorTop(id string) (top float64, ok bool)
}

// Anchors maps heading ids to measured document offsets.
type Anchors map[string]float64

func (a Anchors) AnchorTop(id string) (float64, bool) {
	top, ok := a[id]
	return top, ok
}

// ActiveHeading returns the id of the last heading, in outline order,
// whose anchor top is at or above scrollY+lookahead. Headings without a
// resolvable anchor are skipped. It returns "" when none qualifies.
func ActiveHeading(scrollY, lookahead float64, headings []doctree.Heading, anchors AnchorLocator) string {
	threshold := scrollY + lookahead
	for i := len(headings) - 1; i >= 0; i-- {
		top, ok := anchors.AnchorTop(headings[i].ID)
		if ok && top <= threshold {
			return headings[i].ID
		}
	}
	return ""
}

// Tracker holds the active heading id for one viewer. The id is replaced
// wholesale on every OnScroll call and changes nowhere else.
type Tracker struct {
	mu        sync.Mutex
	lookahead float64
	active    string
}

func NewTracker(lookahead float64) *Tracker {
	return &Tracker{lookahead: lookahead}
}

// OnScroll recomputes the active heading and returns it.
func (t *Tracker) OnScroll(scrollY float64, headings []doctree.Heading, anchors AnchorLocator) string {
	active := ActiveHeading(scrollY, t.lookahead, headings, anchors)
	t.mu.Lock()
	t.active = active
	t.mu.Unlock()
	return active
}

// Active returns the current active id, or "" when none is active.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
