package outline

import (
	"regexp"
	"strings"
	"sync"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/slug"
)

var leadingMarker = regexp.MustCompile(`^#+\s*`)

// Collector accumulates headings reported by a renderer into an ordered,
// de-duplicated outline. One Collector belongs to one document load.
type Collector struct {
	mu       sync.Mutex
	headings []doctree.Heading
	index    map[string]int
}

func NewCollector() *Collector {
	return &Collector{index: make(map[string]int)}
}

// Observe records a heading and returns its id. A heading whose id is
// already present leaves the outline untouched and returns the same id,
// so re-renders of a section do not grow or reorder the outline.
func (c *Collector) Observe(level int, rawTitle string) string {
	title := CleanTitle(rawTitle)
	id := slug.Make(title)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index[id]; ok {
		return id
	}
	c.index[id] = len(c.headings)
	c.headings = append(c.headings, doctree.Heading{
		ID:    id,
		Level: level,
		Title: title,
		Order: len(c.headings),
	})
	return id
}

// Headings returns a copy of the outline in insertion order.
func (c *Collector) Headings() []doctree.Heading {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]doctree.Heading, len(c.headings))
	copy(out, c.headings)
	return out
}

// Lookup returns the heading with the given id.
func (c *Collector) Lookup(id string) (doctree.Heading, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return doctree.Heading{}, false
	}
	return c.headings[i], true
}

// Len returns the number of headings collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.headings)
}

// Reset clears the outline. Call it before re-rendering a replaced document.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headings = nil
	c.index = make(map[string]int)
}

// CleanTitle strips a leading run of '#' markers and surrounding whitespace.
func CleanTitle(raw string) string {
	return strings.TrimSpace(leadingMarker.ReplaceAllString(strings.TrimSpace(raw), ""))
}
