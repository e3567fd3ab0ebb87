package navtree

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
)

// Config controls how a flat outline is projected into navigation.
type Config struct {
	PrimaryLevel   int    // Heading level of top-level entries.
	SecondaryLevel int    // Heading level of nested entries.
	Marker         string // Case-insensitive substring selecting the parent of nested entries.
	GroupTitle     string // Optional display label for a marker-bearing entry.
}

// DefaultConfig mirrors the layout of a step-by-step walkthrough whose
// dashboards step owns the panel headings.
func DefaultConfig() Config {
	return Config{
		PrimaryLevel:   2,
		SecondaryLevel: 4,
		Marker:         "Step 7",
		GroupTitle:     "Dashboard Panels",
	}
}

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Build projects the outline into top-level nodes. Every top node whose
// title contains the marker receives the full ordered list of secondary
// headings; secondary headings are dropped when nothing matches.
func Build(headings []doctree.Heading, cfg Config) []*doctree.NavNode {
	if cfg.PrimaryLevel == 0 {
		cfg.PrimaryLevel = 2
	}
	if cfg.SecondaryLevel == 0 {
		cfg.SecondaryLevel = 4
	}
	marker := strings.ToLower(cfg.Marker)

	var tops []doctree.Heading
	var subs []doctree.Heading
	for _, h := range headings {
		switch h.Level {
		case cfg.PrimaryLevel:
			tops = append(tops, h)
		case cfg.SecondaryLevel:
			subs = append(subs, h)
		}
	}

	nodes := make([]*doctree.NavNode, 0, len(tops))
	for _, h := range tops {
		n := &doctree.NavNode{
			ID:    h.ID,
			Title: h.Title,
			Label: h.Title,
			Href:  "#" + h.ID,
		}
		if marker != "" && strings.Contains(strings.ToLower(h.Title), marker) {
			n.Group = true
			if cfg.GroupTitle != "" {
				n.Label = cfg.GroupTitle
			}
			n.Children = make([]*doctree.NavNode, 0, len(subs))
			for _, s := range subs {
				n.Children = append(n.Children, &doctree.NavNode{
					ID:    s.ID,
					Title: s.Title,
					Label: ordinalPrefix.ReplaceAllString(s.Title, ""),
					Href:  "#" + s.ID,
				})
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// WithActive returns a copy of nodes with Active set on every node whose
// id equals activeID. An empty activeID marks nothing.
func WithActive(nodes []*doctree.NavNode, activeID string) []*doctree.NavNode {
	out := make([]*doctree.NavNode, len(nodes))
	for i, n := range nodes {
		cp := *n
		cp.Active = activeID != "" && n.ID == activeID
		if n.Children != nil {
			cp.Children = WithActive(n.Children, activeID)
		}
		out[i] = &cp
	}
	return out
}
