package page

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/dgallion1/docnav/internal/doctree"
)

// Status is the load state of the coordinator. Exactly one holds at a time.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// document is one fully rendered version of the source.
type document struct {
	version  string
	hash     string
	loadedAt time.Time
	sections []doctree.RenderedSection
	headings []doctree.Heading
	nav      []*doctree.NavNode
}

// Snapshot is a read-only, JSON-safe copy of the coordinator state.
type Snapshot struct {
	Status      Status                    `json:"status"`
	Error       string                    `json:"error,omitempty"`
	Version     string                    `json:"version,omitempty"`
	ContentHash string                    `json:"content_hash,omitempty"`
	LoadedAt    *time.Time                `json:"loaded_at,omitempty"`
	Sections    []doctree.RenderedSection `json:"sections"`
	Headings    []doctree.Heading         `json:"headings"`
	Nav         []*doctree.NavNode        `json:"nav"`
}

func (d *document) snapshot(status Status, errMsg string) Snapshot {
	snap := Snapshot{
		Status:   status,
		Error:    errMsg,
		Sections: []doctree.RenderedSection{},
		Headings: []doctree.Heading{},
		Nav:      []*doctree.NavNode{},
	}
	if d == nil {
		return snap
	}
	loadedAt := d.loadedAt
	snap.Version = d.version
	snap.ContentHash = d.hash
	snap.LoadedAt = &loadedAt
	snap.Sections = append(snap.Sections, d.sections...)
	snap.Headings = append(snap.Headings, d.headings...)
	snap.Nav = append(snap.Nav, d.nav...)
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
