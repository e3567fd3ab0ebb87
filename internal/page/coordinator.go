package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/fetch"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/outline"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/dgallion1/docnav/internal/section"
)

// ErrSuperseded is returned by Load when a newer load started, or the
// coordinator was closed, before this one finished. Its result is discarded.
var ErrSuperseded = errors.New("load superseded")

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("coordinator closed")

// Config controls splitting and navigation.
type Config struct {
	Separator string
	Nav       navtree.Config
}

// Coordinator owns the document lifecycle: fetch, split, render through
// a fresh heading collector, build navigation, publish.
type Coordinator struct {
	source   fetch.Source
	renderer render.Renderer
	cfg      Config
	log      *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	status Status
	errMsg string
	doc    *document

	wg sync.WaitGroup
}

func NewCoordinator(source fetch.Source, renderer render.Renderer, cfg Config, log *slog.Logger) *Coordinator {
	return &Coordinator{
		source:   source,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
		status:   StatusIdle,
	}
}

// Start kicks off the initial load in the background.
func (c *Coordinator) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
			c.log.Warn("initial load failed", "error", err)
		}
	}()
}

// Stop closes the coordinator and waits for the initial load to return.
func (c *Coordinator) Stop() {
	c.Close()
	c.wg.Wait()
}

// Load replaces the published document. The previous document and any
// in-flight load are discarded as soon as it starts. On failure the
// coordinator is left in StatusFailed with an empty outline.
func (c *Coordinator) Load(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.status = StatusLoading
	c.errMsg = ""
	c.doc = nil
	c.mu.Unlock()
	defer cancel()

	start := time.Now()
	doc, err := c.build(loadCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return Snapshot{}, ErrSuperseded
	}
	c.cancel = nil
	if err != nil {
		c.status = StatusFailed
		c.errMsg = fmt.Sprintf("failed to load document: %s", err)
		c.log.Error("load failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return c.doc.snapshot(c.status, c.errMsg), err
	}

	c.status = StatusReady
	c.doc = doc
	c.log.Info("document loaded",
		"version", doc.version,
		"sections", len(doc.sections),
		"headings", len(doc.headings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c.doc.snapshot(c.status, ""), nil
}

func (c *Coordinator) build(ctx context.Context) (*document, error) {
	text, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	sections := section.Sections(text, c.cfg.Separator)
	collector := outline.NewCollector()
	rendered := make([]doctree.RenderedSection, 0, len(sections))
	for _, s := range sections {
		html, err := c.renderer.Render(ctx, s.Text, collector)
		if err != nil {
			return nil, fmt.Errorf("render section %d: %w", s.Index, err)
		}
		rendered = append(rendered, doctree.RenderedSection{Index: s.Index, HTML: html})
	}

	// The outline is complete only once every section has rendered.
	headings := collector.Headings()
	return &document{
		version:  newVersionID(),
		hash:     ContentHashHex([]byte(text)),
		loadedAt: time.Now(),
		sections: rendered,
		headings: headings,
		nav:      navtree.Build(headings, c.cfg.Nav),
	}, nil
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.snapshot(c.status, c.errMsg)
}

// Outline returns the published outline, or nil while nothing is published.
func (c *Coordinator) Outline() []doctree.Heading {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	out := make([]doctree.Heading, len(c.doc.headings))
	copy(out, c.doc.headings)
	return out
}

// Nav returns the navigation tree with activeID marked.
func (c *Coordinator) Nav(activeID string) []*doctree.NavNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return []*doctree.NavNode{}
	}
	return navtree.WithActive(c.doc.nav, activeID)
}

// Close cancels any in-flight load; its result will not be applied.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
