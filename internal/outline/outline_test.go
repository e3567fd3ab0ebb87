package outline

import (
	"sync"
	"testing"
)

func TestCollector_PreservesObservationOrder(t *testing.T) {
	c := NewCollector()
	c.Observe(2, "Intro")
	c.Observe(4, "Panel A")
	c.Observe(2, "Step 7: Dashboards")
	c.Observe(4, "Panel B")

	hs := c.Headings()
	wantIDs := []string{"intro", "panel-a", "step-7-dashboards", "panel-b"}
	if len(hs) != len(wantIDs) {
		t.Fatalf("expected %d headings, got %d", len(wantIDs), len(hs))
	}
	for i, want := range wantIDs {
		if hs[i].ID != want {
			t.Errorf("heading %d: expected id %q, got %q", i, want, hs[i].ID)
		}
		if hs[i].Order != i {
			t.Errorf("heading %d: expected order %d, got %d", i, i, hs[i].Order)
		}
	}
}

func TestCollector_NotLexicallySorted(t *testing.T) {
	c := NewCollector()
	c.Observe(2, "Zebra")
	c.Observe(2, "Apple")

	hs := c.Headings()
	if hs[0].ID != "zebra" || hs[1].ID != "apple" {
		t.Errorf("expected [zebra apple], got [%s %s]", hs[0].ID, hs[1].ID)
	}
}

func TestCollector_DuplicateIsNoop(t *testing.T) {
	c := NewCollector()
	id1 := c.Observe(2, "Intro")
	id2 := c.Observe(2, "Intro")
	if id1 != id2 {
		t.Errorf("expected same id, got %q and %q", id1, id2)
	}
	if c.Len() != 1 {
		t.Errorf("expected outline length 1, got %d", c.Len())
	}
}

func TestCollector_FirstWriterWins(t *testing.T) {
	c := NewCollector()
	c.Observe(2, "Set-up")
	id := c.Observe(4, "Set up")
	if id != "set-up" {
		t.Errorf("expected id %q, got %q", "set-up", id)
	}
	h, ok := c.Lookup("set-up")
	if !ok {
		t.Fatal("expected heading to be present")
	}
	if h.Level != 2 || h.Title != "Set-up" {
		t.Errorf("expected first writer (2, %q), got (%d, %q)", "Set-up", h.Level, h.Title)
	}
}

func TestCollector_StripsMarkers(t *testing.T) {
	c := NewCollector()
	id := c.Observe(3, "###   Deep Heading  ")
	if id != "deep-heading" {
		t.Errorf("expected id %q, got %q", "deep-heading", id)
	}
	if got := c.Headings()[0].Title; got != "Deep Heading" {
		t.Errorf("expected title %q, got %q", "Deep Heading", got)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Observe(2, "Old")
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("expected empty outline after reset, got %d", c.Len())
	}
	c.Observe(2, "New")
	hs := c.Headings()
	if len(hs) != 1 || hs[0].ID != "new" || hs[0].Order != 0 {
		t.Errorf("expected single fresh heading with order 0, got %+v", hs)
	}
}

func TestCollector_HeadingsIsCopy(t *testing.T) {
	c := NewCollector()
	c.Observe(2, "Intro")
	hs := c.Headings()
	hs[0].Title = "mutated"
	if got := c.Headings()[0].Title; got != "Intro" {
		t.Errorf("expected outline to be unaffected, got %q", got)
	}
}

func TestCollector_ConcurrentRetries(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Observe(2, "Same Heading")
		}()
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("expected 1 heading, got %d", c.Len())
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"## Title", "Title"},
		{"Title", "Title"},
		{"  # spaced  ", "spaced"},
		{"C# Basics", "C# Basics"},
		{"####", ""},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
