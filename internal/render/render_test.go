package render

import (
	"context"
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/outline"
)

func TestMarkdownRenderer_AssignsHeadingIDs(t *testing.T) {
	r := NewMarkdown(Options{})
	c := outline.NewCollector()

	out, err := r.Render(context.Background(), "## Intro\n\nSome text.\n\n#### 1. Panel *A*\n", c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<h2 id="intro">Intro</h2>`) {
		t.Errorf("expected h2 anchor in output, got %q", out)
	}
	if !strings.Contains(out, `id="1-panel-a"`) {
		t.Errorf("expected h4 anchor in output, got %q", out)
	}

	hs := c.Headings()
	if len(hs) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(hs))
	}
	if hs[0].Level != 2 || hs[1].Level != 4 {
		t.Errorf("expected levels [2 4], got [%d %d]", hs[0].Level, hs[1].Level)
	}
	if hs[1].Title != "1. Panel A" {
		t.Errorf("expected title %q, got %q", "1. Panel A", hs[1].Title)
	}
}

func TestMarkdownRenderer_OrderAcrossSections(t *testing.T) {
	r := NewMarkdown(Options{})
	c := outline.NewCollector()
	sections := []string{
		"## Intro\n\n#### Panel A",
		"## Step 7: Dashboards\n\n#### Panel B",
	}
	for _, s := range sections {
		if _, err := r.Render(context.Background(), s, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	want := []string{"intro", "panel-a", "step-7-dashboards", "panel-b"}
	hs := c.Headings()
	if len(hs) != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), len(hs))
	}
	for i, id := range want {
		if hs[i].ID != id {
			t.Errorf("heading %d: expected %q, got %q", i, id, hs[i].ID)
		}
	}
}

func TestMarkdownRenderer_RerenderIsIdempotent(t *testing.T) {
	r := NewMarkdown(Options{})
	c := outline.NewCollector()
	for range 3 {
		if _, err := r.Render(context.Background(), "## Intro\n\n## Usage", c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 headings after re-renders, got %d", c.Len())
	}
}

func TestMarkdownRenderer_HighlightsFencedCode(t *testing.T) {
	r := NewMarkdown(Options{CodeStyle: "monokai"})
	out, err := r.Render(context.Background(), "```go\nfunc main() {}\n```\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `class="chroma"`) {
		t.Errorf("expected chroma class markup, got %q", out)
	}
}

func TestMarkdownRenderer_CodeSpanInHeading(t *testing.T) {
	r := NewMarkdown(Options{})
	c := outline.NewCollector()
	if _, err := r.Render(context.Background(), "## Using `kubectl` apply", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Headings()[0].ID; got != "using-kubectl-apply" {
		t.Errorf("expected id %q, got %q", "using-kubectl-apply", got)
	}
}

func TestMarkdownRenderer_HeadingTextMatchesRenderedText(t *testing.T) {
	tests := []struct {
		src       string
		wantTitle string
		wantID    string
	}{
		{"## Q&amp;A", "Q&A", "q-a"},
		{"## Caf&#233; menu", "Café menu", "caf-menu"},
		{"## Costs \\*estimate\\*", "Costs *estimate*", "costs-estimate"},
		{"## Escaped `a\\_b`", "Escaped a\\_b", "escaped-a-b"},
	}
	r := NewMarkdown(Options{})
	for _, tt := range tests {
		c := outline.NewCollector()
		out, err := r.Render(context.Background(), tt.src, c)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.src, err)
		}
		hs := c.Headings()
		if len(hs) != 1 {
			t.Fatalf("%q: expected 1 heading, got %d", tt.src, len(hs))
		}
		if hs[0].Title != tt.wantTitle {
			t.Errorf("%q: expected title %q, got %q", tt.src, tt.wantTitle, hs[0].Title)
		}
		if hs[0].ID != tt.wantID {
			t.Errorf("%q: expected id %q, got %q", tt.src, tt.wantID, hs[0].ID)
		}
		if !strings.Contains(out, `id="`+tt.wantID+`"`) {
			t.Errorf("%q: expected anchor %q in output, got %q", tt.src, tt.wantID, out)
		}
	}
}

func TestMarkdownRenderer_AutolinkHeadingsKeepText(t *testing.T) {
	r := NewMarkdown(Options{})
	c := outline.NewCollector()
	if _, err := r.Render(context.Background(), "## See www.example.com\n\n## See <https://example.com>\n", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hs := c.Headings()
	if len(hs) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(hs))
	}
	if hs[0].ID != "see-www-example-com" {
		t.Errorf("expected id %q, got %q", "see-www-example-com", hs[0].ID)
	}
	if hs[1].ID != "see-https-example-com" {
		t.Errorf("expected id %q, got %q", "see-https-example-com", hs[1].ID)
	}
}

func TestMarkdownRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := outline.NewCollector()
	if _, err := NewMarkdown(Options{}).Render(ctx, "## Intro", c); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if c.Len() != 0 {
		t.Errorf("expected no headings observed, got %d", c.Len())
	}
}

func TestHTMLRenderer_AssignsHeadingIDs(t *testing.T) {
	r := &HTMLRenderer{}
	c := outline.NewCollector()
	out, err := r.Render(context.Background(), `<h2 id="old">## Intro</h2><p>text</p><div><h4>Panel <em>A</em></h4></div>`, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<h2 id="intro">`) {
		t.Errorf("expected replaced id on h2, got %q", out)
	}
	if !strings.Contains(out, `<h4 id="panel-a">`) {
		t.Errorf("expected id on nested h4, got %q", out)
	}
	hs := c.Headings()
	if len(hs) != 2 || hs[0].Title != "Intro" || hs[1].Level != 4 {
		t.Errorf("unexpected outline %+v", hs)
	}
}

func TestNew(t *testing.T) {
	for _, kind := range []string{"markdown", "md", "html", "HTML", ""} {
		if _, err := New(kind, Options{}); err != nil {
			t.Errorf("kind %q: unexpected error: %v", kind, err)
		}
	}
	if _, err := New("rst", Options{}); err == nil {
		t.Error("expected error for unsupported renderer")
	}
}

func TestHighlightCSS(t *testing.T) {
	css, err := HighlightCSS("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("expected .chroma rules, got %q", css)
	}
}
