package section

import (
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
)

// DefaultSeparator delimits sections in the raw document.
const DefaultSeparator = "---"

// Split breaks a document on sep and returns the trimmed, non-empty
// segments in document order. An empty sep falls back to DefaultSeparator.
// Separators inside fenced code blocks are not special-cased.
func Split(document, sep string) []string {
	if sep == "" {
		sep = DefaultSeparator
	}
	var out []string
	for _, part := range strings.Split(document, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Sections is Split with ordinals assigned after empty segments are
// dropped, so indices stay contiguous.
func Sections(document, sep string) []doctree.Section {
	parts := Split(document, sep)
	sections := make([]doctree.Section, len(parts))
	for i, p := range parts {
		sections[i] = doctree.Section{Index: i, Text: p}
	}
	return sections
}
