package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make converts heading text to an anchor-safe identifier: lower-cased,
// every run of characters outside [a-z0-9] collapsed to a single "-",
// with leading and trailing "-" removed. Input without alphanumerics
// yields the empty string.
func Make(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
