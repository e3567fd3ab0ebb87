package page

import (
	"strings"
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := ContentHashHex([]byte("hello world")); got != want {
		t.Errorf("expected hash %q, got %q", want, got)
	}
}

func TestVersionID_Format(t *testing.T) {
	id := newVersionID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		if !strings.ContainsRune(crockford, r) {
			t.Errorf("unexpected character %q in %q", r, id)
		}
	}
}

func TestVersionID_SortsByCreation(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	a := versionAt(at)
	b := versionAt(at)
	c := versionAt(at.Add(time.Millisecond))
	if !(a < b && b < c) {
		t.Errorf("expected ascending ids, got %q %q %q", a, b, c)
	}
}

func TestEncodeCrockford_Zero(t *testing.T) {
	if got := encodeCrockford([16]byte{}); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %q", got)
	}
}

func TestEncodeCrockford_Max(t *testing.T) {
	var b [16]byte
	for i := range b {
		b[i] = 0xff
	}
	if got := encodeCrockford(b); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("expected 7ZZZ..., got %q", got)
	}
}
