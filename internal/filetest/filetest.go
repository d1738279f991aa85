// Package filetest provides the diff-based assertion helper used by the
// conformance suite. Tin's end-to-end scenarios are a short, fixed list
// drawn straight from spec.md rather than a growing corpus of script
// fixtures on disk, so this is a trimmed-down version of the teacher's
// golden-file helper: same diff engine and error formatting, no directory
// scanning or file I/O.
package filetest

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
)

// AssertEqual reports a mismatch between want and got as a unified diff
// rather than testify's side-by-side dump, which is easier to read once
// the compared strings run more than a line or two (array literals,
// tokenize traces).
func AssertEqual(t *testing.T, label, want, got string) {
	t.Helper()
	if testing.Verbose() {
		t.Logf("got %s:\n%s\n", label, got)
	}
	if patch := diff.Diff(want, got); patch != "" {
		if testing.Verbose() {
			t.Logf("want %s:\n%s\n", label, want)
		}
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
