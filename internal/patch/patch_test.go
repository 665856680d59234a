package patch

import (
	"errors"
	"testing"

	"github.com/ib-tools/flexarc/internal/hunk"
)

func mustParse(t *testing.T, text string) hunk.Patch {
	t.Helper()
	p, err := hunk.Parse(text)
	if err != nil {
		t.Fatalf("parse patch: %v", err)
	}
	return p
}

func apply(t *testing.T, text string, patchText string) string {
	t.Helper()
	out, err := Apply(hunk.SplitLines(text), mustParse(t, patchText))
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	return hunk.JoinLines(out)
}

func TestApplyReplace(t *testing.T) {
	got := apply(t, "a\nb\nc\n", "@@ -2 +2 @@\n-b\n+B\n")
	if got != "a\nB\nc\n" {
		t.Errorf("Apply() = %q, want %q", got, "a\nB\nc\n")
	}
}

func TestApplyPureInsertion(t *testing.T) {
	// oldCount == 0: the insert point is after line oldStart.
	got := apply(t, "a\nb\n", "@@ -1,0 +2 @@\n+X\n")
	if got != "a\nX\nb\n" {
		t.Errorf("Apply() = %q, want %q", got, "a\nX\nb\n")
	}
}

func TestApplyInsertionAtTop(t *testing.T) {
	got := apply(t, "a\n", "@@ -0,0 +1 @@\n+X\n")
	if got != "X\na\n" {
		t.Errorf("Apply() = %q, want %q", got, "X\na\n")
	}
}

func TestApplyAppendAtEnd(t *testing.T) {
	got := apply(t, "a\nb\n", "@@ -2,0 +3 @@\n+c\n")
	if got != "a\nb\nc\n" {
		t.Errorf("Apply() = %q, want %q", got, "a\nb\nc\n")
	}
}

func TestApplyPureDeletion(t *testing.T) {
	got := apply(t, "a\nb\nc\n", "@@ -2 +1,0 @@\n-b\n")
	if got != "a\nc\n" {
		t.Errorf("Apply() = %q, want %q", got, "a\nc\n")
	}
}

func TestApplyMultiHunkWithGrowth(t *testing.T) {
	// The first hunk grows the file by one line; the second hunk's old-side
	// position must be shifted accordingly or it would land on the wrong line.
	text := "a\nb\nc\nd\n"
	patchText := "@@ -1 +1,2 @@\n-a\n+X\n+Z\n@@ -4 +5 @@\n-d\n+Y\n"
	got := apply(t, text, patchText)
	if got != "X\nZ\nb\nc\nY\n" {
		t.Errorf("Apply() = %q, want %q", got, "X\nZ\nb\nc\nY\n")
	}
}

func TestApplyMultiHunkWithShrink(t *testing.T) {
	text := "a\nb\nc\nd\ne\n"
	patchText := "@@ -1,2 +1 @@\n-a\n-b\n+A\n@@ -5 +4 @@\n-e\n+E\n"
	got := apply(t, text, patchText)
	if got != "A\nc\nd\nE\n" {
		t.Errorf("Apply() = %q, want %q", got, "A\nc\nd\nE\n")
	}
}

func TestApplyEmptyPatch(t *testing.T) {
	got := apply(t, "a\nb\n", "")
	if got != "a\nb\n" {
		t.Errorf("Apply(empty) = %q, want input unchanged", got)
	}
}

func TestApplyToEmptyInput(t *testing.T) {
	got := apply(t, "", "@@ -0,0 +1,2 @@\n+a\n+b\n")
	if got != "a\nb\n" {
		t.Errorf("Apply() = %q, want %q", got, "a\nb\n")
	}
}

func TestApplyContextAdvancesWithoutMutation(t *testing.T) {
	got := apply(t, "a\nb\nc\n", "@@ -1,3 +1,3 @@\na\n-b\n+B\nc\n")
	if got != "a\nB\nc\n" {
		t.Errorf("Apply() = %q, want %q", got, "a\nB\nc\n")
	}
}

func TestApplyTrailingContextClamped(t *testing.T) {
	// Context beyond end-of-file is non-fatal: the cursor clamps.
	got := apply(t, "a\n", "@@ -1 +1 @@\n-a\n+A\nphantom\nphantom\n")
	if got != "A\n" {
		t.Errorf("Apply() = %q, want %q", got, "A\n")
	}
}

func TestApplyDeleteMismatchConflicts(t *testing.T) {
	_, err := Apply(hunk.SplitLines("a\nb\n"), mustParse(t, "@@ -2 +2 @@\n-zzz\n+B\n"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Apply() error = %v, want ErrConflict", err)
	}
}

func TestApplyDeleteBeyondEndConflicts(t *testing.T) {
	_, err := Apply(hunk.SplitLines("a\n"), mustParse(t, "@@ -5 +5 @@\n-a\n"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Apply() error = %v, want ErrConflict", err)
	}
}

func TestApplyInsertBeyondEndConflicts(t *testing.T) {
	_, err := Apply(hunk.SplitLines("a\n"), mustParse(t, "@@ -7,0 +8 @@\n+x\n"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Apply() error = %v, want ErrConflict", err)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := hunk.SplitLines("a\nb\n")
	_, err := Apply(in, mustParse(t, "@@ -1 +1 @@\n-a\n+A\n"))
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if in[0] != "a\n" || in[1] != "b\n" {
		t.Errorf("input mutated: %q", in)
	}
}
