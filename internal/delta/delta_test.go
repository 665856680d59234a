package delta

import (
	"strings"
	"testing"

	"github.com/ib-tools/flexarc/internal/hunk"
	"github.com/ib-tools/flexarc/internal/patch"
)

// roundTrip encodes old -> new, applies the result back to old, and fails
// the test if the reconstruction is not byte-identical to new.
func roundTrip(t *testing.T, oldText, newText string) string {
	t.Helper()

	text, err := EncodeText(oldText, newText, "from.xml", "to.patch")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}

	p, err := hunk.Parse(text)
	if err != nil {
		t.Fatalf("parse encoded delta: %v\ndelta:\n%s", err, text)
	}
	out, err := patch.Apply(hunk.SplitLines(oldText), p)
	if err != nil {
		t.Fatalf("apply encoded delta: %v\ndelta:\n%s", err, text)
	}
	if got := hunk.JoinLines(out); got != newText {
		t.Errorf("round trip = %q, want %q\ndelta:\n%s", got, newText, text)
	}
	return text
}

func TestEncodeIdenticalInputsIsEmpty(t *testing.T) {
	text, err := EncodeText("a\nb\n", "a\nb\n", "x", "y")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}
	if text != "" {
		t.Errorf("EncodeText(X, X) = %q, want empty document", text)
	}
}

func TestEncodeHasNoContextLines(t *testing.T) {
	oldText := "one\ntwo\nthree\nfour\nfive\n"
	newText := "one\ntwo\nTWO-AND-A-HALF\nthree\nfour\nFIVE\n"
	text := roundTrip(t, oldText, newText)

	p, err := hunk.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, h := range p.Hunks {
		for _, op := range h.Ops {
			if op.Kind == hunk.OpContext {
				t.Errorf("delta contains context line %q\ndelta:\n%s", op.Text, text)
			}
		}
	}
}

func TestEncodeHeadersNameArtifacts(t *testing.T) {
	text, err := EncodeText("a\n", "b\n", "base_20260129.xml", "delta_20260130.patch")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}
	if !strings.HasPrefix(text, "--- base_20260129.xml\n+++ delta_20260130.patch\n") {
		t.Errorf("delta headers wrong:\n%s", text)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	oldText := "alpha\nbeta\ngamma\n"
	newText := "alpha\nBETA\ngamma\ndelta\n"
	a, err := EncodeText(oldText, newText, "f", "t")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}
	b, err := EncodeText(oldText, newText, "f", "t")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}
	if a != b {
		t.Errorf("encoding is not deterministic:\n%q\nvs\n%q", a, b)
	}
}

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
	}{
		{name: "append line", old: "<r>\n<a/>\n</r>\n", new: "<r>\n<a/>\n<b/>\n</r>\n"},
		{name: "delete line", old: "<r>\n<a/>\n<b/>\n</r>\n", new: "<r>\n<b/>\n</r>\n"},
		{name: "replace line", old: "<r>\n<a v=\"1\"/>\n</r>\n", new: "<r>\n<a v=\"2\"/>\n</r>\n"},
		{name: "change at top", old: "a\nb\nc\n", new: "A\nb\nc\n"},
		{name: "change at bottom", old: "a\nb\nc\n", new: "a\nb\nC\n"},
		{name: "disjoint multi hunk", old: "a\nb\nc\nd\ne\nf\n", new: "A\nb\nc\nd\ne\nF\n"},
		{name: "growth then late change", old: "a\nb\nc\nd\n", new: "X\nZ\nb\nc\nY\n"},
		{name: "from empty", old: "", new: "a\nb\n"},
		{name: "to empty", old: "a\nb\n", new: ""},
		{name: "appended line without trailing newline", old: "a\n", new: "a\nb"},
		{name: "everything replaced", old: "x\ny\n", new: "p\nq\nr\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, tt.old, tt.new)
		})
	}
}
