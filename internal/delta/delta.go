// Package delta encodes minimal line diffs between report snapshots.
//
// Deltas are zero-context unified diffs: archived reports are
// machine-generated XML where almost every line carries unique IDs or
// timestamps, so context lines add bulk without helping compression.
package delta

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ib-tools/flexarc/internal/hunk"
)

// Encode produces a zero-context unified diff transforming oldLines into
// newLines. Lines must keep their trailing newlines (hunk.SplitLines).
// fromName and toName label the ---/+++ header lines; they are metadata
// only and never consulted when the patch is applied.
//
// Identical inputs produce an empty document (no headers, no hunks), and
// identical inputs always produce byte-identical output.
//
// The format has no "\ No newline at end of file" marker: a final line
// without a trailing newline is representable only as the last physical
// line of the patch. Callers diffing FROM a snapshot that does not end in
// a newline must store a full copy instead (the archive store does this).
func Encode(oldLines, newLines []string, fromName, toName string) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        oldLines,
		B:        newLines,
		FromFile: fromName,
		ToFile:   toName,
		Context:  0,
	})
	if err != nil {
		return "", fmt.Errorf("encode delta: %w", err)
	}
	return text, nil
}

// EncodeText is Encode over whole snapshot texts.
func EncodeText(oldText, newText, fromName, toName string) (string, error) {
	return Encode(hunk.SplitLines(oldText), hunk.SplitLines(newText), fromName, toName)
}
