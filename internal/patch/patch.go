// Package patch replays parsed patch documents against line sequences.
//
// Apply is pure: it never touches the filesystem and never mutates its
// input. All positional interpretation of hunk headers lives here; parsing
// lives in internal/hunk.
package patch

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ib-tools/flexarc/internal/hunk"
)

// ErrConflict indicates that a deletion's expected content did not match
// the line present at the cursor, or that an operation landed outside the
// sequence. Fatal: applying further operations would corrupt the result.
var ErrConflict = errors.New("patch conflict")

// Apply replays p against lines and returns the patched sequence.
//
// The cursor for each hunk is derived from the old-side header: oldStart-1
// for a modification (oldCount > 0), oldStart for a pure insertion
// (oldCount == 0). Because hunk headers address the original file, the
// cursor is shifted by the net line-count change of the hunks already
// applied; without that shift every multi-hunk patch whose first hunk grows
// or shrinks the file would misplace all later operations.
func Apply(lines []string, p hunk.Patch) ([]string, error) {
	out := slices.Clone(lines)
	offset := 0

	for _, h := range p.Hunks {
		idx := h.Header.OldStart - 1 + offset
		if h.Header.OldCount == 0 {
			// Insertion after an empty region: oldStart names the line
			// the new content follows, so the insert point is one past it.
			idx = h.Header.OldStart + offset
		}

		for _, op := range h.Ops {
			switch op.Kind {
			case hunk.OpContext:
				// Trailing context at end-of-file may be synthesized;
				// clamping is safe because context never mutates.
				if idx < len(out) {
					idx++
				}

			case hunk.OpDelete:
				if idx >= len(out) {
					return nil, fmt.Errorf("%w: delete at line %d beyond end of input (%d lines)",
						ErrConflict, idx+1, len(out))
				}
				if out[idx] != op.Text {
					return nil, fmt.Errorf("%w: line %d is %q, patch expected %q",
						ErrConflict, idx+1, trimmed(out[idx]), trimmed(op.Text))
				}
				out = slices.Delete(out, idx, idx+1)
				offset--
				// The next line now occupies idx; the cursor stays put.

			case hunk.OpAdd:
				if idx > len(out) {
					return nil, fmt.Errorf("%w: insert at line %d beyond end of input (%d lines)",
						ErrConflict, idx+1, len(out))
				}
				out = slices.Insert(out, idx, op.Text)
				offset++
				idx++
			}
		}
	}

	return out, nil
}

func trimmed(s string) string {
	return strings.TrimRight(s, "\n")
}
