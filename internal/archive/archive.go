package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ib-tools/flexarc/internal/date"
	"github.com/ib-tools/flexarc/internal/delta"
	"github.com/ib-tools/flexarc/internal/retention"
)

// Archive stores text as the snapshot for day and returns the entry that
// was written. Re-archiving a date replaces its artifact: the old one is
// deleted before the new one is written, so the operation is idempotent.
//
// The new snapshot is diffed against the chronologically latest existing
// snapshot regardless of date, not the nearest prior one: when archives
// arrive out of order this keeps deltas small, at the cost of a delta
// occasionally describing a backwards step in time. The retention policy
// then decides whether the delta is kept or the snapshot is promoted to a
// full base; a promotion prunes all strictly older bases, since
// overlapping bases waste space and make the nearest-prior-base lookup
// ambiguous. Deltas are never pruned.
func (s *Store) Archive(text string, day date.Date) (Entry, error) {
	// Evaluate against the index minus any artifact being replaced, so a
	// same-date re-archive diffs against the snapshot that preceded it.
	rest := entriesExcluding(s.entries, day)
	if len(rest) == 0 {
		if err := s.removeDate(day); err != nil {
			return Entry{}, err
		}
		return s.writeBase(text, day, false)
	}

	prevDate := rest[len(rest)-1].Date
	prevText, err := s.restoreFrom(rest, prevDate)
	if err != nil {
		return Entry{}, fmt.Errorf("reconstruct latest snapshot (%s): %w", prevDate, err)
	}
	chainBase, _ := findPriorBase(rest, prevDate)

	if err := s.removeDate(day); err != nil {
		return Entry{}, err
	}

	// The patch format cannot represent changes after a final line that
	// lacks a newline; diffing from such a snapshot would emit a patch
	// that fails to parse. Store a full copy instead.
	if prevText != "" && !strings.HasSuffix(prevText, "\n") {
		return s.writeBase(text, day, true)
	}

	patchText, err := delta.EncodeText(prevText, text, chainBase.Name, deltaName(day))
	if err != nil {
		return Entry{}, err
	}

	if retention.ShouldPromote(len(prevText), len(patchText)) {
		return s.writeBase(text, day, true)
	}
	return s.writeDelta(patchText, day)
}

// writeBase stores text as a full base for day. When prune is set, all
// bases dated strictly before day are removed afterwards.
func (s *Store) writeBase(text string, day date.Date, prune bool) (Entry, error) {
	name := baseName(day)
	if err := s.writeArtifact(name, text); err != nil {
		return Entry{}, err
	}
	e := Entry{Date: day, Kind: KindBase, Name: name, Size: int64(len(text))}
	s.insertEntry(e)

	if prune {
		if err := s.pruneBasesBefore(day); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

func (s *Store) writeDelta(patchText string, day date.Date) (Entry, error) {
	name := deltaName(day)
	if err := s.writeArtifact(name, patchText); err != nil {
		return Entry{}, err
	}
	e := Entry{Date: day, Kind: KindDelta, Name: name, Size: int64(len(patchText))}
	s.insertEntry(e)
	return e, nil
}

// pruneBasesBefore removes base artifacts dated strictly before day.
func (s *Store) pruneBasesBefore(day date.Date) error {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Kind == KindBase && e.Date.Before(day) {
			if err := os.Remove(filepath.Join(s.dir, e.Name)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("prune %s: %w", e.Name, err)
			}
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return nil
}
