package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ib-tools/flexarc/internal/date"
	"github.com/ib-tools/flexarc/internal/hunk"
	"github.com/ib-tools/flexarc/internal/patch"
)

// Restore reconstructs the exact snapshot text for day: the nearest base
// on or before day, with every delta in (base date, day] applied in
// ascending date order. Returns ErrNotFound when no base covers day.
// Restore never mutates the archive.
func (s *Store) Restore(day date.Date) (string, error) {
	return s.restoreFrom(s.entries, day)
}

// restoreFrom runs the restore chain against an explicit index view, so
// Archive can reconstruct the pre-existing snapshot while a same-date
// replacement is excluded.
func (s *Store) restoreFrom(entries []Entry, day date.Date) (string, error) {
	base, ok := findPriorBase(entries, day)
	if !ok {
		return "", fmt.Errorf("restore %s: %w", day, ErrNotFound)
	}

	text, err := s.readArtifact(base.Name)
	if err != nil {
		return "", err
	}
	lines := hunk.SplitLines(text)

	for _, e := range deltasBetween(entries, base.Date, day) {
		raw, err := s.readArtifact(e.Name)
		if err != nil {
			return "", err
		}
		p, err := hunk.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", e.Name, err)
		}
		lines, err = patch.Apply(lines, p)
		if err != nil {
			return "", fmt.Errorf("apply %s: %w", e.Name, err)
		}
	}

	return hunk.JoinLines(lines), nil
}

func (s *Store) readArtifact(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return string(data), nil
}
