// Package archive owns the on-disk layout of delta-compressed report
// snapshots and reconstructs the exact original text for any archived date.
//
// One directory holds one logical report series. Each calendar date has at
// most one artifact: either a full copy ("base_<YYYYMMDD>.xml") or a
// zero-context unified diff against the previous snapshot
// ("delta_<YYYYMMDD>.patch"). Artifacts are never mutated in place, only
// replaced or pruned.
//
// The Store assumes a single writer per directory. Concurrent Restore
// calls are safe with each other, but not with an in-flight Archive, which
// may delete or rename files mid-read. That coordination is the caller's
// obligation; the Store itself does no locking.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ib-tools/flexarc/internal/date"
)

var (
	// ErrUnavailable indicates the archive directory could not be listed
	// or an artifact could not be read. Callers must not treat this as an
	// empty archive.
	ErrUnavailable = errors.New("archive unavailable")

	// ErrNotFound indicates no base covers the requested date. A normal
	// negative result, not a failure.
	ErrNotFound = errors.New("report not found")
)

// Kind discriminates the two artifact types.
type Kind int

const (
	// KindBase is a stored full-text snapshot.
	KindBase Kind = iota
	// KindDelta is a stored patch against the previous snapshot.
	KindDelta
)

func (k Kind) String() string {
	if k == KindBase {
		return "base"
	}
	return "delta"
}

// Entry describes one artifact in the archive index.
type Entry struct {
	Date date.Date
	Kind Kind
	Name string // file name within the archive directory
	Size int64  // on-disk size in bytes
}

// Store is the in-memory index over one archive directory, built once at
// Open and maintained incrementally by Archive. Entries are ordered by
// date, at most one per date.
type Store struct {
	dir     string
	entries []Entry
}

// Open scans dir and builds the artifact index. Files that do not match
// the artifact naming scheme are ignored. An unreadable directory fails
// with ErrUnavailable.
func Open(dir string) (*Store, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s := &Store{dir: dir}
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		e, ok := parseName(de.Name())
		if !ok {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		e.Size = info.Size()
		s.entries = append(s.entries, e)
	}
	slices.SortFunc(s.entries, func(a, b Entry) int { return a.Date.Compare(b.Date) })
	return s, nil
}

// Dir returns the archive directory.
func (s *Store) Dir() string { return s.dir }

// Entries returns the date-ordered artifact index.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Latest returns the chronologically last artifact, if any.
func (s *Store) Latest() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// FindPriorBase returns the base artifact with the greatest date on or
// before day, if one exists.
func (s *Store) FindPriorBase(day date.Date) (Entry, bool) {
	return findPriorBase(s.entries, day)
}

// DeltasBetween returns all delta artifacts with after < date <= through,
// in ascending date order. The lower bound is strictly exclusive: an
// artifact at the base's own date would mean two snapshots for one day,
// which Archive prevents by deleting before writing.
func (s *Store) DeltasBetween(after, through date.Date) []Entry {
	return slices.Clone(deltasBetween(s.entries, after, through))
}

func findPriorBase(entries []Entry, day date.Date) (Entry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Kind == KindBase && !e.Date.After(day) {
			return e, true
		}
	}
	return Entry{}, false
}

func deltasBetween(entries []Entry, after, through date.Date) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == KindDelta && e.Date.After(after) && !e.Date.After(through) {
			out = append(out, e)
		}
	}
	return out
}

func entriesExcluding(entries []Entry, day date.Date) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Date != day {
			out = append(out, e)
		}
	}
	return out
}

func baseName(day date.Date) string { return "base_" + day.Key() + ".xml" }

func deltaName(day date.Date) string { return "delta_" + day.Key() + ".patch" }

func parseName(name string) (Entry, bool) {
	var kind Kind
	var key string
	switch {
	case strings.HasPrefix(name, "base_") && strings.HasSuffix(name, ".xml"):
		kind, key = KindBase, strings.TrimSuffix(strings.TrimPrefix(name, "base_"), ".xml")
	case strings.HasPrefix(name, "delta_") && strings.HasSuffix(name, ".patch"):
		kind, key = KindDelta, strings.TrimSuffix(strings.TrimPrefix(name, "delta_"), ".patch")
	default:
		return Entry{}, false
	}
	d, err := date.ParseKey(key)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Date: d, Kind: kind, Name: name}, true
}

// writeArtifact writes text to a temporary file in the archive directory
// and renames it into place, so a crash mid-write never leaves a
// half-written artifact.
func (s *Store) writeArtifact(name, text string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// removeDate deletes any artifact stored for day, from disk and index.
func (s *Store) removeDate(day date.Date) error {
	for _, e := range s.entries {
		if e.Date == day {
			if err := os.Remove(filepath.Join(s.dir, e.Name)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", e.Name, err)
			}
		}
	}
	s.entries = entriesExcluding(s.entries, day)
	return nil
}

// insertEntry adds e to the index, keeping date order.
func (s *Store) insertEntry(e Entry) {
	i, _ := slices.BinarySearchFunc(s.entries, e, func(a, b Entry) int {
		return a.Date.Compare(b.Date)
	})
	s.entries = slices.Insert(s.entries, i, e)
}
