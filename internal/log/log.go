// Package log provides centralised audit logging for flexarc operations.
// Logs are stored in ~/.flexarc/log/flexarc-log.db and track CLI commands
// across archives.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("archive", "write").
//		Author(cmd.Author()).
//		Date(day.String()).
//		Artifact(entry.Name).
//		Write(err)
//
//	log.Event("restore", "read").
//		Author(cmd.Author()).
//		Date(day.String()).
//		Detail("bytes", len(text)).
//		Write(err)
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // command name, e.g. "archive", "restore", "ls"
	Author string // who performed the action
	Action string // verb: read, write, list, etc.
	Date   string // report date the operation targets, if any

	// Artifact is the archive file the operation produced or read,
	// populated after the operation succeeds.
	Artifact string

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source is the CLI command name ("archive", "restore", "diff") and
// the action describes what was performed ("read", "write", "list").
//
// Example:
//
//	log.Event("archive", "write").
//		Author(cmd.Author()).
//		Date(day.String()).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Date sets the report date this operation targets (ISO form).
// Leave unset for operations that do not target a date (e.g., config).
func (b *Builder) Date(day string) *Builder {
	b.entry.Date = day
	return b
}

// Artifact records the archive file the operation produced or read.
// Set after the operation succeeds.
func (b *Builder) Artifact(name string) *Builder {
	b.entry.Artifact = name
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// byte counts, source files, restore chain lengths, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	text, err := store.Restore(day)
//	log.Event("restore", "read").Date(day.String()).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetArchive sets the archive identifier for subsequent log entries.
// The dir should be the absolute path to the archive directory.
func SetArchive(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.archive = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
