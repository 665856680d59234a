// Package hunk parses unified-diff patch documents into a typed structure.
//
// Archived deltas are zero-context unified diffs, but the parser accepts the
// full grammar (context lines included) so hand-written or externally
// produced patches still parse. All string-prefix sniffing lives here; the
// applier in internal/patch only ever sees typed operations.
package hunk

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedHeader indicates a line that begins like a hunk header but
// does not match the unified-diff grammar. Fatal for the whole patch:
// a misread header misplaces every subsequent operation.
var ErrMalformedHeader = errors.New("malformed hunk header")

// headerRe matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
var headerRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// OpKind discriminates the three line operations in a hunk.
type OpKind int

const (
	// OpContext is an unchanged line; the applier advances past it.
	OpContext OpKind = iota
	// OpAdd inserts a line.
	OpAdd
	// OpDelete removes a line whose content must match exactly.
	OpDelete
)

// Op is one line operation. Text carries the line content including its
// trailing newline, if the line had one.
type Op struct {
	Kind OpKind
	Text string
}

// Header holds the four numbers of a hunk header. Line numbers are 1-based;
// a count of 0 marks an empty region (pure insertion or pure deletion side).
type Header struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
}

// Hunk is one contiguous block of operations at a specific offset.
type Hunk struct {
	Header Header
	Ops    []Op
}

// Patch is a parsed patch document. FromName and ToName come from the
// ---/+++ header lines; they are metadata only and never consulted when
// applying (restoration is purely positional).
type Patch struct {
	FromName string
	ToName   string
	Hunks    []Hunk
}

// IsEmpty reports whether the patch contains no operations.
func (p Patch) IsEmpty() bool { return len(p.Hunks) == 0 }

// ParseHeader parses one hunk header line. Omitted counts default to 1,
// per the unified-diff grammar (a single-line hunk).
func ParseHeader(line string) (Header, error) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return Header{}, fmt.Errorf("%w: %q", ErrMalformedHeader, strings.TrimRight(line, "\n"))
	}
	return Header{
		OldStart: mustAtoi(m[1]),
		OldCount: countOrDefault(m[2]),
		NewStart: mustAtoi(m[3]),
		NewCount: countOrDefault(m[4]),
	}, nil
}

// Parse reads a whole patch document. Lines are interpreted as follows:
// "---"/"+++" before the first hunk name the from/to artifacts, "@@"
// starts a hunk, "-" and "+" are delete/insert operations, blank lines are
// skipped, and anything else is a context line. A "@@" line that fails to
// parse aborts with ErrMalformedHeader.
//
// File headers only ever appear at the top of the document, so once a hunk
// is open, classification uses the single-character marker alone. A delete
// of a content line that itself begins "-- " encodes as "--- <text>";
// reading that as a file header would silently drop the operation.
func Parse(text string) (Patch, error) {
	var p Patch
	for _, line := range SplitLines(text) {
		switch {
		case len(p.Hunks) == 0 && strings.HasPrefix(line, "--- "):
			p.FromName = headerName(line[4:])
		case len(p.Hunks) == 0 && strings.HasPrefix(line, "+++ "):
			p.ToName = headerName(line[4:])
		case strings.HasPrefix(line, "@@"):
			h, err := ParseHeader(line)
			if err != nil {
				return Patch{}, err
			}
			p.Hunks = append(p.Hunks, Hunk{Header: h})
		case strings.TrimSpace(line) == "":
			// Blank filler between hunks; not an operation.
		case strings.HasPrefix(line, "-"):
			p.appendOp(Op{Kind: OpDelete, Text: line[1:]})
		case strings.HasPrefix(line, "+"):
			p.appendOp(Op{Kind: OpAdd, Text: line[1:]})
		default:
			p.appendOp(Op{Kind: OpContext, Text: line})
		}
	}
	return p, nil
}

// appendOp attaches an operation to the current hunk. Operations appearing
// before any header get an implicit single-line hunk at the start of the
// file, matching how a cursor initialized to zero would treat them.
func (p *Patch) appendOp(op Op) {
	if len(p.Hunks) == 0 {
		p.Hunks = append(p.Hunks, Hunk{Header: Header{OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1}})
	}
	h := &p.Hunks[len(p.Hunks)-1]
	h.Ops = append(h.Ops, op)
}

// SplitLines splits text into lines, each keeping its trailing newline.
// A final line without a newline is kept as-is, so joining the result with
// the empty separator reproduces the input byte-for-byte.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

func headerName(rest string) string {
	rest = strings.TrimRight(rest, "\n")
	// Drop the optional tab-separated modification date.
	if i := strings.IndexByte(rest, '\t'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func countOrDefault(s string) int {
	if s == "" {
		return 1
	}
	return mustAtoi(s)
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		// Unreachable: the regexp only captures digit runs.
		panic("hunk: non-numeric capture: " + s)
	}
	return n
}
