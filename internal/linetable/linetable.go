package linetable

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDesync indicates an edit that does not match the current table
// state. It signals desynchronization with the owning engine; the caller
// should rebuild from the authoritative buffer rather than clamp.
var ErrDesync = errors.New("edit out of sync with line table")

// Table is an ordered sequence of line-start byte offsets. Entry 0 is
// always 0; entries are strictly increasing. An empty buffer has exactly
// one line.
type Table struct {
	starts []int // byte offset of each line start
	total  int   // byte length of the indexed buffer
}

// New returns a table for an empty buffer: one line, starting at 0.
func New() *Table {
	return &Table{starts: []int{0}}
}

// Rebuild rescans text in one pass and replaces the table contents.
// Used on attach, on wholesale document replacement, and after a
// detected desync.
func (t *Table) Rebuild(text string) {
	t.starts = append(t.starts[:0], 0)
	for o := 1; o <= len(text); o++ {
		if isLineStart(text, o) {
			t.starts = append(t.starts, o)
		}
	}
	t.total = len(text)
}

// isLineStart reports whether offset o in text begins a line. Offset 0
// is excluded by the callers; it is always a line start.
func isLineStart(text string, o int) bool {
	switch text[o-1] {
	case '\n':
		return true
	case '\r':
		// A bare CR breaks; a CR followed by LF breaks after the LF.
		return o == len(text) || text[o] != '\n'
	}
	return false
}

// LineCount returns the number of lines, always at least 1.
func (t *Table) LineCount() int {
	return len(t.starts)
}

// TotalBytes returns the byte length of the indexed buffer.
func (t *Table) TotalBytes() int {
	return t.total
}

// LineFromByte returns the line containing byte offset b. Out-of-range
// offsets clamp to [0, TotalBytes]; the end-of-buffer offset maps to the
// last line.
func (t *Table) LineFromByte(b int) int {
	if b < 0 {
		b = 0
	}
	if b > t.total {
		b = t.total
	}
	i, found := slices.BinarySearch(t.starts, b)
	if found {
		return i
	}
	return i - 1
}

// ByteFromLine returns the byte offset of the start of line.
// Out-of-range lines clamp to [0, LineCount-1].
func (t *Table) ByteFromLine(line int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(t.starts) {
		line = len(t.starts) - 1
	}
	return t.starts[line]
}

// LineSpan returns the byte range [start, end) covered by line,
// including its trailing break bytes. Out-of-range lines clamp.
func (t *Table) LineSpan(line int) (start, end int) {
	if line < 0 {
		line = 0
	}
	if line >= len(t.starts) {
		line = len(t.starts) - 1
	}
	start = t.starts[line]
	if line+1 < len(t.starts) {
		return start, t.starts[line+1]
	}
	return start, t.total
}

// Starts returns a copy of the table entries with the trailing sentinel
// equal to TotalBytes appended. When the buffer ends in a line break the
// sentinel coincides with the start of the trailing empty line.
func (t *Table) Starts() []int {
	out := make([]int, 0, len(t.starts)+1)
	out = append(out, t.starts...)
	return append(out, t.total)
}

// ApplyEdit patches the table for a single edit that removed `removed`
// bytes and inserted `inserted` bytes at byte offset start. window holds
// post-edit buffer content beginning at windowStart; it must cover one
// byte before start (when start > 0) and one byte past the inserted text
// (when one exists) so breaks at the edit boundary can be resolved.
//
// The patch is applied atomically: on error the table is unchanged. An
// edit range beyond the current buffer length is rejected with
// ErrDesync, never clamped, since it indicates the engine and the table
// have drifted apart.
func (t *Table) ApplyEdit(start, removed, inserted int, window string, windowStart int) error {
	if start < 0 || removed < 0 || inserted < 0 {
		return fmt.Errorf("%w: negative edit start=%d removed=%d inserted=%d",
			ErrDesync, start, removed, inserted)
	}
	end := start + removed
	if end > t.total {
		return fmt.Errorf("%w: edit [%d,%d) exceeds %d bytes",
			ErrDesync, start, end, t.total)
	}

	lo := start - 1
	if lo < 0 {
		lo = 0
	}
	hi := start + inserted
	newTotal := t.total - removed + inserted
	if windowStart > lo || windowStart+len(window) < min(hi+1, newTotal) {
		return fmt.Errorf("%w: window [%d,%d) does not cover edit at %d",
			ErrDesync, windowStart, windowStart+len(window), start)
	}

	// Remove entries whose line break was deleted (the byte just before
	// the entry fell inside the removed range) and shift the rest.
	w := 0
	for _, e := range t.starts {
		switch {
		case e <= start:
			t.starts[w] = e
			w++
		case e <= end:
			// break removed
		default:
			t.starts[w] = e - removed + inserted
			w++
		}
	}
	t.starts = t.starts[:w]
	t.total = newTotal

	// Recompute the entries in (lo, hi] from the post-edit bytes. This
	// resolves CR/LF pairs joined or split at the edit boundary.
	fresh := breakStartsIn(window, windowStart, lo, hi, t.total)
	li, _ := slices.BinarySearch(t.starts, lo+1)
	ri, _ := slices.BinarySearch(t.starts, hi+1)
	t.starts = slices.Replace(t.starts, li, ri, fresh...)

	return nil
}

// breakStartsIn returns the line-start offsets in (lo, hi] derived from
// window, which holds buffer bytes beginning at windowStart. total is
// the post-edit buffer length.
func breakStartsIn(window string, windowStart, lo, hi, total int) []int {
	var out []int
	for o := lo + 1; o <= hi; o++ {
		pi := o - 1 - windowStart
		if pi < 0 || pi >= len(window) {
			continue
		}
		switch window[pi] {
		case '\n':
			out = append(out, o)
		case '\r':
			ni := o - windowStart
			if o == total || ni >= len(window) || window[ni] != '\n' {
				out = append(out, o)
			}
		}
	}
	return out
}
