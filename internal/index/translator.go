package index

import (
	"slices"
	"unicode/utf8"

	"github.com/dshills/linemap/internal/codec"
)

// The translator composes the line table with the codec. Conversions
// anchor at line starts: the char offset of every line start up to the
// highest line touched so far is cached, so the per-query scan is
// bounded by one line, and each line is counted at most once between
// edits.

// fillNext extends the per-line char-offset cache by one line. It
// returns false once the cache is complete, including the trailing
// total-character-count entry.
func (x *Index) fillNext() bool {
	i := len(x.charStarts)
	if i == 0 {
		x.charStarts = append(x.charStarts, 0)
		return true
	}
	if i > x.table.LineCount() {
		return false
	}
	start, end := x.table.LineSpan(i - 1)
	n := codec.CharCount(x.eng.TextRange(start, end))
	x.charStarts = append(x.charStarts, x.charStarts[i-1]+n)
	return true
}

// ensureLine fills the cache through the given line.
func (x *Index) ensureLine(line int) {
	for len(x.charStarts) <= line {
		if !x.fillNext() {
			return
		}
	}
}

// lineForChar returns the line whose span contains CharOffset c, filling
// the cache as far as needed. It returns -1 when c is at or beyond the
// end of the document.
func (x *Index) lineForChar(c int) int {
	lineCount := x.table.LineCount()
	for len(x.charStarts) <= lineCount && (len(x.charStarts) == 0 || x.charStarts[len(x.charStarts)-1] <= c) {
		x.fillNext()
	}

	if len(x.charStarts) > lineCount && c >= x.charStarts[lineCount] {
		return -1
	}

	n := len(x.charStarts)
	if n > lineCount {
		n = lineCount
	}
	pos, found := slices.BinarySearch(x.charStarts[:n], c)
	if found {
		return pos
	}
	return pos - 1
}

// TotalChars returns the document length in UTF-16 code units.
func (x *Index) TotalChars() (CharOffset, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	return x.totalChars(), nil
}

func (x *Index) totalChars() int {
	lineCount := x.table.LineCount()
	x.ensureLine(lineCount)
	return x.charStarts[lineCount]
}

// CharToByte converts a character offset to the byte offset of the same
// position. The input clamps to [0, TotalChars]; the result is always a
// codepoint boundary.
func (x *Index) CharToByte(c CharOffset) (ByteOffset, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	if c <= 0 {
		return 0, nil
	}

	line := x.lineForChar(c)
	if line < 0 {
		return x.table.TotalBytes(), nil
	}
	start, end := x.table.LineSpan(line)
	rel := c - x.charStarts[line]
	return start + codec.ByteLenOfChars(x.eng.TextRange(start, end), rel), nil
}

// ByteToChar converts a byte offset to the character offset of the same
// position. The input clamps to [0, TotalBytes] and snaps to the nearest
// codepoint boundary at or before it; offsets produced by the engine are
// already boundaries, but one bad offset must not corrupt later queries.
func (x *Index) ByteToChar(b ByteOffset) (CharOffset, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	total := x.table.TotalBytes()
	if b <= 0 {
		return 0, nil
	}
	if b > total {
		b = total
	}

	line := x.table.LineFromByte(b)
	x.ensureLine(line)
	start, end := x.table.LineSpan(line)

	// Fetch a little past b so a mid-sequence offset is detectable and
	// the sequence containing it can be decoded in full.
	ctxEnd := b + utf8.UTFMax
	if ctxEnd > end {
		ctxEnd = end
	}
	ctx := x.eng.TextRange(start, ctxEnd)
	snapped := codec.SnapToBoundary(ctx, b-start)
	return x.charStarts[line] + codec.CharCount(ctx[:snapped]), nil
}

// LineFromChar returns the line containing character offset c.
// Out-of-range offsets clamp.
func (x *Index) LineFromChar(c CharOffset) (LineNumber, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	if c <= 0 {
		return 0, nil
	}
	line := x.lineForChar(c)
	if line < 0 {
		return x.table.LineCount() - 1, nil
	}
	return line, nil
}

// CharFromLine returns the character offset of the start of line.
// Out-of-range lines clamp.
func (x *Index) CharFromLine(line LineNumber) (CharOffset, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	if line < 0 {
		line = 0
	}
	if max := x.table.LineCount() - 1; line > max {
		line = max
	}
	x.ensureLine(line)
	return x.charStarts[line], nil
}
