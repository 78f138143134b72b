// Package linetable maintains an ordered table of line-start byte
// offsets over a UTF-8 buffer. It answers byte-offset to line-number
// queries (and the reverse) in O(log lines) and is patched in place for
// each edit instead of rescanning the document.
//
// A line break is CR, LF, or CRLF, counted as one boundary regardless of
// form. The table owns no text; edits supply a small window of the
// post-edit buffer so breaks that straddle the edit boundary (a CR
// joined to or split from a following LF) are resolved from the
// authoritative bytes.
package linetable
