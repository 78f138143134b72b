// Package codec implements stateless character counting over UTF-8 byte
// spans. Characters are counted in UTF-16 code units, the native unit of
// the host API: codepoints at or above U+10000 occupy two units (a
// surrogate pair), everything else occupies one.
//
// The functions never fail. Malformed byte sequences are counted as one
// code unit per byte so that a truncated view of a well-formed buffer
// still produces a usable count. The codec does positional bookkeeping,
// not encoding validation.
package codec
