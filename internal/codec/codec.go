package codec

import "unicode/utf8"

// supplementaryMin is the first codepoint that needs a surrogate pair
// (two UTF-16 code units) in the host representation.
const supplementaryMin = 0x10000

// CharCount returns the number of UTF-16 code units needed to represent
// the UTF-8 span s.
func CharCount(s string) int {
	n := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			i++
			n++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			// Malformed or truncated sequence: one unit per byte.
			i++
			n++
			continue
		}

		if r >= supplementaryMin {
			n += 2
		} else {
			n++
		}
		i += size
	}
	return n
}

// ByteLenOfChars scans s forward until charTarget UTF-16 code units have
// been consumed and returns the byte offset reached. A target beyond the
// available characters clamps to len(s). The returned offset is always a
// codepoint boundary: a target that lands inside a surrogate pair rounds
// up to the end of the pair, so a whole codepoint is always consumed.
func ByteLenOfChars(s string, charTarget int) int {
	if charTarget <= 0 {
		return 0
	}

	n := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			i++
			n++
			if n == charTarget {
				return i
			}
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			n++
			if n == charTarget {
				return i
			}
			continue
		}

		units := 1
		if r >= supplementaryMin {
			units = 2
		}
		n += units
		i += size
		if n >= charTarget {
			// A target inside a surrogate pair rounds up to the end
			// of the pair.
			return i
		}
	}
	return len(s)
}

// SnapToBoundary returns the largest codepoint boundary in s that is at
// or before off. Offsets inside a malformed sequence are treated as
// boundaries, matching the one-unit-per-byte fallback of CharCount.
func SnapToBoundary(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(s) {
		return len(s)
	}

	// Walk back over continuation bytes to the nearest lead byte, then
	// confirm the sequence actually covers off.
	start := off
	for start > 0 && off-start < utf8.UTFMax-1 && s[start]&0xC0 == 0x80 {
		start--
	}
	r, size := utf8.DecodeRuneInString(s[start:])
	if r == utf8.RuneError && size <= 1 {
		// Not a valid sequence; every byte counts as a unit.
		return off
	}
	if start+size > off {
		return start
	}
	return off
}
