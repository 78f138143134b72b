package engine

import "strings"

// LineEnding specifies a line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// ParseLineEnding maps a config value ("lf", "crlf", "cr") to a
// LineEnding, defaulting to LF.
func ParseLineEnding(s string) LineEnding {
	switch strings.ToLower(s) {
	case "crlf":
		return LineEndingCRLF
	case "cr":
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLineEnding sets the engine's preferred line ending style. It only
// takes effect together with WithNormalize.
func WithLineEnding(le LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = le
	}
}

// WithNormalize makes the engine convert all line endings in incoming
// text to the preferred style. Disabled by default: the index handles
// mixed CR, LF, and CRLF content, so normalization is a policy choice,
// not a requirement.
func WithNormalize(enable bool) Option {
	return func(e *Engine) {
		e.normalize = enable
	}
}

// normalizeLineEndings converts all line endings in s to the engine's
// preferred style when normalization is enabled.
func (e *Engine) normalizeLineEndings(s string) string {
	if !e.normalize {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if seq := e.lineEnding.Sequence(); seq != "\n" {
		s = strings.ReplaceAll(s, "\n", seq)
	}
	return s
}
