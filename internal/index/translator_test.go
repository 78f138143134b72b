package index

import (
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/dshills/linemap/internal/codec"
	"github.com/dshills/linemap/internal/engine"
)

func TestCharToByte(t *testing.T) {
	tests := []struct {
		name string
		text string
		c    int
		want int
	}{
		{"empty doc", "", 0, 0},
		{"empty doc beyond", "", 10, 0},
		{"ascii", "hello", 3, 3},
		{"negative clamps", "hello", -2, 0},
		{"beyond clamps to total", "hello", 99, 5},
		{"second line", "ab\ncd", 4, 4},
		{"line start", "ab\ncd", 3, 3},
		{"two byte rune", "héllo", 2, 3},
		{"cjk second line", "日本\n語x", 4, 8},
		{"surrogate pair", "\U0001D11E", 2, 4},
		{"inside pair rounds up", "\U0001D11E", 1, 4},
		{"pair then ascii", "\U0001D11Exy", 3, 5},
		{"crlf counts two units", "a\r\nb", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, idx := attach(t, tt.text)
			if got := must(idx.CharToByte(tt.c)); got != tt.want {
				t.Errorf("CharToByte(%d) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestByteToChar(t *testing.T) {
	tests := []struct {
		name string
		text string
		b    int
		want int
	}{
		{"empty doc", "", 0, 0},
		{"ascii", "hello", 4, 4},
		{"negative clamps", "hello", -1, 0},
		{"beyond clamps", "hello", 42, 5},
		{"second line", "ab\ncd", 4, 4},
		{"two byte rune", "héllo", 3, 2},
		{"surrogate pair end", "\U0001D11E", 4, 2},
		{"mid pair snaps back", "\U0001D11E", 2, 0},
		{"mid two byte snaps back", "héllo", 2, 1},
		{"cjk multiline", "日本\n語x", 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, idx := attach(t, tt.text)
			if got := must(idx.ByteToChar(tt.b)); got != tt.want {
				t.Errorf("ByteToChar(%d) = %d, want %d", tt.b, got, tt.want)
			}
		})
	}
}

func TestLineQueries(t *testing.T) {
	_, idx := attach(t, "ab\n日本\r\nxyz")
	// Chars:  a(0) b(1) \n(2) 日(3) 本(4) \r(5) \n(6) x(7) y(8) z(9)
	// Bytes:  a=0 b=1 \n=2 日=3..5 本=6..8 \r=9 \n=10 x=11 y=12 z=13

	if got := must(idx.LineCount()); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}

	tests := []struct {
		c    int
		line int
	}{
		{0, 0}, {2, 0}, {3, 1}, {5, 1}, {6, 1}, {7, 2}, {9, 2}, {99, 2}, {-1, 0},
	}
	for _, tt := range tests {
		if got := must(idx.LineFromChar(tt.c)); got != tt.line {
			t.Errorf("LineFromChar(%d) = %d, want %d", tt.c, got, tt.line)
		}
	}

	charStarts := []int{0, 3, 7}
	for line, want := range charStarts {
		if got := must(idx.CharFromLine(line)); got != want {
			t.Errorf("CharFromLine(%d) = %d, want %d", line, got, want)
		}
	}

	// Clamped lines resolve to the first and last real lines.
	if got := must(idx.CharFromLine(-3)); got != 0 {
		t.Errorf("CharFromLine(-3) = %d, want 0", got)
	}
	if got := must(idx.CharFromLine(99)); got != 7 {
		t.Errorf("CharFromLine(99) = %d, want 7", got)
	}

	if got := must(idx.TotalChars()); got != 10 {
		t.Errorf("TotalChars() = %d, want 10", got)
	}
	if got := must(idx.TotalBytes()); got != 14 {
		t.Errorf("TotalBytes() = %d, want 14", got)
	}
}

// boundaries returns every (charOffset, byteOffset) pair at codepoint
// boundaries of text, including both ends.
func boundaries(text string) [][2]int {
	out := [][2]int{{0, 0}}
	c, b := 0, 0
	for b < len(text) {
		r, size := utf8.DecodeRuneInString(text[b:])
		if r == utf8.RuneError && size <= 1 {
			size = 1
			c++
		} else if r >= 0x10000 {
			c += 2
		} else {
			c++
		}
		b += size
		out = append(out, [2]int{c, b})
	}
	return out
}

var roundTripDocs = []string{
	"",
	"hello",
	"hello\nworld",
	"héllo wörld\nsecond ligne\n",
	"日本語\r\nテキスト\r",
	"a\U0001D11Eb\n🌍🌎🌏\nmixed 文字 text",
	"\n\n\n",
	"\r\n\r\n",
	"trailing break\n",
}

// The round-trip law: converting a boundary position to the other space
// and back is lossless.
func TestRoundTrip(t *testing.T) {
	for _, doc := range roundTripDocs {
		_, idx := attach(t, doc)
		for _, pair := range boundaries(doc) {
			c, b := pair[0], pair[1]
			if got := must(idx.CharToByte(c)); got != b {
				t.Errorf("doc %q: CharToByte(%d) = %d, want %d", doc, c, got, b)
			}
			if got := must(idx.ByteToChar(b)); got != c {
				t.Errorf("doc %q: ByteToChar(%d) = %d, want %d", doc, b, got, c)
			}
		}
	}
}

// Monotonicity and the round-trip law over arbitrary content, including
// invalid UTF-8, which the codec treats one byte per unit.
func TestConversionProperties(t *testing.T) {
	prop := func(doc string) bool {
		eng := engine.FromString(doc)
		idx := Attach(eng)
		defer idx.Detach()

		total := must(idx.TotalChars())
		prev := -1
		for c := 0; c <= total; c++ {
			b := must(idx.CharToByte(c))
			if b < prev {
				return false
			}
			prev = b
			if rt := must(idx.ByteToChar(b)); must(idx.CharToByte(rt)) != b {
				return false
			}
		}

		lines := must(idx.LineCount())
		for l := 0; l < lines; l++ {
			if must(idx.LineFromByte(must(idx.ByteFromLine(l)))) != l {
				return false
			}
		}
		return true
	}

	if err := quick.Check(prop, &quick.Config{MaxCount: 60}); err != nil {
		t.Error(err)
	}
}

// Conversions must stay correct across a series of edits, matching a
// freshly attached index at every step.
func TestConversionsTrackEdits(t *testing.T) {
	eng, idx := attach(t, "")

	steps := []struct {
		start, end int
		text       string
	}{
		{0, 0, "héllo\nwörld"},
		{3, 3, "\U0001D11E"},
		{0, 1, ""},
		{5, 9, "\r\n"},
		{0, 0, "日本\r"},
		{4, 6, "\n"},
	}

	for i, s := range steps {
		if err := eng.Replace(s.start, s.end, s.text); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}

		fresh := Attach(eng)
		for _, pair := range boundaries(eng.Text()) {
			c, b := pair[0], pair[1]
			if got, want := must(idx.CharToByte(c)), must(fresh.CharToByte(c)); got != want {
				t.Fatalf("step %d: CharToByte(%d) = %d, want %d (text=%q)",
					i, c, got, want, eng.Text())
			}
			if got, want := must(idx.ByteToChar(b)), must(fresh.ByteToChar(b)); got != want {
				t.Fatalf("step %d: ByteToChar(%d) = %d, want %d (text=%q)",
					i, b, got, want, eng.Text())
			}
		}
		fresh.Detach()
	}
}

// The per-line cache must not drift from a cold computation.
func TestCharFromLineMatchesCodec(t *testing.T) {
	text := "αβγ\nδεζ\n\U0001D11E\nend"
	eng, idx := attach(t, text)

	want := 0
	lines := must(idx.LineCount())
	for l := 0; l < lines; l++ {
		if got := must(idx.CharFromLine(l)); got != want {
			t.Errorf("CharFromLine(%d) = %d, want %d", l, got, want)
		}
		start := must(idx.ByteFromLine(l))
		end := eng.Len()
		if l+1 < lines {
			end = must(idx.ByteFromLine(l + 1))
		}
		want += codec.CharCount(eng.TextRange(start, end))
	}
	if got := must(idx.TotalChars()); got != want {
		t.Errorf("TotalChars() = %d, want %d", got, want)
	}
}
