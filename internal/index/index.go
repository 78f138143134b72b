package index

import (
	"fmt"

	"github.com/dshills/linemap/internal/engine"
	"github.com/dshills/linemap/internal/linetable"
)

// Position types. Aliases keep call sites readable without casting.
type (
	// ByteOffset is an offset into the UTF-8 byte storage. It always
	// denotes a codepoint boundary.
	ByteOffset = int

	// CharOffset is an offset counted in UTF-16 code units, the native
	// unit of the host API. Codepoints above U+FFFF consume two units.
	CharOffset = int

	// LineNumber is a 0-indexed line number.
	LineNumber = int
)

// State describes the lifecycle of an attached index.
type State uint8

const (
	// StateAttached means the table is present and in sync with the buffer.
	StateAttached State = iota
	// StateEditing means an edit notification is mid-delivery and the
	// table must not be queried.
	StateEditing
	// StateDetached means the index has been released from its engine.
	StateDetached
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateAttached:
		return "attached"
	case StateEditing:
		return "editing"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Engine is the narrow view of the text engine the index depends on.
// *engine.Engine satisfies it.
type Engine interface {
	Len() int
	TextRange(start, end int) string
	Attach(o engine.Observer)
	Detach(o engine.Observer)
}

// Index owns the position/line translation state for one document. It is
// bound to the goroutine that attached it; see the package comment for
// the ownership rules.
type Index struct {
	eng   Engine
	table *linetable.Table

	// charStarts[i] is the CharOffset of the start of line i, filled
	// lazily in line order and truncated from the first edited line on.
	// Once fully filled it carries one extra entry: the total character
	// count.
	charStarts []int

	state State
	owner uint64
	tx    *editTx
}

// Attach builds an index over eng's current content and registers for
// its edit notifications. The calling goroutine becomes the owner: all
// further calls must come from it.
func Attach(eng Engine) *Index {
	x := &Index{
		eng:   eng,
		table: linetable.New(),
		owner: goroutineID(),
	}
	x.rebuild()
	eng.Attach(x)
	return x
}

// Detach releases the index from its engine and discards the table. The
// index is unusable afterwards; attach a new one to resume queries.
func (x *Index) Detach() {
	x.eng.Detach(x)
	x.state = StateDetached
	x.table = nil
	x.charStarts = nil
	x.tx = nil
}

// State returns the current lifecycle state.
func (x *Index) State() State {
	return x.state
}

// check validates goroutine affinity and lifecycle state before a query.
func (x *Index) check() error {
	if gid := goroutineID(); gid != x.owner {
		return fmt.Errorf("%w: owner %d, caller %d", ErrWrongGoroutine, x.owner, gid)
	}
	switch x.state {
	case StateDetached:
		return ErrDetached
	case StateEditing:
		return ErrEditInProgress
	}
	return nil
}

// LineCount returns the number of lines; at least 1, even for an empty
// document.
func (x *Index) LineCount() (int, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	return x.table.LineCount(), nil
}

// TotalBytes returns the byte length of the document.
func (x *Index) TotalBytes() (ByteOffset, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	return x.table.TotalBytes(), nil
}

// LineFromByte returns the line containing byte offset b. Out-of-range
// offsets clamp.
func (x *Index) LineFromByte(b ByteOffset) (LineNumber, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	return x.table.LineFromByte(b), nil
}

// ByteFromLine returns the byte offset of the start of line.
// Out-of-range lines clamp.
func (x *Index) ByteFromLine(line LineNumber) (ByteOffset, error) {
	if err := x.check(); err != nil {
		return 0, err
	}
	return x.table.ByteFromLine(line), nil
}

// LineRange returns the byte range covered by line, including its
// trailing break bytes. Out-of-range lines clamp.
func (x *Index) LineRange(line LineNumber) (engine.Range, error) {
	if err := x.check(); err != nil {
		return engine.Range{}, err
	}
	start, end := x.table.LineSpan(line)
	return engine.NewRange(start, end), nil
}

// LineStarts returns the line-start byte offsets with the trailing
// sentinel equal to TotalBytes.
func (x *Index) LineStarts() ([]ByteOffset, error) {
	if err := x.check(); err != nil {
		return nil, err
	}
	return x.table.Starts(), nil
}
