package engine

import "fmt"

// EditPre describes an edit about to be applied. It is delivered before
// the storage changes so observers can stash state keyed to the paired
// EditRecord.
type EditPre struct {
	Start   int // byte offset of the edit
	Removed int // bytes about to be removed
}

// String returns a human-readable representation of the pending edit.
func (p EditPre) String() string {
	return fmt.Sprintf("editing [%d,%d)", p.Start, p.Start+p.Removed)
}

// EditRecord describes a completed edit: Removed bytes were replaced by
// Text (Inserted bytes long) at byte offset Start. Text is carried so
// consumers can scan it for embedded line breaks.
type EditRecord struct {
	Start    int
	Removed  int
	Inserted int
	Text     string
}

// String returns a human-readable representation of the edit.
func (r EditRecord) String() string {
	if r.Removed == 0 {
		return fmt.Sprintf("insert(%d, %q)", r.Start, r.Text)
	}
	if r.Inserted == 0 {
		return fmt.Sprintf("delete[%d,%d)", r.Start, r.Start+r.Removed)
	}
	return fmt.Sprintf("replace[%d,%d) with %q", r.Start, r.Start+r.Removed, r.Text)
}

// Delta returns the change in buffer length caused by the edit.
func (r EditRecord) Delta() int {
	return r.Inserted - r.Removed
}

// Observer receives buffer change notifications. Each edit delivers
// BufferEditing followed by BufferEdited; wholesale replacement delivers
// BufferReset instead, after which observers must resynchronize from the
// buffer content.
type Observer interface {
	BufferEditing(pre EditPre)
	BufferEdited(rec EditRecord)
	BufferReset()
}
