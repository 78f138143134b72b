package index

import (
	"github.com/dshills/linemap/internal/engine"
)

// The listener half of the index bridges engine notifications to the
// line table. Each edit arrives in two phases: BufferEditing opens a
// transaction before the storage changes, BufferEdited closes it after.
// Between the two the index is in StateEditing and rejects queries.
// Anything that does not pair up cleanly is treated as
// desynchronization and answered with a full rebuild from the
// authoritative buffer. Correctness over performance in the rare desync
// case.

// editTx correlates a pre-edit notification with its paired post-edit
// record.
type editTx struct {
	pre engine.EditPre
}

// BufferEditing implements engine.Observer.
func (x *Index) BufferEditing(pre engine.EditPre) {
	if x.state == StateDetached {
		return
	}
	x.tx = &editTx{pre: pre}
	x.state = StateEditing
}

// BufferEdited implements engine.Observer. It applies the patch for one
// completed edit and returns the index to StateAttached.
func (x *Index) BufferEdited(rec engine.EditRecord) {
	if x.state == StateDetached {
		return
	}

	tx := x.tx
	x.tx = nil

	if x.state != StateEditing || tx == nil ||
		tx.pre.Start != rec.Start || tx.pre.Removed != rec.Removed {
		// Unpaired or mismatched notification: resync wholesale.
		x.rebuild()
		return
	}

	// Drop the cached char offsets from the edited line on. The edited
	// line's own entry cannot be kept: when the edit sits at a line start
	// and joins a CR in the previous line with a following LF, the line
	// start itself moves.
	editLine := x.table.LineFromByte(rec.Start)
	if len(x.charStarts) > editLine {
		x.charStarts = x.charStarts[:editLine]
	}

	// The patch window: one byte of post-edit context on each side of
	// the inserted text, so breaks straddling the edit boundary resolve
	// from real bytes.
	wStart := rec.Start
	if wStart > 0 {
		wStart--
	}
	wEnd := rec.Start + rec.Inserted + 1
	newTotal := x.table.TotalBytes() - rec.Removed + rec.Inserted
	if wEnd > newTotal {
		wEnd = newTotal
	}
	window := x.eng.TextRange(wStart, wEnd)

	if err := x.table.ApplyEdit(rec.Start, rec.Removed, rec.Inserted, window, wStart); err != nil {
		x.rebuild()
		return
	}
	x.state = StateAttached
}

// BufferReset implements engine.Observer. Wholesale replacement discards
// everything and rescans.
func (x *Index) BufferReset() {
	if x.state == StateDetached {
		return
	}
	x.rebuild()
}

// rebuild rescans the full buffer in one pass. This is the attach path,
// the reset path, and the recovery path after any desync.
func (x *Index) rebuild() {
	x.table.Rebuild(x.eng.TextRange(0, x.eng.Len()))
	x.charStarts = x.charStarts[:0]
	x.state = StateAttached
}
