package engine

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Engine is an in-memory text engine over contiguous UTF-8 byte storage.
// It is the authoritative owner of the text; attached observers are told
// about every change.
type Engine struct {
	mu         sync.RWMutex
	text       []byte
	revisionID RevisionID
	observers  []Observer
	lineEnding LineEnding
	normalize  bool
}

// New creates a new empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{revisionID: NewRevisionID()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromString creates an engine with initial content.
func FromString(s string, opts ...Option) *Engine {
	e := New(opts...)
	e.text = []byte(e.normalizeLineEndings(s))
	return e
}

// FromReader creates an engine from an io.Reader. The content is read in
// full before normalization so CRLF pairs split across read boundaries
// are handled correctly.
func FromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	e := New(opts...)
	e.text = []byte(e.normalizeLineEndings(string(data)))
	return e, nil
}

// Attach registers an observer for change notifications.
func (e *Engine) Attach(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Detach removes a previously attached observer.
func (e *Engine) Detach(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, cur := range e.observers {
		if cur == o {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.text)
}

// Text returns the full buffer content as a string.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return string(e.text)
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (e *Engine) TextRange(start, end int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if start < 0 {
		start = 0
	}
	if end > len(e.text) {
		end = len(e.text)
	}
	if start >= end {
		return ""
	}
	return string(e.text[start:end])
}

// Slice returns the text covered by r, clamped to the buffer.
func (e *Engine) Slice(r Range) string {
	return e.TextRange(r.Start, r.End)
}

// Revision returns the current revision ID.
func (e *Engine) Revision() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	return e.Len() == 0
}

// Insert inserts text at the given byte offset.
func (e *Engine) Insert(offset int, text string) error {
	return e.Replace(offset, offset, text)
}

// Delete removes the bytes in [start, end).
func (e *Engine) Delete(start, end int) error {
	return e.Replace(start, end, "")
}

// ReplaceRange replaces the bytes covered by r with text.
func (e *Engine) ReplaceRange(r Range, text string) error {
	if !r.IsValid() {
		return ErrRangeInvalid
	}
	return e.Replace(r.Start, r.End, text)
}

// Replace replaces the bytes in [start, end) with text. Observers are
// notified before and after the storage changes.
func (e *Engine) Replace(start, end int, text string) error {
	text = e.normalizeLineEndings(text)

	e.mu.Lock()
	if start < 0 || start > end {
		e.mu.Unlock()
		return ErrRangeInvalid
	}
	if end > len(e.text) {
		e.mu.Unlock()
		return ErrOffsetOutOfRange
	}
	observers := e.snapshotObservers()
	e.mu.Unlock()

	pre := EditPre{Start: start, Removed: end - start}
	for _, o := range observers {
		o.BufferEditing(pre)
	}

	e.mu.Lock()
	e.text = append(e.text[:start], append([]byte(text), e.text[end:]...)...)
	e.revisionID = NewRevisionID()
	e.mu.Unlock()

	rec := EditRecord{Start: start, Removed: end - start, Inserted: len(text), Text: text}
	for _, o := range observers {
		o.BufferEdited(rec)
	}
	return nil
}

// Reset replaces the entire buffer wholesale. Observers receive a single
// BufferReset and must resynchronize from the new content.
func (e *Engine) Reset(text string) {
	text = e.normalizeLineEndings(text)

	e.mu.Lock()
	e.text = append(e.text[:0], text...)
	e.revisionID = NewRevisionID()
	observers := e.snapshotObservers()
	e.mu.Unlock()

	for _, o := range observers {
		o.BufferReset()
	}
}

// snapshotObservers returns the current observer list. Callers must hold
// e.mu.
func (e *Engine) snapshotObservers() []Observer {
	out := make([]Observer, len(e.observers))
	copy(out, e.observers)
	return out
}
