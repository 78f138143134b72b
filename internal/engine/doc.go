// Package engine provides an in-memory text engine that owns the
// authoritative UTF-8 byte storage and notifies observers of every edit.
//
// The engine is the collaborator the position index attaches to. It
// delivers a two-phase notification per edit, BufferEditing before the
// storage changes and BufferEdited after, strictly in the order edits
// occur and on the caller's goroutine. Whole-document replacement is
// available in two forms: SetText diffs the old and new content and
// delivers one edit per changed region, while Reset replaces the storage
// wholesale and signals observers to rebuild.
//
// Storage access is guarded by a mutex; observers are invoked outside
// the lock, so the strict notification ordering the index relies on
// holds only under the single-owner calling discipline.
package engine
