// Package index translates between the character-oriented positions of
// the host API (UTF-16 code units) and the byte-oriented offsets of the
// underlying UTF-8 storage, and between byte offsets and line numbers.
//
// An Index attaches to one engine for its lifetime. It keeps a table of
// line-start byte offsets patched incrementally from the engine's edit
// notifications, plus a lazily filled cache of per-line character
// offsets. Conversions anchor at the nearest known line boundary, so a
// query costs a scan bounded by line length, never by document length.
//
// Ownership model: all queries and all edits must happen on the
// goroutine that attached the index. Calls from any other goroutine fail
// fast with ErrWrongGoroutine instead of silently corrupting state.
// Out-of-range query positions clamp to the nearest valid position; the
// only observable failures are cross-goroutine misuse and use of a
// detached index, both programming errors in the caller.
package index
