package index

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID returns the numeric ID of the calling goroutine, parsed
// from the runtime stack header ("goroutine N [running]:"). There is no
// supported API for this; the ID is used only to detect cross-goroutine
// misuse, never for scheduling.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
