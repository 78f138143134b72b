package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Session persists the last query position per file as a JSON document
// keyed by absolute file path:
//
//	{"files": {"/path/to/file": {"char": 120, "line": 4}}}
//
// Values are read with gjson and written with sjson so unrelated entries
// survive untouched.
type Session struct {
	path string
	data []byte
}

// OpenSession loads the session state at path, starting empty when the
// file does not exist.
func OpenSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte("{}")
	} else if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		// A corrupt state file is not worth failing over; start fresh.
		data = []byte("{}")
	}
	return &Session{path: path, data: data}, nil
}

// LastPosition returns the recorded position for file, if any.
func (s *Session) LastPosition(file string) (char, line int, ok bool) {
	base := "files." + escapeKey(file)
	c := gjson.GetBytes(s.data, base+".char")
	l := gjson.GetBytes(s.data, base+".line")
	if !c.Exists() {
		return 0, 0, false
	}
	return int(c.Int()), int(l.Int()), true
}

// RecordPosition stores the position for file and writes the state to
// disk.
func (s *Session) RecordPosition(file string, char, line int) error {
	base := "files." + escapeKey(file)

	data, err := sjson.SetBytes(s.data, base+".char", char)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	data, err = sjson.SetBytes(data, base+".line", line)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	s.data = data

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	if err := os.WriteFile(s.path, s.data, 0o644); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// escapeKey escapes path-syntax characters in a map key so file paths
// with dots address a single key.
func escapeKey(k string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		".", "\\.",
		"*", "\\*",
		"?", "\\?",
		"|", "\\|",
		"#", "\\#",
		"@", "\\@",
	)
	return r.Replace(k)
}
