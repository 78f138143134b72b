package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/linemap/internal/config"
	"github.com/dshills/linemap/internal/engine"
	"github.com/dshills/linemap/internal/index"
)

// Options configures an Application.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// FilePath is the document to open. Empty opens an empty document.
	FilePath string
}

// Application ties one document's engine and index together with
// configuration, logging, and session state.
type Application struct {
	cfg     config.Config
	logger  *Logger
	logFile *os.File
	engine  *engine.Engine
	index   *index.Index
	session *config.Session
	file    string
}

// New loads configuration, opens the document, and attaches the index.
// The calling goroutine becomes the index owner.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	a := &Application{cfg: cfg}
	if err := a.initLogger(); err != nil {
		return nil, err
	}

	if err := a.openDocument(opts.FilePath); err != nil {
		a.Shutdown()
		return nil, err
	}

	if cfg.Session.Enabled {
		path := cfg.Session.Path
		if path == "" {
			path = config.DefaultSessionPath()
		}
		s, err := config.OpenSession(path)
		if err != nil {
			a.logger.WithComponent("session").Warn("disabled: %v", err)
		} else {
			a.session = s
		}
	}

	return a, nil
}

func (a *Application) initLogger() error {
	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(a.cfg.Logging.Level)
	if a.cfg.Logging.File != "" {
		f, err := os.OpenFile(a.cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		lc.Output = f
	}
	a.logger = NewLogger(lc)
	return nil
}

func (a *Application) openDocument(path string) error {
	var opts []engine.Option
	if a.cfg.Engine.NormalizeLineEndings {
		opts = append(opts,
			engine.WithNormalize(true),
			engine.WithLineEnding(engine.ParseLineEnding(a.cfg.Engine.LineEnding)))
	}

	if path == "" {
		a.engine = engine.New(opts...)
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		f, err := os.Open(abs)
		if err != nil {
			return fmt.Errorf("open document: %w", err)
		}
		defer f.Close()

		a.engine, err = engine.FromReader(f, opts...)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		a.file = abs
	}

	a.index = index.Attach(a.engine)
	lines, _ := a.index.LineCount()
	a.logger.WithComponent("index").Debug("attached: %d bytes, %d lines",
		a.engine.Len(), lines)
	return nil
}

// Engine returns the document's engine.
func (a *Application) Engine() *engine.Engine { return a.engine }

// Index returns the document's position index.
func (a *Application) Index() *index.Index { return a.index }

// Logger returns the application logger.
func (a *Application) Logger() *Logger { return a.logger }

// Position is a fully resolved document position.
type Position struct {
	Char      index.CharOffset
	Byte      index.ByteOffset
	Line      index.LineNumber
	LineStart index.CharOffset
}

// String formats the position for display.
func (p Position) String() string {
	return fmt.Sprintf("char=%d byte=%d line=%d col=%d",
		p.Char, p.Byte, p.Line, p.Char-p.LineStart)
}

// ResolveChar resolves a character offset to a full position.
func (a *Application) ResolveChar(c index.CharOffset) (Position, error) {
	b, err := a.index.CharToByte(c)
	if err != nil {
		return Position{}, err
	}
	// Reverse through the index so clamped inputs report the position
	// actually addressed.
	return a.resolveByte(b)
}

// ResolveByte resolves a byte offset to a full position.
func (a *Application) ResolveByte(b index.ByteOffset) (Position, error) {
	return a.resolveByte(b)
}

// ResolveLine resolves a line number to the position of its start.
func (a *Application) ResolveLine(line index.LineNumber) (Position, error) {
	b, err := a.index.ByteFromLine(line)
	if err != nil {
		return Position{}, err
	}
	return a.resolveByte(b)
}

func (a *Application) resolveByte(b index.ByteOffset) (Position, error) {
	c, err := a.index.ByteToChar(b)
	if err != nil {
		return Position{}, err
	}
	bb, err := a.index.CharToByte(c)
	if err != nil {
		return Position{}, err
	}
	line, err := a.index.LineFromByte(bb)
	if err != nil {
		return Position{}, err
	}
	ls, err := a.index.CharFromLine(line)
	if err != nil {
		return Position{}, err
	}
	return Position{Char: c, Byte: bb, Line: line, LineStart: ls}, nil
}

// RememberPosition stores pos in the session state for the open file.
func (a *Application) RememberPosition(pos Position) {
	if a.session == nil || a.file == "" {
		return
	}
	if err := a.session.RecordPosition(a.file, pos.Char, pos.Line); err != nil {
		a.logger.WithComponent("session").Warn("record: %v", err)
	}
}

// LastPosition returns the stored session position for the open file.
func (a *Application) LastPosition() (char, line int, ok bool) {
	if a.session == nil || a.file == "" {
		return 0, 0, false
	}
	return a.session.LastPosition(a.file)
}

// Shutdown releases the index and closes the log file.
func (a *Application) Shutdown() {
	if a.index != nil {
		a.index.Detach()
		a.index = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}
