// Package main is the entry point for the linemap position-index tool.
// It opens a document, attaches the index, and answers char/byte/line
// conversion queries from the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/linemap/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		opts        app.Options
		charQuery   int
		byteQuery   int
		lineQuery   int
		stats       bool
		resume      bool
		showVersion bool
	)

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&charQuery, "char", -1, "Resolve a character offset (UTF-16 code units)")
	flag.IntVar(&byteQuery, "byte", -1, "Resolve a byte offset")
	flag.IntVar(&lineQuery, "line", -1, "Resolve a line number to its start position")
	flag.BoolVar(&stats, "stats", false, "Print document statistics")
	flag.BoolVar(&resume, "resume", false, "Resolve the last recorded position for this file")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("linemap %s (%s)\n", version, commit)
		return 0
	}

	if flag.NArg() > 0 {
		opts.FilePath = flag.Arg(0)
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	queried := false

	if stats {
		if err := printStats(application); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		queried = true
	}

	if resume {
		char, _, ok := application.LastPosition()
		if !ok {
			fmt.Println("no recorded position")
		} else if err := resolve(application, "resume", application.ResolveChar, char); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		queried = true
	}

	if charQuery >= 0 {
		if err := resolve(application, "char", application.ResolveChar, charQuery); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		queried = true
	}
	if byteQuery >= 0 {
		if err := resolve(application, "byte", application.ResolveByte, byteQuery); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		queried = true
	}
	if lineQuery >= 0 {
		if err := resolve(application, "line", application.ResolveLine, lineQuery); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		queried = true
	}

	if !queried {
		return printStatsOrUsage(application)
	}
	return 0
}

// resolve runs one query, prints the result, and records it in the
// session state.
func resolve(a *app.Application, label string, fn func(int) (app.Position, error), arg int) error {
	pos, err := fn(arg)
	if err != nil {
		return err
	}
	fmt.Printf("%s %d -> %s\n", label, arg, pos)
	a.RememberPosition(pos)
	return nil
}

func printStats(a *app.Application) error {
	idx := a.Index()
	lines, err := idx.LineCount()
	if err != nil {
		return err
	}
	chars, err := idx.TotalChars()
	if err != nil {
		return err
	}
	bytes, err := idx.TotalBytes()
	if err != nil {
		return err
	}
	fmt.Printf("bytes=%d chars=%d lines=%d\n", bytes, chars, lines)
	return nil
}

func printStatsOrUsage(a *app.Application) int {
	if a.Engine().IsEmpty() {
		flag.Usage()
		return 2
	}
	if err := printStats(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
