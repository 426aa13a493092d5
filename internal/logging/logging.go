// Package logging builds the structured logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Verbosity levels accepted by New.
const (
	Quiet = "quiet"
	Info  = "info"
	Debug = "debug"
)

// New creates a logger writing to w at the given verbosity. Terminals get
// slog's text format; pipes and files get JSON.
func New(w io.Writer, verbosity string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(verbosity) {
	case Quiet:
		level = slog.LevelWarn
	case Info, "":
		level = slog.LevelInfo
	case Debug:
		level = slog.LevelDebug
	default:
		return nil, fmt.Errorf("invalid verbosity %q (use %s, %s or %s)", verbosity, Quiet, Info, Debug)
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
