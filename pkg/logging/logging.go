// Package logging builds the zap logger shared by the CLI and the terminal
// editor.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger on stderr. Verbose loggers emit debug
// entries; the rest only warnings and errors.
func New(verbose bool) *zap.Logger {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return NewWriter(os.Stderr, verbose, color)
}

// NewWriter is New for an arbitrary writer.
func NewWriter(w io.Writer, verbose, color bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Discard returns a logger that drops everything. The terminal editor uses
// it while it owns the screen.
func Discard() *zap.Logger {
	return zap.NewNop()
}
