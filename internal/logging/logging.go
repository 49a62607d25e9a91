// Package logging builds the zap logger used across dsproject.
//
// Log lines carry a short timestamp, the logger name, the caller's
// file:line and the message. The verbose flag selects the level.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootName is the name of the top-level logger.
const RootName = "dsproject"

// Format selects the zap encoder.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options configures New.
type Options struct {
	// Verbose enables debug-level output. Info otherwise.
	Verbose bool

	// Format is console (default) or json.
	Format Format

	// Output defaults to os.Stderr.
	Output io.Writer
}

// Level returns the zap level implied by the verbose flag.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// New creates a named logger writing to opts.Output.
func New(opts Options) (*zap.Logger, error) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var enc zapcore.Encoder
	switch opts.Format {
	case "", FormatConsole:
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q (valid: console, json)", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), zap.NewAtomicLevelAt(Level(opts.Verbose)))
	return zap.New(core, zap.AddCaller()).Named(RootName), nil
}
