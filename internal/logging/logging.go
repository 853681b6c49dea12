// Package logging provides structured logging for recbatch built on zerolog.
//
// Loggers are constructed from a Config and passed explicitly or carried in a
// context.Context; no package mutates process-global logging state. Commands
// install their logger into the command context at startup and every other
// component retrieves it with FromContext.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations supported by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Log formats supported by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes how a logger should be constructed.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error). Unparseable
	// values fall back to info.
	Level string

	// Format selects console (human-readable) or json output.
	Format string

	// Output selects stderr, stdout, or file.
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds the caller file:line to every event.
	Caller bool
}

// LogPathResult reports where logs ended up after New resolved the Config,
// including any fallback that was applied when a log file could not be opened.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when log output goes to FilePath.
	UsingFile bool

	// FilePath is the resolved log file path when UsingFile is true.
	FilePath string

	// FallbackUsed is true when file output was requested but stderr was used instead.
	FallbackUsed bool

	// FallbackReason describes why the fallback was applied.
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if one is held.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg, discarding file-path information.
// Most callers that do not need to report the log destination use this.
func New(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg and reports the resolved log
// destination. When Output is "file" and the file cannot be opened, the logger
// falls back to stderr and the result records the reason; logging setup never
// fails the command.
func NewLoggerWithPath(cfg Config) LogPathResult {
	result := LogPathResult{}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case OutputFile:
		file, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = openErr.Error()
			out = os.Stderr
		} else {
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = file
			out = file
		}
	case OutputStdout:
		out = os.Stdout
	default:
		out = os.Stderr
	}

	// Console format only makes sense on a stream a human is watching; file
	// output always gets structured JSON lines.
	if cfg.Format == FormatConsole && !result.UsingFile {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}

	result.Logger = logCtx.Logger()
	return result
}

// ComponentLogger returns logger tagged with a component field so events can
// be attributed to a subsystem (cli, batch, ingest).
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger carried by ctx, or a disabled logger when
// none was installed. Components never fall back to a global logger.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where log output is going when a file
// destination is active.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning warns the user that file logging was requested but
// could not be set up.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
