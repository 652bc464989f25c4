// Package logging provides structured logging for scriptutils using slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level aliases for convenience.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	defaultLogger *slog.Logger
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
)

// Options configures the logger behavior.
type Options struct {
	// Level sets the minimum log level. Defaults to LevelInfo.
	Level slog.Level
	// Output sets the output destination. Defaults to os.Stderr.
	Output io.Writer
	// JSON enables JSON output format. Defaults to false (text format).
	JSON bool
	// AddSource includes source file and line in log output.
	AddSource bool
	// File, when set, additionally writes JSON records to a size-rotated log file.
	File string
	// MaxSizeMB is the size at which File is rotated. Defaults to 10.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept. Defaults to 3.
	MaxBackups int
}

// DefaultOptions returns options suitable for CLI usage.
func DefaultOptions() Options {
	return Options{
		Level:      LevelWarn,
		Output:     os.Stderr,
		JSON:       false,
		AddSource:  false,
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// New creates a new logger with the given options.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	if opts.File != "" {
		handler = &teeHandler{
			primary: handler,
			file:    slog.NewJSONHandler(fileWriter(opts), handlerOpts),
		}
	}

	return slog.New(handler)
}

// fileWriter returns a rotating writer for opts.File.
func fileWriter(opts Options) io.Writer {
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := opts.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   false,
	}
}

// teeHandler forwards every record to both the console and the file handler.
type teeHandler struct {
	primary slog.Handler
	file    slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.primary.Enabled(ctx, r.Level) {
		if err := h.primary.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if h.file.Enabled(ctx, r.Level) {
		return h.file.Handle(ctx, r)
	}
	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{primary: h.primary.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{primary: h.primary.WithGroup(name), file: h.file.WithGroup(name)}
}

// Default returns the default logger, creating it if necessary.
// The default logger writes text output to stderr at Warn level so that
// script output stays readable unless --verbose or --debug is given.
func Default() *slog.Logger {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defaultLogger = New(DefaultOptions())
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger and also sets it as slog's default.
// This also ensures the sync.Once is triggered so Default() won't override the logger.
func SetDefault(logger *slog.Logger) {
	defaultOnce.Do(func() {})
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
	slog.SetDefault(logger)
}

// With returns a logger that includes the given attributes in every output.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// WithContext returns the logger stored in ctx, or the default logger.
func WithContext(ctx context.Context) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	return Default()
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// Context key for logger storage.
type loggerKey struct{}

// NewContext returns a context with the logger attached.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the logger from context, or nil if not present.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return nil
}

// Common attribute keys for consistent logging across the codebase.
const (
	// KeyPath identifies a file path.
	KeyPath = "path"
	// KeySrc identifies the source path of a copy or patch.
	KeySrc = "src"
	// KeyDest identifies the destination path of a copy or patch.
	KeyDest = "dest"
	// KeyOperation identifies the operation being performed.
	KeyOperation = "operation"
	// KeyDecision identifies the conflict decision in effect.
	KeyDecision = "decision"
	// KeyCount provides a count of items.
	KeyCount = "count"
	// KeyError attaches an error value.
	KeyError = "error"
)

// Path returns a slog attribute for file path logging.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Src returns a slog attribute for a source path.
func Src(p string) slog.Attr {
	return slog.String(KeySrc, p)
}

// Dest returns a slog attribute for a destination path.
func Dest(p string) slog.Attr {
	return slog.String(KeyDest, p)
}

// Operation returns a slog attribute for operation logging.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Decision returns a slog attribute for the conflict decision.
func Decision(d string) slog.Attr {
	return slog.String(KeyDecision, d)
}

// Err returns a slog attribute for error logging.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Count returns a slog attribute for item counts.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}
