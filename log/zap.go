package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type Level = zapcore.Level

const (
	InfoLevel  Level = zap.InfoLevel
	WarnLevel  Level = zap.WarnLevel
	ErrorLevel Level = zap.ErrorLevel
	DebugLevel Level = zap.DebugLevel
	FatalLevel Level = zap.FatalLevel
)

type (
	Field  = zap.Field
	Option = zap.Option

	Logger struct {
		l     *zap.Logger
		level Level
	}
)

// field helpers, re-exported so callers only import this package
var (
	Any        = zap.Any
	Bool       = zap.Bool
	Duration   = zap.Duration
	ErrorField = zap.Error
	Float32    = zap.Float32
	Float64    = zap.Float64
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	String     = zap.String
	Time       = zap.Time
	Uint32     = zap.Uint32
	Uint64     = zap.Uint64

	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip
)

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) Sync() error { return l.l.Sync() }

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

// New creates a Logger writing json output to w.
// Messages below the given level are discarded.
func New(w io.Writer, level Level, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.AddSync(w),
		level,
	)
	return &Logger{l: zap.New(core, opts...), level: level}
}

// NewWithFilters works like New but additionally applies zapfilter rules
// (e.g. "debug:telemetry* info:*") to the core.
func NewWithFilters(w io.Writer, level Level, rules string, opts ...Option) *Logger {
	base := New(w, level, opts...)
	if rules == "" {
		return base
	}
	filtered := base.l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(c, zapfilter.MustParseRules(rules))
	}))
	return &Logger{l: filtered, level: level}
}

// DevLogger returns a console logger for local development and tests.
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		level,
	)
	return &Logger{l: zap.New(core, opts...), level: level}
}

var (
	std = New(os.Stderr, InfoLevel)
	mu  sync.Mutex
)

func Default() *Logger { return std }

// ResetDefault replaces the package level default logger.
// Not safe while other goroutines log through the default.
func ResetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

func Debug(msg string, fields ...Field) { std.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { std.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { std.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { std.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { std.Fatal(msg, fields...) }

func Fatalf(template string, args ...interface{}) {
	std.l.Sugar().Fatalf(template, args...)
}
