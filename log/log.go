package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

// field helpers, so callers don't need to import zap
var (
	String     = zap.String
	Int        = zap.Int
	Uint       = zap.Uint
	Float64    = zap.Float64
	Bool       = zap.Bool
	Any        = zap.Any
	Duration   = zap.Duration
	Time       = zap.Time
	ErrorField = zap.Error

	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip
)

type Logger struct {
	l     *zap.Logger
	level Level
}

var std = New(os.Stderr, InfoLevel)

func Default() *Logger {
	return std
}

// ResetDefault replaces the logger used by the package level functions.
// Not thread safe, call it during startup.
func ResetDefault(l *Logger) {
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Fatal = std.Fatal
}

var (
	Debug = std.Debug
	Info  = std.Info
	Warn  = std.Warn
	Error = std.Error
	Fatal = std.Fatal
)

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

// New creates a logger producing json output
func New(writer io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg.EncoderConfig),
		zapcore.AddSync(writer),
		level,
	)
	return &Logger{l: zap.New(core, opts...), level: level}
}

// DevLogger creates a logger producing console output
func DevLogger(writer io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg.EncoderConfig),
		zapcore.AddSync(writer),
		level,
	)
	return &Logger{l: zap.New(core, opts...), level: level}
}

// WithFilter restricts log output according to zapfilter rules,
// for example "debug+:calibration.* info+:*"
func WithFilter(rules string) (Option, error) {
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, err
	}
	return zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(c, filter)
	}), nil
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.l.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.l.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.l.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.l.Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...Field) {
	l.l.Fatal(msg, fields...)
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...), level: l.level}
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}
