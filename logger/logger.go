package logger

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is a zerolog logger bound to a service name.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// New builds a logger that writes to cfg.Output.
func New(cfg *Config, service string) *Logger {
	return NewWithWriter(cfg, service, cfg.writer())
}

// NewWithWriter is New with an explicit destination. The configured level
// becomes the process-wide zerolog level; an unknown level means info.
func NewWithWriter(cfg *Config, service string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var zc zerolog.Context
	if cfg.console() {
		zc = zerolog.New(newConsoleWriter(w, service, cfg.NoColor)).With().Timestamp()
	} else {
		zc = zerolog.New(w).With().Str(FieldService, service)
		if cfg.Timestamp {
			zc = zc.Timestamp()
		}
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger(), service: service}
}

// NewDefault returns an info-level console logger on stdout.
func NewDefault(service string) *Logger {
	return New(&Config{Level: "info", Format: "console", Output: "stdout", Timestamp: true}, service)
}

// NewFromEnv builds a logger from the LOG_* environment variables.
func NewFromEnv(service string) *Logger {
	cfg := ConfigFromEnv()
	return New(&cfg, service)
}

func (l *Logger) derive(zc zerolog.Context) *Logger {
	return &Logger{zl: zc.Logger(), service: l.service}
}

// WithContext adds the active span's trace and span ids and the request and
// correlation ids carried by ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		zc = zc.Str(FieldTraceID, sc.TraceID().String()).Str(FieldSpanID, sc.SpanID().String())
	}
	if id := RequestIDFromContext(ctx); id != "" {
		zc = zc.Str(FieldRequestID, id)
	}
	if v := ctx.Value(contextKey(FieldCorrelationID)); v != nil {
		zc = zc.Str(FieldCorrelationID, fmt.Sprint(v))
	}
	return l.derive(zc)
}

// WithComponent tags every line with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name))
}

// WithFields attaches fields to every line.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return l.derive(l.zl.With().Fields(fields))
}

// WithError attaches err to every line.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.zl.With().Err(err))
}

func (l *Logger) Debug(msg string, fields ...map[string]any) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...map[string]any)  { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...map[string]any)  { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...map[string]any) { emit(l.zl.Error(), msg, fields) }

// emit tolerates the nil event zerolog hands out for filtered levels.
func emit(e *zerolog.Event, msg string, fields []map[string]any) {
	if e == nil {
		return
	}
	for _, m := range fields {
		e.Fields(m)
	}
	e.Msg(msg)
}

var global atomic.Pointer[Logger]

// Init installs the global logger from cfg and points zerolog's package
// logger at it.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	l := New(cfg, cfg.ServiceName)
	global.Store(l)
	log.Logger = l.zl
}

// SetGlobalLogger replaces the global logger.
func SetGlobalLogger(l *Logger) { global.Store(l) }

// GetGlobalLogger returns the global logger, installing a default one on
// first use.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewDefault("default"))
	return global.Load()
}

func Debug(msg string, fields ...map[string]any) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]any)  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]any)  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]any) { GetGlobalLogger().Error(msg, fields...) }

// WithContext is GetGlobalLogger().WithContext.
func WithContext(ctx context.Context) *Logger { return GetGlobalLogger().WithContext(ctx) }

// WithComponent is GetGlobalLogger().WithComponent.
func WithComponent(name string) *Logger { return GetGlobalLogger().WithComponent(name) }
