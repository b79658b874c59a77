// Package logger holds the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	Level      string
	Format     string
	Service    string
	Writer     io.Writer
	WithCaller bool
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER.
func FromEnv() Options {
	return Options{
		Level:      strings.ToLower(getenv("LOG_LEVEL", "info")),
		Format:     strings.ToLower(getenv("LOG_FORMAT", "console")),
		Service:    getenv("LOG_SERVICE", "conveyor"),
		WithCaller: getenv("LOG_CALLER", "") == "true",
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

// Get returns the root logger, initializing it from the environment on first
// use.
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init builds the root logger. Only the first call has any effect.
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: opt.Writer != nil}
		}

		ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if opt.Service != "" {
			ctx = ctx.Str("service", opt.Service)
		}

		log := ctx.Logger()
		if opt.WithCaller {
			log = log.With().Caller().Logger()
		}

		root.Store(&log)
		inited.Store(true)
	})
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{}

// WithRequest annotates ctx with a request id.
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, reqID)
}

// C returns a child of the root logger carrying ctx's request id.
func C(ctx context.Context) *Logger {
	builder := Get().With()
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		builder = builder.Str("request_id", id)
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field.
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
