// Package logger provides a global, Sugared Zap logger with optional
// OpenTelemetry integration. It emits JSON logs to stderr, enriches every entry
// with the trace and span identifiers found in the context, and adds an OTEL
// bridge core when a telemetry logger provider is available.
//
// Until Init is called every function logs to a no-op logger, so library
// packages can log unconditionally.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKeyType struct{}

// ctxKey stores a request-scoped logger inside a context.Context.
var ctxKey = ctxKeyType{}

var (
	// baseLogger is the global SugaredLogger instance. It is set once by Init.
	baseLogger *zap.SugaredLogger

	// initBaseLoggerOnce ensures the logger is only configured a single time.
	initBaseLoggerOnce sync.Once

	// nopLogger is used while baseLogger is unset.
	nopLogger = zap.NewNop().Sugar()
)

// Init configures the global logger with the given minimum level
// ("debug", "info", "warn", "error", "panic", "fatal").
//
// If an OpenTelemetry LoggerProvider is registered via telemetry.LoggerProvider(),
// an OTEL bridge core is added so that logs are forwarded to the telemetry backend.
// Calling Init multiple times has no effect after the first successful call.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stderr),
				lvl,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore("blockfeed", otelzap.WithLoggerProvider(lp)))
		}

		baseLogger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Derive returns a copy of ctx carrying a logger enriched with the given
// key/value pairs. Every log call made with the returned context includes them.
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, ctxKey, deriveFromCtx(ctx, keysAndValues...))
}

// deriveFromCtx picks the logger stored in ctx (or the global one), attaches the
// active trace/span identifiers and the extra key/value pairs.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok || l == nil {
		l = baseLogger
	}
	if l == nil {
		l = nopLogger
	}

	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		l = l.With(
			"trace_id", spanCtx.TraceID().String(),
			"span_id", spanCtx.SpanID().String(),
		)
	}

	if len(keysAndValues) > 0 {
		l = l.With(keysAndValues...)
	}

	return l
}

// Sync flushes any buffered log entries. It should be called on application
// shutdown to ensure all logs are written out.
func Sync() error {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.Sync()
}

// log writes msg at the given level using the logger derived from ctx.
func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Logw(level, msg, keysAndValues...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}

// Fatal logs a fatal-level message (and then exits) with optional key/value context.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.FatalLevel, msg, keysAndValues...)
}
