package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxFieldsKey struct{}

// Logger is a context-aware wrapper over zap.
type Logger struct {
	zl *zap.Logger
}

var (
	mu     sync.RWMutex
	global = &Logger{zl: zap.NewNop()}
)

// Init builds the global logger. Unknown levels fall back to info.
func Init(level string, asJSON bool) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("logger.Init: parse level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if !asJSON {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger.Init: build: %w", err)
	}

	mu.Lock()
	global = &Logger{zl: zl}
	mu.Unlock()
	return nil
}

// SetNopLogger silences the global logger. Used by tests.
func SetNopLogger() {
	mu.Lock()
	global = &Logger{zl: zap.NewNop()}
	mu.Unlock()
}

func L() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// ContextWithFields attaches fields that every log call made with ctx will carry.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	prev, _ := ctx.Value(ctxFieldsKey{}).([]Field)
	merged := make([]Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

func fieldsFrom(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}
	ctxFields, _ := ctx.Value(ctxFieldsKey{}).([]Field)
	if len(ctxFields) == 0 {
		return fields
	}
	return append(append(make([]Field, 0, len(ctxFields)+len(fields)), ctxFields...), fields...)
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{zl: l.zl.With(fields...)}
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.zl.Debug(msg, fieldsFrom(ctx, fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.zl.Info(msg, fieldsFrom(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.zl.Warn(msg, fieldsFrom(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.zl.Error(msg, fieldsFrom(ctx, fields)...)
}

func (l *Logger) Sync() error { return l.zl.Sync() }

func With(fields ...Field) *Logger { return L().With(fields...) }

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }
