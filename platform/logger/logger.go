package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxFieldsKey struct{}

type logger struct {
	zapLogger *zap.Logger
}

var (
	mu           sync.RWMutex
	globalLogger = &logger{zapLogger: zap.NewNop()}
	dynamicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// Init builds the process-wide logger. Until it is called every log call is a no-op.
func Init(levelStr string, asJSON bool) error {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		level = zapcore.InfoLevel
	}
	dynamicLevel.SetLevel(level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := "console"
	if asJSON {
		encoding = "json"
	}

	cfg := zap.Config{
		Level:            dynamicLevel,
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	zl, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	mu.Lock()
	globalLogger = &logger{zapLogger: zl}
	mu.Unlock()

	return nil
}

// SetNopLogger resets the global logger to a no-op one.
func SetNopLogger() {
	mu.Lock()
	globalLogger = &logger{zapLogger: zap.NewNop()}
	mu.Unlock()
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(levelStr string) {
	level, err := zapcore.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return
	}
	dynamicLevel.SetLevel(level)
}

func Sync() error {
	return L().zapLogger.Sync()
}

func L() *logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// ContextWithFields attaches fields that every log call made with ctx will carry.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	existing, _ := ctx.Value(ctxFieldsKey{}).([]Field)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

func With(fields ...Field) *logger {
	return &logger{zapLogger: L().zapLogger.With(fields...)}
}

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }

func (l *logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Debug(msg, withContextFields(ctx, fields)...)
}

func (l *logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Info(msg, withContextFields(ctx, fields)...)
}

func (l *logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Warn(msg, withContextFields(ctx, fields)...)
}

func (l *logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.zapLogger.Error(msg, withContextFields(ctx, fields)...)
}

func (l *logger) With(fields ...Field) *logger {
	return &logger{zapLogger: l.zapLogger.With(fields...)}
}

// Zap exposes the underlying logger for libraries that want a *zap.Logger.
func (l *logger) Zap() *zap.Logger { return l.zapLogger }

func withContextFields(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}
	ctxFields, _ := ctx.Value(ctxFieldsKey{}).([]Field)
	if len(ctxFields) == 0 {
		return fields
	}
	out := make([]Field, 0, len(ctxFields)+len(fields))
	out = append(out, ctxFields...)
	return append(out, fields...)
}
