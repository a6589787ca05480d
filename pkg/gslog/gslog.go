// pkg/gslog/gslog.go

// Package gslog is the severity-tagged line sink (spec component G2). It
// wraps a single zap.Logger constructed once at process startup and passed
// explicitly through the daemon, rather than mutated through a package
// global the way a short-lived CLI invocation would.
package gslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the façade the rest of gitstatusd depends on.
type Logger struct {
	z *zap.Logger
}

// New builds a JSON-encoded logger at the given level ("debug", "info",
// "warn", "error"). Output always goes to stderr: stdout is reserved for
// the response protocol (T2).
func New(level string) (*Logger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	cfg := zap.Config{
		Level:            lvl,
		Development:      false,
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't care about log output.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// With returns a logger decorated with the given fields, e.g. the request
// id, so every line for a request carries it without threading it through
// every call site.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

// Sync flushes any buffered log entries. Call once at shutdown.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
