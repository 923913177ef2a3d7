// Package logger builds the process-wide zap logger in one of three formats:
// a coloured console for development, JSON, or TSKV lines for log shippers
// that index tab-separated key=value records.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for format ("dev", "json" or "tskv") at the given
// level name ("debug", "info", ...).
func New(format, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	switch format {
	case "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	case "json", "":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	case "tskv":
		return NewTSKV(zapcore.Lock(os.Stdout), lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NewTSKV writes TSKV records to ws.
func NewTSKV(ws zapcore.WriteSyncer, enab zapcore.LevelEnabler) *zap.Logger {
	core := zapcore.NewCore(NewTSKVEncoder(), ws, enab)
	return zap.New(core, zap.AddCaller())
}
