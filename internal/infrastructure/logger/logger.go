package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"estoque/internal/config"
)

// New builds a JSON logger. With a file configured, entries go to a rotating
// log file so they stay out of the interactive screen; otherwise to stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer
	if cfg.File != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller()), nil
}
