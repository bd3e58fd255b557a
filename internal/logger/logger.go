// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where logs go. An empty Directory logs to stderr.
type Config struct {
	Directory string
	Level     zapcore.Level
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		MessageKey:    "msg",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

// New returns a console logger, writing to a rotated file per run when
// cfg.Directory is set.
func New(cfg Config) (*zap.Logger, error) {
	writer := zapcore.AddSync(os.Stderr)
	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, fmt.Errorf("create logs directory: %w", err)
		}
		runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
		writer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(cfg.Directory, fmt.Sprintf("parcelhub-%s.log", runTimestamp)),
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		})
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), writer, cfg.Level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
