package logger

import (
	"io"
	"os"
	"strings"

	"github.com/yudaprama/timeid/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger        *zap.Logger
	sugaredLogger *zap.SugaredLogger
)

// InitLogger builds the process logger from cfg and installs it for S and L.
func InitLogger(cfg models.LogConfig) *zap.Logger {
	logger = New(cfg, os.Stderr)
	sugaredLogger = logger.Sugar()
	return logger
}

// New builds a logger without touching the globals. Console output goes to
// console, which keeps stdout free for generated ids.
func New(cfg models.LogConfig, console io.Writer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core
	output := strings.ToLower(cfg.Output)

	if (output == "file" || output == "both") && cfg.File != "" {
		// Rotated files get plain JSON so they stay machine readable.
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level))
	}

	if output != "file" || len(cores) == 0 {
		consoleConfig := encoderConfig
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if console != os.Stderr && console != os.Stdout {
			consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(console), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Sync flushes the global logger, if any.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// S returns the global sugared logger instance
func S() *zap.SugaredLogger {
	if sugaredLogger == nil {
		// If logger is not initialized, provide a default emergency logger
		defaultLogger, _ := zap.NewDevelopment()
		return defaultLogger.Sugar()
	}
	return sugaredLogger
}

// L returns the global logger instance
func L() *zap.Logger {
	if logger == nil {
		defaultLogger, _ := zap.NewDevelopment()
		return defaultLogger
	}
	return logger
}
