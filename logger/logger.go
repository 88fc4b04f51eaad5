package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"vcdesk/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zap.Logger: a console core on stdout, teed with a rotating
// JSON file core when OutputFile is set.
func New(opts config.LogConfig) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoding := "json"
	if opts.Environment == "dev" || opts.Format == "console" {
		encoding = "console"
	}
	encoderCfg := encoderConfig(encoding)

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder(encoding, encoderCfg), zapcore.Lock(os.Stdout), lvl),
	}

	if opts.OutputFile != "" {
		fileCore, err := newFileCore(opts, lvl)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fileCore)
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if opts.Environment != "" {
		logger = logger.With(zap.String("env", opts.Environment))
	}
	return logger, nil
}

// Named returns a component logger, falling back to a no-op logger.
func Named(log *zap.Logger, component string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.Named(component)
}

func newFileCore(opts config.LogConfig, lvl zapcore.Level) (zapcore.Core, error) {
	dir := filepath.Dir(opts.OutputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.OutputFile,
		MaxSize:    orDefault(opts.MaxSizeMB, 10), // MB before rotation
		MaxBackups: orDefault(opts.MaxBackups, 5),
		MaxAge:     orDefault(opts.MaxAgeDays, 7), // days
		Compress:   opts.Compress,
	})

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		fileWriter,
		lvl,
	), nil
}

func stdoutEncoder(encoding string, cfg zapcore.EncoderConfig) zapcore.Encoder {
	if encoding == "console" {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

// encoderConfig returns a zapcore.EncoderConfig based on log format.
func encoderConfig(format string) zapcore.EncoderConfig {
	if format == "console" {
		return zap.NewDevelopmentEncoderConfig()
	}
	return zap.NewProductionEncoderConfig()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
