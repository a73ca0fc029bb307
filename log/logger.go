package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines an interface for logging messages at various levels.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

type logger struct {
	zap *zap.Logger
}

var _ Logger = &logger{}

// NewLogger creates a new logger.
// If isProduction is set, the logger writes JSON to the given file and
// stderr. Otherwise, it writes human-readable output to stdout.
func NewLogger(isProduction bool, filename, level string) (Logger, error) {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		parsedLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if isProduction {
		config = zap.NewProductionConfig()
		if filename != "" {
			config.OutputPaths = []string{filename, "stderr"}
		}
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(parsedLevel)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &logger{zap: zapLogger}, nil
}

// NewNopLogger creates a no-op logger for tests.
func NewNopLogger() Logger {
	return &logger{zap: zap.NewNop()}
}

func (l *logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}
