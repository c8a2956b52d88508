package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	SetLogger(NewConsoleLogger(false))
}

// NewConsoleLogger builds the coloured terminal logger used by the CLI and
// the e2e suite.
func NewConsoleLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.DisableCaller = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// SetLogger replaces the logger behind Info, Success, Warn, Error and Section.
func SetLogger(l *zap.Logger) {
	zap.ReplaceGlobals(l)
}

func Debug(format string, a ...interface{}) {
	zap.S().Debugf(format, a...)
}

func Info(format string, a ...interface{}) {
	zap.S().Infof(format, a...)
}

func Success(format string, a ...interface{}) {
	zap.S().With("status", "ok").Infof(format, a...)
}

func Warn(format string, a ...interface{}) {
	zap.S().Warnf(format, a...)
}

func Error(format string, a ...interface{}) {
	zap.S().Errorf(format, a...)
}

func Section(title string) {
	zap.S().Infof("══════════ %s ══════════", title)
}

func Sync() {
	_ = zap.L().Sync()
}
