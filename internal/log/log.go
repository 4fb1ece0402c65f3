// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// New builds a logger writing to stderr. Debug selects the human-readable development encoder
// and debug level; otherwise JSON at info level is written.
func New(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	// stdout may carry the prepared bundle
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Init initializes the package-level logger
func Init(debug bool) error {
	zapLogger, err := New(debug)
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	baseLogger = zapLogger
	log = zapLogger.WithOptions(zap.AddCallerSkip(1)).Sugar()
	return nil
}

// GetZapLogger returns the base zap logger
func GetZapLogger() *zap.Logger {
	if baseLogger == nil {
		// Fallback logger if not initialized
		baseLogger, _ = New(false)
		log = baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar()
	}
	return baseLogger
}

// GetSugaredLogger returns a sugared logger for injection into components
func GetSugaredLogger() *zap.SugaredLogger {
	return GetZapLogger().Sugar()
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func sugared() *zap.SugaredLogger {
	if log == nil {
		GetZapLogger()
	}
	return log
}

// Package-level convenience functions
func Debugf(template string, args ...interface{}) {
	sugared().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	sugared().Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	sugared().Infow(msg, keysAndValues...)
}

func Warnf(template string, args ...interface{}) {
	sugared().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugared().Errorf(template, args...)
}

func Fatal(args ...interface{}) {
	sugared().Fatal(args...)
	os.Exit(1)
}

func Fatalf(template string, args ...interface{}) {
	sugared().Fatalf(template, args...)
	os.Exit(1)
}
