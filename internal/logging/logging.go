// Package logging builds the zap loggers used across the pipeline.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the process-wide logger.
//
// With verbose enabled it uses a development configuration: colorized
// console output, debug level, ISO8601 timestamps. Otherwise it uses
// zap's production configuration: JSON output, info level.
func New(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewProduction()
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	return config.Build(zap.AddStacktrace(zapcore.WarnLevel))
}

// Must returns the logger or panics. Used at process startup where a
// broken logger leaves nothing to report errors with anyway.
func Must(verbose bool) *zap.Logger {
	logger, err := New(verbose)
	if err != nil {
		panic(err)
	}
	return logger
}
