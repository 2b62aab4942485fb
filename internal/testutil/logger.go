// Package testutil provides shared test helpers for chipmatch packages.
package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger returns a development Zap logger for use in tests.
// Panics on construction failure (should never happen in tests).
func Logger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("testutil.Logger: " + err.Error())
	}
	return l
}

// QuietLogger returns a logger that only emits errors, for tests that
// run many engine queries.
func QuietLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	l, err := cfg.Build()
	if err != nil {
		panic("testutil.QuietLogger: " + err.Error())
	}
	return l
}
