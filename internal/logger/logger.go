// Package logger provides the process-wide structured logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

// serviceName is stamped on every log entry so fintrack lines stay
// distinguishable when several services log to one stream.
const serviceName = "fintrack"

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// "production" gets a JSON encoder; all other environments get a
// human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		tag := zap.Fields(zap.String("service", serviceName))

		var base *zap.Logger
		var err error
		if env == "production" {
			base, err = zap.NewProduction(tag)
		} else {
			base, err = zap.NewDevelopment(tag)
		}
		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// if Init has not been called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
