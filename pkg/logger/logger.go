// Package logger builds the process-wide zap logger.
package logger

import (
	"log"

	"go.uber.org/zap"
)

// Logger wraps the zap.Logger so main can hand out one configured instance.
type Logger struct {
	*zap.Logger
}

func newLogger() *Logger {
	customLog, err := zap.NewProduction()
	if err != nil {
		log.Println(err)
	}
	return &Logger{Logger: customLog}
}

// CreateLogger builds a production logger at the given level. On a bad level
// it returns the default production logger together with the error.
func CreateLogger(level string) (*Logger, error) {
	l := newLogger()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return l, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return l, err
	}

	l.Logger = zl
	return l, nil
}
