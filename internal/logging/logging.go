// Package logging wraps zap behind the small interface the benchmark
// driver needs, the way drand's common/log
// package wraps it for the rest of that codebase.
package logging

import (
	"go.uber.org/zap"
)

// Logger is a structured, leveled logger.
type Logger interface {
	Debugw(msg string, keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(name string) Logger
}

type logger struct {
	*zap.SugaredLogger
}

// New builds a development-mode logger: human-readable console
// output, no sampling. Suitable for a short-lived CLI process.
func New() Logger {
	z, err := zap.NewDevelopment()
	if err != nil {
		// zap.NewDevelopment only fails on a broken encoder config;
		// fall back to a no-op core rather than panic in a library.
		z = zap.NewNop()
	}
	return &logger{z.Sugar()}
}

func (l *logger) With(args ...interface{}) Logger {
	return &logger{l.SugaredLogger.With(args...)}
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}
