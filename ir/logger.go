package ir

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	nop    = zap.NewNop()
	logger atomic.Pointer[zap.Logger]
)

// Logger returns the logger for arena growth and release. It is a no-op logger until SetLogger
// installs another.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger installs l, named "ir". Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger.Store(nil)
		return
	}
	logger.Store(l.Named("ir"))
}
