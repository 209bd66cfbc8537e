package printer

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	nop    = zap.NewNop()
	logger atomic.Pointer[zap.Logger]
)

// Logger returns the logger Annotate falls back to when given none. It is a
// no-op logger until SetLogger installs another.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger installs l, named "printer". Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger.Store(nil)
		return
	}
	logger.Store(l.Named("printer"))
}
