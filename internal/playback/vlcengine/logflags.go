package vlcengine

import "sync/atomic"

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled toggles verbose libVLC file logging. It must be
// called before the first engine is created to have any effect.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}

func isTraceLoggingEnabled() bool {
	return traceLogEnabled.Load()
}
