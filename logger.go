package lsm

import "go.uber.org/zap"

// log is the package-level diagnostic logger. It defaults to a no-op so
// that importing this package is silent by default; callers that want
// the block/SST load and seek tracing the Rust original emitted via
// println! can opt in with SetLogger.
var log = zap.NewNop()

// SetLogger installs the logger used for diagnostic tracing around
// block loads, SST opens, and seeks. Passing nil restores the no-op
// default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
