package util

import "go.uber.org/zap"

// IgnoreError calls fn and discards the error it returns.  Example `defer util.IgnoreError(file.Close)`
func IgnoreError(fn func() error) {
	_ = fn()
}

// LogError calls fn and logs the error it returns, if any, as a warning.
func LogError(logger *zap.SugaredLogger, msg string, fn func() error) {
	if err := fn(); err != nil {
		logger.Warnw(msg, "error", err)
	}
}
