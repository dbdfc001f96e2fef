// Package logging builds the zap-backed logr.Logger shared by all certsync
// components.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// ParseLevel maps a user-supplied level string to a zap level.
func ParseLevel(level string) (zapcore.Level, bool, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, true, nil
	case "info", "":
		return zapcore.InfoLevel, false, nil
	case "warn", "warning":
		return zapcore.WarnLevel, false, nil
	case "error":
		return zapcore.ErrorLevel, false, nil
	default:
		return zapcore.InfoLevel, false, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}

// New returns a named logger configured with the given level string.
func New(name, level string) (logr.Logger, error) {
	zapLevel, development, err := ParseLevel(level)
	if err != nil {
		return logr.Logger{}, err
	}
	atomic := zap.NewAtomicLevelAt(zapLevel)
	opts := crzap.Options{Development: development, Level: &atomic}
	logger := crzap.New(crzap.UseFlagOptions(&opts))
	if name != "" {
		logger = logger.WithName(name)
	}
	return logger, nil
}
