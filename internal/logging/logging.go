// Package logging provides the printf-style process logger used across
// audiocontrol. Output goes to a JSON log file through zap; until InitLogger
// is called every call is discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "audiocontrol.log"

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
	base  *zap.Logger
	file  *os.File
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	runID = uuid.NewString()
)

// InitLogger opens (or creates) the log file inside dir and routes all
// subsequent log calls to it. It returns the full path of the log file.
func InitLogger(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	file = f
	install(zapcore.AddSync(f))
	return path, nil
}

// InitWithWriter routes log output to w. Used by CLI verbose mode and tests.
func InitWithWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	install(zapcore.AddSync(w))
}

func install(ws zapcore.WriteSyncer) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	base = zap.New(core).With(zap.String("run", runID))
	sugar = base.Sugar()
}

// SetLevel changes the minimum level. Unknown names fall back to info.
func SetLevel(name string) {
	level.SetLevel(ParseLevel(name))
}

// ParseLevel maps a config level name to a zap level
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace", "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// RunID identifies this process in the log file
func RunID() string {
	return runID
}

// Close flushes and releases the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	sugar = zap.NewNop().Sugar()
}

func closeLocked() {
	if base != nil {
		_ = base.Sync()
		base = nil
	}
	if file != nil {
		_ = file.Close()
		file = nil
	}
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	logger().Debugf(format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	logger().Infof(format, args...)
}

// Warn logs a warning
func Warn(format string, args ...interface{}) {
	logger().Warnf(format, args...)
}

// Error logs an error
func Error(format string, args ...interface{}) {
	logger().Errorf(format, args...)
}
