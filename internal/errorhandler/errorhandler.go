package errorhandler

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/hongyan/audiocontrol/internal/logging"
)

// Handler controls how errors and panics are reported
type Handler struct {
	logToConsole    bool
	exitOnCritical  bool
	recoveryEnabled bool
	console         io.Writer
	exit            func(code int)
}

var (
	global   = &Handler{console: os.Stderr, exit: os.Exit, recoveryEnabled: true}
	globalMu sync.RWMutex
)

// Init configures the global error handler
func Init(logToConsole, exitOnCritical, recoveryEnabled bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = &Handler{
		logToConsole:    logToConsole,
		exitOnCritical:  exitOnCritical,
		recoveryEnabled: recoveryEnabled,
		console:         os.Stderr,
		exit:            os.Exit,
	}
}

func current() *Handler {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// HandleError logs a non-fatal error with context
func HandleError(err error, context string) {
	if err == nil {
		return
	}
	current().report("ERROR", err, context)
}

// HandleCriticalError logs a fatal error and exits if configured to do so
func HandleCriticalError(err error, context string) {
	if err == nil {
		return
	}
	h := current()
	h.report("CRITICAL", err, context)
	if h.exitOnCritical {
		h.exit(1)
	}
}

// HandlePanic recovers from a panic in the calling goroutine.
// Must be invoked directly via defer.
func HandlePanic() {
	h := current()
	if !h.recoveryEnabled {
		return
	}
	if r := recover(); r != nil {
		h.reportPanic(r)
	}
}

// ReportPanic reports a value already recovered by the caller, for
// functions that must turn a panic into an exit code.
func ReportPanic(r interface{}) {
	current().reportPanic(r)
}

// SafeGo runs fn in a goroutine with panic recovery
func SafeGo(fn func()) {
	go func() {
		defer HandlePanic()
		fn()
	}()
}

func (h *Handler) report(severity string, err error, context string) {
	logging.Error("%s: %s: %v", severity, context, err)
	if h.logToConsole && h.console != nil {
		fmt.Fprintf(h.console, "%s: %s: %v\n", severity, context, err)
	}
}

func (h *Handler) reportPanic(r interface{}) {
	stack := debug.Stack()
	logging.Error("PANIC recovered: %v\n%s", r, stack)
	if h.logToConsole && h.console != nil {
		fmt.Fprintf(h.console, "PANIC recovered: %v\n", r)
	}
}
