// Package runnertest provides an in-memory runner.Runner for tests.
package runnertest

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation made through a Fake
type Call struct {
	Name string
	Args []string
}

// String renders the call as a command line
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake is an in-memory runner.Runner. Responses are keyed by the full
// command line ("wpctl status"); unknown commands return Default / DefaultErr.
type Fake struct {
	mu         sync.Mutex
	calls      []Call
	Outputs    map[string]string
	Errors     map[string]error
	Default    string
	DefaultErr error
	// OnRun, when set, is called after the call is recorded and may mutate the fake
	OnRun func(f *Fake, call Call)
}

// NewFake creates a Fake with empty response tables
func NewFake() *Fake {
	return &Fake{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// Run records the call and returns the canned response
func (f *Fake) Run(ctx context.Context, name string, args ...string) (string, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	hook := f.OnRun
	f.mu.Unlock()

	if hook != nil {
		hook(f, call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := call.String()
	if err, ok := f.Errors[key]; ok {
		return "", err
	}
	if out, ok := f.Outputs[key]; ok {
		return out, nil
	}
	return f.Default, f.DefaultErr
}

// SetOutput sets the stdout returned for a command line
func (f *Fake) SetOutput(cmdline, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Outputs[cmdline] = out
}

// Calls returns a copy of the recorded calls
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CommandLines returns the recorded calls rendered as strings
func (f *Fake) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Reset forgets recorded calls
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
