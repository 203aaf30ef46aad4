// Package launcher starts the optional companion mixer applications.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hongyan/audiocontrol/internal/logging"
)

var (
	lookPath = exec.LookPath
	startCmd = func(cmd *exec.Cmd) error { return cmd.Start() }
)

// ErrUnavailable is returned when launching an application that is not installed
var ErrUnavailable = errors.New("launcher not available")

// Spec describes a companion application
type Spec struct {
	Name    string   `json:"name" mapstructure:"name"`
	Command string   `json:"command" mapstructure:"command"`
	Args    []string `json:"args" mapstructure:"args"`
	// Wrapper, when installed, is used to run Command (e.g. a launch-or-focus helper)
	Wrapper string `json:"wrapper" mapstructure:"wrapper"`
}

// Launcher is a resolved companion application
type Launcher struct {
	Spec
	Path        string // resolved binary, empty when unavailable
	WrapperPath string
}

// DefaultSpecs returns the companion applications offered out of the box
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: "wiremix", Command: "wiremix", Wrapper: "omarchy-launch-or-focus-tui"},
		{Name: "PulseAudio Volume Control", Command: "pavucontrol"},
	}
}

// Detect resolves each spec against PATH. Missing applications are kept
// but marked unavailable so the UI can show them disabled.
func Detect(specs []Spec) []Launcher {
	result := make([]Launcher, 0, len(specs))
	for _, s := range specs {
		l := Launcher{Spec: s}
		if path, err := lookPath(s.Command); err == nil {
			l.Path = path
		}
		if s.Wrapper != "" {
			if path, err := lookPath(s.Wrapper); err == nil {
				l.WrapperPath = path
			}
		}
		logging.Debug("Launcher %s available=%v wrapper=%q", s.Name, l.Available(), l.WrapperPath)
		result = append(result, l)
	}
	return result
}

// Available reports whether the application was found
func (l Launcher) Available() bool {
	return l.Path != ""
}

// Argv returns the command line used to start the application
func (l Launcher) Argv() []string {
	if l.WrapperPath != "" {
		return append([]string{l.WrapperPath, l.Command}, l.Args...)
	}
	return append([]string{l.Path}, l.Args...)
}

// Start runs the application detached from the popup; it is not waited on
func (l Launcher) Start() error {
	if !l.Available() {
		return fmt.Errorf("%w: %s", ErrUnavailable, l.Name)
	}

	argv := l.Argv()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = os.Environ()
	detach(cmd)

	if err := startCmd(cmd); err != nil {
		logging.Error("Failed to launch %s: %v", l.Name, err)
		return fmt.Errorf("failed to launch %s: %w", l.Name, err)
	}
	if cmd.Process != nil {
		// reap in the background so the child does not linger as a zombie
		go func() { _ = cmd.Wait() }()
	}

	logging.Info("Launched %s (%v)", l.Name, argv)
	return nil
}
