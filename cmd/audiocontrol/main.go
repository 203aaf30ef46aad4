package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/carlmjohnson/versioninfo"

	"github.com/hongyan/audiocontrol/internal/audio"
	"github.com/hongyan/audiocontrol/internal/config"
	"github.com/hongyan/audiocontrol/internal/controller"
	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/errorhandler"
	"github.com/hongyan/audiocontrol/internal/launcher"
	"github.com/hongyan/audiocontrol/internal/logging"
	"github.com/hongyan/audiocontrol/internal/notifier"
	"github.com/hongyan/audiocontrol/internal/platform"
	"github.com/hongyan/audiocontrol/internal/runner"
	"github.com/hongyan/audiocontrol/internal/ui"
)

func main() {
	// logToConsole=true, exitOnCritical=false, recoveryEnabled=true
	errorhandler.Init(true, false, true)
	defer errorhandler.HandlePanic()

	command := "popup"
	var args []string
	if len(os.Args) >= 2 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	switch command {
	case "popup":
		os.Exit(withApp(runPopup))
	case "list":
		asJSON := len(args) > 0 && args[0] == "--json"
		os.Exit(withApp(func(ctx context.Context, a *app) int {
			return runList(ctx, a.ctrl, os.Stdout, asJSON)
		}))
	case "set-volume":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Error: set-volume requires <device-id> <percent>\n")
			printUsage()
			os.Exit(1)
		}
		percent, err := parsePercent(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(withApp(func(ctx context.Context, a *app) int {
			a.ctrl.SetVolume(ctx, args[0], device.Fraction(percent))
			return 0
		}))
	case "set-default":
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Error: set-default requires <device-id>\n")
			printUsage()
			os.Exit(1)
		}
		os.Exit(withApp(func(ctx context.Context, a *app) int {
			a.ctrl.SetDefaultDevice(ctx, args[0])
			return 0
		}))
	case "version", "--version", "-v":
		fmt.Printf("audiocontrol %s\n", versionString())
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// app holds what every backend-facing command needs
type app struct {
	cfg  *config.Config
	ctrl *controller.Controller
}

// withApp runs fn with config, logging and a controller set up. A panic in fn
// is logged before the log file closes and turns into exit code 1.
func withApp(fn func(ctx context.Context, a *app) int) (code int) {
	recoverExit := func() {
		if r := recover(); r != nil {
			errorhandler.ReportPanic(r)
			code = 1
		}
	}
	defer recoverExit()

	cfg, err := config.LoadDefaultPath()
	if err != nil {
		errorhandler.HandleCriticalError(err, "Failed to load config")
		return 1
	}
	if err := cfg.Validate(); err != nil {
		errorhandler.HandleCriticalError(err, "Invalid config")
		return 1
	}

	if _, err := logging.InitLogger(platform.StateDir()); err != nil {
		errorhandler.HandleError(err, "Failed to initialize logger")
	}
	defer logging.Close()
	logging.SetLevel(cfg.LogLevel)
	logging.Debug("audiocontrol %s starting, backend=%s", versionString(), cfg.Backend.Command)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:  cfg,
		ctrl: controller.New(runner.NewExecRunner(cfg.BackendTimeout()), cfg.Backend.Command),
	}

	// runs before logging.Close so the stack reaches the log file
	defer recoverExit()
	return fn(ctx, a)
}

func runPopup(ctx context.Context, a *app) int {
	feedback := audio.NewFeedback(a.cfg.Feedback)
	defer feedback.Close()

	n := notifier.New(a.cfg)
	defer n.Close()

	err := ui.Run(ctx, ui.Options{
		Controller: a.ctrl,
		Feedback:   feedback,
		Notifier:   n,
		Launchers:  launcher.Detect(a.cfg.Launchers),
		Theme:      a.cfg.UI.Theme,
		Width:      a.cfg.UI.Width,
	})
	if err != nil && ctx.Err() == nil {
		errorhandler.HandleCriticalError(err, "Popup failed")
		return 1
	}
	return 0
}

func runList(ctx context.Context, ctrl *controller.Controller, w io.Writer, asJSON bool) int {
	devices := ctrl.ListDevices(ctx)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(devices); err != nil {
			errorhandler.HandleError(err, "Failed to encode device list")
			return 1
		}
		return 0
	}

	for _, d := range devices {
		marker := " "
		if d.IsActive {
			marker = "*"
		}
		id := d.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s %4s  %-10s %3d%%  %s\n", marker, id, d.Category, d.Percent(), d.Name)
	}
	return 0
}

// parsePercent accepts an integer percentage, optionally suffixed with %
func parsePercent(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, fmt.Errorf("invalid volume %q: expected a percentage 0-100", s)
	}
	if p != device.ClampPercent(p) {
		return 0, fmt.Errorf("volume %d out of range 0-100", p)
	}
	return p, nil
}

func versionString() string {
	return versioninfo.Short()
}

func printUsage() {
	fmt.Println("audiocontrol - Volume control popup for PipeWire")
	fmt.Println()
	fmt.Printf("Version: %s\n", versionString())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  audiocontrol [popup]")
	fmt.Println("  audiocontrol list [--json]")
	fmt.Println("  audiocontrol set-volume <device-id> <percent>")
	fmt.Println("  audiocontrol set-default <device-id>")
	fmt.Println("  audiocontrol version")
	fmt.Println("  audiocontrol help")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  popup                   Show the volume popup (default)")
	fmt.Println("  list                    Print output devices; --json for machine-readable output")
	fmt.Println("  set-volume              Set a device volume, e.g. set-volume 64 40")
	fmt.Println("  set-default             Make a device the default output")
	fmt.Println("  version                 Show version information")
	fmt.Println("  help                    Show this help message")
	fmt.Println()
	fmt.Println("Popup keys:")
	fmt.Println("  ` 1-9 0   Volume 0%, 10-90%, 100%")
	fmt.Println("  - =       Volume down / up by 5%")
	fmt.Println("  ↑ ↓ enter Choose the default output")
	fmt.Println("  w p       Open wiremix / pavucontrol")
	fmt.Println("  q         Close")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("  %s\n", config.DefaultPath())
	fmt.Println("  Environment overrides use the AUDIOCONTROL_ prefix, e.g. AUDIOCONTROL_BACKEND_COMMAND")
	fmt.Println()
}
