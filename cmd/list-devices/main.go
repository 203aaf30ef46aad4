// ABOUTME: CLI tool to list audio output devices.
// ABOUTME: Shows PipeWire sinks by default, or miniaudio playback devices for the audioDevice option.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hongyan/audiocontrol/internal/audio"
	"github.com/hongyan/audiocontrol/internal/config"
	"github.com/hongyan/audiocontrol/internal/controller"
	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/runner"
)

func main() {
	hardware := flag.Bool("hardware", false, "List playback devices seen by the feedback player instead of PipeWire sinks")
	flag.Parse()

	if *hardware {
		os.Exit(listHardware(os.Stdout))
	}

	cfg, err := config.LoadDefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctrl := controller.New(runner.NewExecRunner(cfg.BackendTimeout()), cfg.Backend.Command)
	printSinks(os.Stdout, ctrl.ListDevices(context.Background()))
}

func printSinks(w io.Writer, devices []device.Device) {
	if len(devices) == 1 && devices[0].IsPlaceholder() {
		fmt.Fprintln(w, "No output devices found.")
		return
	}

	fmt.Fprintln(w, "Output devices:")
	fmt.Fprintln(w)
	for _, d := range devices {
		defaultMarker := ""
		if d.IsActive {
			defaultMarker = " (default)"
		}
		fmt.Fprintf(w, "  %s: %s [%d%%]%s\n", d.ID, d.Name, d.Percent(), defaultMarker)
	}
}

func listHardware(w io.Writer) int {
	devices, err := audio.ListDevices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing audio devices: %v\n", err)
		return 1
	}

	if len(devices) == 0 {
		fmt.Fprintln(w, "No audio output devices found.")
		return 0
	}

	fmt.Fprintln(w, "Available audio output devices:")
	fmt.Fprintln(w)
	for i, dev := range devices {
		defaultMarker := ""
		if dev.IsDefault {
			defaultMarker = " (default)"
		}
		fmt.Fprintf(w, "  %d: %s%s\n", i, dev.Name, defaultMarker)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "To play the feedback sound on a specific device, add to config.json:")
	fmt.Fprintln(w, `  "feedback": {"audioDevice": "DEVICE_NAME"}`)
	return 0
}
