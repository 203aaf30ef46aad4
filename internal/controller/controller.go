// Package controller talks to the audio backend. It keeps no device state:
// callers re-list after every write to observe what the backend actually did.
package controller

import (
	"context"
	"strconv"

	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/logging"
	"github.com/hongyan/audiocontrol/internal/runner"
	"github.com/hongyan/audiocontrol/internal/status"
)

// DefaultBackend is the PipeWire control utility
const DefaultBackend = "wpctl"

// Controller lists sinks and issues volume / default-sink commands
type Controller struct {
	runner  runner.Runner
	backend string
}

// New creates a controller. An empty backend selects wpctl.
func New(r runner.Runner, backend string) *Controller {
	if backend == "" {
		backend = DefaultBackend
	}
	return &Controller{
		runner:  r,
		backend: backend,
	}
}

// Backend returns the command used to reach the audio server
func (c *Controller) Backend() string {
	return c.backend
}

// ListDevices queries the backend and returns the current sinks.
// It always returns at least one entry: the placeholder stands in when the
// query fails or reports no sinks.
func (c *Controller) ListDevices(ctx context.Context) []device.Device {
	out, err := c.runner.Run(ctx, c.backend, "status")
	if err != nil {
		logging.Error("Failed to query audio status: %v", err)
		return []device.Device{device.Placeholder()}
	}

	res := status.Parse(out)
	if !res.SawSinks {
		logging.Warn("No sinks section in %s status output", c.backend)
	}
	if len(res.Devices) == 0 {
		return []device.Device{device.Placeholder()}
	}

	logging.Debug("Found %d sinks", len(res.Devices))
	return res.Devices
}

// SetVolume sets the absolute volume of a sink. The fraction is passed to
// the backend as given. Failures are logged only.
func (c *Controller) SetVolume(ctx context.Context, deviceID string, fraction float64) {
	if deviceID == "" {
		logging.Debug("SetVolume skipped: no device id")
		return
	}

	value := strconv.FormatFloat(fraction, 'f', -1, 64)
	if _, err := c.runner.Run(ctx, c.backend, "set-volume", deviceID, value); err != nil {
		logging.Error("Failed to set volume of %s to %s: %v", deviceID, value, err)
		return
	}
	logging.Debug("Volume of %s set to %s", deviceID, value)
}

// SetDefaultDevice makes a sink the default output. Failures are logged only.
func (c *Controller) SetDefaultDevice(ctx context.Context, deviceID string) {
	if deviceID == "" {
		logging.Debug("SetDefaultDevice skipped: no device id")
		return
	}

	if _, err := c.runner.Run(ctx, c.backend, "set-default", deviceID); err != nil {
		logging.Error("Failed to set default sink %s: %v", deviceID, err)
		return
	}
	logging.Info("Default sink set to %s", deviceID)
}
