package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/runner"
	"github.com/hongyan/audiocontrol/internal/runner/runnertest"
)

const statusTwoSinks = `Sinks:
 │  *   64. Navi 10 HDMI Audio Digital Stereo (HDMI) [vol: 0.40]
 │      70. USB Headphones [vol: 0.75]
Sources:
 │   5. Built-in Mic [vol: 1.00]
`

func TestListDevices(t *testing.T) {
	fake := runnertest.NewFake()
	fake.SetOutput("wpctl status", statusTwoSinks)

	devices := New(fake, "").ListDevices(context.Background())

	require.Len(t, devices, 2)
	assert.Equal(t, "64", devices[0].ID)
	assert.True(t, devices[0].IsActive)
	assert.Equal(t, device.CategoryDisplay, devices[0].Category)
	assert.Equal(t, "USB Headphones", devices[1].Name)
	assert.Equal(t, device.CategoryHeadphones, devices[1].Category)
	assert.Equal(t, []string{"wpctl status"}, fake.CommandLines())
}

func TestListDevicesPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
	}{
		{"command failure", "", &runner.CommandError{Command: "wpctl", ExitCode: -1, Err: errors.New("not found")}},
		{"no sinks section", "Sources:\n │   5. Mic [vol: 1.00]\n", nil},
		{"empty output", "", nil},
		{"empty sinks section", "Sinks:\n │\nSources:\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := runnertest.NewFake()
			fake.Default = tt.output
			fake.DefaultErr = tt.err

			devices := New(fake, "").ListDevices(context.Background())

			require.Len(t, devices, 1)
			assert.Equal(t, device.Placeholder(), devices[0])
			assert.Empty(t, devices[0].ID)
		})
	}
}

func TestSetVolume(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0.4, "wpctl set-volume 64 0.4"},
		{0, "wpctl set-volume 64 0"},
		{1, "wpctl set-volume 64 1"},
		{0.05, "wpctl set-volume 64 0.05"},
		{1.5, "wpctl set-volume 64 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			fake := runnertest.NewFake()
			New(fake, "").SetVolume(context.Background(), "64", tt.fraction)
			assert.Equal(t, []string{tt.want}, fake.CommandLines())
		})
	}
}

func TestSetDefaultDevice(t *testing.T) {
	fake := runnertest.NewFake()
	New(fake, "").SetDefaultDevice(context.Background(), "70")
	assert.Equal(t, []string{"wpctl set-default 70"}, fake.CommandLines())
}

func TestWritesIgnoreEmptyID(t *testing.T) {
	fake := runnertest.NewFake()
	c := New(fake, "")

	c.SetVolume(context.Background(), "", 0.5)
	c.SetDefaultDevice(context.Background(), "")

	assert.Empty(t, fake.Calls())
}

func TestWriteFailuresAreNotPropagated(t *testing.T) {
	fake := runnertest.NewFake()
	fake.DefaultErr = &runner.CommandError{Command: "wpctl", ExitCode: 1, Err: errors.New("exit status 1")}
	c := New(fake, "")

	assert.NotPanics(t, func() {
		c.SetVolume(context.Background(), "64", 0.3)
		c.SetDefaultDevice(context.Background(), "64")
	})
	assert.Len(t, fake.Calls(), 2)
}

func TestCustomBackend(t *testing.T) {
	fake := runnertest.NewFake()
	c := New(fake, "/usr/local/bin/wpctl")
	assert.Equal(t, "/usr/local/bin/wpctl", c.Backend())

	c.ListDevices(context.Background())
	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, "/usr/local/bin/wpctl", fake.Calls()[0].Name)
}

func TestWriteThenRelistReflectsBackend(t *testing.T) {
	// The backend flips the default sink when set-default runs; a re-list
	// must show the new state without the controller tracking anything.
	fake := runnertest.NewFake()
	fake.SetOutput("wpctl status", statusTwoSinks)
	fake.OnRun = func(f *runnertest.Fake, call runnertest.Call) {
		if call.String() == "wpctl set-default 70" {
			f.SetOutput("wpctl status", `Sinks:
 │      64. Navi 10 HDMI Audio Digital Stereo (HDMI) [vol: 0.40]
 │  *   70. USB Headphones [vol: 0.75]
`)
		}
	}

	c := New(fake, "")
	before, _ := device.Active(c.ListDevices(context.Background()))
	assert.Equal(t, "64", before.ID)

	c.SetDefaultDevice(context.Background(), "70")

	after, ok := device.Active(c.ListDevices(context.Background()))
	require.True(t, ok)
	assert.Equal(t, "70", after.ID)
}
