package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongyan/audiocontrol/internal/controller"
	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/runner/runnertest"
)

const status = `Sinks:
 │  *   64. Navi 10 HDMI Audio Digital Stereo (HDMI) [vol: 0.40]
 │      70. USB Headphones [vol: 0.75]
Sources:
`

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"40", 40, false},
		{"0", 0, false},
		{"100%", 100, false},
		{" 55 ", 55, false},
		{"101", 0, true},
		{"-1", 0, true},
		{"0.5", 0, true},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePercent(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunListText(t *testing.T) {
	fake := runnertest.NewFake()
	fake.SetOutput("wpctl status", status)
	var out bytes.Buffer

	code := runList(context.Background(), controller.New(fake, ""), &out, false)

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*"))
	assert.Contains(t, lines[0], "40%")
	assert.Contains(t, lines[1], "USB Headphones")
	assert.Contains(t, lines[1], "headphones")
}

func TestRunListJSON(t *testing.T) {
	fake := runnertest.NewFake()
	fake.SetOutput("wpctl status", status)
	var out bytes.Buffer

	code := runList(context.Background(), controller.New(fake, ""), &out, true)

	assert.Equal(t, 0, code)
	var devices []device.Device
	require.NoError(t, json.Unmarshal(out.Bytes(), &devices))
	require.Len(t, devices, 2)
	assert.Equal(t, "64", devices[0].ID)
	assert.InDelta(t, 0.75, devices[1].Volume, 1e-9)
}

func TestRunListPlaceholder(t *testing.T) {
	fake := runnertest.NewFake()
	var out bytes.Buffer

	runList(context.Background(), controller.New(fake, ""), &out, false)

	assert.Contains(t, out.String(), device.PlaceholderName)
	assert.Contains(t, out.String(), "   -  ")
}

func TestWithAppPanicIsLoggedAndFails(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", stateHome)

	code := withApp(func(ctx context.Context, a *app) int {
		panic("popup exploded")
	})

	assert.Equal(t, 1, code)
	data, err := os.ReadFile(filepath.Join(stateHome, "audiocontrol", "audiocontrol.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "PANIC recovered: popup exploded")
}

func TestWithAppReturnsCode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	code := withApp(func(ctx context.Context, a *app) int {
		assert.Equal(t, "wpctl", a.ctrl.Backend())
		return 3
	})

	assert.Equal(t, 3, code)
}
