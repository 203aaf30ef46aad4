// Package keymap translates key presses into popup actions.
package keymap

import "github.com/hongyan/audiocontrol/internal/device"

// Step is the volume change applied by the - and = keys, in percent
const Step = 5

// ActionKind identifies what a key press asks for
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSetVolume
	ActionQuit
	ActionRefresh
	ActionToggleTheme
	ActionLaunch
)

// Action is the outcome of a key press
type Action struct {
	Kind     ActionKind
	Percent  int // target volume for ActionSetVolume
	Launcher int // launcher index for ActionLaunch
}

// ViewState is the part of the popup state key handling depends on.
// It is owned by the UI and passed in on every key press.
type ViewState struct {
	ActiveID string // empty when no active device is known
	Percent  int    // current slider value
}

// HasActive reports whether volume keys have a device to act on
func (vs ViewState) HasActive() bool {
	return vs.ActiveID != ""
}

// Resolve maps a key (bubbletea key string form) to an action
func Resolve(key string, vs ViewState) Action {
	switch key {
	case "q", "ctrl+q":
		return Action{Kind: ActionQuit}
	case "r":
		return Action{Kind: ActionRefresh}
	case "t":
		return Action{Kind: ActionToggleTheme}
	case "w":
		return Action{Kind: ActionLaunch, Launcher: 0}
	case "p":
		return Action{Kind: ActionLaunch, Launcher: 1}
	}

	if !vs.HasActive() {
		return Action{Kind: ActionNone}
	}

	switch {
	case key == "`":
		return setVolume(0)
	case key == "-":
		return setVolume(vs.Percent - Step)
	case key == "=":
		return setVolume(vs.Percent + Step)
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		return setVolume(int(key[0]-'0') * 10)
	case key == "0":
		return setVolume(100)
	}

	return Action{Kind: ActionNone}
}

func setVolume(percent int) Action {
	return Action{Kind: ActionSetVolume, Percent: device.ClampPercent(percent)}
}
