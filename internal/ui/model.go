// Package ui renders the volume popup in the terminal and forwards user
// gestures to the controller.
package ui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/keymap"
	"github.com/hongyan/audiocontrol/internal/launcher"
	"github.com/hongyan/audiocontrol/internal/logging"
)

const (
	// DefaultWidth is the popup width in cells, border included
	DefaultWidth = 44
	minWidth     = 24

	// defaultPercent is shown on the slider while no active device is known
	defaultPercent = 50

	framePadX  = 1
	frameTop   = 1
	frameLeft  = 1 + framePadX
	sliderHead = "Vol "
	valueCells = 5
)

// Controller is the subset of the audio controller the popup drives
type Controller interface {
	ListDevices(ctx context.Context) []device.Device
	SetVolume(ctx context.Context, deviceID string, fraction float64)
	SetDefaultDevice(ctx context.Context, deviceID string)
}

// Feedback is notified after every applied volume change
type Feedback interface {
	Trigger()
}

// Notifier is told when the user switched the default output
type Notifier interface {
	DeviceSwitched(d device.Device)
}

// Options configures the popup
type Options struct {
	Controller Controller
	Feedback   Feedback // optional
	Notifier   Notifier // optional
	Launchers  []launcher.Launcher
	Theme      string // "auto", "light" or "dark"
	Width      int
}

// Model is the bubbletea model of the popup. All backend calls happen
// synchronously inside Update.
type Model struct {
	ctx       context.Context
	ctrl      Controller
	feedback  Feedback
	notifier  Notifier
	launchers []launcher.Launcher
	start     func(launcher.Launcher) error

	devices []device.Device
	view    keymap.ViewState
	cursor  int

	dark     bool
	width    int
	maxWidth int
	dragging bool
	status   string

	styles styles
	slider progress.Model
	keys   keyMap
	help   help.Model
}

// New builds the popup and performs the initial device listing
func New(ctx context.Context, opts Options) Model {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		feedback:  opts.Feedback,
		notifier:  opts.Notifier,
		launchers: opts.Launchers,
		start:     launcher.Launcher.Start,
		dark:      resolveDark(opts.Theme),
		width:     width,
		maxWidth:  width,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	m.applyTheme()
	m.refresh()

	if i := m.activeIndex(); i >= 0 {
		m.cursor = i
	}
	return m
}

func resolveDark(theme string) bool {
	switch theme {
	case "dark":
		return true
	case "light":
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

// Run shows the popup until the user closes it
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = max(minWidth, min(m.maxWidth, msg.Width))
		m.applyTheme()
	}
	return m, nil
}

// Devices returns the rows currently shown
func (m Model) Devices() []device.Device {
	return m.devices
}

// ViewState returns the active device and slider value
func (m Model) ViewState() keymap.ViewState {
	return m.view
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceEnd):
		return tea.Quit
	case key.Matches(msg, m.keys.Move):
		m.moveCursor(msg.String())
		return nil
	case key.Matches(msg, m.keys.Select):
		m.selectDevice(m.cursor)
		return nil
	case key.Matches(msg, m.keys.Slide):
		if !m.view.HasActive() {
			return nil
		}
		if s := msg.String(); s == "left" || s == "h" {
			m.setVolume(m.view.Percent - 1)
		} else {
			m.setVolume(m.view.Percent + 1)
		}
		return nil
	}

	act := keymap.Resolve(msg.String(), m.view)
	switch act.Kind {
	case keymap.ActionQuit:
		return tea.Quit
	case keymap.ActionSetVolume:
		m.setVolume(act.Percent)
	case keymap.ActionRefresh:
		m.status = ""
		m.refresh()
	case keymap.ActionToggleTheme:
		m.dark = !m.dark
		m.applyTheme()
	case keymap.ActionLaunch:
		m.launch(act.Launcher)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionRelease {
		m.dragging = false
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.view.HasActive() {
			m.setVolume(m.view.Percent + keymap.Step)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if m.view.HasActive() {
			m.setVolume(m.view.Percent - keymap.Step)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if msg.Action == tea.MouseActionMotion {
		if m.dragging && m.view.HasActive() {
			p, _ := m.sliderPercent(msg.X, true)
			m.setVolume(p)
		}
		return nil
	}

	lay := m.layout()
	row := msg.Y - frameTop
	switch {
	case row == lay.header && msg.X == lay.closeX:
		return tea.Quit
	case row == lay.slider:
		if !m.view.HasActive() {
			return nil
		}
		if p, ok := m.sliderPercent(msg.X, false); ok {
			m.dragging = true
			m.setVolume(p)
		}
	case row >= lay.firstDevice && row < lay.firstDevice+len(m.devices):
		m.cursor = row - lay.firstDevice
		m.selectDevice(m.cursor)
	case row >= lay.firstLauncher && row < lay.firstLauncher+len(m.launchers):
		m.launch(row - lay.firstLauncher)
	}
	return nil
}

// refresh rebuilds the device view from a fresh listing
func (m *Model) refresh() {
	m.devices = m.ctrl.ListDevices(m.ctx)
	m.view = keymap.ViewState{Percent: defaultPercent}
	if d, ok := device.Active(m.devices); ok && !d.IsPlaceholder() {
		m.view = keymap.ViewState{ActiveID: d.ID, Percent: d.Percent()}
	}
	if m.cursor >= len(m.devices) {
		m.cursor = len(m.devices) - 1
	}
}

// setVolume moves the slider and, when the value changed, pushes it to the backend
func (m *Model) setVolume(p int) {
	if !m.view.HasActive() {
		return
	}
	p = device.ClampPercent(p)
	if p == m.view.Percent {
		return
	}

	m.view.Percent = p
	m.ctrl.SetVolume(m.ctx, m.view.ActiveID, device.Fraction(p))
	if m.feedback != nil {
		m.feedback.Trigger()
	}
}

func (m *Model) selectDevice(i int) {
	if i < 0 || i >= len(m.devices) {
		return
	}
	d := m.devices[i]
	if d.IsPlaceholder() {
		return
	}

	m.ctrl.SetDefaultDevice(m.ctx, d.ID)
	m.refresh()

	if m.view.ActiveID != d.ID {
		logging.Warn("Default sink is %q after selecting %s", m.view.ActiveID, d.ID)
		return
	}
	if m.notifier != nil {
		if active, ok := device.Active(m.devices); ok {
			m.notifier.DeviceSwitched(active)
		}
	}
}

func (m *Model) moveCursor(k string) {
	switch k {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	default:
		if m.cursor < len(m.devices)-1 {
			m.cursor++
		}
	}
}

func (m *Model) launch(i int) {
	if i < 0 || i >= len(m.launchers) {
		return
	}
	l := m.launchers[i]
	if !l.Available() {
		m.status = fmt.Sprintf("%s is not installed", l.Name)
		return
	}
	if err := m.start(l); err != nil {
		m.status = fmt.Sprintf("Could not start %s", l.Name)
		return
	}
	m.status = ""
}

func (m *Model) applyTheme() {
	m.styles = newStyles(m.dark)
	m.slider = progress.New(
		progress.WithSolidFill(paletteFor(m.dark).sliderColor()),
		progress.WithoutPercentage(),
		progress.WithWidth(m.barWidth()),
	)
	m.help.Width = m.innerWidth()
}

func (m Model) activeIndex() int {
	for i, d := range m.devices {
		if d.IsActive {
			return i
		}
	}
	return -1
}

func (m Model) innerWidth() int {
	return m.width - 2 - 2*framePadX
}

func (m Model) barWidth() int {
	return m.innerWidth() - len(sliderHead) - 1 - valueCells
}

// sliderPercent maps a screen column to a slider value. Columns outside the
// bar are rejected unless clamp is set.
func (m Model) sliderPercent(x int, clamp bool) (int, bool) {
	col := x - frameLeft - len(sliderHead)
	bw := m.barWidth()
	if col < 0 || col >= bw {
		if !clamp {
			return 0, false
		}
		col = max(0, min(bw-1, col))
	}
	if bw <= 1 {
		return 100, true
	}
	return int(math.Round(float64(col) * 100 / float64(bw-1))), true
}

// layout gives the content line of each clickable region
type layout struct {
	header        int
	closeX        int
	slider        int
	firstDevice   int
	firstLauncher int
}

func (m Model) layout() layout {
	return layout{
		header:        0,
		closeX:        frameLeft + m.innerWidth() - 1,
		slider:        1,
		firstDevice:   4,
		firstLauncher: 4 + len(m.devices) + 2,
	}
}

// View implements tea.Model
func (m Model) View() string {
	w := m.innerWidth()
	s := m.styles
	sep := s.separator.Render(strings.Repeat("─", w))

	lines := make([]string, 0, 8+len(m.devices)+len(m.launchers))

	title := "Sound"
	lines = append(lines, s.title.Render(title)+
		strings.Repeat(" ", max(0, w-lipgloss.Width(title)-1))+
		s.close.Render("✕"))

	lines = append(lines, sliderHead+
		m.slider.ViewAs(float64(m.view.Percent)/100)+" "+
		s.value.Render(fmt.Sprintf("%*d%%", valueCells-1, m.view.Percent)))

	lines = append(lines, sep, s.section.Render("Output"))

	for i, d := range m.devices {
		marker := "  "
		if i == m.cursor {
			marker = s.rowCursor.Render("› ")
		}
		text := fit(fmt.Sprintf("%s %s", d.Category.Glyph(), d.Name), w-2)
		if d.IsActive {
			lines = append(lines, marker+s.rowActive.Render(text))
		} else {
			lines = append(lines, marker+s.row.Render(text))
		}
	}

	lines = append(lines, sep, s.section.Render("Advanced Controls"))

	for _, l := range m.launchers {
		if l.Available() {
			lines = append(lines, s.launcher.Render(fit("  ↗ "+l.Name, w)))
		} else {
			lines = append(lines, s.disabled.Render(fit("  ↗ "+l.Name, w)))
		}
	}

	if m.status != "" {
		lines = append(lines, s.status.Render(fit(m.status, w)))
	}
	lines = append(lines, "", m.help.View(m.keys))

	return s.frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = lipgloss.NewStyle().Inline(true).MaxWidth(width).Render(s)
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
