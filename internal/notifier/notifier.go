package notifier

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/hongyan/audiocontrol/internal/config"
	"github.com/hongyan/audiocontrol/internal/device"
	"github.com/hongyan/audiocontrol/internal/errorhandler"
	"github.com/hongyan/audiocontrol/internal/logging"
)

const appName = "Audio Control"

// osc9MaxRunes caps the notification text; sink names can be long and non-ASCII
const osc9MaxRunes = 200

// Notifier announces default-sink changes on the desktop
type Notifier struct {
	cfg *config.Config
	wg  sync.WaitGroup

	// swappable for tests
	beeepNotify func(title, message, icon string) error
	openTTY     func() (io.WriteCloser, error)
}

// New creates a new notifier
func New(cfg *config.Config) *Notifier {
	return &Notifier{
		cfg:         cfg,
		beeepNotify: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		openTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
	}
}

// DeviceSwitched notifies, in the background, that d is now the default output
func (n *Notifier) DeviceSwitched(d device.Device) {
	if !n.cfg.IsDesktopEnabled() {
		logging.Debug("Desktop notifications disabled, skipping")
		return
	}

	n.wg.Add(1)
	errorhandler.SafeGo(func() {
		defer n.wg.Done()
		_ = n.SendDesktop("Audio output", d.Name, d.Category.IconName())
	})
}

// SendDesktop sends a notification with the configured method.
// Methods: "osc9", "beeep", "auto" (default, same as beeep)
func (n *Notifier) SendDesktop(title, message, icon string) error {
	if !n.cfg.IsDesktopEnabled() {
		return nil
	}

	switch n.cfg.Notifications.Desktop.Method {
	case "osc9":
		// the popup owns the terminal, so OSC9 lands in the hosting emulator
		return n.sendWithOSC9(title, message)
	default:
		return n.sendWithBeeep(title, message, icon)
	}
}

// sendWithBeeep sends notification via beeep (cross-platform)
func (n *Notifier) sendWithBeeep(title, message, icon string) error {
	originalAppName := beeep.AppName
	beeep.AppName = appName
	defer func() {
		beeep.AppName = originalAppName
	}()

	if err := n.beeepNotify(title, message, icon); err != nil {
		logging.Error("Failed to send desktop notification: %v", err)
		return err
	}

	logging.Debug("Desktop notification sent via beeep: title=%s", title)
	return nil
}

// sendWithOSC9 writes an OSC9 escape sequence (ESC ] 9 ; text ESC \)
func (n *Notifier) sendWithOSC9(title, message string) error {
	text := title
	if message != "" {
		text = fmt.Sprintf("%s: %s", title, message)
	}
	if r := []rune(text); len(r) > osc9MaxRunes {
		text = string(r[:osc9MaxRunes-3]) + "..."
	}

	tty, err := n.openTTY()
	if err != nil {
		logging.Error("Failed to open /dev/tty for OSC9: %v", err)
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer tty.Close()

	if _, err := io.WriteString(tty, osc9Sequence(text)); err != nil {
		logging.Error("Failed to write OSC9 sequence: %v", err)
		return fmt.Errorf("failed to write OSC9: %w", err)
	}

	logging.Debug("Desktop notification sent via OSC9: title=%s", title)
	return nil
}

func osc9Sequence(text string) string {
	return fmt.Sprintf("\033]9;%s\033\\", text)
}

// Close waits for pending notifications
func (n *Notifier) Close() error {
	n.wg.Wait()
	return nil
}
