package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hongyan/audiocontrol/internal/launcher"
	"github.com/hongyan/audiocontrol/internal/platform"
)

// EnvPrefix prefixes environment overrides, e.g. AUDIOCONTROL_BACKEND_COMMAND
const EnvPrefix = "AUDIOCONTROL"

// Config represents the application configuration
type Config struct {
	LogLevel      string              `json:"logLevel" mapstructure:"logLevel"`
	Backend       BackendConfig       `json:"backend" mapstructure:"backend"`
	UI            UIConfig            `json:"ui" mapstructure:"ui"`
	Feedback      FeedbackConfig      `json:"feedback" mapstructure:"feedback"`
	Notifications NotificationsConfig `json:"notifications" mapstructure:"notifications"`
	Launchers     []launcher.Spec     `json:"launchers" mapstructure:"launchers"`
}

// BackendConfig selects the audio server control utility
type BackendConfig struct {
	Command string `json:"command" mapstructure:"command"` // default "wpctl"
	Timeout string `json:"timeout" mapstructure:"timeout"` // per-command limit, e.g. "2s"
}

// UIConfig controls the popup
type UIConfig struct {
	Theme string `json:"theme" mapstructure:"theme"` // "auto", "light" or "dark"
	Width int    `json:"width" mapstructure:"width"` // popup width in cells
}

// FeedbackConfig controls the sound played after a volume change
type FeedbackConfig struct {
	Enabled     bool    `json:"enabled" mapstructure:"enabled"`
	Sound       string  `json:"sound" mapstructure:"sound"`             // empty = built-in tick
	Volume      float64 `json:"volume" mapstructure:"volume"`           // 0.0-1.0
	AudioDevice string  `json:"audioDevice" mapstructure:"audioDevice"` // empty = system default
}

// NotificationsConfig groups notification settings
type NotificationsConfig struct {
	Desktop DesktopConfig `json:"desktop" mapstructure:"desktop"`
}

// DesktopConfig controls the notification shown when the default sink changes
type DesktopConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Method  string `json:"method" mapstructure:"method"` // "auto", "osc9", "beeep"
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Backend: BackendConfig{
			Command: "wpctl",
			Timeout: "2s",
		},
		UI: UIConfig{
			Theme: "auto",
			Width: 44,
		},
		Feedback: FeedbackConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Notifications: NotificationsConfig{
			Desktop: DesktopConfig{
				Enabled: false,
				Method:  "auto",
			},
		},
		Launchers: launcher.DefaultSpecs(),
	}
}

// DefaultPath returns the config file location
func DefaultPath() string {
	return filepath.Join(platform.ConfigDir(), "config.json")
}

// Load loads configuration from a JSON file, then applies AUDIOCONTROL_*
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" && platform.FileExists(path) {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.Feedback.Sound = platform.ExpandEnv(config.Feedback.Sound)

	// "launchers": [] turns the companion rows off
	if config.Launchers == nil && v.IsSet("launchers") {
		config.Launchers = []launcher.Spec{}
	}

	config.ApplyDefaults()

	return config, nil
}

// LoadDefaultPath loads the config from DefaultPath
func LoadDefaultPath() (*Config, error) {
	return Load(DefaultPath())
}

func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("backend.command", d.Backend.Command)
	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.width", d.UI.Width)
	v.SetDefault("feedback.enabled", d.Feedback.Enabled)
	v.SetDefault("feedback.sound", d.Feedback.Sound)
	v.SetDefault("feedback.volume", d.Feedback.Volume)
	v.SetDefault("feedback.audioDevice", d.Feedback.AudioDevice)
	v.SetDefault("notifications.desktop.enabled", d.Notifications.Desktop.Enabled)
	v.SetDefault("notifications.desktop.method", d.Notifications.Desktop.Method)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ApplyDefaults fills in missing fields with default values
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Backend.Command == "" {
		c.Backend.Command = defaults.Backend.Command
	}
	if c.Backend.Timeout == "" {
		c.Backend.Timeout = defaults.Backend.Timeout
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.Width == 0 {
		c.UI.Width = defaults.UI.Width
	}
	if c.Notifications.Desktop.Method == "" {
		c.Notifications.Desktop.Method = defaults.Notifications.Desktop.Method
	}
	if c.Launchers == nil {
		c.Launchers = defaults.Launchers
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.Command) == "" {
		return fmt.Errorf("backend command must not be empty")
	}

	timeout, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil {
		return fmt.Errorf("invalid backend timeout %q: %w", c.Backend.Timeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive (got %s)", c.Backend.Timeout)
	}

	validThemes := map[string]bool{
		"auto":  true,
		"light": true,
		"dark":  true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s (must be one of: auto, light, dark)", c.UI.Theme)
	}

	if c.UI.Width < 30 {
		return fmt.Errorf("ui width must be at least 30 (got %d)", c.UI.Width)
	}

	if c.Feedback.Volume < 0.0 || c.Feedback.Volume > 1.0 {
		return fmt.Errorf("feedback volume must be between 0.0 and 1.0 (got %.2f)", c.Feedback.Volume)
	}

	validMethods := map[string]bool{
		"":      true, // empty means auto
		"auto":  true,
		"osc9":  true,
		"beeep": true,
	}
	if !validMethods[c.Notifications.Desktop.Method] {
		return fmt.Errorf("invalid notification method: %s (must be one of: auto, osc9, beeep)", c.Notifications.Desktop.Method)
	}

	for i, l := range c.Launchers {
		if l.Name == "" || l.Command == "" {
			return fmt.Errorf("launcher %d: name and command are required", i)
		}
	}

	return nil
}

// BackendTimeout returns the parsed per-command timeout (default 2s)
func (c *Config) BackendTimeout() time.Duration {
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// IsFeedbackEnabled returns true if a sound should follow volume changes
func (c *Config) IsFeedbackEnabled() bool {
	return c.Feedback.Enabled
}

// IsDesktopEnabled returns true if device-switch notifications are enabled
func (c *Config) IsDesktopEnabled() bool {
	return c.Notifications.Desktop.Enabled
}
