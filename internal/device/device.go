package device

import (
	"math"
	"strings"
)

// Category is the presentation class of an output device
type Category string

const (
	CategorySpeakers   Category = "speakers"
	CategoryHeadphones Category = "headphones"
	CategoryDisplay    Category = "display"
	CategoryBluetooth  Category = "bluetooth"
)

// PlaceholderName is shown when the backend reports no sinks
const PlaceholderName = "No devices found"

// Device is one output sink as reported by a single status query.
// Values are never mutated after parsing; a refresh yields a new slice.
type Device struct {
	ID       string   `json:"id"` // empty for the placeholder
	Name     string   `json:"name"`
	IsActive bool     `json:"is_active"`
	Volume   float64  `json:"volume"` // fraction as reported, not clamped
	Category Category `json:"category"`
}

// Placeholder returns the synthetic row used when no device is available
func Placeholder() Device {
	return Device{
		Name:     PlaceholderName,
		Category: CategorySpeakers,
	}
}

// IsPlaceholder reports whether d has no backend identity
func (d Device) IsPlaceholder() bool {
	return d.ID == ""
}

// Percent returns the device volume as a slider value
func (d Device) Percent() int {
	return ClampPercent(Percent(d.Volume))
}

// Classify maps a device name to its category.
// Checks run in order against the lowercased name; first match wins.
func Classify(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "headphone"):
		return CategoryHeadphones
	case strings.Contains(lower, "hdmi"),
		strings.Contains(lower, "tv"),
		strings.Contains(lower, "display"):
		return CategoryDisplay
	case strings.Contains(lower, "bluetooth"):
		return CategoryBluetooth
	default:
		return CategorySpeakers
	}
}

// IconName returns the freedesktop symbolic icon for the category
func (c Category) IconName() string {
	switch c {
	case CategoryHeadphones:
		return "audio-headphones-symbolic"
	case CategoryDisplay:
		return "video-display-symbolic"
	case CategoryBluetooth:
		return "bluetooth-active-symbolic"
	default:
		return "audio-speakers-symbolic"
	}
}

// Glyph returns a single-cell terminal symbol for the category
func (c Category) Glyph() string {
	switch c {
	case CategoryHeadphones:
		return "🎧"
	case CategoryDisplay:
		return "🖵"
	case CategoryBluetooth:
		return "ᛒ"
	default:
		return "🔈"
	}
}

// Percent converts a volume fraction to a rounded percentage
func Percent(fraction float64) int {
	return int(math.Round(fraction * 100))
}

// Fraction converts a slider percentage to the value passed to the backend
func Fraction(percent int) float64 {
	return float64(percent) / 100.0
}

// ClampPercent limits p to the slider range [0, 100]
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Active returns the active device of a list, if any
func Active(devices []Device) (Device, bool) {
	for _, d := range devices {
		if d.IsActive {
			return d, true
		}
	}
	return Device{}, false
}
