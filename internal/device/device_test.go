package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"USB Headphones", CategoryHeadphones},
		{"Bluetooth Headphones", CategoryHeadphones},
		{"HEADPHONE jack", CategoryHeadphones},
		{"Navi 10 HDMI Audio Digital Stereo (HDMI)", CategoryDisplay},
		{"Living Room TV", CategoryDisplay},
		{"DisplayPort 2", CategoryDisplay},
		{"Bluetooth Speaker", CategoryBluetooth},
		{"Built-in Audio Analog Stereo", CategorySpeakers},
		{"", CategorySpeakers},
		// "tv" matches anywhere in the name, including inside words
		{"Stvdio Monitors", CategoryDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
			// deterministic
			assert.Equal(t, Classify(tt.name), Classify(tt.name))
		})
	}
}

func TestCategoryIconName(t *testing.T) {
	assert.Equal(t, "audio-headphones-symbolic", CategoryHeadphones.IconName())
	assert.Equal(t, "video-display-symbolic", CategoryDisplay.IconName())
	assert.Equal(t, "bluetooth-active-symbolic", CategoryBluetooth.IconName())
	assert.Equal(t, "audio-speakers-symbolic", CategorySpeakers.IconName())
	assert.Equal(t, "audio-speakers-symbolic", Category("other").IconName())
}

func TestPercentFractionRoundTrip(t *testing.T) {
	for v := 0; v <= 100; v++ {
		assert.Equal(t, v, Percent(Fraction(v)), "slider value %d", v)
	}
}

func TestDevicePercentClamps(t *testing.T) {
	assert.Equal(t, 40, Device{Volume: 0.40}.Percent())
	assert.Equal(t, 100, Device{Volume: 1.5}.Percent())
	assert.Equal(t, 0, Device{Volume: 0}.Percent())
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.Equal(t, PlaceholderName, p.Name)
	assert.Empty(t, p.ID)
	assert.True(t, p.IsPlaceholder())
	assert.False(t, p.IsActive)
	assert.Zero(t, p.Volume)
	assert.Equal(t, CategorySpeakers, p.Category)
}

func TestActive(t *testing.T) {
	list := []Device{{ID: "1"}, {ID: "2", IsActive: true}}
	d, ok := Active(list)
	assert.True(t, ok)
	assert.Equal(t, "2", d.ID)

	_, ok = Active([]Device{{ID: "1"}})
	assert.False(t, ok)

	_, ok = Active(nil)
	assert.False(t, ok)
}
