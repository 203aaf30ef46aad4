package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickShape(t *testing.T) {
	clip, err := tick()
	require.NoError(t, err)

	assert.Equal(t, uint32(tickSampleRate), clip.sampleRate)
	assert.Equal(t, 2, clip.channels)

	wantFrames := int(float64(tickSampleRate) * tickDuration.Seconds())
	assert.InDelta(t, wantFrames*2, len(clip.samples), 4)

	// fade-out: the last frame is (almost) silent
	last := clip.samples[len(clip.samples)-1]
	assert.LessOrEqual(t, abs(int(last)), 400)

	peak := 0
	for _, s := range clip.samples {
		peak = max(peak, abs(int(s)))
	}
	assert.Greater(t, peak, 1000)
	assert.LessOrEqual(t, peak, 32767/2+1)
}

func TestIntBufferToSamples(t *testing.T) {
	buf := &goaudio.IntBuffer{Data: []int{0x12, 0x1234, 0x123456, 0x12345678}}

	assert.Equal(t, int16(0x1200), intBufferToSamples(&goaudio.IntBuffer{Data: []int{0x12}}, 8)[0])
	assert.Equal(t, int16(0x1234), intBufferToSamples(&goaudio.IntBuffer{Data: []int{0x1234}}, 16)[0])
	assert.Equal(t, int16(0x1234), intBufferToSamples(&goaudio.IntBuffer{Data: []int{0x123456}}, 24)[0])
	assert.Equal(t, int16(0x1234), intBufferToSamples(&goaudio.IntBuffer{Data: []int{0x12345678}}, 32)[0])
	assert.Len(t, intBufferToSamples(buf, 12), 4)
}

func TestSamplesToBytes(t *testing.T) {
	assert.Equal(t, []byte{0x34, 0x12, 0xff, 0xff}, samplesToBytes([]int16{0x1234, -1}))
	assert.Empty(t, samplesToBytes(nil))
}

func TestScale(t *testing.T) {
	assert.Equal(t, []int16{50, -50}, scale([]int16{100, -100}, 0.5))
	assert.Equal(t, []int16{100}, scale([]int16{100}, 1.0))
	assert.Equal(t, []int16{0}, scale([]int16{100}, 0))
}

func TestDecodeFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := decodeFile(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0644))
	_, err = decodeFile(txt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")

	bad := filepath.Join(dir, "broken.aiff")
	require.NoError(t, os.WriteFile(bad, []byte("not an aiff"), 0644))
	_, err = decodeFile(bad)
	assert.Error(t, err)
}

func TestListDevices(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping audio backend test in short mode")
	}

	devices, err := ListDevices()
	if err != nil {
		t.Skipf("No audio backend available: %v", err)
	}
	for _, d := range devices {
		assert.NotEmpty(t, d.Name)
	}
}

func TestNewPlayerUnknownDevice(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping audio backend test in short mode")
	}

	p, err := NewPlayer("audiocontrol-nonexistent-device-xyz", 0.3)
	if err == nil {
		p.Close()
		t.Fatal("expected error for unknown device")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
