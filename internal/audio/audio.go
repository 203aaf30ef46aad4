// ABOUTME: Plays the short sound that confirms a volume change, on a chosen device.
// ABOUTME: Uses malgo (miniaudio bindings) for output and beep/go-audio for decoding.

package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/hongyan/audiocontrol/internal/logging"
)

const (
	tickSampleRate = 44100
	tickFrequency  = 880.0
	tickDuration   = 60 * time.Millisecond

	playbackTimeout = 5 * time.Second
)

// ErrBusy is returned when a sound is already playing on the player
var ErrBusy = errors.New("player busy")

// DeviceInfo is a playback device as seen by miniaudio
type DeviceInfo struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// Player plays short clips on one output device
type Player struct {
	ctx        *malgo.AllocatedContext
	deviceID   unsafe.Pointer
	deviceName string
	volume     float64
	mu         sync.Mutex
}

// pcm is decoded interleaved 16-bit audio
type pcm struct {
	samples    []int16
	sampleRate uint32
	channels   int
}

// ListDevices returns the playback devices known to miniaudio
func ListDevices() ([]DeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	result := make([]DeviceInfo, 0, len(devices))
	for _, dev := range devices {
		result = append(result, DeviceInfo{
			Name:      dev.Name(),
			IsDefault: dev.IsDefault != 0,
		})
	}
	return result, nil
}

// NewPlayer opens an audio context for deviceName (empty = system default).
// volume scales every clip, 0.0-1.0.
func NewPlayer(deviceName string, volume float64) (*Player, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}

	p := &Player{ctx: ctx, deviceName: deviceName, volume: volume}
	if deviceName == "" {
		return p, nil
	}

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		p.release()
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}
	for _, dev := range devices {
		if dev.Name() == deviceName {
			p.deviceID = dev.ID.Pointer()
			logging.Debug("Feedback device found: %s", deviceName)
			return p, nil
		}
	}

	p.release()
	return nil, fmt.Errorf("audio device not found: %s", deviceName)
}

// Play decodes and plays a sound file. Returns ErrBusy instead of queueing
// when another clip is still playing.
func (p *Player) Play(soundPath string) error {
	if !p.mu.TryLock() {
		return ErrBusy
	}
	defer p.mu.Unlock()

	if _, err := os.Stat(soundPath); os.IsNotExist(err) {
		return fmt.Errorf("sound file not found: %s", soundPath)
	}

	clip, err := decodeFile(soundPath)
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	return p.play(clip, filepath.Base(soundPath))
}

// PlayTick plays the built-in tone
func (p *Player) PlayTick() error {
	if !p.mu.TryLock() {
		return ErrBusy
	}
	defer p.mu.Unlock()

	clip, err := tick()
	if err != nil {
		return fmt.Errorf("failed to synthesize tick: %w", err)
	}
	return p.play(clip, "tick")
}

// Close releases the audio context
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release()
	return nil
}

func (p *Player) release() {
	if p.ctx != nil {
		_ = p.ctx.Uninit()
		p.ctx.Free()
		p.ctx = nil
	}
}

// play blocks until the clip has been rendered. Caller holds p.mu.
func (p *Player) play(clip pcm, label string) error {
	if p.ctx == nil {
		return errors.New("player closed")
	}

	data := samplesToBytes(scale(clip.samples, p.volume))

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(clip.channels)
	cfg.SampleRate = clip.sampleRate
	// large periods avoid crackling on busy PipeWire graphs
	cfg.PeriodSizeInFrames = 4096
	cfg.Periods = 4
	cfg.Alsa.NoMMap = 1
	if p.deviceID != nil {
		cfg.Playback.DeviceID = p.deviceID
	}

	var pos int
	done := make(chan struct{})
	var once sync.Once

	onData := func(out, _ []byte, frames uint32) {
		n := copy(out, data[pos:min(pos+int(frames)*clip.channels*2, len(data))])
		pos += n
		clear(out[n:])
		if pos >= len(data) {
			once.Do(func() { close(done) })
		}
	}

	dev, err := malgo.InitDevice(p.ctx.Context, cfg, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		return fmt.Errorf("failed to init audio device: %w", err)
	}
	defer dev.Uninit()

	if err := dev.Start(); err != nil {
		return fmt.Errorf("failed to start audio device: %w", err)
	}

	select {
	case <-done:
		time.Sleep(200 * time.Millisecond) // drain
		logging.Debug("Feedback played: %s", label)
	case <-time.After(playbackTimeout):
		logging.Warn("Feedback playback timeout: %s", label)
	}

	_ = dev.Stop()
	return nil
}

// tick renders a sine tone with a linear fade-out so it ends without a click
func tick() (pcm, error) {
	sr := beep.SampleRate(tickSampleRate)
	tone, err := generators.SineTone(sr, tickFrequency)
	if err != nil {
		return pcm{}, err
	}

	clip := streamToPCM(beep.Take(sr.N(tickDuration), tone), tickSampleRate, 2)
	frames := len(clip.samples) / clip.channels
	for i := 0; i < frames; i++ {
		gain := 0.5 * float64(frames-i) / float64(frames)
		for c := 0; c < clip.channels; c++ {
			idx := i*clip.channels + c
			clip.samples[idx] = int16(float64(clip.samples[idx]) * gain)
		}
	}
	return clip, nil
}

func decodeFile(soundPath string) (pcm, error) {
	f, err := os.Open(soundPath)
	if err != nil {
		return pcm{}, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch ext := strings.ToLower(filepath.Ext(soundPath)); ext {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		stream, format, err = vorbis.Decode(f)
	case ".aiff", ".aif":
		return decodeAIFF(f)
	default:
		return pcm{}, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return pcm{}, err
	}
	defer stream.Close()

	return streamToPCM(stream, int(format.SampleRate), format.NumChannels), nil
}

func decodeAIFF(f *os.File) (pcm, error) {
	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return pcm{}, errors.New("invalid AIFF file")
	}
	dec.ReadInfo()

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("failed to read AIFF data: %w", err)
	}

	return pcm{
		samples:    intBufferToSamples(buf, int(dec.BitDepth)),
		sampleRate: uint32(dec.SampleRate),
		channels:   int(dec.NumChans),
	}, nil
}

// streamToPCM drains a beep streamer into 16-bit samples
func streamToPCM(s beep.Streamer, sampleRate, channels int) pcm {
	if channels < 1 {
		channels = 1
	}
	var out []int16
	buf := make([][2]float64, 512)

	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, int16(buf[i][0]*32767))
			if channels >= 2 {
				out = append(out, int16(buf[i][1]*32767))
			}
		}
		if !ok || n == 0 {
			break
		}
	}

	return pcm{samples: out, sampleRate: uint32(sampleRate), channels: min(channels, 2)}
}

// intBufferToSamples narrows go-audio samples of the given bit depth to 16 bits
func intBufferToSamples(buf *goaudio.IntBuffer, bitDepth int) []int16 {
	samples := make([]int16, len(buf.Data))

	shift := 0
	switch bitDepth {
	case 8:
		shift = -8
	case 24:
		shift = 8
	case 32:
		shift = 16
	}

	for i, v := range buf.Data {
		switch {
		case shift > 0:
			samples[i] = int16(v >> shift)
		case shift < 0:
			samples[i] = int16(v << -shift)
		default:
			samples[i] = int16(v)
		}
	}
	return samples
}

func scale(samples []int16, volume float64) []int16 {
	if volume >= 1.0 {
		return samples
	}
	for i := range samples {
		samples[i] = int16(float64(samples[i]) * volume)
	}
	return samples
}

// samplesToBytes converts samples to little-endian bytes
func samplesToBytes(samples []int16) []byte {
	b := make([]byte, len(samples)*2)
	for i, s := range samples {
		b[i*2] = byte(s)
		b[i*2+1] = byte(s >> 8)
	}
	return b
}
