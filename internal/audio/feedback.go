package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/hongyan/audiocontrol/internal/config"
	"github.com/hongyan/audiocontrol/internal/errorhandler"
	"github.com/hongyan/audiocontrol/internal/logging"
)

// minFeedbackInterval keeps a slider drag from firing a tick per step
const minFeedbackInterval = 150 * time.Millisecond

// Feedback plays a confirmation sound after volume changes, off the UI goroutine
type Feedback struct {
	cfg config.FeedbackConfig

	initOnce sync.Once
	initErr  error
	player   *Player

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
	play func(p *Player) error
	wg   sync.WaitGroup
}

// NewFeedback creates a Feedback; the audio device is opened on first use
func NewFeedback(cfg config.FeedbackConfig) *Feedback {
	f := &Feedback{cfg: cfg, now: time.Now}
	f.play = f.playConfigured
	return f
}

// Enabled reports whether Trigger does anything
func (f *Feedback) Enabled() bool {
	return f != nil && f.cfg.Enabled
}

// Trigger plays the feedback sound asynchronously. Calls closer together
// than minFeedbackInterval are dropped.
func (f *Feedback) Trigger() {
	if !f.Enabled() {
		return
	}

	f.mu.Lock()
	now := f.now()
	if !f.last.IsZero() && now.Sub(f.last) < minFeedbackInterval {
		f.mu.Unlock()
		return
	}
	f.last = now
	f.mu.Unlock()

	f.wg.Add(1)
	errorhandler.SafeGo(func() {
		defer f.wg.Done()
		if err := f.initPlayer(); err != nil {
			return
		}
		if err := f.play(f.player); err != nil && !errors.Is(err, ErrBusy) {
			logging.Warn("Feedback sound failed: %v", err)
		}
	})
}

func (f *Feedback) initPlayer() error {
	f.initOnce.Do(func() {
		f.player, f.initErr = NewPlayer(f.cfg.AudioDevice, f.cfg.Volume)
		if f.initErr != nil {
			logging.Error("Failed to open feedback device: %v", f.initErr)
		}
	})
	return f.initErr
}

func (f *Feedback) playConfigured(p *Player) error {
	if f.cfg.Sound == "" {
		return p.PlayTick()
	}
	return p.Play(f.cfg.Sound)
}

// Wait blocks until in-flight sounds have finished
func (f *Feedback) Wait() {
	if f == nil {
		return
	}
	f.wg.Wait()
}

// Close waits for playback and releases the audio device
func (f *Feedback) Close() error {
	if f == nil {
		return nil
	}
	f.wg.Wait()
	if f.player != nil {
		return f.player.Close()
	}
	return nil
}
