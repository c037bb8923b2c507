// Package audio plays short chimes for upgrade and recruit results.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/models"
)

const (
	successTone = 880.0
	recruitTone = 1320.0
	failureTone = 220.0
	toneLength  = 80 * time.Millisecond
)

// Player plays a sine tone.
type Player interface {
	Tone(freq float64, d time.Duration)
}

// Speaker plays tones on the default audio device.
type Speaker struct {
	sampleRate beep.SampleRate
	log        *zap.Logger
}

func NewSpeaker(log *zap.Logger) (*Speaker, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{sampleRate: sampleRate, log: log}, nil
}

// Tone plays asynchronously. Tones the sample rate cannot carry are
// skipped with a warning.
func (s *Speaker) Tone(freq float64, d time.Duration) {
	sine, err := generators.SineTone(s.sampleRate, freq)
	if err != nil {
		s.log.Warn("tone skipped", zap.Float64("freq", freq), zap.Int("sample_rate", int(s.sampleRate)), zap.Error(err))
		return
	}
	speaker.Play(beep.Take(s.sampleRate.N(d), sine))
}

func (s *Speaker) Close() {
	speaker.Close()
}

// Chimes wraps a renderer and plays a tone after each upgrade or recruit
// notice.
type Chimes struct {
	engine.Renderer
	player Player
}

func NewChimes(r engine.Renderer, p Player) *Chimes {
	return &Chimes{Renderer: r, player: p}
}

func (c *Chimes) UpgradeResult(s models.Swimmer, ok bool) error {
	if err := c.Renderer.UpgradeResult(s, ok); err != nil {
		return err
	}
	c.chime(ok, successTone)
	return nil
}

func (c *Chimes) RecruitResult(res engine.RecruitResult) error {
	if err := c.Renderer.RecruitResult(res); err != nil {
		return err
	}
	c.chime(res.OK, recruitTone)
	return nil
}

func (c *Chimes) chime(ok bool, freq float64) {
	if !ok {
		freq = failureTone
	}
	c.player.Tone(freq, toneLength)
}
