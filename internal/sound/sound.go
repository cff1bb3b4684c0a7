// Package sound synthesises the game's short cues and plays them through
// the ebiten audio context.
package sound

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"

	"mazerunner/internal/config"
	"mazerunner/internal/logger"
)

// Cue identifies one sound effect
type Cue int

const (
	CueSpotted Cue = iota // a hunter noticed the player
	CueDamage
	CueGoal
	CueMenu
)

func (c Cue) String() string {
	switch c {
	case CueSpotted:
		return "spotted"
	case CueDamage:
		return "damage"
	case CueGoal:
		return "goal"
	case CueMenu:
		return "menu"
	default:
		return "unknown"
	}
}

const bytesPerFrame = 4 // 16-bit little endian, stereo

// Player owns the audio context and the pre-rendered cue buffers.
// A disabled Player accepts Play calls and does nothing.
type Player struct {
	ctx    *audio.Context
	cues   map[Cue][]byte
	volume float64
}

// NewPlayer renders every cue up front. Only one audio context may exist
// per process, so create a single Player at startup.
func NewPlayer(cfg config.AudioConfig) *Player {
	p := &Player{volume: cfg.Volume}
	if !cfg.Enabled {
		logger.Log.Info("Audio disabled")
		return p
	}
	p.ctx = audio.NewContext(cfg.SampleRate)
	p.cues = RenderCues(cfg.SampleRate)
	logger.Log.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"cues":        len(p.cues),
	}).Info("Audio ready")
	return p
}

// Enabled reports whether cues are audible
func (p *Player) Enabled() bool {
	return p != nil && p.ctx != nil
}

// Play starts a cue; overlapping calls mix
func (p *Player) Play(c Cue) {
	if !p.Enabled() {
		return
	}
	buf, ok := p.cues[c]
	if !ok {
		logger.Log.WithField("cue", c.String()).Warn("Unknown sound cue")
		return
	}
	player := p.ctx.NewPlayerFromBytes(buf)
	player.SetVolume(p.volume)
	player.Play()
}

// RenderCues synthesises every cue at the given sample rate
func RenderCues(sampleRate int) map[Cue][]byte {
	return map[Cue][]byte{
		CueSpotted: Sweep(220, 110, 0.4, sampleRate, 0.8),
		CueDamage:  Square(90, 0.25, sampleRate, 0.6),
		CueGoal: concat(
			Tone(523.25, 0.12, sampleRate, 0.7),
			Tone(659.25, 0.12, sampleRate, 0.7),
			Tone(783.99, 0.2, sampleRate, 0.7),
		),
		CueMenu: Tone(660, 0.05, sampleRate, 0.5),
	}
}

// Tone renders a sine wave with a short linear fade at both ends
func Tone(freq, seconds float64, sampleRate int, volume float64) []byte {
	return Sweep(freq, freq, seconds, sampleRate, volume)
}

// Sweep renders a sine whose frequency glides linearly from one value to another
func Sweep(from, to, seconds float64, sampleRate int, volume float64) []byte {
	frames := int(seconds * float64(sampleRate))
	buf := make([]byte, frames*bytesPerFrame)
	phase := 0.0
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames)
		freq := from + (to-from)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)
		putFrame(buf, i, math.Sin(phase)*volume*envelope(i, frames, sampleRate))
	}
	return buf
}

// Square renders a square wave, harsher than Tone
func Square(freq, seconds float64, sampleRate int, volume float64) []byte {
	frames := int(seconds * float64(sampleRate))
	buf := make([]byte, frames*bytesPerFrame)
	period := float64(sampleRate) / freq
	for i := 0; i < frames; i++ {
		v := volume
		if math.Mod(float64(i), period) >= period/2 {
			v = -volume
		}
		putFrame(buf, i, v*envelope(i, frames, sampleRate))
	}
	return buf
}

// envelope fades the first and last 5ms to avoid clicks
func envelope(i, frames, sampleRate int) float64 {
	fade := sampleRate / 200
	if fade == 0 || frames < 2*fade {
		return 1
	}
	switch {
	case i < fade:
		return float64(i) / float64(fade)
	case i >= frames-fade:
		return float64(frames-1-i) / float64(fade)
	}
	return 1
}

func putFrame(buf []byte, i int, v float64) {
	v = math.Max(-1, math.Min(1, v))
	sample := int16(v * math.MaxInt16)
	base := i * bytesPerFrame
	for ch := 0; ch < 2; ch++ {
		buf[base+ch*2] = byte(sample)
		buf[base+ch*2+1] = byte(sample >> 8)
	}
}

func concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
