package render

import (
	"image/color"
	"math"

	"mazerunner/internal/config"
	"mazerunner/internal/mathutil"
)

// Effect is a full-frame transform applied in place. Effects run in order
// and each one sees the output of the previous.
type Effect interface {
	Apply(fb *Framebuffer)
}

// ApplyEffects runs effects sequentially over the same buffer
func ApplyEffects(fb *Framebuffer, effects ...Effect) {
	for _, e := range effects {
		e.Apply(fb)
	}
}

// Flashlight brightens a disc around the screen center, fades linearly
// across a transition band and darkens everything beyond it.
type Flashlight struct {
	Radius     float64
	Transition float64
	Boost      float64 // extra brightness at the very center
	Darkness   float64 // factor applied outside the beam
}

func (f Flashlight) factor(d float64) float64 {
	switch {
	case d <= f.Radius:
		return 1 + (1-d/f.Radius)*f.Boost
	case d <= f.Radius+f.Transition:
		t := (d - f.Radius) / f.Transition
		return 1 - t*(1-f.Darkness)
	default:
		return f.Darkness
	}
}

func (f Flashlight) Apply(fb *Framebuffer) {
	cx, cy := float64(fb.Width/2), float64(fb.Height/2)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			k := f.factor(math.Hypot(float64(x)-cx, float64(y)-cy))
			c := fb.At(x, y)
			fb.Set(x, y, color.RGBA{
				R: mathutil.ClampByte(float64(c.R) * k),
				G: mathutil.ClampByte(float64(c.G) * k),
				B: mathutil.ClampByte(float64(c.B) * k),
				A: c.A,
			})
		}
	}
}

// Fog blends rows toward Color, more strongly toward the bottom of the screen.
type Fog struct {
	Color        color.RGBA
	Density      float64
	MaxIntensity float64
}

func (f Fog) Apply(fb *Framebuffer) {
	for y := 0; y < fb.Height; y++ {
		k := math.Min(float64(y)/float64(fb.Height)*f.Density, f.MaxIntensity)
		if k <= 0 {
			continue
		}
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			fb.Set(x, y, color.RGBA{
				R: mathutil.ClampByte(mathutil.Lerp(float64(c.R), float64(f.Color.R), k)),
				G: mathutil.ClampByte(mathutil.Lerp(float64(c.G), float64(f.Color.G), k)),
				B: mathutil.ClampByte(mathutil.Lerp(float64(c.B), float64(f.Color.B), k)),
				A: c.A,
			})
		}
	}
}

// Distortion averages every pixel with one sampled at a time-varying
// sinusoidal offset. Zero intensity leaves the frame untouched.
type Distortion struct {
	Time      float64
	Intensity float64
}

func (d Distortion) Apply(fb *Framebuffer) {
	if d.Intensity <= 0 {
		return
	}
	for y := 0; y < fb.Height; y++ {
		dy := math.Cos(d.Time*8+float64(y)*0.01) * d.Intensity * 1.5
		for x := 0; x < fb.Width; x++ {
			dx := math.Sin(d.Time*10+float64(x)*0.01) * d.Intensity * 2
			sx, sy := int(float64(x)+dx), int(float64(y)+dy)
			if sx == x && sy == y {
				continue
			}
			src := fb.At(sx, sy)
			cur := fb.At(x, y)
			fb.Set(x, y, color.RGBA{
				R: uint8((int(src.R) + int(cur.R)) / 2),
				G: uint8((int(src.G) + int(cur.G)) / 2),
				B: uint8((int(src.B) + int(cur.B)) / 2),
				A: cur.A,
			})
		}
	}
}

// DamageFlash pulses the frame red.
type DamageFlash struct {
	Time      float64
	Intensity float64
}

func (d DamageFlash) Apply(fb *Framebuffer) {
	if d.Intensity <= 0 {
		return
	}
	k := math.Abs(math.Sin(d.Time*20)) * d.Intensity
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			fb.Set(x, y, color.RGBA{
				R: mathutil.ClampByte(float64(c.R) + k*100),
				G: mathutil.ClampByte(float64(c.G) * (1 - k*0.5)),
				B: mathutil.ClampByte(float64(c.B) * (1 - k*0.5)),
				A: c.A,
			})
		}
	}
}

// EffectState carries the time-varying inputs of the post effects
type EffectState struct {
	Time       float64
	Anxiety    float64
	Damage     float64
	Flashlight bool

	anxietyDecay float64
	damageDecay  float64
}

// NewEffectState creates effect state from the effects config section
func NewEffectState(cfg config.EffectsConfig) *EffectState {
	return &EffectState{
		Flashlight:   cfg.Flashlight.Enabled,
		anxietyDecay: cfg.AnxietyDecay,
		damageDecay:  cfg.DamageDecay,
	}
}

// Update advances time by dt seconds and decays anxiety and damage
func (s *EffectState) Update(dt float64) {
	s.Time += dt
	s.Anxiety = math.Max(s.Anxiety-dt*s.anxietyDecay, 0)
	s.Damage = math.Max(s.Damage-dt*s.damageDecay, 0)
}

// TriggerAnxiety starts the distortion at full strength
func (s *EffectState) TriggerAnxiety(level float64) {
	s.Anxiety = math.Max(s.Anxiety, level)
}

// TriggerDamage starts the red flash at full strength
func (s *EffectState) TriggerDamage() {
	s.Damage = 1
}

// ToggleFlashlight flips the flashlight on or off
func (s *EffectState) ToggleFlashlight() {
	s.Flashlight = !s.Flashlight
}

// Chain builds this frame's effects in the configured order
func (s *EffectState) Chain(cfg config.EffectsConfig) []Effect {
	effects := make([]Effect, 0, len(cfg.Order))
	for _, name := range cfg.Order {
		switch name {
		case "fog":
			if cfg.Fog.Enabled {
				effects = append(effects, Fog{
					Color:        cfg.Fog.GetColor(),
					Density:      cfg.Fog.Density,
					MaxIntensity: cfg.Fog.MaxIntensity,
				})
			}
		case "flashlight":
			if s.Flashlight {
				effects = append(effects, Flashlight{
					Radius:     cfg.Flashlight.Radius,
					Transition: cfg.Flashlight.Transition,
					Boost:      cfg.Flashlight.Boost,
					Darkness:   cfg.Flashlight.Darkness,
				})
			}
		case "distortion":
			if s.Anxiety > 0 {
				effects = append(effects, Distortion{Time: s.Time, Intensity: s.Anxiety})
			}
		case "damage":
			if s.Damage > 0 {
				effects = append(effects, DamageFlash{Time: s.Time, Intensity: s.Damage})
			}
		}
	}
	return effects
}
