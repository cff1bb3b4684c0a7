package sprite

import (
	"math"

	"mazerunner/internal/config"
	"mazerunner/internal/mathutil"
	"mazerunner/internal/raycast"
	"mazerunner/internal/world"
)

// CollisionChecker reports whether a body with the given clearance fits at
// a position. Satisfied by *collision.CollisionSystem.
type CollisionChecker interface {
	CanOccupy(x, y, margin float64) bool
}

// AI is the hunting state of an enemy sprite
type AI struct {
	Facing   float64 // radians
	FOV      float64 // radians
	Detected bool
}

// NewAI creates an AI facing east
func NewAI(fov float64) *AI {
	return &AI{FOV: fov}
}

// Params tunes enemy behavior
type Params struct {
	Speed         float64
	RotationSpeed float64
	Margin        float64
	ViewDistance  float64
	FOV           float64
	Hysteresis    float64
	SightStep     float64
	StopDistance  float64
}

// ParamsFromConfig converts the ai section of config.yaml
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Speed:         cfg.AI.Speed,
		RotationSpeed: cfg.AI.RotationSpeed,
		Margin:        cfg.AI.Margin,
		ViewDistance:  cfg.AI.ViewDistance,
		FOV:           cfg.GetAIFOV(),
		Hysteresis:    cfg.AI.Hysteresis,
		SightStep:     cfg.AI.SightStep,
		StopDistance:  cfg.AI.CatchRadius,
	}
}

// CanSeePlayer checks range, the vision cone and line of sight
func (s *Sprite) CanSeePlayer(g *world.Grid, px, py float64, p Params) bool {
	if s.AI == nil {
		return false
	}
	dx, dy := px-s.X, py-s.Y
	if math.Hypot(dx, dy) > p.ViewDistance {
		return false
	}
	diff := mathutil.NormalizeAngle(math.Atan2(dy, dx) - s.AI.Facing)
	if math.Abs(diff) > s.AI.FOV/2 {
		return false
	}
	return raycast.LineOfSight(g, s.X, s.Y, px, py, p.SightStep)
}

// UpdateAI turns the sprite toward the player and chases once it has been
// spotted. It returns true on the tick the player is first detected.
func (s *Sprite) UpdateAI(g *world.Grid, cc CollisionChecker, px, py float64, p Params) bool {
	ai := s.AI
	if ai == nil {
		return false
	}

	dx, dy := px-s.X, py-s.Y
	dist := math.Hypot(dx, dy)
	toPlayer := math.Atan2(dy, dx)
	diff := mathutil.NormalizeAngle(toPlayer - ai.Facing)

	// Once detected, a wider cone keeps the lock and avoids flicker.
	wasDetected := ai.Detected
	detected := s.CanSeePlayer(g, px, py, p) ||
		(wasDetected && math.Abs(diff) <= (ai.FOV+p.Hysteresis)/2)
	ai.Detected = detected

	if dist > 10 && math.Abs(diff) > 0.01 {
		rate := p.RotationSpeed * 0.5
		if detected {
			rate = p.RotationSpeed * 2
		}
		ai.Facing = mathutil.NormalizeAngle(ai.Facing + math.Copysign(math.Min(rate, math.Abs(diff)), diff))
	}

	if !detected || dist < p.StopDistance || dist == 0 {
		return detected && !wasDetected
	}
	s.chase(cc, dx/dist, dy/dist, p)
	return detected && !wasDetected
}

// chase steps toward (dirX, dirY): full step, then each axis alone, then the
// two perpendiculars so the sprite can work around corners.
func (s *Sprite) chase(cc CollisionChecker, dirX, dirY float64, p Params) {
	stepX, stepY := dirX*p.Speed, dirY*p.Speed

	if cc.CanOccupy(s.X+stepX, s.Y+stepY, p.Margin) {
		s.X += stepX
		s.Y += stepY
		return
	}

	moved := false
	if stepX != 0 && cc.CanOccupy(s.X+stepX, s.Y, p.Margin) {
		s.X += stepX
		moved = true
	}
	if stepY != 0 && cc.CanOccupy(s.X, s.Y+stepY, p.Margin) {
		s.Y += stepY
		moved = true
	}
	if moved {
		return
	}

	for _, perp := range [2][2]float64{{-dirY, dirX}, {dirY, -dirX}} {
		ax, ay := s.X+perp[0]*p.Speed, s.Y+perp[1]*p.Speed
		if cc.CanOccupy(ax, ay, p.Margin) {
			s.X, s.Y = ax, ay
			return
		}
	}
}

// UpdateAll advances every AI sprite and reports whether any of them
// spotted the player this tick
func UpdateAll(sprites []*Sprite, g *world.Grid, cc CollisionChecker, px, py float64, p Params) bool {
	spotted := false
	for _, s := range sprites {
		if s.UpdateAI(g, cc, px, py, p) {
			spotted = true
		}
	}
	return spotted
}
