package sprite

import (
	"math"
	"sort"

	"mazerunner/internal/raycast"
	"mazerunner/internal/world"
)

// Sprite is a billboard in world space
type Sprite struct {
	X, Y float64
	Tag  rune

	// Distance and Angle are the last values computed by UpdateDistances.
	// Angle is the world-space direction from the camera to the sprite.
	Distance float64
	Angle    float64

	AI *AI // nil for decoration
}

// New creates a sprite without AI
func New(x, y float64, tag rune) *Sprite {
	return &Sprite{X: x, Y: y, Tag: tag}
}

// FromSpawns creates one sprite per map spawn, centered in its cell
func FromSpawns(g *world.Grid, params Params) []*Sprite {
	spawns := g.Spawns()
	sprites := make([]*Sprite, 0, len(spawns))
	for _, sp := range spawns {
		x, y := g.CellCenter(sp.Col, sp.Row)
		s := New(x, y, sp.Sprite)
		if sp.AI {
			s.AI = NewAI(params.FOV)
		}
		sprites = append(sprites, s)
	}
	return sprites
}

// UpdateDistances refreshes the cached distance and angle of every sprite
// and sorts the slice far to near. Equal distances keep their order.
func UpdateDistances(sprites []*Sprite, p raycast.Pose) {
	for _, s := range sprites {
		dx := s.X - p.X
		dy := s.Y - p.Y
		s.Distance = math.Hypot(dx, dy)
		s.Angle = math.Atan2(dy, dx)
	}
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Distance > sprites[j].Distance
	})
}
