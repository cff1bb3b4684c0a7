package collision

import (
	"math"

	"mazerunner/internal/raycast"
	"mazerunner/internal/world"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// CollisionSystem resolves movement against the tile grid
type CollisionSystem struct {
	tileChecker TileChecker
	tileSize    float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileSize float64) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		tileSize:    tileSize,
	}
}

// UpdateTileChecker updates the tile checker (used when switching levels)
func (cs *CollisionSystem) UpdateTileChecker(tileChecker TileChecker) {
	cs.tileChecker = tileChecker
}

// CanOccupy reports whether all four clearance corners around (x, y) sit in
// free, in-bounds tiles
func (cs *CollisionSystem) CanOccupy(x, y, margin float64) bool {
	width, height := cs.tileChecker.GetWorldBounds()
	for _, corner := range NewClearanceBox(x, y, margin).Corners() {
		tileX := int(math.Floor(corner.X / cs.tileSize))
		tileY := int(math.Floor(corner.Y / cs.tileSize))
		if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
			return false
		}
		if cs.tileChecker.IsTileBlocking(tileX, tileY) {
			return false
		}
	}
	return true
}

// Slide attempts the X and Y components of a move independently so a body
// brushing a wall keeps the parallel part of its motion
func (cs *CollisionSystem) Slide(x, y, dx, dy, margin float64) (newX, newY float64) {
	newX, newY = x, y
	if dx != 0 && cs.CanOccupy(x+dx, y, margin) {
		newX = x + dx
	}
	if dy != 0 && cs.CanOccupy(newX, y+dy, margin) {
		newY = y + dy
	}
	return newX, newY
}

// Delta is one frame of requested movement
type Delta struct {
	Turn    float64 // radians, positive turns clockwise on screen
	Forward float64 // world units along the heading
	Strafe  float64 // world units to the right of the heading
}

// ApplyMove returns the pose after rotating and sliding by d. The input pose
// is never modified.
func ApplyMove(g *world.Grid, p raycast.Pose, d Delta, margin float64) raycast.Pose {
	p.Angle += d.Turn
	if d.Forward == 0 && d.Strafe == 0 {
		return p
	}

	cos, sin := math.Cos(p.Angle), math.Sin(p.Angle)
	dx := cos*d.Forward - sin*d.Strafe
	dy := sin*d.Forward + cos*d.Strafe

	cs := NewCollisionSystem(g, g.BlockSize)
	p.X, p.Y = cs.Slide(p.X, p.Y, dx, dy, margin)
	return p
}
