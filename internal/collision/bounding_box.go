package collision

// Point is a position in world units
type Point struct {
	X, Y float64
}

// BoundingBox is an axis-aligned rectangle in world units. Edges count as
// inside, so boxes that touch intersect.
type BoundingBox struct {
	Min, Max Point
}

// NewBoundingBox creates a box of the given size centered on (x, y)
func NewBoundingBox(x, y, width, height float64) BoundingBox {
	hw, hh := width/2, height/2
	return BoundingBox{
		Min: Point{X: x - hw, Y: y - hh},
		Max: Point{X: x + hw, Y: y + hh},
	}
}

// NewClearanceBox is the square a body with the given clearance margin
// occupies around its position
func NewClearanceBox(x, y, margin float64) BoundingBox {
	return NewBoundingBox(x, y, 2*margin, 2*margin)
}

// Corners returns top-left, top-right, bottom-left, bottom-right
func (bb BoundingBox) Corners() [4]Point {
	return [4]Point{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		{X: bb.Min.X, Y: bb.Max.Y},
		bb.Max,
	}
}

// Intersects reports whether the two boxes overlap or touch
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && other.Min.X <= bb.Max.X &&
		bb.Min.Y <= other.Max.Y && other.Min.Y <= bb.Max.Y
}
