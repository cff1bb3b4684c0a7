package world

import "fmt"

// CellKind is the semantic class of a grid cell, resolved once at load time.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellTrigger
	CellStart
	CellGoal
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellTrigger:
		return "trigger"
	case CellStart:
		return "start"
	case CellGoal:
		return "goal"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Solid reports whether rays stop at and movement is blocked by this kind.
// Goal cells are textured walls; reaching one is a proximity check.
func (k CellKind) Solid() bool {
	return k == CellWall || k == CellGoal
}

// ParseCellKind maps the legend's kind names onto CellKind.
func ParseCellKind(s string) (CellKind, error) {
	switch s {
	case "empty", "":
		return CellEmpty, nil
	case "wall":
		return CellWall, nil
	case "trigger":
		return CellTrigger, nil
	case "start":
		return CellStart, nil
	case "goal":
		return CellGoal, nil
	default:
		return CellEmpty, fmt.Errorf("unknown cell kind %q", s)
	}
}

// Cell is one grid entry. Symbol keeps the raw map character so that
// different wall variants can carry different textures.
type Cell struct {
	Kind    CellKind
	Symbol  rune
	Texture rune
}

// Solid is shorthand for c.Kind.Solid().
func (c Cell) Solid() bool {
	return c.Kind.Solid()
}
