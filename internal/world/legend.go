package world

// defaultLegend mirrors assets/tiles.yaml so tools and tests can build
// grids without touching the filesystem.
const defaultLegend = `tiles:
  floor:
    name: "Floor"
    letter: " "
    kind: empty
  stone:
    name: "Stone Wall"
    letter: "#"
    kind: wall
  corner:
    name: "Wall Corner"
    letter: "+"
    kind: wall
  wall_h:
    name: "Horizontal Wall"
    letter: "-"
    kind: wall
    texture: "+"
  wall_v:
    name: "Vertical Wall"
    letter: "|"
    kind: wall
    texture: "+"
  trigger:
    name: "Pressure Plate"
    letter: "t"
    kind: trigger
  start:
    name: "Player Start"
    letter: "p"
    kind: start
  goal:
    name: "Exit"
    letter: "g"
    kind: goal
  enemy:
    name: "Spooky"
    letter: "e"
    kind: empty
    sprite: "e"
    ai: true
  wisp:
    name: "Wisp"
    letter: "w"
    kind: empty
    sprite: "w"
`

// DefaultTileManager returns a tile manager loaded with the built-in legend
func DefaultTileManager() *TileManager {
	tm := NewTileManager()
	if err := tm.ParseTileConfig([]byte(defaultLegend)); err != nil {
		panic("built-in tile legend is invalid: " + err.Error())
	}
	return tm
}
