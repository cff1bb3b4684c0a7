package world

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"mazerunner/internal/logger"

	"github.com/sirupsen/logrus"
)

// MapLoader turns map text into grids using a tile legend
type MapLoader struct {
	tiles     *TileManager
	blockSize float64
}

// NewMapLoader creates a map loader
func NewMapLoader(tiles *TileManager, blockSize float64) *MapLoader {
	return &MapLoader{tiles: tiles, blockSize: blockSize}
}

// LoadMap loads a map from the specified file path. Lines starting with ';'
// are comments; blank lines are skipped.
func (ml *MapLoader) LoadMap(mapPath string) (*Grid, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	grid, err := ml.ParseMap(lines)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"map":     mapPath,
		"width":   grid.Width,
		"height":  grid.Height,
		"goals":   len(grid.Goals()),
		"sprites": len(grid.Spawns()),
	}).Debug("map loaded")

	return grid, nil
}

// ParseMap builds a grid from map rows
func (ml *MapLoader) ParseMap(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}

	height := len(lines)
	width := utf8.RuneCountInString(lines[0])
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			return nil, fmt.Errorf("%w: line %d has inconsistent width: expected %d, got %d", ErrNotRectangular, i+1, width, n)
		}
	}

	cells := make([]Cell, 0, width*height)
	var spawns []Spawn
	for y, line := range lines {
		x := 0
		for _, char := range line {
			info, err := ml.tiles.Resolve(char)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", y+1, x+1, err)
			}
			cells = append(cells, info.Cell)
			if info.Sprite != 0 {
				spawns = append(spawns, Spawn{Col: x, Row: y, Sprite: info.Sprite, AI: info.AI})
			}
			x++
		}
	}

	return NewGrid(width, height, ml.blockSize, cells, spawns)
}

// ParseMap is a convenience wrapper using the built-in legend
func ParseMap(lines []string, blockSize float64) (*Grid, error) {
	return NewMapLoader(DefaultTileManager(), blockSize).ParseMap(lines)
}
