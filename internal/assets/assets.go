// Package assets loads the tile legend, textures and level maps named in
// config.yaml and cross-checks them.
package assets

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"mazerunner/internal/config"
	"mazerunner/internal/graphics"
	"mazerunner/internal/logger"
	"mazerunner/internal/world"
)

// Bundle is everything loaded from disk at startup
type Bundle struct {
	Tiles    *world.TileManager
	Textures *graphics.TextureManager
}

// LevelReport is the result of checking one configured level
type LevelReport struct {
	Name            string
	Map             string
	Grid            *world.Grid
	MissingTextures []rune
	Err             error
}

// Load reads the tile legend and texture manifest
func Load(cfg *config.Config) (*Bundle, error) {
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Assets.Tiles); err != nil {
		return nil, err
	}
	textures, err := graphics.LoadTextureManifest(cfg.Assets.Textures)
	if err != nil {
		return nil, err
	}
	return &Bundle{Tiles: tiles, Textures: textures}, nil
}

// CheckLevels loads every configured level and lists the texture tags it
// uses that fall back to the default texture. Missing textures are logged
// as warnings; map errors are returned per level.
func (b *Bundle) CheckLevels(cfg *config.Config) []LevelReport {
	loader := world.NewMapLoader(b.Tiles, cfg.GetBlockSize())
	reports := make([]LevelReport, 0, len(cfg.Levels))

	for _, lvl := range cfg.Levels {
		report := LevelReport{Name: lvl.Name, Map: lvl.Map}
		grid, err := loader.LoadMap(lvl.Map)
		if err != nil {
			report.Err = err
			reports = append(reports, report)
			continue
		}
		if _, _, err := grid.Start(); err != nil {
			report.Err = fmt.Errorf("map %s: %w", lvl.Map, err)
		}
		report.Grid = grid
		report.MissingTextures = b.Textures.Missing(TextureTags(grid))
		if len(report.MissingTextures) > 0 {
			logger.Log.WithFields(logrus.Fields{
				"level":   lvl.Name,
				"missing": string(report.MissingTextures),
			}).Warn("Level uses textures without an image; the default will be drawn")
		}
		reports = append(reports, report)
	}
	return reports
}

// FirstError returns the first level error, if any
func FirstError(reports []LevelReport) error {
	for _, r := range reports {
		if r.Err != nil {
			return fmt.Errorf("level %q: %w", r.Name, r.Err)
		}
	}
	return nil
}

// TextureTags returns the sorted, distinct texture tags a grid draws: solid
// cell textures and sprite tags
func TextureTags(g *world.Grid) []rune {
	seen := make(map[rune]bool)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if c := g.Cell(col, row); c.Solid() {
				seen[c.Texture] = true
			}
		}
	}
	for _, sp := range g.Spawns() {
		seen[sp.Sprite] = true
	}

	tags := make([]rune, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
