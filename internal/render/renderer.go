package render

import (
	"image/color"

	"mazerunner/internal/config"
	"mazerunner/internal/graphics"
	"mazerunner/internal/monitoring"
	"mazerunner/internal/raycast"
	"mazerunner/internal/sprite"
	"mazerunner/internal/world"
)

// Renderer runs one frame end to end: background, wall columns, sprites and
// post effects, in that order, into a caller-owned framebuffer.
type Renderer struct {
	Columns  ColumnRenderer
	Sprites  SpriteCompositor
	Sky      color.RGBA
	Floor    color.RGBA
	Monitor  *monitoring.PerformanceMonitor // optional
	Minimap  Minimap
	ShowMap  bool
	LastStat FrameStats
}

// FrameStats summarises the last frame
type FrameStats struct {
	Columns      ColumnStats
	SpritePixels int
}

// NewRenderer builds a renderer from config
func NewRenderer(cfg *config.Config) *Renderer {
	march := raycast.Options{Step: cfg.Raycast.StepSize, Refine: cfg.Raycast.RefineIterations}
	return &Renderer{
		Columns: ColumnRenderer{
			March:             march,
			ColumnStep:        cfg.Raycast.ColumnStep,
			ProjectionPlane:   cfg.Raycast.ProjectionPlane,
			MaxDistance:       cfg.Raycast.MaxDistance,
			MinDistance:       cfg.Raycast.MinDistance,
			FisheyeCorrection: cfg.Raycast.FisheyeCorrection,
		},
		Sprites: SpriteCompositor{
			Scale:         cfg.Sprites.Scale,
			MaxDistance:   cfg.Sprites.MaxDistance,
			MinDistance:   cfg.Sprites.MinDistance,
			MinBrightness: cfg.Sprites.MinBrightness,
		},
		Sky:     cfg.GetSkyColor(),
		Floor:   cfg.GetFloorColor(),
		Minimap: Minimap{March: march, Rays: 32},
	}
}

// RenderFrame draws the scene seen from p. Sprite distances are refreshed
// before compositing. When ShowMap is set the top-down view replaces the
// first-person frame and effects are skipped.
func (r *Renderer) RenderFrame(fb *Framebuffer, depth *DepthBuffer, g *world.Grid, p raycast.Pose, sprites []*sprite.Sprite, textures graphics.Lookup, effects []Effect) (FrameStats, error) {
	sprite.UpdateDistances(sprites, p)

	if r.ShowMap {
		r.Minimap.Draw(fb, g, p, sprites)
		return FrameStats{}, nil
	}

	fb.FillBackground(r.Sky, r.Floor)

	var stats FrameStats
	var err error
	r.profile(monitoring.StageColumns, func() {
		stats.Columns, err = r.Columns.Render(fb, depth, g, p, textures)
	})
	if err != nil {
		return FrameStats{}, err
	}
	r.profile(monitoring.StageSprites, func() {
		stats.SpritePixels = r.Sprites.Composite(fb, depth, p, sprites, textures)
	})
	r.profile(monitoring.StageEffects, func() {
		ApplyEffects(fb, effects...)
	})

	if r.Monitor != nil {
		r.Monitor.RecordColumns(stats.Columns.Rays, stats.Columns.NoWall)
		r.Monitor.RecordSprites(len(sprites), stats.SpritePixels)
	}
	r.LastStat = stats
	return stats, nil
}

func (r *Renderer) profile(stage string, fn func()) {
	if r.Monitor == nil {
		fn()
		return
	}
	r.Monitor.ProfiledFunction(stage, fn)
}
