// Command snapshot renders one frame of a level without opening a window
// and writes it as a PNG.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"mazerunner/internal/assets"
	"mazerunner/internal/config"
	"mazerunner/internal/logger"
	"mazerunner/internal/raycast"
	"mazerunner/internal/render"
	"mazerunner/internal/sprite"
	"mazerunner/internal/world"

	"github.com/sirupsen/logrus"
)

type options struct {
	configPath string
	level      int
	mapPath    string
	out        string
	x, y       float64
	angle      float64 // degrees
	width      int
	height     int
	minimap    bool
	effects    bool
	anxiety    float64
	damage     float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.yaml", "Config file")
	flag.IntVar(&opts.level, "level", 0, "Index of the configured level to render")
	flag.StringVar(&opts.mapPath, "map", "", "Map file to render instead of a configured level")
	flag.StringVar(&opts.out, "out", "snapshot.png", "Output PNG path")
	flag.Float64Var(&opts.x, "x", math.NaN(), "Camera X in world units (default: start marker)")
	flag.Float64Var(&opts.y, "y", math.NaN(), "Camera Y in world units (default: start marker)")
	flag.Float64Var(&opts.angle, "angle", 0, "Camera heading in degrees, 0 faces east")
	flag.IntVar(&opts.width, "width", 0, "Image width (default: screen width)")
	flag.IntVar(&opts.height, "height", 0, "Image height (default: screen height)")
	flag.BoolVar(&opts.minimap, "minimap", false, "Render the top-down map instead")
	flag.BoolVar(&opts.effects, "effects", true, "Apply the configured post effects")
	flag.Float64Var(&opts.anxiety, "anxiety", 0, "Distortion strength in [0, 1]")
	flag.Float64Var(&opts.damage, "damage", 0, "Damage flash strength in [0, 1]")
	flag.Parse()

	logger.Silence()
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "snapshot:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	bundle, err := assets.Load(cfg)
	if err != nil {
		return err
	}

	mapPath := opts.mapPath
	if mapPath == "" {
		if opts.level < 0 || opts.level >= len(cfg.Levels) {
			return fmt.Errorf("level %d out of range, %d configured", opts.level, len(cfg.Levels))
		}
		mapPath = cfg.Levels[opts.level].Map
	}
	grid, err := world.NewMapLoader(bundle.Tiles, cfg.GetBlockSize()).LoadMap(mapPath)
	if err != nil {
		return err
	}

	pose, err := cameraPose(grid, cfg, opts)
	if err != nil {
		return err
	}

	w, h := opts.width, opts.height
	if w <= 0 {
		w = cfg.GetScreenWidth()
	}
	if h <= 0 {
		h = cfg.GetScreenHeight()
	}
	fb := render.NewFramebuffer(w, h)
	depth := render.NewDepthBuffer(w)

	renderer := render.NewRenderer(cfg)
	renderer.ShowMap = opts.minimap

	var effects []render.Effect
	if opts.effects {
		state := render.NewEffectState(cfg.Effects)
		state.TriggerAnxiety(opts.anxiety)
		state.Damage = opts.damage
		// Distortion and flash are animated; pick a moment where both show.
		state.Time = 0.1
		effects = state.Chain(cfg.Effects)
	}

	sprites := sprite.FromSpawns(grid, sprite.ParamsFromConfig(cfg))
	stats, err := renderer.RenderFrame(fb, depth, grid, pose, sprites, bundle.Textures, effects)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := fb.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Log.WithFields(logrus.Fields{
		"out":           opts.out,
		"map":           mapPath,
		"rays":          stats.Columns.Rays,
		"no_wall":       stats.Columns.NoWall,
		"sprite_pixels": stats.SpritePixels,
	}).Info("Snapshot written")
	return nil
}

// cameraPose uses the explicit position when both coordinates are given and
// the map's start marker otherwise
func cameraPose(g *world.Grid, cfg *config.Config, opts options) (raycast.Pose, error) {
	x, y := opts.x, opts.y
	if math.IsNaN(x) || math.IsNaN(y) {
		sx, sy, err := g.Start()
		if err != nil {
			return raycast.Pose{}, err
		}
		x, y = sx, sy
	}
	if !g.Contains(x, y) {
		return raycast.Pose{}, fmt.Errorf("camera (%.1f, %.1f) is outside the map", x, y)
	}
	return raycast.Pose{
		X:     x,
		Y:     y,
		Angle: opts.angle * math.Pi / 180,
		FOV:   cfg.GetFOV(),
	}, nil
}
