package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"mazerunner/internal/assets"
	"mazerunner/internal/config"
	"mazerunner/internal/game"
	"mazerunner/internal/logger"
	"mazerunner/internal/raycast"
	"mazerunner/internal/render"
	"mazerunner/internal/sprite"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

// TestShippedAssets loads config.yaml and every asset it references the
// same way main does, then renders one frame per level.
func TestShippedAssets(t *testing.T) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("config.yaml: %v", err)
	}
	if len(cfg.Levels) == 0 {
		t.Fatal("config.yaml lists no levels")
	}

	bundle, err := assets.Load(cfg)
	if err != nil {
		t.Fatalf("assets: %v", err)
	}

	for _, r := range bundle.CheckLevels(cfg) {
		t.Run(r.Name, func(t *testing.T) {
			if r.Err != nil {
				t.Fatalf("level does not load: %v", r.Err)
			}
			if len(r.MissingTextures) > 0 {
				t.Errorf("no texture for %q", string(r.MissingTextures))
			}
			if len(r.Grid.Goals()) == 0 {
				t.Error("level has no exit")
			}

			x, y, err := r.Grid.Start()
			if err != nil {
				t.Fatal(err)
			}
			fb := render.NewFramebuffer(160, 120)
			depth := render.NewDepthBuffer(160)
			renderer := render.NewRenderer(cfg)
			sprites := sprite.FromSpawns(r.Grid, sprite.ParamsFromConfig(cfg))

			for _, angle := range []float64{0, 1.5, 3, 4.5} {
				pose := raycast.Pose{X: x, Y: y, Angle: angle, FOV: cfg.GetFOV()}
				stats, err := renderer.RenderFrame(fb, depth, r.Grid, pose, sprites, bundle.Textures, nil)
				if err != nil {
					t.Fatalf("render at angle %.1f: %v", angle, err)
				}
				// Every level is enclosed, so every ray ends on a wall.
				if stats.Columns.NoWall != 0 {
					t.Errorf("angle %.1f: %d rays left the map", angle, stats.Columns.NoWall)
				}
			}
		})
	}
}

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() { c.closed++ }

func TestRunGameClosesOnEveryExit(t *testing.T) {
	crash := errors.New("device lost")
	tests := []struct {
		name    string
		playErr error
		wantErr error
	}{
		{"window closed", nil, nil},
		{"quit from menu", game.ErrExit, nil},
		{"wrapped quit", fmt.Errorf("loop: %w", game.ErrExit), nil},
		{"loop failure", crash, crash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &closeRecorder{}
			err := runGame(rec, func() error {
				if rec.closed != 0 {
					t.Error("game closed before the loop ended")
				}
				return tt.playErr
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("runGame returned %v, want %v", err, tt.wantErr)
			}
			if rec.closed != 1 {
				t.Errorf("Close called %d times, want 1", rec.closed)
			}
		})
	}
}
