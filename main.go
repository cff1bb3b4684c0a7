package main

import (
	"errors"
	"os"
	"path/filepath"

	"mazerunner/internal/assets"
	"mazerunner/internal/config"
	"mazerunner/internal/game"
	"mazerunner/internal/logger"
	"mazerunner/internal/sound"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	ensureRuntimeCWD()

	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	// Tile legend, textures and every level map are checked before the
	// window opens
	bundle, err := assets.Load(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load assets")
	}
	if err := assets.FirstError(bundle.CheckLevels(cfg)); err != nil {
		logger.Log.WithError(err).Fatal("Invalid level")
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	g := game.NewGame(cfg, bundle.Tiles, bundle.Textures, sound.NewPlayer(cfg.Audio))

	logger.Log.WithFields(logrus.Fields{
		"levels": len(cfg.Levels),
		"width":  cfg.GetScreenWidth(),
		"height": cfg.GetScreenHeight(),
	}).Info("Starting")

	err = runGame(g, func() error { return ebiten.RunGame(game.NewGameLoop(g)) })
	if err != nil {
		logger.Log.WithError(err).Fatal("Game exited with an error")
	}
}

// runGame plays until the loop ends and closes g before returning, so the
// worker pool is stopped even when the caller exits on the error. Quitting
// from the menu is not an error.
func runGame(g interface{ Close() }, play func() error) error {
	err := play()
	g.Close()
	if errors.Is(err, game.ErrExit) {
		return nil
	}
	return err
}

// ensureRuntimeCWD switches to the executable's directory when started from
// somewhere without config.yaml, so relative asset paths resolve.
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
