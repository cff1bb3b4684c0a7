package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop adapts a Game to ebiten's update and draw callbacks
type GameLoop struct {
	game         *Game
	inputHandler *InputHandler
	ui           *UISystem

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	perfLowFpsSince    time.Time
	perfLastPerfLog    time.Time
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(),
		ui:           NewUISystem(game),
	}
}

// Update handles all game logic updates for one tick
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	dt := 1.0 / float64(gl.game.config.GetTPS())
	if err := gl.game.Step(gl.inputHandler.Poll(), dt); err != nil {
		return err
	}
	gl.maybeLogPerfDrop()
	return nil
}

// Draw handles all rendering for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	frameTimer := gl.game.monitor.StartFrame()

	if gl.game.state == StatePlaying {
		gl.game.RenderFrame()
	}
	gl.ui.Draw(screen)

	frameTimer.EndFrame()
	gl.lastDrawDuration = time.Since(start)
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
