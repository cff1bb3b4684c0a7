package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mazerunner/internal/collision"
	"mazerunner/internal/config"
	"mazerunner/internal/graphics"
	"mazerunner/internal/logger"
	"mazerunner/internal/monitoring"
	"mazerunner/internal/raycast"
	"mazerunner/internal/render"
	"mazerunner/internal/sound"
	"mazerunner/internal/sprite"
	"mazerunner/internal/workers"
	"mazerunner/internal/world"
)

// ErrExit is returned from the game loop to request a clean exit
var ErrExit = errors.New("exit game")

// ErrNoSuchLevel is returned when a level index is outside the configured list
var ErrNoSuchLevel = errors.New("no such level")

// caughtDelay is how long the damage flash plays before the game over screen
const caughtDelay = 0.6

// Game holds the session: configuration, loaded assets, the current level
// and the screen state machine.
type Game struct {
	config   *config.Config
	tiles    *world.TileManager
	textures graphics.Lookup
	sound    *sound.Player
	monitor  *monitoring.PerformanceMonitor
	pool     *workers.WorkerPool

	renderer *render.Renderer
	fb       *render.Framebuffer
	depth    *render.DepthBuffer
	effects  *render.EffectState

	state State
	menu  *Menu

	levelIndex      int
	grid            *world.Grid
	pose            raycast.Pose
	sprites         []*sprite.Sprite
	collisionSystem *collision.CollisionSystem
	aiParams        sprite.Params

	onTrigger   bool
	caught      bool
	caughtFor   float64
	levelTime   float64
	showOverlay bool
	renderErr   error
}

// NewGame creates a session showing the main menu. The sound player may be
// disabled but not nil.
func NewGame(cfg *config.Config, tiles *world.TileManager, textures graphics.Lookup, snd *sound.Player) *Game {
	w, h := cfg.GetScreenWidth(), cfg.GetScreenHeight()

	pool := workers.NewWorkerPool(0)
	pool.Start()

	monitor := monitoring.NewPerformanceMonitor(cfg.Debug.LowFPSThreshold)
	renderer := render.NewRenderer(cfg)
	renderer.Monitor = monitor
	renderer.Columns.Pool = pool

	g := &Game{
		config:      cfg,
		tiles:       tiles,
		textures:    textures,
		sound:       snd,
		monitor:     monitor,
		pool:        pool,
		renderer:    renderer,
		fb:          render.NewFramebuffer(w, h),
		depth:       render.NewDepthBuffer(w),
		effects:     render.NewEffectState(cfg.Effects),
		aiParams:    sprite.ParamsFromConfig(cfg),
		showOverlay: cfg.Debug.ShowOverlay,
	}
	g.showMainMenu()
	return g
}

// Close releases the render workers
func (g *Game) Close() {
	g.pool.Stop()
}

// State returns the current screen
func (g *Game) State() State { return g.state }

// Menu returns the active menu, nil while playing
func (g *Game) Menu() *Menu { return g.menu }

// Pose returns the camera
func (g *Game) Pose() raycast.Pose { return g.pose }

// Grid returns the loaded level, nil before the first level starts
func (g *Game) Grid() *world.Grid { return g.grid }

// Sprites returns the sprites of the current level
func (g *Game) Sprites() []*sprite.Sprite { return g.sprites }

// Effects returns the post effect state
func (g *Game) Effects() *render.EffectState { return g.effects }

// LevelIndex returns the index of the current level in config order
func (g *Game) LevelIndex() int { return g.levelIndex }

// LevelName returns the configured name of the current level
func (g *Game) LevelName() string {
	if g.levelIndex < 0 || g.levelIndex >= len(g.config.Levels) {
		return ""
	}
	return g.config.Levels[g.levelIndex].Name
}

// LoadLevel reads a level's map and places the camera and sprites
func (g *Game) LoadLevel(index int) error {
	if index < 0 || index >= len(g.config.Levels) {
		return fmt.Errorf("%w: %d", ErrNoSuchLevel, index)
	}
	lvl := g.config.Levels[index]

	loader := world.NewMapLoader(g.tiles, g.config.GetBlockSize())
	grid, err := loader.LoadMap(lvl.Map)
	if err != nil {
		return fmt.Errorf("failed to load level %q: %w", lvl.Name, err)
	}
	x, y, err := grid.Start()
	if err != nil {
		return fmt.Errorf("level %q: %w", lvl.Name, err)
	}

	g.levelIndex = index
	g.grid = grid
	g.pose = raycast.Pose{X: x, Y: y, FOV: g.config.GetFOV()}
	g.sprites = sprite.FromSpawns(grid, g.aiParams)
	if g.collisionSystem == nil {
		g.collisionSystem = collision.NewCollisionSystem(grid, grid.BlockSize)
	} else {
		g.collisionSystem.UpdateTileChecker(grid)
	}

	flashlight := g.effects.Flashlight
	g.effects = render.NewEffectState(g.config.Effects)
	g.effects.Flashlight = flashlight
	g.onTrigger = false
	g.caught = false
	g.caughtFor = 0
	g.levelTime = 0
	g.renderer.ShowMap = false

	logger.Log.WithFields(logrus.Fields{
		"level":   lvl.Name,
		"map":     lvl.Map,
		"width":   grid.Width,
		"height":  grid.Height,
		"sprites": len(g.sprites),
	}).Info("Level loaded")
	return nil
}

func (g *Game) startLevel(index int) error {
	if err := g.LoadLevel(index); err != nil {
		return err
	}
	g.state = StatePlaying
	g.menu = nil
	return nil
}

// Step advances the session by one tick of dt seconds
func (g *Game) Step(in InputState, dt float64) error {
	if g.renderErr != nil {
		return g.renderErr
	}
	if g.state == StatePlaying {
		g.updatePlaying(in, dt)
		return nil
	}
	return g.updateMenu(in)
}

func (g *Game) updateMenu(in InputState) error {
	if g.menu.Navigate(in) {
		g.sound.Play(sound.CueMenu)
	}
	if in.Escape && g.state == StateLevelSelect {
		g.showMainMenu()
		return nil
	}
	if !in.Confirm {
		return nil
	}

	if g.state == StateLevelSelect && g.menu.Selection < len(g.config.Levels) {
		return g.startLevel(g.menu.Selection)
	}
	switch g.menu.Selected() {
	case optionStart:
		return g.startLevel(0)
	case optionLevelSelect:
		g.showLevelSelect()
	case optionQuit:
		return ErrExit
	case optionNextLevel:
		return g.startLevel(g.levelIndex + 1)
	case optionRetry:
		return g.startLevel(g.levelIndex)
	case optionMainMenu, optionBack:
		g.showMainMenu()
	}
	return nil
}

func (g *Game) updatePlaying(in InputState, dt float64) {
	if in.Escape {
		g.showMainMenu()
		return
	}
	if in.ToggleMap {
		g.renderer.ShowMap = !g.renderer.ShowMap
	}
	if in.ToggleFlashlight {
		g.effects.ToggleFlashlight()
	}
	if in.ToggleOverlay {
		g.showOverlay = !g.showOverlay
	}
	g.effects.Update(dt)

	if g.caught {
		g.caughtFor += dt
		if g.caughtFor >= caughtDelay {
			g.showGameOver()
		}
		return
	}
	g.levelTime += dt

	d := movementDelta(in, g.config.GetMoveSpeed(), g.config.GetRotSpeed())
	g.pose = collision.ApplyMove(g.grid, g.pose, d, g.config.Movement.Margin)
	g.checkTrigger()

	spotted := false
	g.monitor.ProfiledFunction(monitoring.StageAI, func() {
		spotted = sprite.UpdateAll(g.sprites, g.grid, g.collisionSystem, g.pose.X, g.pose.Y, g.aiParams)
	})
	if spotted {
		g.effects.TriggerAnxiety(g.config.AI.AnxietyOnSight)
		g.sound.Play(sound.CueSpotted)
		logger.Log.WithField("level", g.LevelName()).Debug("Player spotted")
	}

	if g.checkCaught() {
		return
	}
	if g.grid.NearGoal(g.pose.X, g.pose.Y, g.config.Goal.RadiusFactor) {
		g.sound.Play(sound.CueGoal)
		logger.Log.WithFields(logrus.Fields{
			"level": g.LevelName(),
			"time":  fmt.Sprintf("%.1fs", g.levelTime),
		}).Info("Level complete")
		g.showLevelComplete()
	}
}

// checkTrigger fires a scare when the player steps onto a trigger cell
func (g *Game) checkTrigger() {
	col, row := g.grid.CellIndex(g.pose.X, g.pose.Y)
	cell, ok := g.grid.Lookup(col, row)
	on := ok && cell.Kind == world.CellTrigger
	if on && !g.onTrigger {
		g.effects.TriggerAnxiety(1)
		g.sound.Play(sound.CueSpotted)
	}
	g.onTrigger = on
}

func (g *Game) checkCaught() bool {
	player := collision.NewClearanceBox(g.pose.X, g.pose.Y, g.config.Movement.Margin)
	for _, s := range g.sprites {
		if s.AI == nil {
			continue
		}
		if collision.NewClearanceBox(s.X, s.Y, g.config.AI.CatchRadius).Intersects(player) {
			g.caught = true
			g.caughtFor = 0
			g.effects.TriggerDamage()
			g.sound.Play(sound.CueDamage)
			logger.Log.WithFields(logrus.Fields{
				"level": g.LevelName(),
				"x":     s.X,
				"y":     s.Y,
			}).Info("Player caught")
			return true
		}
	}
	return false
}

// RenderFrame draws the current level into the game's framebuffer
func (g *Game) RenderFrame() {
	if g.grid == nil {
		return
	}
	effects := g.effects.Chain(g.config.Effects)
	if _, err := g.renderer.RenderFrame(g.fb, g.depth, g.grid, g.pose, g.sprites, g.textures, effects); err != nil {
		logger.Log.WithError(err).Error("Render failed")
		g.renderErr = err
	}
}

func (g *Game) showMainMenu() {
	g.state = StateMainMenu
	g.menu = NewMenu(g.config.Display.WindowTitle, mainMenuOptions...)
}

func (g *Game) showLevelSelect() {
	options := make([]string, 0, len(g.config.Levels)+1)
	for _, lvl := range g.config.Levels {
		options = append(options, lvl.Name)
	}
	g.state = StateLevelSelect
	g.menu = NewMenu("Select Level", append(options, optionBack)...)
}

func (g *Game) showLevelComplete() {
	g.state = StateLevelComplete
	if g.levelIndex+1 < len(g.config.Levels) {
		g.menu = NewMenu("Level Complete", optionNextLevel, optionMainMenu)
	} else {
		g.menu = NewMenu("You Escaped", optionMainMenu)
	}
	g.menu.Subtitle = fmt.Sprintf("%s in %.1fs", g.LevelName(), g.levelTime)
}

func (g *Game) showGameOver() {
	g.state = StateGameOver
	g.menu = NewMenu("Game Over", optionRetry, optionMainMenu)
	g.menu.Subtitle = fmt.Sprintf("Caught on %s", g.LevelName())
}
