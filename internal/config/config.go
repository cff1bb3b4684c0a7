package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Raycast  RaycastConfig  `yaml:"raycast"`
	Sprites  SpriteConfig   `yaml:"sprites"`
	Effects  EffectsConfig  `yaml:"effects"`
	AI       AIConfig       `yaml:"ai"`
	Goal     GoalConfig     `yaml:"goal"`
	Colors   ColorConfig    `yaml:"colors"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetConfig    `yaml:"assets"`
	Levels   []LevelConfig  `yaml:"levels"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

type WorldConfig struct {
	BlockSize float64 `yaml:"block_size"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"` // degrees
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per tick
	Margin        float64 `yaml:"margin"`         // clearance around the player position
}

type RaycastConfig struct {
	StepSize          float64 `yaml:"step_size"`
	RefineIterations  int     `yaml:"refine_iterations"`
	ColumnStep        int     `yaml:"column_step"`
	ProjectionPlane   float64 `yaml:"projection_plane"`
	MaxDistance       float64 `yaml:"max_distance"`
	MinDistance       float64 `yaml:"min_distance"`
	FisheyeCorrection bool    `yaml:"fisheye_correction"`
}

type SpriteConfig struct {
	Scale         float64 `yaml:"scale"`
	MaxDistance   float64 `yaml:"max_distance"`
	MinDistance   float64 `yaml:"min_distance"`
	MinBrightness float64 `yaml:"min_brightness"`
}

type EffectsConfig struct {
	Order        []string         `yaml:"order"`
	Flashlight   FlashlightConfig `yaml:"flashlight"`
	Fog          FogConfig        `yaml:"fog"`
	AnxietyDecay float64          `yaml:"anxiety_decay"` // per second
	DamageDecay  float64          `yaml:"damage_decay"`  // per second
}

type FlashlightConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Radius     float64 `yaml:"radius"`
	Transition float64 `yaml:"transition"`
	Boost      float64 `yaml:"boost"`
	Darkness   float64 `yaml:"darkness"`
}

type FogConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Color        [3]int  `yaml:"color"`
	Density      float64 `yaml:"density"`
	MaxIntensity float64 `yaml:"max_intensity"`
}

type AIConfig struct {
	Speed          float64 `yaml:"speed"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
	Margin         float64 `yaml:"margin"`
	ViewDistance   float64 `yaml:"view_distance"`
	FieldOfView    float64 `yaml:"field_of_view"` // degrees
	CatchRadius    float64 `yaml:"catch_radius"`
	Hysteresis     float64 `yaml:"hysteresis"` // radians
	SightStep      float64 `yaml:"sight_step"`
	AnxietyOnSight float64 `yaml:"anxiety_on_sight"`
}

type GoalConfig struct {
	RadiusFactor float64 `yaml:"radius_factor"`
}

type ColorConfig struct {
	Sky   [3]int `yaml:"sky"`
	Floor [3]int `yaml:"floor"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

type AssetConfig struct {
	Tiles    string `yaml:"tiles"`
	Textures string `yaml:"textures"`
}

type LevelConfig struct {
	Name string `yaml:"name"`
	Map  string `yaml:"map"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DebugConfig struct {
	PerfLog         bool    `yaml:"perf_log"`
	LowFPSThreshold float64 `yaml:"low_fps_threshold"`
	ShowOverlay     bool    `yaml:"show_overlay"`
}

// TileConfig is the tile legend file layout (assets/tiles.yaml)
type TileConfig struct {
	TileData map[string]TileData `yaml:"tiles"`
}

// TileData describes one map symbol
type TileData struct {
	Name    string `yaml:"name"`
	Letter  string `yaml:"letter"`
	Kind    string `yaml:"kind"`    // empty, wall, trigger, start, goal
	Texture string `yaml:"texture"` // texture tag, defaults to the letter
	Sprite  string `yaml:"sprite"`  // sprite texture tag spawned on this cell
	AI      bool   `yaml:"ai"`      // spawned sprite hunts the player
}

var ErrInvalidConfig = errors.New("invalid config")

var GlobalConfig *Config

// Default returns the built-in configuration used as the base for config.yaml
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			WindowTitle:  "Maze Runner",
			TPS:          60,
		},
		World:  WorldConfig{BlockSize: 100},
		Camera: CameraConfig{FieldOfView: 60},
		Movement: MovementConfig{
			MoveSpeed:     10,
			RotationSpeed: math.Pi / 40,
			Margin:        12,
		},
		Raycast: RaycastConfig{
			StepSize:         10,
			RefineIterations: 8,
			ColumnStep:       1,
			ProjectionPlane:  100,
			MaxDistance:      1000,
			MinDistance:      1,
		},
		Sprites: SpriteConfig{
			Scale:         100,
			MaxDistance:   1000,
			MinDistance:   10,
			MinBrightness: 0.6,
		},
		Effects: EffectsConfig{
			Order: []string{"fog", "flashlight", "distortion", "damage"},
			Flashlight: FlashlightConfig{
				Enabled:    true,
				Radius:     200,
				Transition: 30,
				Boost:      0.2,
				Darkness:   0.15,
			},
			Fog: FogConfig{
				Enabled:      true,
				Color:        [3]int{100, 100, 120},
				Density:      2,
				MaxIntensity: 1,
			},
			AnxietyDecay: 0.5,
			DamageDecay:  2,
		},
		AI: AIConfig{
			Speed:          5,
			RotationSpeed:  0.08,
			Margin:         12,
			ViewDistance:   800,
			FieldOfView:    120,
			CatchRadius:    15,
			Hysteresis:     0.1 * math.Pi,
			SightStep:      10,
			AnxietyOnSight: 1,
		},
		Goal:   GoalConfig{RadiusFactor: 0.8},
		Colors: ColorConfig{Sky: [3]int{40, 40, 60}, Floor: [3]int{70, 60, 50}},
		Audio:  AudioConfig{Enabled: true, SampleRate: 44100, Volume: 0.3},
		Assets: AssetConfig{Tiles: "assets/tiles.yaml", Textures: "assets/textures.yaml"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Debug: DebugConfig{LowFPSThreshold: 50},
	}
}

// LoadConfig loads the configuration from config.yaml on top of Default
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.World.BlockSize <= 0:
		return fmt.Errorf("%w: block_size must be positive", ErrInvalidConfig)
	case c.Raycast.StepSize <= 0:
		return fmt.Errorf("%w: step_size must be positive", ErrInvalidConfig)
	case c.Raycast.StepSize > c.World.BlockSize:
		return fmt.Errorf("%w: step_size %.1f exceeds block_size %.1f", ErrInvalidConfig, c.Raycast.StepSize, c.World.BlockSize)
	case c.Raycast.MinDistance <= 0:
		return fmt.Errorf("%w: raycast min_distance must be positive", ErrInvalidConfig)
	case c.Raycast.ProjectionPlane <= 0:
		return fmt.Errorf("%w: projection_plane must be positive", ErrInvalidConfig)
	case c.Raycast.ColumnStep < 1:
		return fmt.Errorf("%w: column_step must be at least 1", ErrInvalidConfig)
	case c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180:
		return fmt.Errorf("%w: field_of_view must be in (0, 180)", ErrInvalidConfig)
	case c.Raycast.MaxDistance <= 0:
		return fmt.Errorf("%w: max_distance must be positive", ErrInvalidConfig)
	case c.Sprites.MaxDistance <= 0:
		return fmt.Errorf("%w: sprite max_distance must be positive", ErrInvalidConfig)
	case c.Movement.Margin < 0 || c.Movement.Margin >= c.World.BlockSize/2:
		return fmt.Errorf("%w: movement margin %.1f must be in [0, %.1f)", ErrInvalidConfig, c.Movement.Margin, c.World.BlockSize/2)
	}
	for _, name := range c.Effects.Order {
		switch name {
		case "fog", "flashlight", "distortion", "damage":
		default:
			return fmt.Errorf("%w: unknown effect %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetBlockSize() float64 {
	return c.World.BlockSize
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetTPS() int {
	if c.Display.TPS <= 0 {
		return 60
	}
	return c.Display.TPS
}

// GetFOV returns the camera field of view in radians
func (c *Config) GetFOV() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

// GetAIFOV returns the enemy vision cone in radians
func (c *Config) GetAIFOV() float64 {
	return c.AI.FieldOfView * math.Pi / 180
}

func (c *Config) GetSkyColor() color.RGBA {
	return rgb(c.Colors.Sky)
}

func (c *Config) GetFloorColor() color.RGBA {
	return rgb(c.Colors.Floor)
}

// GetColor returns the fog colour as RGBA
func (f FogConfig) GetColor() color.RGBA {
	return rgb(f.Color)
}

func rgb(v [3]int) color.RGBA {
	return color.RGBA{uint8(v[0]), uint8(v[1]), uint8(v[2]), 255}
}
