package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mazerunner/internal/collision"
)

// InputState is one tick of player intent. Held keys drive movement;
// toggles and menu keys fire once per press.
type InputState struct {
	Forward     bool
	Backward    bool
	TurnLeft    bool
	TurnRight   bool
	StrafeLeft  bool
	StrafeRight bool

	ToggleMap        bool
	ToggleFlashlight bool
	ToggleOverlay    bool
	Escape           bool

	MenuUp   bool
	MenuDown bool
	Confirm  bool
}

// InputHandler reads the keyboard through ebiten
type InputHandler struct{}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Poll samples the keyboard for this tick
func (ih *InputHandler) Poll() InputState {
	return InputState{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyQ),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyE),

		ToggleMap:        inpututil.IsKeyJustPressed(ebiten.KeyM),
		ToggleFlashlight: inpututil.IsKeyJustPressed(ebiten.KeyF),
		ToggleOverlay:    inpututil.IsKeyJustPressed(ebiten.KeyF3),
		Escape:           inpututil.IsKeyJustPressed(ebiten.KeyEscape),

		MenuUp:   inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW),
		MenuDown: inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyS),
		Confirm:  inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// movementDelta converts held keys into one tick of motion. Opposing keys
// cancel out.
func movementDelta(in InputState, moveSpeed, rotSpeed float64) collision.Delta {
	var d collision.Delta
	if in.TurnLeft {
		d.Turn -= rotSpeed
	}
	if in.TurnRight {
		d.Turn += rotSpeed
	}
	if in.Forward {
		d.Forward += moveSpeed
	}
	if in.Backward {
		d.Forward -= moveSpeed
	}
	if in.StrafeLeft {
		d.Strafe -= moveSpeed
	}
	if in.StrafeRight {
		d.Strafe += moveSpeed
	}
	return d
}
