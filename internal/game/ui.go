package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	menuPanelColor     = color.RGBA{20, 20, 40, 230}
	menuBorderColor    = color.RGBA{100, 100, 160, 255}
	menuHighlightColor = color.RGBA{60, 120, 180, 200}
	textColor          = color.RGBA{230, 230, 230, 255}
	dimTextColor       = color.RGBA{160, 160, 180, 255}
)

var controlTips = []string{
	"WASD/Arrows: Move  Q/E: Strafe",
	"F: Flashlight  M: Map  F3: Stats",
	"Esc: Menu",
}

// UISystem draws the HUD and menus on top of the presented frame
type UISystem struct {
	game *Game
}

// NewUISystem creates a new UI system
func NewUISystem(game *Game) *UISystem {
	return &UISystem{game: game}
}

// Draw presents the framebuffer and any overlay for the current state
func (ui *UISystem) Draw(screen *ebiten.Image) {
	g := ui.game
	switch g.state {
	case StatePlaying:
		screen.WritePixels(g.fb.Pix())
		ui.drawHUD(screen)
	case StateLevelComplete, StateGameOver:
		screen.WritePixels(g.fb.Pix())
		ui.drawMenu(screen, g.menu)
	default:
		screen.Fill(color.RGBA{10, 10, 20, 255})
		ui.drawMenu(screen, g.menu)
	}

	if g.showOverlay {
		ui.drawDebugOverlay(screen)
	}
}

func (ui *UISystem) drawHUD(screen *ebiten.Image) {
	g := ui.game
	face := basicfont.Face7x13
	h := g.config.GetScreenHeight()

	ebitext.Draw(screen, g.LevelName(), face, 10, 20, textColor)
	ebitext.Draw(screen, fmt.Sprintf("%.1fs", g.levelTime), face, 10, 36, dimTextColor)

	light := "off"
	if g.effects.Flashlight {
		light = "on"
	}
	ebitext.Draw(screen, "Flashlight: "+light, face, 10, h-12, dimTextColor)
}

func (ui *UISystem) drawMenu(screen *ebiten.Image, m *Menu) {
	if m == nil {
		return
	}
	w := ui.game.config.GetScreenWidth()
	h := ui.game.config.GetScreenHeight()
	face := basicfont.Face7x13

	drawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, 128})

	panelW := 360
	panelH := 110 + len(m.Options)*32 + len(controlTips)*14
	px := (w - panelW) / 2
	py := (h - panelH) / 2
	drawFilledRect(screen, px, py, panelW, panelH, menuPanelColor)
	drawRectBorder(screen, px, py, panelW, panelH, 2, menuBorderColor)

	ebitext.Draw(screen, m.Title, face, px+16, py+26, textColor)
	if m.Subtitle != "" {
		ebitext.Draw(screen, m.Subtitle, face, px+16, py+44, dimTextColor)
	}

	startY := py + 64
	for i, label := range m.Options {
		y := startY + i*32
		if i == m.Selection {
			drawFilledRect(screen, px+16, y-4, panelW-32, 28, menuHighlightColor)
		}
		ebitext.Draw(screen, label, face, px+28, y+14, textColor)
	}

	tipsY := startY + len(m.Options)*32 + 16
	for i, tip := range controlTips {
		ebitext.Draw(screen, tip, face, px+16, tipsY+i*14, dimTextColor)
	}
}

func (ui *UISystem) drawDebugOverlay(screen *ebiten.Image) {
	g := ui.game
	m := g.monitor.GetCurrentMetrics()
	msg := fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nrays: %d (open %d)\nsprites: %d px: %d\ncolumns: %v\nsprites: %v\neffects: %v\npos: %.0f,%.0f  angle: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		m.Rays, m.RaysNoWall,
		m.Sprites, m.SpritePixels,
		m.ColumnTime, m.SpriteTime, m.EffectTime,
		g.pose.X, g.pose.Y, g.pose.Angle,
	)
	ebitenutil.DebugPrintAt(screen, msg, g.config.GetScreenWidth()-220, 10)
}

// drawFilledRect draws a filled rectangle in screen space
func drawFilledRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawRectBorder draws a rectangle border of given thickness and color
func drawRectBorder(dst *ebiten.Image, x, y, w, h, thickness int, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y-thickness), float32(w+2*thickness), float32(thickness), clr, false)
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y+h), float32(w+2*thickness), float32(thickness), clr, false)
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y), float32(thickness), float32(h), clr, false)
	vector.DrawFilledRect(dst, float32(x+w), float32(y), float32(thickness), float32(h), clr, false)
}
