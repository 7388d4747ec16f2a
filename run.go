package hive

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the screen before each frame when the canvas draws
	// onto an EbitenSurface.
	ClearColor Color
	ShowFPS    bool
	// OnUpdate runs every tick after the canvas has processed input, timers
	// and animations. A non-nil error stops the game.
	OnUpdate func() error
}

// game adapts a Canvas to ebiten.Game.
type game struct {
	canvas *Canvas
	cfg    RunConfig
}

func (g *game) Update() error {
	g.canvas.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives canvas until the window closes or OnUpdate
// fails. Width and Height default to the canvas size.
func Run(canvas *Canvas, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = canvas.Width()
	}
	if cfg.Height <= 0 {
		cfg.Height = canvas.Height()
	}
	if canvas.screen != nil && cfg.ClearColor.A > 0 {
		canvas.screen.Background = cfg.ClearColor
	}
	if cfg.ShowFPS {
		canvas.AddFPSCounter("fps", TextOptions{X: 4, Y: 4, Style: []StyleOption{
			WithFill(ColorWhite), WithFontSize(12),
		}})
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&game{canvas: canvas, cfg: cfg}); err != nil {
		return fmt.Errorf("hive: run: %w", err)
	}
	return nil
}
