//go:build ebiten

package app

import (
	"time"

	"dotlab/internal/core"
	"dotlab/internal/material"
	"dotlab/internal/render"
	"dotlab/internal/sims/dots"
	"dotlab/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PanelWidth is the width of the HUD to the right of the arena.
const PanelWidth = 240

// World is the subset of the dots engine the window drives.
type World interface {
	core.Sim
	Snapshot(dst []dots.DotView) []dots.DotView
	Radius() float64
	Spawn(x, y float64, d material.DNA) (uint64, bool)
	RandomMaterial() material.DNA
	SelectNearest(x, y float64) (uint64, bool)
	Clear()
}

// Game adapts a dots world to the ebiten.Game interface.
type Game struct {
	world   World
	painter *render.Painter
	views   []dots.DotView
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep

	brush    material.DNA
	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(world World, scale, tps int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := world.Size()
	return &Game{
		world:   world,
		painter: render.NewPainter(size.W, size.H),
		hud:     ui.NewHUD(world, PanelWidth),
		overlay: ui.NewOverlay(world, scale),
		timer:   core.NewFixedStep(tps),
		brush:   world.RandomMaterial(),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation at the fixed
// tick rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.world.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.brush = g.world.RandomMaterial()
	}

	size := g.world.Size()
	onPanel := g.hud.Update(size.W * g.scale)
	g.overlay.Update()
	if !onPanel {
		g.handleMouse(size)
	}

	steps := g.timer.Advance()
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = 1
		g.tickOnce = false
	}
	for i := 0; i < steps; i++ {
		g.world.Step()
	}
	return nil
}

func (g *Game) handleMouse(size core.Size) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		return
	}
	x := float64(mx) / float64(g.scale)
	y := float64(my) / float64(g.scale)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.world.Spawn(x, y, g.brush)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.world.SelectNearest(x, y)
	}
}

// Draw renders the dots, the debug overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.views = g.world.Snapshot(g.views[:0])
	g.painter.Blit(screen, g.views, g.world.Radius(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.world.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + PanelWidth, s.H * g.scale
}
