//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"dotlab/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// row is the laid out position of one control: its text baseline and the
// two stepper buttons.
type row struct {
	baseline int
	down, up image.Rectangle
}

// HUD is the side panel: tunable steppers, reaction counters and the
// selected-dot inspector.
type HUD struct {
	sim      core.Sim
	width    int
	canvas   *ebiten.Image
	controls *Controls
	rows     []row
	origin   int

	stats   []string
	inspect []string
}

var (
	panelFill   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headingText = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	bodyText    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimText     = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	buttonFill  = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonIdle  = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

const (
	pad        = 12
	rowHeight  = 28
	stepper    = 20
	stepperGap = 6
	textLine   = 15
	firstRow   = pad + 34
)

// NewHUD lays out a panel of the given width for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), controls: NewControls(sim)}
	h.rows = make([]row, len(h.controls.Items))
	for i := range h.rows {
		top := firstRow + i*rowHeight
		y := top + (rowHeight-stepper)/2
		up := image.Rect(h.width-pad-stepper, y, h.width-pad, y+stepper)
		down := up.Sub(image.Pt(stepper+stepperGap, 0))
		h.rows[i] = row{baseline: top + 18, down: down, up: up}
	}
	return h
}

// Update pulls fresh values from the sim and applies stepper clicks. It
// reports whether a left click landed on the panel, which sits at origin
// in screen coordinates.
func (h *HUD) Update(origin int) bool {
	if h == nil {
		return false
	}
	h.origin = origin
	h.stats = StatsLines(h.sim)
	h.inspect = InspectLines(h.sim)
	if p, ok := h.sim.(parameterProvider); ok {
		h.controls.Refresh(p.Parameters())
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < origin {
		return false
	}
	pt := image.Pt(mx-origin, my)
	for i, r := range h.rows {
		if pt.In(r.down) {
			h.controls.Adjust(i, -1)
			break
		}
		if pt.In(r.up) {
			h.controls.Adjust(i, 1)
			break
		}
	}
	return true
}

// Draw renders the panel at x = offsetX, matching the scaled arena height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width == 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.canvas == nil || h.canvas.Bounds().Dy() != height {
		h.canvas = ebiten.NewImage(h.width, height)
	}
	h.canvas.Fill(panelFill)

	face := basicfont.Face7x13
	text.Draw(h.canvas, h.sim.Name(), face, pad, pad+18, headingText)
	if len(h.controls.Items) == 0 {
		text.Draw(h.canvas, "no tunables", face, pad, firstRow+18, dimText)
	}
	for i, item := range h.controls.Items {
		r := h.rows[i]
		text.Draw(h.canvas, item.Spec.Label, face, pad, r.baseline, bodyText)
		fg := bodyText
		if !h.controls.HasValue(i) {
			fg = dimText
		}
		w := text.BoundString(face, item.Value).Dx()
		text.Draw(h.canvas, item.Value, face, r.down.Min.X-stepperGap-w, r.baseline, fg)
		h.button(r.down, "-", h.controls.CanAdjust(i, -1))
		h.button(r.up, "+", h.controls.CanAdjust(i, 1))
	}

	y := firstRow + len(h.rows)*rowHeight + textLine
	y = h.block("Reactions", h.stats, y)
	h.block("Selected", h.inspect, y+textLine)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.canvas, op)
}

// block draws a heading followed by lines starting at baseline y and
// returns the baseline after the last line drawn.
func (h *HUD) block(title string, lines []string, y int) int {
	if len(lines) == 0 {
		return y
	}
	face := basicfont.Face7x13
	limit := h.canvas.Bounds().Dy() - pad
	text.Draw(h.canvas, title, face, pad, y, headingText)
	for _, line := range lines {
		y += textLine
		if y > limit {
			break
		}
		text.Draw(h.canvas, line, face, pad, y, bodyText)
	}
	return y
}

func (h *HUD) button(r image.Rectangle, label string, enabled bool) {
	fill, fg := buttonFill, bodyText
	if !enabled {
		fill, fg = buttonIdle, dimText
	}
	vector.DrawFilledRect(h.canvas, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()+b.Dy())/2
	text.Draw(h.canvas, label, face, x, y, fg)
}
