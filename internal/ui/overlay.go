//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type snapshotProvider interface {
	Snapshot(dst []dots.DotView) []dots.DotView
	Radius() float64
}

// Overlay draws optional debugging visuals on top of the dots: velocity
// arrows (1), temperature tint (2) and the broad-phase grid (3).
type Overlay struct {
	sim          core.Sim
	scale        int
	showVelocity bool
	showHeat     bool
	showGrid     bool

	views []dots.DotView
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVelocity = !o.showVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(snapshotProvider)
	if !ok || !(o.showVelocity || o.showHeat || o.showGrid) {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}
	radius := provider.Radius()
	if o.showGrid {
		o.drawGrid(screen, 2*radius*scale)
	}
	o.views = provider.Snapshot(o.views[:0])
	for i := range o.views {
		v := &o.views[i]
		sx, sy := v.X*scale, v.Y*scale
		if o.showHeat {
			if col := TemperatureColor(v.Temperature); col.A > 0 {
				o.drawPoint(screen, sx, sy, 4*radius*scale, col)
			}
		}
		if o.showVelocity {
			o.drawArrow(screen, sx, sy, v.VX, v.VY, scale)
		}
	}
}

func (o *Overlay) drawGrid(screen *ebiten.Image, span float64) {
	if span < 2 {
		return
	}
	size := o.sim.Size()
	scale := float64(max(o.scale, 1))
	w, h := float64(size.W)*scale, float64(size.H)*scale
	col := color.RGBA{R: 60, G: 70, B: 90, A: 90}
	for x := span; x < w; x += span {
		o.drawLine(screen, x, 0, x, h, 1, col)
	}
	for y := span; y < h; y += span {
		o.drawLine(screen, 0, y, w, y, 1, col)
	}
}

func (o *Overlay) drawArrow(screen *ebiten.Image, sx, sy, vx, vy, scale float64) {
	const (
		maxSpeedEstimate = 200.0
		headAngle        = math.Pi / 6
	)
	speed := math.Hypot(vx, vy)
	if speed < 1 {
		return
	}
	nx, ny := vx/speed, vy/speed
	length := scale * (3 + 9*math.Sqrt(clamp01(speed/maxSpeedEstimate)))
	tipX, tipY := sx+nx*length, sy+ny*length
	headLength := length * 0.3
	col := SpeedColor(speed, maxSpeedEstimate)
	o.drawLine(screen, sx, sy, tipX, tipY, 1, col)

	angle := math.Atan2(ny, nx)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, 1, col)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, 1, col)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
