package ui

import (
	"image/color"
	"math"
)

// TemperatureColor maps a temperature in [-1, 2] to a translucent tint:
// blue when cold, clear near zero, orange then white when hot.
func TemperatureColor(t float64) color.RGBA {
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{-1.0, color.RGBA{R: 60, G: 110, B: 255, A: 190}},
		{-0.3, color.RGBA{R: 90, G: 150, B: 230, A: 110}},
		{0.0, color.RGBA{R: 128, G: 128, B: 128, A: 0}},
		{0.6, color.RGBA{R: 240, G: 130, B: 40, A: 140}},
		{2.0, color.RGBA{R: 255, G: 245, B: 225, A: 220}},
	}
	if t <= stops[0].t {
		return stops[0].col
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			return lerpRGBA(prev.col, curr.col, (t-prev.t)/(curr.t-prev.t))
		}
	}
	return stops[len(stops)-1].col
}

// SpeedColor shades velocity arrows from slate at rest to cyan at speed.
func SpeedColor(speed, maxSpeed float64) color.RGBA {
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	t := clamp01(speed / maxSpeed)
	return color.RGBA{
		R: uint8(math.Round(80 + 70*t)),
		G: uint8(math.Round(170 + 70*t)),
		B: uint8(math.Round(230 + 20*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
