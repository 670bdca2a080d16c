package ui

import (
	"image/color"
	"testing"
)

func TestTemperatureColorStops(t *testing.T) {
	if got := TemperatureColor(0); got.A != 0 {
		t.Fatalf("neutral temperature should be clear, got %+v", got)
	}
	if got := TemperatureColor(-5); got != (color.RGBA{R: 60, G: 110, B: 255, A: 190}) {
		t.Fatalf("below range should clamp to the coldest stop, got %+v", got)
	}
	if got := TemperatureColor(9); got != (color.RGBA{R: 255, G: 245, B: 225, A: 220}) {
		t.Fatalf("above range should clamp to the hottest stop, got %+v", got)
	}
	cold, hot := TemperatureColor(-0.8), TemperatureColor(0.8)
	if cold.B <= cold.R || hot.R <= hot.B {
		t.Fatalf("cold should be blue and hot orange: %+v %+v", cold, hot)
	}
}

func TestSpeedColorMonotonic(t *testing.T) {
	slow, fast := SpeedColor(0, 100), SpeedColor(200, 100)
	if slow.A >= fast.A || fast != SpeedColor(100, 100) {
		t.Fatalf("speed colour should rise then saturate: %+v %+v", slow, fast)
	}
}
