package ui

import (
	"strings"
	"testing"

	"dotlab/internal/core"
	"dotlab/internal/material"
	"dotlab/internal/sims/dots"

	"github.com/google/go-cmp/cmp"
)

type fakeSim struct {
	floats map[string]float64
	ints   map[string]int
}

func (f *fakeSim) Name() string { return "fake" }
func (f *fakeSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (f *fakeSim) Reset(int64) {}
func (f *fakeSim) Step() {}

func (f *fakeSim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "rate", Label: "Rate", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "count", Label: "Count", Type: core.ParamTypeInt, Step: 5, Min: 0, HasMin: true},
		{Key: "missing", Label: "Missing", Type: core.ParamTypeFloat},
	}
}

func (f *fakeSim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Params: []core.Parameter{
			{Key: "rate", Type: core.ParamTypeFloat, Value: "0.9"},
			{Key: "count", Type: core.ParamTypeInt, Value: "3"},
		},
	}}}
}

func (f *fakeSim) SetFloatParameter(key string, v float64) bool {
	f.floats[key] = v
	return true
}

func (f *fakeSim) SetIntParameter(key string, v int) bool {
	f.ints[key] = v
	return true
}

func newFake() *fakeSim {
	return &fakeSim{floats: map[string]float64{}, ints: map[string]int{}}
}

func TestControlsRefreshAndAdjust(t *testing.T) {
	sim := newFake()
	c := NewControls(sim)
	c.Refresh(sim.Parameters())

	values := []string{c.Items[0].Value, c.Items[1].Value, c.Items[2].Value}
	if diff := cmp.Diff([]string{"0.9", "3", "--"}, values); diff != "" {
		t.Fatalf("refreshed values mismatch (-want +got):\n%s", diff)
	}

	if !c.Adjust(0, 1) || sim.floats["rate"] != 1 {
		t.Fatalf("rate should clamp to its max, got %v", sim.floats["rate"])
	}
	if c.CanAdjust(0, 1) {
		t.Fatal("rate already at max")
	}
	if !c.Adjust(1, -1) || sim.ints["count"] != 0 {
		t.Fatalf("count should clamp to zero, got %d", sim.ints["count"])
	}
	if c.Adjust(1, -1) {
		t.Fatal("count already at min")
	}
	if c.Adjust(2, 1) {
		t.Fatal("controls without a value cannot move")
	}
}

func TestControlsWithoutProvider(t *testing.T) {
	c := NewControls(nil)
	if len(c.Items) != 0 || c.Adjust(0, 1) {
		t.Fatal("nil sim should have no controls")
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	tests := []struct {
		step float64
		want string
	}{
		{0.0005, "0.1235"},
		{0.005, "0.123"},
		{0.05, "0.12"},
		{0.5, "0.1"},
	}
	for _, tt := range tests {
		if got := FormatFloat(core.ParameterControl{Step: tt.step}, 0.12345); got != tt.want {
			t.Fatalf("step %v: got %q want %q", tt.step, got, tt.want)
		}
	}
}

func TestInspectLines(t *testing.T) {
	cfg := dots.DefaultConfig()
	cfg.Params.Lanes = 1
	w := dots.NewWithConfig(cfg)
	defer w.Close()

	if InspectLines(w) != nil {
		t.Fatal("no selection should produce no lines")
	}
	p := material.Default()
	p.Phase = material.Liquid
	w.Spawn(50, 50, material.Encode(p, 42))
	w.SelectNearest(50, 50)

	lines := InspectLines(w)
	if len(lines) < 8 || !strings.Contains(lines[1], "liquid") {
		t.Fatalf("unexpected inspector lines %q", lines)
	}
}

func TestStatsLines(t *testing.T) {
	if StatsLines(&fakeSim{}) != nil {
		t.Fatal("sim without stats should produce no lines")
	}
	cfg := dots.DefaultConfig()
	cfg.Params.Lanes = 1
	w := dots.NewWithConfig(cfg)
	defer w.Close()
	w.Spawn(50, 50, material.Encode(material.Default(), 1))

	lines := StatsLines(w)
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "dots 1 ") {
		t.Fatalf("unexpected stats lines %q", lines)
	}
}
