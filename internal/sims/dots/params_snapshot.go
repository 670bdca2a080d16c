package dots

import (
	"math"
	"strconv"

	"dotlab/internal/core"
)

// Parameters exposes the current tunables grouped for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	s := w.Stats()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("live", "Dots", s.Live),
				floatParam("time", "Sim time", math.Round(w.now*100)/100),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				floatParam("gravity", "Gravity", p.Gravity),
				floatParam("restitution", "Restitution", p.Restitution),
				floatParam("damping", "Damping", p.Damping),
			},
		},
		{
			Name: "Reactions",
			Params: []core.Parameter{
				floatParam("reaction_initial_wait", "Cooldown base", p.ReactionInitialWait),
				floatParam("reaction_decay", "Cooldown growth", p.ReactionDecay),
				uintParam("changed", "Changed", s.Changed),
				uintParam("vanished", "Vanished", s.Vanished),
				uintParam("dropped", "Dropped events", s.Dropped),
			},
		},
		{
			Name: "Hazards",
			Params: []core.Parameter{
				floatParam("explosion_entropy", "Explosion entropy", p.ExplosionEntropy),
				floatParam("explosion_chance", "Explosion chance", p.ExplosionChance),
				floatParam("heat_transfer", "Heat transfer", p.HeatTransfer),
				floatParam("decay_chance", "Decay chance", p.DecayChance),
				uintParam("explosions", "Explosions", s.Explosions),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		floatControl("gravity", "Gravity", 10, 0, 1000),
		floatControl("restitution", "Restitution", 0.05, 0, 1.5),
		floatControl("damping", "Damping", 0.001, 0.9, 1),
		floatControl("reaction_initial_wait", "Cooldown base", 0.05, 0, 5),
		floatControl("reaction_decay", "Cooldown growth", 0.05, 0, 2),
		floatControl("explosion_entropy", "Explosion entropy", 0.05, 0, 1),
		floatControl("explosion_chance", "Explosion chance", 0.005, 0, 1),
		floatControl("heat_transfer", "Heat transfer", 0.001, 0, 0.1),
		floatControl("decay_chance", "Decay chance", 0.001, 0, 1),
	}
}

// SetFloatParameter updates a float tunable by key, clamped to its control
// bounds when one exists.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ptr, ok := w.cfg.Params.floatFields()[key]
	if !ok || math.IsNaN(value) {
		return false
	}
	for _, ctrl := range w.ParameterControls() {
		if ctrl.Key == key {
			value = ctrl.Clamp(value)
		}
	}
	if key == "radius" && value <= 0 {
		return false
	}
	*ptr = value
	if key == "radius" {
		w.grid = core.NewSpatialGrid(float64(w.cfg.Width), float64(w.cfg.Height), 2*value)
	}
	w.stopped = false
	return true
}

// SetIntParameter updates an integer tunable. Only spawn_count is adjustable
// at runtime; queue sizes are fixed once the pipeline starts.
func (w *World) SetIntParameter(key string, value int) bool {
	if key != "spawn_count" || value < 0 {
		return false
	}
	w.cfg.Params.SpawnCount = value
	return true
}

func floatControl(key, label string, step, min, max float64) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   step,
		Min:    min,
		Max:    max,
		HasMin: true,
		HasMax: true,
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func uintParam(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
