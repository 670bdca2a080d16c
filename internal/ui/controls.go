package ui

import (
	"math"
	"strconv"

	"dotlab/internal/core"
)

// Control is the display state of one adjustable parameter. It is shared by
// the ebiten HUD and the terminal front end.
type Control struct {
	Spec  core.ParameterControl
	Value string

	intValue   int
	floatValue float64
	hasValue   bool
}

// Controls binds a simulation's adjustable parameters to its setters.
type Controls struct {
	Items []Control

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// NewControls collects the controls a simulation exposes. A sim without
// controls yields an empty set.
func NewControls(sim core.Sim) *Controls {
	c := &Controls{}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		specs := provider.ParameterControls()
		c.Items = make([]Control, len(specs))
		for i, spec := range specs {
			c.Items[i] = Control{Spec: spec, Value: "--"}
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		c.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		c.floatSetter = setter
	}
	return c
}

// Refresh updates every control from a parameter snapshot.
func (c *Controls) Refresh(snapshot core.ParameterSnapshot) {
	if len(c.Items) == 0 {
		return
	}
	for i := range c.Items {
		item := &c.Items[i]
		item.hasValue = false
		item.Value = "--"
		param, ok := snapshot.Lookup(item.Spec.Key)
		if !ok {
			continue
		}
		switch item.Spec.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			item.intValue = parsed
			item.floatValue = float64(parsed)
			item.Value = strconv.Itoa(parsed)
			item.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			item.floatValue = parsed
			item.Value = FormatFloat(item.Spec, parsed)
			item.hasValue = true
		}
	}
}

// HasValue reports whether control i currently shows a parsed value.
func (c *Controls) HasValue(i int) bool {
	return i >= 0 && i < len(c.Items) && c.Items[i].hasValue
}

// CanAdjust reports whether stepping control i in direction would stay in
// bounds and reach a setter.
func (c *Controls) CanAdjust(i, direction int) bool {
	_, ok := c.target(i, direction)
	return ok
}

// Adjust steps control i by one increment in direction (-1 or +1) and pushes
// the new value to the simulation. It reports whether the value changed.
func (c *Controls) Adjust(i, direction int) bool {
	target, ok := c.target(i, direction)
	if !ok {
		return false
	}
	item := &c.Items[i]
	switch item.Spec.Type {
	case core.ParamTypeInt:
		v := int(target)
		if v == item.intValue || !c.intSetter.SetIntParameter(item.Spec.Key, v) {
			return false
		}
		item.intValue = v
		item.floatValue = target
		item.Value = strconv.Itoa(v)
	case core.ParamTypeFloat:
		if math.Abs(target-item.floatValue) < 1e-9 || !c.floatSetter.SetFloatParameter(item.Spec.Key, target) {
			return false
		}
		item.floatValue = target
		item.Value = FormatFloat(item.Spec, target)
	default:
		return false
	}
	return true
}

// target computes the clamped next value for control i. It fails when the
// control is unset, has no setter, or already sits at the bound in that
// direction.
func (c *Controls) target(i, direction int) (float64, bool) {
	if direction == 0 || !c.HasValue(i) {
		return 0, false
	}
	item := &c.Items[i]
	spec := item.Spec
	switch spec.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return 0, false
		}
		step := int(math.Round(spec.Step))
		if step <= 0 {
			step = 1
		}
		next := item.intValue + direction*step
		if spec.HasMin {
			lo := int(math.Round(spec.Min))
			if next < lo {
				if direction < 0 && item.intValue <= lo {
					return 0, false
				}
				next = lo
			}
		}
		if spec.HasMax {
			hi := int(math.Round(spec.Max))
			if next > hi {
				if direction > 0 && item.intValue >= hi {
					return 0, false
				}
				next = hi
			}
		}
		return float64(next), true
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return 0, false
		}
		step := spec.Step
		if step <= 0 {
			step = 0.05
		}
		next := item.floatValue + float64(direction)*step
		if spec.HasMin && next < spec.Min {
			if direction < 0 && item.floatValue <= spec.Min+1e-9 {
				return 0, false
			}
			next = spec.Min
		}
		if spec.HasMax && next > spec.Max {
			if direction > 0 && item.floatValue >= spec.Max-1e-9 {
				return 0, false
			}
			next = spec.Max
		}
		return next, true
	}
	return 0, false
}

// FormatFloat renders value with a precision matched to the control step.
func FormatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
