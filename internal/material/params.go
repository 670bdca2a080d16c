package material

import colorful "github.com/lucasb-eyer/go-colorful"

const (
	// MinTemperature and MaxTemperature bound every temperature mutation.
	MinTemperature = -1.0
	MaxTemperature = 2.0
)

// Params is the decoded physical, thermal and optical property bag of a
// particle. Normalized fields live in [0,1]; Temperature lives in
// [MinTemperature, MaxTemperature]. HeatCapacityLow is stored non-negative and
// the lower phase-change threshold is its negation.
type Params struct {
	Phase Phase

	Density    float64
	Viscosity  float64
	Hardness   float64
	Elasticity float64
	Cohesion   float64

	Temperature      float64
	HeatConductivity float64
	HeatCapacityHigh float64
	HeatCapacityLow  float64

	EntropyBias  float64
	Volatility   float64
	Luminescence float64

	Hue        float64
	Saturation float64
	Luminance  float64
}

// Default returns a mid-range inert solid.
func Default() Params {
	return Params{
		Phase:            Solid,
		Density:          0.5,
		Viscosity:        0.3,
		Hardness:         0.7,
		Elasticity:       0.2,
		Cohesion:         0.1,
		Temperature:      0,
		HeatConductivity: 0.4,
		HeatCapacityHigh: 0.6,
		HeatCapacityLow:  0.6,
		EntropyBias:      0.1,
		Volatility:       0.1,
		Hue:              0.5,
		Saturation:       0.8,
		Luminance:        0.6,
	}
}

// Clamp pulls every field back into its documented range.
func (p *Params) Clamp() {
	if p.Phase > Gas {
		p.Phase = Gas
	}
	p.Density = clamp01(p.Density)
	p.Viscosity = clamp01(p.Viscosity)
	p.Hardness = clamp01(p.Hardness)
	p.Elasticity = clamp01(p.Elasticity)
	p.Cohesion = clamp01(p.Cohesion)
	p.Temperature = ClampTemperature(p.Temperature)
	p.HeatConductivity = clamp01(p.HeatConductivity)
	p.HeatCapacityHigh = clamp01(p.HeatCapacityHigh)
	p.HeatCapacityLow = clamp01(p.HeatCapacityLow)
	p.EntropyBias = clamp01(p.EntropyBias)
	p.Volatility = clamp01(p.Volatility)
	p.Luminescence = clamp01(p.Luminescence)
	p.Hue = wrap01(p.Hue)
	p.Saturation = clamp01(p.Saturation)
	p.Luminance = clamp01(p.Luminance)
}

// LowThreshold returns the (negative) temperature below which the particle
// condenses or freezes.
func (p Params) LowThreshold() float64 { return -p.HeatCapacityLow }

// RGB decodes the hue/saturation/luminance triple into 8-bit colour.
func (p Params) RGB() (r, g, b uint8) {
	c := colorful.Hsl(wrap01(p.Hue)*360, clamp01(p.Saturation), clamp01(p.Luminance))
	return c.Clamped().RGB255()
}

// ClampTemperature bounds t to the representable temperature range.
func ClampTemperature(t float64) float64 {
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
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

func wrap01(v float64) float64 {
	if v >= 0 && v < 1 {
		return v
	}
	v -= float64(int64(v))
	if v < 0 {
		v++
	}
	if v >= 1 {
		v = 0
	}
	return v
}
