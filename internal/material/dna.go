package material

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"dotlab/pkg/core"
)

// GeneCount is the fixed length of a DNA gene vector.
const GeneCount = 16

// Gene slots. Every slot holds a value in [0,1].
const (
	GenePhase = iota
	GeneDensity
	GeneViscosity
	GeneHardness
	GeneElasticity
	GeneCohesion
	GeneTemperature
	GeneHeatConductivity
	GeneHeatCapacityHigh
	GeneHeatCapacityLow
	GeneEntropyBias
	GeneVolatility
	GeneLuminescence
	GeneHue
	GeneSaturation
	GeneLuminance
)

// colourJitter bounds the deterministic offset added to colour genes on blend.
const colourJitter = 0.03

// DNA is the reproducible genetic record of a material. Seed identifies it;
// Genes decode into Params.
type DNA struct {
	Seed  uint64
	Genes [GeneCount]float64
}

// Encode packs params into a gene vector tagged with seed.
func Encode(p Params, seed uint64) DNA {
	p.Clamp()
	d := DNA{Seed: seed}
	d.Genes[GenePhase] = p.Phase.gene()
	d.Genes[GeneDensity] = p.Density
	d.Genes[GeneViscosity] = p.Viscosity
	d.Genes[GeneHardness] = p.Hardness
	d.Genes[GeneElasticity] = p.Elasticity
	d.Genes[GeneCohesion] = p.Cohesion
	d.Genes[GeneTemperature] = (p.Temperature - MinTemperature) / (MaxTemperature - MinTemperature)
	d.Genes[GeneHeatConductivity] = p.HeatConductivity
	d.Genes[GeneHeatCapacityHigh] = p.HeatCapacityHigh
	d.Genes[GeneHeatCapacityLow] = p.HeatCapacityLow
	d.Genes[GeneEntropyBias] = p.EntropyBias
	d.Genes[GeneVolatility] = p.Volatility
	d.Genes[GeneLuminescence] = p.Luminescence
	d.Genes[GeneHue] = p.Hue
	d.Genes[GeneSaturation] = p.Saturation
	d.Genes[GeneLuminance] = p.Luminance
	return d
}

// Decode expands a gene vector back into params. Out-of-range genes are
// clamped first.
func Decode(d DNA) Params {
	g := d.Genes
	for i := range g {
		if i == GeneHue {
			g[i] = wrap01(g[i])
			continue
		}
		g[i] = clamp01(g[i])
	}
	return Params{
		Phase:            phaseFromGene(g[GenePhase]),
		Density:          g[GeneDensity],
		Viscosity:        g[GeneViscosity],
		Hardness:         g[GeneHardness],
		Elasticity:       g[GeneElasticity],
		Cohesion:         g[GeneCohesion],
		Temperature:      MinTemperature + g[GeneTemperature]*(MaxTemperature-MinTemperature),
		HeatConductivity: g[GeneHeatConductivity],
		HeatCapacityHigh: g[GeneHeatCapacityHigh],
		HeatCapacityLow:  g[GeneHeatCapacityLow],
		EntropyBias:      g[GeneEntropyBias],
		Volatility:       g[GeneVolatility],
		Luminescence:     g[GeneLuminescence],
		Hue:              g[GeneHue],
		Saturation:       g[GeneSaturation],
		Luminance:        g[GeneLuminance],
	}
}

// Blend interpolates a toward b by ratio (0 yields a's genes, 1 yields b's).
// Hue travels the short way around the colour wheel and colour genes receive
// jitter derived from both seeds and the ratio, so identical inputs always
// produce identical output. The result carries a fresh seed distinct from
// both parents.
func Blend(a, b DNA, ratio float64) DNA {
	ratio = clamp01(ratio)
	var out DNA
	for i := range out.Genes {
		if i == GeneHue {
			out.Genes[i] = blendHue(a.Genes[i], b.Genes[i], ratio)
			continue
		}
		out.Genes[i] = a.Genes[i]*(1-ratio) + b.Genes[i]*ratio
	}

	h := fnv.New64a()
	var buf [8]byte
	for _, v := range []uint64{a.Seed, b.Seed, math.Float64bits(ratio)} {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	mix := core.NewRNGFromUint64(h.Sum64())
	out.Genes[GeneHue] = wrap01(out.Genes[GeneHue] + (mix.Float64()*2-1)*colourJitter)
	out.Genes[GeneSaturation] = clamp01(out.Genes[GeneSaturation] + (mix.Float64()*2-1)*colourJitter)
	out.Genes[GeneLuminance] = clamp01(out.Genes[GeneLuminance] + (mix.Float64()*2-1)*colourJitter)

	for _, g := range out.Genes {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(g))
		h.Write(buf[:])
	}
	seed := h.Sum64()
	for seed == 0 || seed == a.Seed || seed == b.Seed {
		seed = splitmix(seed)
	}
	out.Seed = seed
	return out
}

func blendHue(a, b, ratio float64) float64 {
	d := b - a
	if d > 0.5 {
		d--
	} else if d < -0.5 {
		d++
	}
	return wrap01(a + d*ratio)
}

func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// FromSeed generates a material whose every property is derived from seed.
func FromSeed(seed uint64) Params {
	rng := core.NewRNGFromUint64(seed)
	p := Params{
		Phase:            Phases[rng.IntN(len(Phases))],
		Density:          rng.Float64(),
		Viscosity:        rng.Float64(),
		Hardness:         rng.Float64(),
		Elasticity:       rng.Float64(),
		Cohesion:         rng.Float64() * 0.5,
		HeatConductivity: rng.Float64(),
		HeatCapacityHigh: 0.05 + 0.95*rng.Float64(),
		HeatCapacityLow:  0.05 + 0.95*rng.Float64(),
		EntropyBias:      rng.Float64(),
		Volatility:       rng.Float64(),
		Luminescence:     rng.Float64() * 0.3,
		Hue:              rng.Float64(),
		Saturation:       0.4 + 0.6*rng.Float64(),
		Luminance:        0.3 + 0.5*rng.Float64(),
	}
	p.Temperature = rng.Range(-p.HeatCapacityLow, p.HeatCapacityHigh) * 0.5
	return p
}

// Random draws a fresh seed from rng and returns the matching DNA.
func Random(rng *core.RNG) DNA {
	seed := rng.Uint64()
	if seed == 0 {
		seed = 1
	}
	return Encode(FromSeed(seed), seed)
}
