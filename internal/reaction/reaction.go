// Package reaction decides how two touching materials combine and runs that
// decision off the physics tick.
package reaction

import "dotlab/internal/material"

// Kind classifies a reaction by the energy gap between the two phases.
type Kind uint8

const (
	// Mutual: both particles adopt the blended material.
	Mutual Kind = iota
	// Catalytic: only the lower-energy particle adopts the blend.
	Catalytic
	// CatalyticVanish: the higher-energy particle adopts the blend and the
	// lower-energy one disappears.
	CatalyticVanish
)

const (
	lowThreshold  = 0.2
	highThreshold = 0.5
	blendRatio    = 0.5
)

func (k Kind) String() string {
	switch k {
	case Mutual:
		return "mutual"
	case Catalytic:
		return "catalytic"
	case CatalyticVanish:
		return "catalytic-vanish"
	default:
		return "unknown"
	}
}

// Classify returns the reaction kind for two phases.
func Classify(a, b material.Phase) Kind {
	delta := a.Energy() - b.Energy()
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta < lowThreshold:
		return Mutual
	case delta < highThreshold:
		return Catalytic
	default:
		return CatalyticVanish
	}
}

// Contact is an owned copy of what a reaction needs to know about one
// particle. Index is its slot at detection time; ID lets the applier reject
// results whose slot has since been reused.
type Contact struct {
	Index int
	ID    uint64
	DNA   material.DNA
}

// Event reports that two particles touched while both were off cooldown.
type Event struct {
	A, B Contact
}

// ResultKind says what to do with the named particle.
type ResultKind uint8

const (
	Change ResultKind = iota
	Vanish
)

// Result is one instruction for the main loop.
type Result struct {
	Kind  ResultKind
	Index int
	ID    uint64
	DNA   material.DNA
}

// Evaluate appends the results of ev to dst. Materials sharing a seed never
// react.
func Evaluate(ev Event, dst []Result) []Result {
	if ev.A.DNA.Seed == ev.B.DNA.Seed {
		return dst
	}
	pa := material.Decode(ev.A.DNA)
	pb := material.Decode(ev.B.DNA)
	blended := material.Blend(ev.A.DNA, ev.B.DNA, blendRatio)

	low, high := ev.A, ev.B
	if pa.Phase.Energy() > pb.Phase.Energy() {
		low, high = ev.B, ev.A
	}

	switch Classify(pa.Phase, pb.Phase) {
	case Mutual:
		dst = append(dst, change(ev.A, blended), change(ev.B, blended))
	case Catalytic:
		dst = append(dst, change(low, blended))
	case CatalyticVanish:
		dst = append(dst, change(high, blended), Result{Kind: Vanish, Index: low.Index, ID: low.ID})
	}
	return dst
}

func change(c Contact, d material.DNA) Result {
	return Result{Kind: Change, Index: c.Index, ID: c.ID, DNA: d}
}
