package material

// Phase is a particle's discrete material state.
type Phase uint8

const (
	Solid Phase = iota
	Liquid
	Gas
)

// Phases lists every phase from lowest to highest energy.
var Phases = [...]Phase{Solid, Liquid, Gas}

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}

// Energy returns the representative energy level used to order phases when
// classifying reactions. It is a ranking, not a physical quantity.
func (p Phase) Energy() float64 {
	switch p {
	case Solid:
		return 0.2
	case Liquid:
		return 0.6
	case Gas:
		return 0.9
	default:
		return 0
	}
}

// Up returns the next phase on the ladder. ok is false for Gas.
func (p Phase) Up() (next Phase, ok bool) {
	switch p {
	case Solid:
		return Liquid, true
	case Liquid:
		return Gas, true
	default:
		return p, false
	}
}

// Down returns the previous phase on the ladder. ok is false for Solid.
func (p Phase) Down() (prev Phase, ok bool) {
	switch p {
	case Gas:
		return Liquid, true
	case Liquid:
		return Solid, true
	default:
		return p, false
	}
}

// gene places the phase at the centre of its third of [0,1].
func (p Phase) gene() float64 {
	switch p {
	case Liquid:
		return 0.5
	case Gas:
		return 5.0 / 6.0
	default:
		return 1.0 / 6.0
	}
}

func phaseFromGene(g float64) Phase {
	switch {
	case g < 1.0/3.0:
		return Solid
	case g < 2.0/3.0:
		return Liquid
	default:
		return Gas
	}
}
