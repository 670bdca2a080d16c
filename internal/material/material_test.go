package material

import (
	"math"
	"testing"

	"dotlab/pkg/core"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := core.NewRNG(2024)
	for i := 0; i < 200; i++ {
		seed := rng.Uint64()
		want := FromSeed(seed)
		got := Decode(Encode(want, seed))
		if got.Phase != want.Phase {
			t.Fatalf("seed %d: phase %v decoded as %v", seed, want.Phase, got.Phase)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Fatalf("seed %d: round trip mismatch (-want +got):\n%s", seed, diff)
		}
	}
}

func TestReencodeIsStable(t *testing.T) {
	d := Encode(FromSeed(77), 77)
	again := Encode(Decode(d), d.Seed)
	if diff := cmp.Diff(d, again, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("re-encoding drifted (-first +second):\n%s", diff)
	}
}

func TestPhaseRecoveredExactly(t *testing.T) {
	for _, phase := range Phases {
		p := Default()
		p.Phase = phase
		if got := Decode(Encode(p, 1)).Phase; got != phase {
			t.Fatalf("phase %v decoded as %v", phase, got)
		}
	}
}

func TestBlendDeterministic(t *testing.T) {
	a := Encode(FromSeed(10), 10)
	b := Encode(FromSeed(20), 20)
	first := Blend(a, b, 0.5)
	second := Blend(a, b, 0.5)
	if first != second {
		t.Fatalf("blend not deterministic: %+v vs %+v", first, second)
	}
	if first.Seed == a.Seed || first.Seed == b.Seed || first.Seed == 0 {
		t.Fatalf("blend seed %d must differ from parents %d/%d and be non-zero", first.Seed, a.Seed, b.Seed)
	}
	if other := Blend(a, b, 0.25); other.Seed == first.Seed {
		t.Fatal("different ratios should produce different seeds")
	}
}

func TestBlendHueTakesShortPath(t *testing.T) {
	pa := Default()
	pa.Hue = 0.95
	pb := Default()
	pb.Hue = 0.05
	out := Decode(Blend(Encode(pa, 1), Encode(pb, 2), 0.5))
	dist := math.Min(out.Hue, 1-out.Hue)
	if dist > 0.05 {
		t.Fatalf("blended hue %.3f should sit near 0/1, not the midpoint", out.Hue)
	}
}

func TestBlendInterpolatesPhysicalGenes(t *testing.T) {
	pa := Default()
	pa.Density = 0.2
	pb := Default()
	pb.Density = 0.8
	out := Decode(Blend(Encode(pa, 3), Encode(pb, 4), 0.5))
	if math.Abs(out.Density-0.5) > 1e-9 {
		t.Fatalf("expected density 0.5, got %v", out.Density)
	}
}

func TestDecodeClampsGenes(t *testing.T) {
	var d DNA
	for i := range d.Genes {
		d.Genes[i] = 3
	}
	p := Decode(d)
	if p.Phase != Gas || p.Density != 1 || p.Temperature != MaxTemperature {
		t.Fatalf("unexpected clamp result: %+v", p)
	}
}

func TestPhaseLadder(t *testing.T) {
	if next, ok := Solid.Up(); !ok || next != Liquid {
		t.Fatalf("solid should rise to liquid")
	}
	if _, ok := Gas.Up(); ok {
		t.Fatal("gas has no higher phase")
	}
	if prev, ok := Gas.Down(); !ok || prev != Liquid {
		t.Fatal("gas should condense to liquid")
	}
	if _, ok := Solid.Down(); ok {
		t.Fatal("solid has no lower phase")
	}
}

func TestNameDeterministic(t *testing.T) {
	d := Encode(FromSeed(99), 99)
	name := Name(d)
	if name == "" {
		t.Fatal("name must not be empty")
	}
	if name != Name(d) {
		t.Fatal("name must be stable for the same DNA")
	}
	if first := name[:1]; first < "A" || first > "Z" {
		t.Fatalf("name %q should be capitalised", name)
	}
}

func TestRGB(t *testing.T) {
	p := Default()
	p.Hue, p.Saturation, p.Luminance = 0, 1, 0.5
	r, g, b := p.RGB()
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("expected pure red, got %d,%d,%d", r, g, b)
	}
}
