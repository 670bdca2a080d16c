package reaction

import (
	"testing"

	"dotlab/internal/material"
)

func contact(idx int, seed uint64, phase material.Phase) Contact {
	p := material.FromSeed(seed)
	p.Phase = phase
	return Contact{Index: idx, ID: uint64(idx) + 100, DNA: material.Encode(p, seed)}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		a, b material.Phase
		want Kind
	}{
		{material.Solid, material.Solid, Mutual},
		{material.Gas, material.Gas, Mutual},
		{material.Solid, material.Liquid, Catalytic},
		{material.Gas, material.Liquid, Catalytic},
		{material.Solid, material.Gas, CatalyticVanish},
		{material.Gas, material.Solid, CatalyticVanish},
	}
	for _, tc := range cases {
		if got := Classify(tc.a, tc.b); got != tc.want {
			t.Fatalf("Classify(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEvaluateSameSeedSkips(t *testing.T) {
	a := contact(0, 5, material.Solid)
	b := contact(1, 5, material.Solid)
	if got := Evaluate(Event{A: a, B: b}, nil); len(got) != 0 {
		t.Fatalf("same-seed pair should not react, got %d results", len(got))
	}
}

func TestEvaluateMutual(t *testing.T) {
	a := contact(0, 5, material.Solid)
	b := contact(1, 6, material.Solid)
	got := Evaluate(Event{A: a, B: b}, nil)
	if len(got) != 2 {
		t.Fatalf("expected two change results, got %d", len(got))
	}
	if got[0].Kind != Change || got[1].Kind != Change {
		t.Fatal("mutual reaction should only change particles")
	}
	if got[0].DNA != got[1].DNA {
		t.Fatal("both particles should receive the same DNA")
	}
	if got[0].Index != 0 || got[1].Index != 1 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("results address the wrong particles: %+v", got)
	}
	if seed := got[0].DNA.Seed; seed == a.DNA.Seed || seed == b.DNA.Seed {
		t.Fatal("blended DNA must carry a new seed")
	}
}

func TestEvaluateCatalyticChangesLowerEnergy(t *testing.T) {
	liquid := contact(0, 5, material.Liquid)
	solid := contact(1, 6, material.Solid)
	got := Evaluate(Event{A: liquid, B: solid}, nil)
	if len(got) != 1 {
		t.Fatalf("expected one result, got %d", len(got))
	}
	if got[0].Kind != Change || got[0].Index != solid.Index {
		t.Fatalf("solid should be the one to change, got %+v", got[0])
	}
}

func TestEvaluateVanish(t *testing.T) {
	solid := contact(0, 5, material.Solid)
	gas := contact(1, 6, material.Gas)
	got := Evaluate(Event{A: solid, B: gas}, nil)
	if len(got) != 2 {
		t.Fatalf("expected change and vanish, got %d results", len(got))
	}
	if got[0].Kind != Change || got[0].Index != gas.Index {
		t.Fatalf("gas should adopt the blend, got %+v", got[0])
	}
	if got[1].Kind != Vanish || got[1].Index != solid.Index || got[1].ID != solid.ID {
		t.Fatalf("solid should vanish, got %+v", got[1])
	}
}
