package material

import (
	"strings"

	"dotlab/pkg/core"
)

var (
	solidPhonemes  = [][]string{{"gr", "kr", "st", "dr", "br"}, {"ar", "or", "an", "ul", "tar", "dor"}, {"on", "ar", "ite", "orn"}}
	liquidPhonemes = [][]string{{"el", "lo", "va", "mi", "sa"}, {"ae", "al", "ir", "ol", "ra", "lia"}, {"ine", "el", "ra", "al"}}
	gasPhonemes    = [][]string{{"ae", "pha", "is", "sy", "lu"}, {"el", "ar", "ia", "es", "the", "ion"}, {"is", "os", "ion", "eth"}}
)

// phonemes is the deduplicated union of every phase's syllables in a stable order.
var phonemes = func() []string {
	var out []string
	seen := map[string]bool{}
	for _, set := range [][][]string{solidPhonemes, liquidPhonemes, gasPhonemes} {
		for _, group := range set {
			for _, p := range group {
				if !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
		}
	}
	return out
}()

// transitions[phase][i][j] weights a step from phonemes[i] to phonemes[j].
var transitions = func() [3][][]float64 {
	var t [3][][]float64
	for _, phase := range Phases {
		rows := make([][]float64, len(phonemes))
		for i, from := range phonemes {
			row := make([]float64, len(phonemes))
			for j, to := range phonemes {
				if i == j {
					continue
				}
				row[j] = transitionWeight(phase, from, to)
			}
			rows[i] = row
		}
		t[phase] = rows
	}
	return t
}()

func transitionWeight(phase Phase, from, to string) float64 {
	switch phase {
	case Solid:
		if strings.Contains(from, "r") && strings.Contains(to, "d") || strings.Contains(from, "d") && strings.Contains(to, "r") {
			return 5
		}
	case Liquid:
		if strings.Contains(from, "a") && strings.Contains(to, "e") || strings.Contains(from, "e") && strings.Contains(to, "a") {
			return 5
		}
	case Gas:
		if from == "ae" && to == "el" || from == "el" && to == "ion" {
			return 5
		}
	}
	return 1
}

// Name derives a pronounceable display name from d. The same DNA always
// yields the same name.
func Name(d DNA) string {
	phase := Decode(d).Phase
	rng := core.NewRNGFromUint64(d.Seed)

	length := 3
	switch phase {
	case Solid:
		length = 2 + rng.IntN(2)
	case Gas:
		length = 1 + rng.IntN(2)
	}

	var b strings.Builder
	cur := rng.IntN(len(phonemes))
	b.WriteString(phonemes[cur])
	for i := 1; i < length; i++ {
		cur = rng.Weighted(transitions[phase][cur])
		b.WriteString(phonemes[cur])
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
