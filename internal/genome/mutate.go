package genome

import (
	"oncosim/internal/rng"
)

// DefaultMutationThreshold is the per-position substitution probability.
const DefaultMutationThreshold = 0.02

// Mutator samples point substitutions over a nucleotide sequence. One
// generator instance per Mutator; the trajectory engine's stream is never
// reused here.
type Mutator struct {
	Threshold float64
	A, C, M   uint64
}

func NewMutator() Mutator {
	return Mutator{
		Threshold: DefaultMutationThreshold,
		A:         rng.MutationA,
		C:         rng.MutationC,
		M:         rng.MutationM,
	}
}

// Mutate walks the sequence left-to-right with a generator seeded from the
// low 32 bits of seed. A position is substituted when the normalized state
// falls under the threshold; the replacement base is drawn from the same
// stream so the whole mutant is reproducible from the seed alone.
func (mu Mutator) Mutate(dna string, seed uint64) (string, error) {
	if err := Validate(dna); err != nil {
		return "", err
	}

	g := rng.New(seed&0xffffffff, mu.A, mu.C, mu.M)
	out := make([]byte, len(dna))
	for i := 0; i < len(dna); i++ {
		g.Next()
		if g.Unit() < mu.Threshold {
			out[i] = replacementBase(dna[i], &g)
		} else {
			out[i] = dna[i]
		}
	}
	return string(out), nil
}

// replacementBase picks uniformly among the three bases other than original.
func replacementBase(original byte, g *rng.LCG) byte {
	alternatives := make([]byte, 0, 3)
	for _, b := range []byte{'A', 'T', 'C', 'G'} {
		if b != original {
			alternatives = append(alternatives, b)
		}
	}
	return alternatives[g.Next()%uint64(len(alternatives))]
}
