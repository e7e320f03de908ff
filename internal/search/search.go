package search

import (
	"fmt"

	"oncosim/internal/genome"
	"oncosim/internal/rng"
	"oncosim/internal/scoring"
)

// DefaultDNA is the reference antibody epitope used when no sequence is
// supplied.
const DefaultDNA = "TGTGCGAGAGATAGCAGCAACTGGTTTGCTTAC"

// Record is one retained search iteration. Field names are a persisted
// contract with downstream report consumers.
type Record struct {
	Iteration int     `json:"i"`
	DNA       string  `json:"dna"`
	Protein   string  `json:"prot"`
	Score     float64 `json:"impacto"`
}

// Result is the outcome of a full search run. History is append-only and
// includes non-improving entries for downstream analysis.
type Result struct {
	OriginalProtein string   `json:"original_protein"`
	OriginalScore   float64  `json:"original_impact"`
	BestProtein     string   `json:"best_protein"`
	BestScore       float64  `json:"best_impact"`
	History         []Record `json:"history"`
}

// Config parameterizes one hill-climbing run over the scorer.
type Config struct {
	DNA        string
	Iterations int
	Context    string
	Scorer     scoring.Scorer
	Mutator    genome.Mutator
	// BaseSeed overrides the seed derived from the baseline sequence.
	// Iteration i mutates with BaseSeed+i.
	BaseSeed    uint64
	HasBaseSeed bool
}

// Run translates and scores the baseline, then performs exactly
// cfg.Iterations generate-translate-score steps, retaining the best-scoring
// distinct protein. Updates happen only on strict improvement, so the first
// protein to reach the final best score wins ties. Iterations <= 0 yields
// the baseline result with empty history.
func Run(cfg Config) (Result, error) {
	dna := cfg.DNA
	if dna == "" {
		dna = DefaultDNA
	}
	scorer := cfg.Scorer
	if scorer == nil {
		scorer = scoring.HashScorer{}
	}
	scorer = scoring.WithContext(scorer, cfg.Context)
	if cfg.Mutator.M == 0 {
		cfg.Mutator = genome.NewMutator()
	}

	baseline, err := genome.Translate(dna)
	if err != nil {
		return Result{}, fmt.Errorf("translate baseline: %w", err)
	}
	baselineScore := scorer.Score(baseline)

	result := Result{
		OriginalProtein: baseline,
		OriginalScore:   baselineScore,
		BestProtein:     baseline,
		BestScore:       baselineScore,
		History:         []Record{},
	}

	baseSeed := cfg.BaseSeed
	if !cfg.HasBaseSeed {
		baseSeed = rng.Normalize(dna, rng.MutationM)
	}

	for i := 0; i < cfg.Iterations; i++ {
		mutated, err := cfg.Mutator.Mutate(dna, baseSeed+uint64(i))
		if err != nil {
			return Result{}, fmt.Errorf("mutate iteration %d: %w", i, err)
		}
		protein, err := genome.Translate(mutated)
		if err != nil {
			return Result{}, fmt.Errorf("translate iteration %d: %w", i, err)
		}
		if protein == "" || protein == baseline {
			continue
		}

		score := scorer.Score(protein)
		result.History = append(result.History, Record{
			Iteration: i,
			DNA:       mutated,
			Protein:   protein,
			Score:     score,
		})
		if score > result.BestScore {
			result.BestScore = score
			result.BestProtein = protein
		}
	}
	return result, nil
}
