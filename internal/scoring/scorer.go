package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Scorer maps a protein sequence to a score in [0,1]. Implementations must
// be deterministic for a given protein so search history stays replayable.
type Scorer interface {
	Score(protein string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(protein string) float64

func (f ScorerFunc) Score(protein string) float64 {
	return f(protein)
}

// HashScorer is the deterministic fallback used when no trained model is
// available: the first 8 hex digits of SHA-256 reduced to [0,1). It keeps
// scores reproducible and totally ordered for testing.
type HashScorer struct{}

func (HashScorer) Score(protein string) float64 {
	sum := sha256.Sum256([]byte(protein))
	v, err := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	if err != nil {
		return 0
	}
	return float64(v%1000) / 1000.0
}

// contextMultiplier boosts scores for hematological contexts when activation
// site residues are present. Heuristic overlay, not part of the core
// contract.
const contextMultiplier = 1.2

// WithContext wraps base with the tumor-context overlay. A context matching
// "leucemia" scales scores of proteins carrying Tyr or Phe by the fixed
// multiplier, clamped to 1.0. An empty context returns base unchanged.
func WithContext(base Scorer, context string) Scorer {
	if strings.TrimSpace(context) == "" {
		return base
	}
	lowered := strings.ToLower(context)
	return ScorerFunc(func(protein string) float64 {
		score := base.Score(protein)
		if strings.Contains(lowered, "leucemia") &&
			(strings.ContainsRune(protein, 'Y') || strings.ContainsRune(protein, 'F')) {
			score *= contextMultiplier
		}
		return clamp01(score)
	})
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
