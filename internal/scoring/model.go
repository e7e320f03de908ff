package scoring

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

var ErrMalformedModel = errors.New("malformed model artifact")

// ModelScorer scores proteins with per-residue weights from a trained
// classifier exported as a JSON artifact:
//
//	{"weights": {"A": 0.12, "C": -0.3, ...}, "bias": 0.05}
//
// The mean weighted residue contribution plus bias is squashed through a
// sigmoid so scores land in (0,1).
type ModelScorer struct {
	weights map[rune]float64
	bias    float64
}

// LoadModel parses a model artifact. Callers wanting the degradation
// behavior required by the scoring contract should use ScorerForModel.
func LoadModel(path string) (*ModelScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrMalformedModel, path)
	}

	doc := gjson.ParseBytes(data)
	raw := doc.Get("weights")
	if !raw.IsObject() {
		return nil, fmt.Errorf("%w: missing weights object", ErrMalformedModel)
	}

	weights := make(map[rune]float64)
	var badKey string
	raw.ForEach(func(key, value gjson.Result) bool {
		k := []rune(key.String())
		if len(k) != 1 {
			badKey = key.String()
			return false
		}
		weights[k[0]] = value.Float()
		return true
	})
	if badKey != "" {
		return nil, fmt.Errorf("%w: weight key %q is not a single residue", ErrMalformedModel, badKey)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty weights object", ErrMalformedModel)
	}

	return &ModelScorer{weights: weights, bias: doc.Get("bias").Float()}, nil
}

func (m *ModelScorer) Score(protein string) float64 {
	if len(protein) == 0 {
		return sigmoid(m.bias)
	}
	acc := 0.0
	for _, aa := range protein {
		acc += m.weights[aa]
	}
	return sigmoid(acc/float64(len([]rune(protein))) + m.bias)
}

// ScorerForModel returns the model scorer for path, degrading to the
// deterministic hash fallback when path is empty, unreadable, or malformed.
// Scoring failures never propagate into the search loop.
func ScorerForModel(path string) Scorer {
	if path == "" {
		return HashScorer{}
	}
	model, err := LoadModel(path)
	if err != nil {
		return HashScorer{}
	}
	return model
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
