package trajectory

import "strings"

// DefaultLambda is the pancreatic stage 3-4 decay rate, the reference
// default when no tumor profile matches.
const DefaultLambda = 0.01540

type lambdaBucket struct {
	minStage, maxStage int
	lambda             float64
}

var lambdaTable = map[string][]lambdaBucket{
	"prostata": {{1, 2, 0.00385}, {3, 4, 0.00770}},
	"mama":     {{1, 2, 0.00580}},
	"pancreas": {{3, 4, 0.01540}},
}

// LambdaForTumor resolves the decay rate for a tumor type and stage. With
// alpha > 0 the severity formula lambda0/(1+alpha*Sp) takes precedence,
// where Sp maps stage 1..4 onto [0,1]. Unknown types fall back to
// DefaultLambda.
func LambdaForTumor(tumorType string, stage int, alpha float64) float64 {
	if alpha > 0 && stage >= 0 && stage <= 4 {
		sp := (float64(stage) - 1) / 3.0
		if sp < 0 {
			sp = 0
		}
		if sp > 1 {
			sp = 1
		}
		return DefaultLambda / (1 + alpha*sp)
	}

	buckets, ok := lambdaTable[strings.ToLower(strings.TrimSpace(tumorType))]
	if !ok {
		return DefaultLambda
	}
	for _, b := range buckets {
		if stage >= b.minStage && stage <= b.maxStage {
			return b.lambda
		}
	}
	return buckets[0].lambda
}
