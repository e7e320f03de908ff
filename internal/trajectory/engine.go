package trajectory

import (
	"math"

	"oncosim/internal/rng"
)

// Sample is one step of the discretized recurrence. Samples are immutable
// once produced; the engine is a pure fold over step order.
type Sample struct {
	Step      int     `json:"step"`
	Time      float64 `json:"time"`
	State     float64 `json:"state"`
	Impulse   float64 `json:"impulse"`
	Memory    float64 `json:"memory"`
	PRNGState uint64  `json:"prng_state"`
}

// Impulse computes the per-step noise-driven magnitude. prior holds the
// patient states x_0..x_{n-1} and may be ignored; state is the generator
// state active at this step and m its modulus.
type Impulse interface {
	Impact(prior []float64, t float64, seed string, state, m uint64) float64
}

// ImpulseFunc adapts a plain function to the Impulse interface.
type ImpulseFunc func(prior []float64, t float64, seed string, state, m uint64) float64

func (f ImpulseFunc) Impact(prior []float64, t float64, seed string, state, m uint64) float64 {
	return f(prior, t, seed, state, m)
}

const (
	baseImpact         = 0.05
	heavyTailCutoff    = 0.95
	heavyTailAmplifier = 5.0
)

// HeavyTail is the reference impulse policy. Noise above the cutoff is
// amplified to inject rare large mutation events; the cutoff and amplifier
// are part of the compatibility contract and must not drift.
func HeavyTail() Impulse {
	return ImpulseFunc(func(_ []float64, _ float64, _ string, state, m uint64) float64 {
		noise := float64(state) / float64(m)
		if noise > heavyTailCutoff {
			return baseImpact + noise*heavyTailAmplifier
		}
		return baseImpact + noise
	})
}

// Config parameterizes one trajectory run. Lambda <= 0 is accepted and
// yields non-decaying memory; callers wanting strict behavior validate it.
type Config struct {
	Days    int
	DT      float64
	Lambda  float64
	Seed    string
	A, C, M uint64
	Impulse Impulse
}

func (c Config) withDefaults() Config {
	if c.DT == 0 {
		c.DT = 1
	}
	if c.A == 0 && c.C == 0 && c.M == 0 {
		c.A, c.C, c.M = rng.TrajectoryA, rng.TrajectoryC, rng.TrajectoryM
	}
	if c.Impulse == nil {
		c.Impulse = HeavyTail()
	}
	return c
}

// Run folds the recurrence over cfg.Days steps and returns the ordered
// sample series. Days <= 0 returns an empty series, not an error.
func Run(cfg Config) []Sample {
	cfg = cfg.withDefaults()
	if cfg.Days <= 0 {
		return nil
	}

	samples := make([]Sample, 0, cfg.Days)
	states := make([]float64, 0, cfg.Days)

	x0 := rng.UnitInterval(cfg.Seed)
	g := rng.NewFromSeed(cfg.Seed, cfg.A, cfg.C, cfg.M)
	f0 := cfg.Impulse.Impact(nil, 0, cfg.Seed, g.Peek(), cfg.M)

	samples = append(samples, Sample{
		Step:      0,
		Time:      0,
		State:     x0,
		Impulse:   f0,
		Memory:    0,
		PRNGState: g.Peek(),
	})
	states = append(states, x0)

	decay := math.Exp(-cfg.Lambda * cfg.DT)
	memory := 0.0

	for n := 1; n < cfg.Days; n++ {
		t := float64(n) * cfg.DT
		xn := g.Next()
		fn := cfg.Impulse.Impact(states, t, cfg.Seed, xn, cfg.M)
		memory = decay*memory + fn*cfg.DT
		x := x0 + memory

		samples = append(samples, Sample{
			Step:      n,
			Time:      t,
			State:     x,
			Impulse:   fn,
			Memory:    memory,
			PRNGState: xn,
		})
		states = append(states, x)
	}
	return samples
}
