package rng

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Parameter presets for the two independent streams in this system. The
// trajectory engine and the mutation sampler never share a generator; mixing
// moduli across calls breaks reproducibility.
const (
	TrajectoryA uint64 = 1103515245
	TrajectoryC uint64 = 12345
	TrajectoryM uint64 = 1<<31 - 1

	MutationA uint64 = 1664525
	MutationC uint64 = 1013904223
	MutationM uint64 = 1 << 32
)

// DefaultState is the normalized state used when a seed cannot be parsed or
// hashed. Seed handling must never crash a run.
const DefaultState uint64 = 42

// LCG is a linear-congruential generator: state' = (a*state + c) mod m.
// The zero value is not usable; construct with New or NewFromSeed.
type LCG struct {
	State uint64
	A     uint64
	C     uint64
	M     uint64
}

func New(state, a, c, m uint64) LCG {
	return LCG{State: state % m, A: a, C: c, M: m}
}

// NewFromSeed normalizes a biological seed into an initial state for the
// given parameter triple.
func NewFromSeed(seed string, a, c, m uint64) LCG {
	return New(Normalize(seed, m), a, c, m)
}

// Next advances the generator and returns the new state.
func (g *LCG) Next() uint64 {
	g.State = (g.A*g.State + g.C) % g.M
	return g.State
}

// Peek returns the current state without advancing.
func (g LCG) Peek() uint64 {
	return g.State
}

// Unit returns the current state normalized to [0,1).
func (g LCG) Unit() float64 {
	return float64(g.State) / float64(g.M)
}

// Normalize maps a biological seed (decimal integer or arbitrary string) to
// an initial state in [0, m). Numeric seeds are masked to a non-negative
// 31-bit value; other seeds go through a stable string hash reduced mod m.
func Normalize(seed string, m uint64) uint64 {
	if m == 0 {
		return DefaultState
	}
	s := strings.TrimSpace(seed)
	if s == "" {
		return DefaultState % m
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return uint64(v&0x7fffffff) % m
	}
	return stableHash(s) % m
}

// UnitInterval maps a seed deterministically into [0,1). Numeric seeds use
// the reference (seed % 100)/100 initial-state map; string seeds hash first.
func UnitInterval(seed string) float64 {
	s := strings.TrimSpace(seed)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			v = -v
		}
		return float64(v%100) / 100.0
	}
	return float64(stableHash(s)%100) / 100.0
}

// stableHash is FNV-1a over the seed bytes. Unlike runtime map hashing it is
// identical across processes, which the reproducibility contract requires.
func stableHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
