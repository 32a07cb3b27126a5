// Package randutil centralises how simulation randomness is seeded. A
// run has one root seed; every game derives its own seed from the root
// and its game number, so workers never share a generator and a game
// can be replayed from its recorded seed alone.
package randutil

import (
	mrand "math/rand"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *math/rand.Rand seeded deterministically from seed. The
// engine threads the classic *rand.Rand type through decks and agents;
// underneath it runs rand/v2's PCG with both state words derived via a
// splitmix-style finaliser, so adjacent seeds still produce unrelated
// sequences.
func New(seed int64) *mrand.Rand {
	return mrand.New(newSource(seed))
}

// GameSeed derives the seed for game n of a run rooted at root. The
// derivation is a pure function, so any worker can seed any game
// without coordination and the result never depends on scheduling.
func GameSeed(root int64, n int) int64 {
	return int64(mix(uint64(root) + uint64(n+1)*goldenRatio64))
}

// source adapts a PCG generator to math/rand's Source64.
type source struct {
	pcg *rand.PCG
}

func newSource(seed int64) *source {
	u := uint64(seed)
	return &source{pcg: rand.NewPCG(mix(u), mix(u+goldenRatio64))}
}

func (s *source) Uint64() uint64 {
	return s.pcg.Uint64()
}

func (s *source) Int63() int64 {
	return int64(s.pcg.Uint64() >> 1)
}

func (s *source) Seed(seed int64) {
	u := uint64(seed)
	s.pcg.Seed(mix(u), mix(u+goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
