// Package randutil centralises deterministic RNG construction so every
// entry point derives reproducible draws from a single int64 seed.
package randutil

import "math/rand"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The seed is mixed first so that adjacent batch seeds (seed, seed+1, ...)
// do not produce correlated draw sequences.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(seed)))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
