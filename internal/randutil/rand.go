package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Decks, games and simulator workers all derive their generators here so a
// single --seed reproduces a whole session.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed resolves an optional seed flag, falling back to the wall clock.
// The chosen value is returned so callers can log it for replay.
func Seed(opt *int64) int64 {
	if opt != nil {
		return *opt
	}
	return time.Now().UnixNano()
}

// Derive returns a child seed for the n-th independent stream of a master seed.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
