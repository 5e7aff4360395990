package analytics

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source behind synthesized figures. *rand.Rand satisfies it.
type Rand interface {
	Int63n(n int64) int64
	Float64() float64
}

// LockedRand serializes access to a seeded generator so one source can serve concurrent requests.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand seeds a generator. A zero seed uses the current time.
func NewRand(seed int64) *LockedRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

// Int63n returns a non-negative value in [0, n). It panics if n <= 0.
func (r *LockedRand) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int63n(n)
}

// Float64 returns a value in [0.0, 1.0).
func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// between draws an integer from [min, max].
func between(rng Rand, min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rng.Int63n(max-min+1)
}

// uniform draws a float from [min, max).
func uniform(rng Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
