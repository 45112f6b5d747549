// Package levelgen draws the random heights used by both skip list
// variants: level at least k with probability 2^-(k-1), clamped at a
// fixed cap.
package levelgen

import (
	"math/rand"
	"sync"
	"time"
)

// Generator produces skip list heights in [1, MaxLevel] with a p=1/2
// geometric distribution. A zero Generator is not usable; construct one
// with New or NewSeeded.
//
// math/rand.Rand is not safe for concurrent use, so Generator guards its
// source with a mutex and can be shared across goroutines calling
// Next concurrently.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	maxLevel int
}

// New returns a Generator seeded from the current time, clamping levels
// at maxLevel.
func New(maxLevel int) *Generator {
	return NewSeeded(maxLevel, uint64(time.Now().UnixNano()))
}

// NewSeeded returns a Generator seeded deterministically, for tests that
// need reproducible level sequences.
func NewSeeded(maxLevel int, seed uint64) *Generator {
	if maxLevel < 1 {
		panic("levelgen: maxLevel must be positive")
	}

	return &Generator{
		rng:      rand.New(rand.NewSource(int64(seed))),
		maxLevel: maxLevel,
	}
}

// Next returns a level in [1, MaxLevel]: start at 1 and keep
// incrementing while a fair coin comes up heads.
func (g *Generator) Next() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	level := 1
	for g.rng.Intn(2) == 0 && level < g.maxLevel {
		level++
	}

	return level
}

// MaxLevel returns the cap levels are clamped to.
func (g *Generator) MaxLevel() int {
	return g.maxLevel
}
