package levelgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektra/neko"
)

func TestGenerator(t *testing.T) {
	n := neko.Start(t)

	n.It("never returns a level below 1", func() {
		g := NewSeeded(7, 1)

		for i := 0; i < 1000; i++ {
			assert.GreaterOrEqual(t, g.Next(), 1)
		}
	})

	n.It("never exceeds MaxLevel", func() {
		g := NewSeeded(4, 2)

		for i := 0; i < 1000; i++ {
			assert.LessOrEqual(t, g.Next(), 4)
		}
	})

	n.It("is deterministic for a fixed seed", func() {
		a := NewSeeded(7, 42)
		b := NewSeeded(7, 42)

		for i := 0; i < 50; i++ {
			assert.Equal(t, a.Next(), b.Next())
		}
	})

	n.It("panics on a non-positive max level", func() {
		assert.Panics(t, func() {
			NewSeeded(0, 1)
		})
	})

	n.It("roughly halves the survival count at each level", func() {
		g := NewSeeded(16, 7)

		counts := make(map[int]int)
		const trials = 20000

		for i := 0; i < trials; i++ {
			counts[g.Next()]++
		}

		atLeast := func(k int) int {
			total := 0
			for lvl, c := range counts {
				if lvl >= k {
					total += c
				}
			}
			return total
		}

		// P(level >= k) = 2^-(k-1); allow generous slack since this is a
		// statistical property, not an exact one.
		ratio := float64(atLeast(3)) / float64(atLeast(2))
		assert.InDelta(t, 0.5, ratio, 0.15)
	})

	n.Meow()
}
