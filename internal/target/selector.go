// Package target picks the next target color from the active palette.
package target

import (
	"math/rand"

	"github.com/ksamsonov/chromatap/internal/core"
)

// Selector draws targets uniformly from a palette. The random source is
// injected so tests can supply deterministic sequences.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector seeded with the given value.
func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// NewSelectorFromRand creates a selector over an existing random source.
func NewSelectorFromRand(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Next selects one color uniformly from the palette. The palette is
// non-empty by construction; an empty palette is a programmer error.
func (s *Selector) Next(p core.Palette) core.Color {
	if len(p) == 0 {
		panic("target: empty palette")
	}
	return p[s.rng.Intn(len(p))]
}
