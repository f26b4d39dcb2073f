package vote

import (
	"math/rand/v2"

	"github.com/matzehuels/tourney/pkg/errors"
)

// RandomRanking draws a uniformly random true ranking of n items.
func RandomRanking(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}

// Oracle answers comparisons against a fixed true ranking.
type Oracle struct {
	pos []int
	p   float64
	rng *rand.Rand
}

// NewOracle returns an oracle that is truthful with probability p.
// truth lists the items worst first.
func NewOracle(truth []int, p float64, rng *rand.Rand) (*Oracle, error) {
	if err := errors.ValidatePermutation(truth); err != nil {
		return nil, err
	}
	if err := errors.ValidateProbability("p", p); err != nil {
		return nil, err
	}
	pos := make([]int, len(truth))
	for i, item := range truth {
		pos[item] = i
	}
	return &Oracle{pos: pos, p: p, rng: rng}, nil
}

// Vote compares a and b and returns (loser, winner). It consumes exactly one
// draw from the random source.
func (o *Oracle) Vote(a, b int) (int, int) {
	if o.pos[a] > o.pos[b] {
		a, b = b, a
	}
	// b is now the better item.
	if o.rng.Float64() < o.p {
		return a, b
	}
	return b, a
}
