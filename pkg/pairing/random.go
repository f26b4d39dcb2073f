package pairing

import (
	"math/rand/v2"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/perm"
)

// Random returns a uniformly random pair on every call.
type Random struct {
	n   int
	rng *rand.Rand
}

// NewRandom returns a Random strategy over n >= 2 items.
func NewRandom(n int, rng *rand.Rand) (*Random, error) {
	if err := errors.ValidateSize(n, 2); err != nil {
		return nil, err
	}
	return &Random{n: n, rng: rng}, nil
}

// Next implements Strategy.
func (r *Random) Next() Pair {
	a := r.rng.IntN(r.n)
	b := r.rng.IntN(r.n - 1)
	if b >= a {
		b++
	}
	return Pair{A: a, B: b}
}

// RandomCycles returns the edges of independent uniformly random Hamiltonian
// cycles. Every n consecutive calls, aligned to the first, cover each item
// exactly twice and never repeat an edge.
type RandomCycles struct {
	queue edgeQueue
}

// NewRandomCycles returns a RandomCycles strategy over n >= 2 items.
func NewRandomCycles(n int, rng *rand.Rand) (*RandomCycles, error) {
	if err := errors.ValidateSize(n, 2); err != nil {
		return nil, err
	}
	return &RandomCycles{queue: edgeQueue{build: func() []int {
		return perm.RandomCycle(n, rng)
	}}}, nil
}

// Next implements Strategy.
func (r *RandomCycles) Next() Pair { return r.queue.next() }
