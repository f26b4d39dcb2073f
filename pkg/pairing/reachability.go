package pairing

import (
	"math/rand/v2"

	"github.com/matzehuels/tourney/pkg/connectivity"
	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
)

// Reachability builds each cycle greedily: starting from a random item it
// repeatedly steps to the unvisited item with the lowest approximate node
// connectivity from the current one. Ties go to a random candidate.
//
// Every step runs a connectivity search per candidate, so a cycle costs
// O(N²) path searches. Intended for small tournaments.
type Reachability struct {
	l     *ledger.Ledger
	rng   *rand.Rand
	queue edgeQueue
}

// NewReachability returns a reachability minimising strategy.
func NewReachability(l *ledger.Ledger, rng *rand.Rand) (*Reachability, error) {
	if err := errors.ValidateSize(l.Size(), 2); err != nil {
		return nil, err
	}
	r := &Reachability{l: l, rng: rng}
	r.queue.build = r.cycle
	return r, nil
}

// Next implements Strategy.
func (r *Reachability) Next() Pair { return r.queue.next() }

func (r *Reachability) cycle() []int {
	n := r.l.Size()
	g := r.l.Graph()

	current := r.rng.IntN(n)
	cycle := []int{current}
	visited := make([]bool, n)
	visited[current] = true

	candidates := make([]int, 0, n)
	for len(cycle) < n {
		candidates = candidates[:0]
		for v := range n {
			if !visited[v] {
				candidates = append(candidates, v)
			}
		}
		shuffle(r.rng, candidates)

		best, bestK := candidates[0], connectivity.LocalNodeConnectivity(g, current, candidates[0])
		for _, v := range candidates[1:] {
			if bestK == 0 {
				break
			}
			if k := connectivity.LocalNodeConnectivity(g, current, v); k < bestK {
				best, bestK = v, k
			}
		}
		current = best
		visited[current] = true
		cycle = append(cycle, current)
	}
	return cycle
}
