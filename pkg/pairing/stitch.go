package pairing

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/tourney/pkg/connectivity"
	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
)

// Stitch walks a Hamiltonian cycle across the strongly connected components
// of the win graph.
//
// Each step appends an unvisited item from the largest component that still
// has one and that does not contain the previous item, falling back to the
// previous item's component. The pair returned is (previous, new). After N
// items the cycle is closed with (last, first), so recording every pair as
// A beat B over one sweep adds a directed Hamiltonian cycle to the graph.
//
// In biggest mode the components are computed once per sweep. In recomputed
// mode they are recomputed and reshuffled before every step, which costs a
// full SCC pass per comparison but reacts to every vote.
type Stitch struct {
	l         *ledger.Ledger
	rng       *rand.Rand
	recompute bool

	comps   [][]int
	member  []int
	cycle   []int
	visited []bool
	history []int
}

// NewStitch returns a component stitching strategy. recompute selects the
// per-step variant.
func NewStitch(l *ledger.Ledger, rng *rand.Rand, recompute bool) (*Stitch, error) {
	if err := errors.ValidateSize(l.Size(), 2); err != nil {
		return nil, err
	}
	return &Stitch{
		l:         l,
		rng:       rng,
		recompute: recompute,
		visited:   make([]bool, l.Size()),
	}, nil
}

// ComponentHistory returns the number of components seen at the start of
// every sweep so far.
func (s *Stitch) ComponentHistory() []int { return slices.Clone(s.history) }

func (s *Stitch) partition() {
	s.comps = connectivity.Components(s.l.Graph())
	for _, c := range s.comps {
		shuffle(s.rng, c)
	}
	s.member = connectivity.Membership(s.comps, s.l.Size())
}

// Next implements Strategy.
func (s *Stitch) Next() Pair {
	n := s.l.Size()
	if len(s.cycle) == 0 || s.recompute {
		s.partition()
	}
	if len(s.cycle) == 0 {
		s.history = append(s.history, len(s.comps))
		s.visit(s.comps[0][0])
	}
	if len(s.cycle) == n {
		p := Pair{A: s.cycle[n-1], B: s.cycle[0]}
		s.cycle = s.cycle[:0]
		clear(s.visited)
		return p
	}

	prev := s.cycle[len(s.cycle)-1]
	prevComp := s.member[prev]
	for ci, comp := range s.comps {
		if ci == prevComp {
			continue
		}
		if v, ok := s.firstUnvisited(comp); ok {
			s.visit(v)
			return Pair{A: prev, B: v}
		}
	}
	v, _ := s.firstUnvisited(s.comps[prevComp])
	s.visit(v)
	return Pair{A: prev, B: v}
}

func (s *Stitch) visit(v int) {
	s.cycle = append(s.cycle, v)
	s.visited[v] = true
}

func (s *Stitch) firstUnvisited(comp []int) (int, bool) {
	for _, v := range comp {
		if !s.visited[v] {
			return v, true
		}
	}
	return 0, false
}

// Zip builds each cycle by transposing the shuffled components: the first
// item of every component, then the second of every component that has one,
// and so on. Components are recomputed once per cycle.
type Zip struct {
	l       *ledger.Ledger
	rng     *rand.Rand
	queue   edgeQueue
	history []int
}

// NewZip returns a zip stitching strategy.
func NewZip(l *ledger.Ledger, rng *rand.Rand) (*Zip, error) {
	if err := errors.ValidateSize(l.Size(), 2); err != nil {
		return nil, err
	}
	z := &Zip{l: l, rng: rng}
	z.queue.build = z.cycle
	return z, nil
}

// Next implements Strategy.
func (z *Zip) Next() Pair { return z.queue.next() }

// ComponentHistory returns the number of components seen at the start of
// every cycle so far.
func (z *Zip) ComponentHistory() []int { return slices.Clone(z.history) }

func (z *Zip) cycle() []int {
	comps := connectivity.Components(z.l.Graph())
	for _, c := range comps {
		shuffle(z.rng, c)
	}
	z.history = append(z.history, len(comps))

	cycle := make([]int, 0, z.l.Size())
	for row := 0; len(cycle) < z.l.Size(); row++ {
		for _, c := range comps {
			if row < len(c) {
				cycle = append(cycle, c[row])
			}
		}
	}
	return cycle
}
