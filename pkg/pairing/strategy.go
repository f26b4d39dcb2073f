package pairing

import (
	"math/rand/v2"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
	"github.com/matzehuels/tourney/pkg/perm"
)

// Pair is one scheduled comparison. A and B are distinct items.
type Pair struct {
	A, B int
}

// Strategy produces the next comparison. Next never blocks.
type Strategy interface {
	Next() Pair
}

// Observer is implemented by strategies that learn from outcomes.
// The simulator calls Observe after every recorded vote.
type Observer interface {
	Observe(winner, loser int) error
}

// Kind names a strategy variant.
type Kind string

const (
	KindRandom       Kind = "random"
	KindRandomCycles Kind = "random-cycles"
	KindCCBiggest    Kind = "cc-biggest"
	KindCCZip        Kind = "cc-zip"
	KindCCRecomputed Kind = "cc-recomputed"
	KindReachability Kind = "reachability"
	KindCrowdBT      Kind = "crowd-bt"
)

// Kinds lists every registered strategy in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindRandom, KindRandomCycles, KindCCBiggest, KindCCZip,
		KindCCRecomputed, KindReachability, KindCrowdBT,
	}
}

// Options holds settings shared by the variants that use them.
type Options struct {
	// Annotators is the number of Crowd-BT annotators. Zero means one per item.
	Annotators int
}

// New builds the strategy for kind over the ledger's items.
// It fails with UNKNOWN_STRATEGY for unregistered names.
func New(kind Kind, l *ledger.Ledger, rng *rand.Rand, opts Options) (Strategy, error) {
	switch kind {
	case KindRandom:
		return strategy(NewRandom(l.Size(), rng))
	case KindRandomCycles:
		return strategy(NewRandomCycles(l.Size(), rng))
	case KindCCBiggest:
		return strategy(NewStitch(l, rng, false))
	case KindCCRecomputed:
		return strategy(NewStitch(l, rng, true))
	case KindCCZip:
		return strategy(NewZip(l, rng))
	case KindReachability:
		return strategy(NewReachability(l, rng))
	case KindCrowdBT:
		return strategy(NewCrowdBT(l.Size(), opts.Annotators, rng))
	}
	return nil, errors.New(errors.ErrCodeUnknownStrategy, "unknown strategy %q (want one of %v)", kind, Kinds())
}

// strategy avoids returning a typed nil inside a non-nil interface.
func strategy[S Strategy](s S, err error) (Strategy, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// edgeQueue hands out the edges of one cycle at a time and refills itself
// from build when empty.
type edgeQueue struct {
	edges []perm.Edge
	build func() []int
}

func (q *edgeQueue) next() Pair {
	if len(q.edges) == 0 {
		q.edges = perm.CycleEdges(q.build())
	}
	e := q.edges[0]
	q.edges = q.edges[1:]
	return Pair{A: e[0], B: e[1]}
}

func shuffle(rng *rand.Rand, s []int) {
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
