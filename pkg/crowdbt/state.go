package crowdbt

import (
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/matzehuels/tourney/pkg/errors"
)

// Annotator is one simulated judge. Prev and Next index the items of its
// pending comparison.
type Annotator struct {
	Reliability
	Prev, Next int
	seeded     bool
}

// Model is the online Crowd-BT state for one simulation run.
// It is not safe for concurrent use.
type Model struct {
	items      []Skill
	annotators []Annotator
	current    int
	rng        *rand.Rand
}

// NewModel returns a model over n items judged by the given number of
// annotators. Annotators <= 0 defaults to one per item.
func NewModel(n, annotators int, rng *rand.Rand) (*Model, error) {
	if err := errors.ValidateSize(n, 2); err != nil {
		return nil, err
	}
	if annotators <= 0 {
		annotators = n
	}
	m := &Model{
		items:      make([]Skill, n),
		annotators: make([]Annotator, annotators),
		current:    -1,
		rng:        rng,
	}
	for i := range m.items {
		m.items[i] = PriorSkill()
	}
	for i := range m.annotators {
		m.annotators[i].Reliability = PriorReliability()
	}
	return m, nil
}

// Size returns the number of items.
func (m *Model) Size() int { return len(m.items) }

// Skill returns the current belief about item i.
func (m *Model) Skill(i int) Skill { return m.items[i] }

// Annotators returns a copy of every annotator's state.
func (m *Model) Annotators() []Annotator { return slices.Clone(m.annotators) }

// Next picks an annotator uniformly at random and returns its next
// comparison as (anchor, chosen). The anchor is the item the annotator saw
// last; chosen becomes its new Next.
//
// With probability Epsilon the chosen item is a uniformly random other item.
// Otherwise it is the item with the highest expected information gain
// against the anchor, ties going to the earlier item in a random order.
func (m *Model) Next() (int, int) {
	m.current = m.rng.IntN(len(m.annotators))
	a := &m.annotators[m.current]
	if !a.seeded {
		a.Prev = m.rng.IntN(len(m.items))
		a.Next = (a.Prev + 1 + m.rng.IntN(len(m.items)-1)) % len(m.items)
		a.seeded = true
	}

	anchor := a.Next
	candidates := make([]int, 0, len(m.items)-1)
	for i := range m.items {
		if i != anchor {
			candidates = append(candidates, i)
		}
	}
	m.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	chosen := candidates[0]
	if m.rng.Float64() >= Epsilon {
		best := ExpectedInformationGain(a.Reliability, m.items[anchor], m.items[chosen])
		for _, c := range candidates[1:] {
			if gain := ExpectedInformationGain(a.Reliability, m.items[anchor], m.items[c]); gain > best {
				best, chosen = gain, c
			}
		}
	}

	a.Prev, a.Next = anchor, chosen
	return anchor, chosen
}

// Record applies a vote on the pair last returned by Next. It may be called
// several times for the same pair.
func (m *Model) Record(winner, loser int) error {
	if m.current < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no pending comparison")
	}
	a := &m.annotators[m.current]
	if !(winner == a.Prev && loser == a.Next) && !(winner == a.Next && loser == a.Prev) {
		return errors.New(errors.ErrCodeInvalidInput,
			"vote %d>%d does not match pending comparison (%d, %d)", winner, loser, a.Prev, a.Next)
	}
	r, w, l := Update(a.Reliability, m.items[winner], m.items[loser])
	a.Reliability = r
	m.items[winner] = w
	m.items[loser] = l
	return nil
}

// Ranking orders items by ascending mean skill, worst first. Equal means keep
// index order.
func (m *Model) Ranking() []int {
	ranking := make([]int, len(m.items))
	for i := range ranking {
		ranking[i] = i
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return m.items[ranking[i]].Mu < m.items[ranking[j]].Mu
	})
	return ranking
}
