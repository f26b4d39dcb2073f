package pairing

import (
	"math/rand/v2"

	"github.com/matzehuels/tourney/pkg/crowdbt"
)

// CrowdBT selects comparisons by Crowd-BT active learning and keeps its
// model current by observing every vote.
type CrowdBT struct {
	model *crowdbt.Model
}

// NewCrowdBT returns an adaptive strategy over n items. annotators <= 0 uses
// one annotator per item.
func NewCrowdBT(n, annotators int, rng *rand.Rand) (*CrowdBT, error) {
	m, err := crowdbt.NewModel(n, annotators, rng)
	if err != nil {
		return nil, err
	}
	return &CrowdBT{model: m}, nil
}

// Next implements Strategy.
func (c *CrowdBT) Next() Pair {
	a, b := c.model.Next()
	return Pair{A: a, B: b}
}

// Observe implements Observer.
func (c *CrowdBT) Observe(winner, loser int) error {
	return c.model.Record(winner, loser)
}

// Model returns the online model, for ranking by posterior skill.
func (c *CrowdBT) Model() *crowdbt.Model { return c.model }
