package vote

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
	"github.com/matzehuels/tourney/pkg/observability"
	"github.com/matzehuels/tourney/pkg/pairing"
)

// State is the simulator's lifecycle state.
type State int

const (
	Running State = iota
	Exhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config bounds one simulation run.
type Config struct {
	Budget  int    // total votes to record
	Rematch int    // votes per scheduled pair, at least 1
	Label   string // strategy name reported to hooks
}

// Simulator runs the vote loop for one tournament. It exclusively owns the
// ledger while running.
type Simulator struct {
	ledger    *ledger.Ledger
	strategy  pairing.Strategy
	oracle    *Oracle
	cfg       Config
	remaining int
}

// NewSimulator wires a strategy and an oracle to a ledger. The oracle must
// rank the same number of items as the ledger holds.
func NewSimulator(l *ledger.Ledger, s pairing.Strategy, o *Oracle, cfg Config) (*Simulator, error) {
	if cfg.Budget < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "budget must be non-negative, got %d", cfg.Budget)
	}
	if cfg.Rematch < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "rematch must be at least 1, got %d", cfg.Rematch)
	}
	if len(o.pos) != l.Size() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"true ranking has %d items, ledger has %d", len(o.pos), l.Size())
	}
	return &Simulator{ledger: l, strategy: s, oracle: o, cfg: cfg, remaining: cfg.Budget}, nil
}

// State reports whether votes remain.
func (s *Simulator) State() State {
	if s.remaining == 0 {
		return Exhausted
	}
	return Running
}

// Remaining returns the unspent budget.
func (s *Simulator) Remaining() int { return s.remaining }

// Step schedules one pair and records up to Rematch votes on it.
// It is a no-op once the simulator is exhausted.
func (s *Simulator) Step(ctx context.Context) error {
	if s.State() == Exhausted {
		return nil
	}
	p := s.strategy.Next()
	obs, _ := s.strategy.(pairing.Observer)
	hooks := observability.Simulation()

	for range min(s.cfg.Rematch, s.remaining) {
		loser, winner := s.oracle.Vote(p.A, p.B)
		if err := s.ledger.RecordVote(winner, loser); err != nil {
			return fmt.Errorf("record %d>%d: %w", winner, loser, err)
		}
		s.remaining--
		hooks.OnVote(ctx, s.cfg.Label)
		if obs != nil {
			if err := obs.Observe(winner, loser); err != nil {
				return fmt.Errorf("observe %d>%d: %w", winner, loser, err)
			}
		}
	}
	return nil
}

// Run steps until the budget is exhausted or ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) (err error) {
	hooks := observability.Simulation()
	hooks.OnSimulationStart(ctx, s.cfg.Label, s.ledger.Size(), s.cfg.Budget)
	start := time.Now()
	defer func() {
		hooks.OnSimulationComplete(ctx, s.cfg.Label, s.ledger.Total(), time.Since(start), err)
	}()

	for s.State() == Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}
