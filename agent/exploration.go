package agent

import (
	"math/rand"

	"github.com/pkg/errors"
)

// ExplorationSchedule drives the optional exploration/exploitation trade-off
// an interaction loop applies on top of Agent.Search: with probability Rate
// it should pick a uniformly random action instead of the planner's choice,
// and Rate decays by Decay after every exploring cycle. A driver owns one of
// these; the core agent never consults it directly.
type ExplorationSchedule struct {
	Rate  float64
	Decay float64
	rng   *rand.Rand
}

// NewExplorationSchedule constructs a schedule with the given initial
// exploration rate and per-cycle decay factor (both in [0, 1]), using rng
// to draw the explore/exploit coin flip.
func NewExplorationSchedule(rate, decay float64, rng *rand.Rand) (*ExplorationSchedule, error) {
	if rate < 0 || rate > 1 {
		return nil, errors.Errorf("exploration rate %v must be in [0, 1]", rate)
	}
	if decay < 0 || decay > 1 {
		return nil, errors.Errorf("explore decay %v must be in [0, 1]", decay)
	}
	return &ExplorationSchedule{Rate: rate, Decay: decay, rng: rng}, nil
}

// ShouldExplore reports whether this cycle should take a random action
// instead of consulting the planner, per the current rate. A rate of zero
// (the default, no exploration) always returns false without consuming
// randomness.
func (s *ExplorationSchedule) ShouldExplore() bool {
	if s.Rate <= 0 {
		return false
	}
	return s.rng.Float64() < s.Rate
}

// Decayed multiplies the rate by Decay, mirroring the reference driver's
// behavior of only decaying on cycles that actually explored.
func (s *ExplorationSchedule) Decayed() {
	s.Rate *= s.Decay
}
