// Package environment defines the contract an agent interacts with: a
// source of observations and rewards that reacts to chosen actions.
package environment

// Environment is anything an agent.Agent can interact with. Implementations
// are expected to be small, deterministic-given-a-seed state machines; see
// CoinFlip, CheatingOneBit and RockPaperScissors in this package for
// reference implementations used in the agent's end-to-end tests.
type Environment interface {
	// ValidActions returns the finite, nonempty, ordered set of action
	// integers legal in the environment's current state.
	ValidActions() []int

	// IsValidAction reports whether a is currently a legal action.
	IsValidAction(a int) bool

	// Observation returns the most recent observation.
	Observation() int

	// Reward returns the most recent reward. Rewards are nonnegative
	// integers; environments that model negative reward must shift them
	// by a constant so the encoded value starts at zero.
	Reward() int

	// PerformAction applies a to the environment, updating the values
	// Observation and Reward will subsequently return.
	PerformAction(a int) error

	// IsFinished reports whether the environment has reached a terminal
	// state and the interaction loop should stop.
	IsFinished() bool

	// ActionBits, ObservationBits and RewardBits return the number of
	// bits required to encode the respective field, derived from its
	// maximum value.
	ActionBits() int
	ObservationBits() int
	RewardBits() int

	// MaximumAction, MaximumObservation and MaximumReward return the
	// largest integer value the respective field can take.
	MaximumAction() int
	MaximumObservation() int
	MaximumReward() int
}
