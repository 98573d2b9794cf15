package environment

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Coin flip action/observation/reward values.
const (
	CoinTails = 0
	CoinHeads = 1
)

// CoinFlip is a biased coin: the agent predicts how the coin will land and
// is rewarded for a correct guess. It is the smallest environment that
// still requires the agent to learn a nontrivial bias.
type CoinFlip struct {
	probability float64
	rng         *rand.Rand

	observation int
	reward      int
}

// NewCoinFlip constructs a CoinFlip that lands on heads with the given
// probability. rng drives the coin flips; pass a seeded *rand.Rand for a
// reproducible run.
func NewCoinFlip(headsProbability float64, rng *rand.Rand) (*CoinFlip, error) {
	if headsProbability < 0 || headsProbability > 1 {
		return nil, errors.Errorf("heads probability %v must be in [0, 1]", headsProbability)
	}

	c := &CoinFlip{probability: headsProbability, rng: rng}
	c.observation = c.flip()
	return c, nil
}

func (c *CoinFlip) flip() int {
	if c.rng.Float64() < c.probability {
		return CoinHeads
	}
	return CoinTails
}

func (c *CoinFlip) ValidActions() []int      { return []int{CoinTails, CoinHeads} }
func (c *CoinFlip) IsValidAction(a int) bool { return a == CoinTails || a == CoinHeads }
func (c *CoinFlip) Observation() int         { return c.observation }
func (c *CoinFlip) Reward() int              { return c.reward }
func (c *CoinFlip) IsFinished() bool         { return false }

func (c *CoinFlip) PerformAction(action int) error {
	if !c.IsValidAction(action) {
		return errors.Errorf("invalid coin flip action %d", action)
	}

	c.observation = c.flip()
	if action == c.observation {
		c.reward = 1
	} else {
		c.reward = 0
	}
	return nil
}

func (c *CoinFlip) ActionBits() int      { return 1 }
func (c *CoinFlip) ObservationBits() int { return 1 }
func (c *CoinFlip) RewardBits() int      { return 1 }

func (c *CoinFlip) MaximumAction() int      { return CoinHeads }
func (c *CoinFlip) MaximumObservation() int { return CoinHeads }
func (c *CoinFlip) MaximumReward() int      { return 1 }
