// Package agent implements the MC-AIXI-CTW agent: the glue between a
// Context Tree Weighting predictor (package ctw) and a Monte-Carlo ρUCT
// planner (package search), presented as the environment-facing
// interaction loop an AIXI-approximating agent needs.
package agent

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/sgkasselau/pyaixi/bitcodec"
	"github.com/sgkasselau/pyaixi/ctw"
	"github.com/sgkasselau/pyaixi/environment"
	"github.com/sgkasselau/pyaixi/search"
)

// Agent is a MC-AIXI-CTW learning agent: it maintains a binary context
// tree over the concatenated stream of percept and action bits, and plans
// by Monte-Carlo tree search against that tree's predictive distribution.
type Agent struct {
	env environment.Environment
	ctw *ctw.Tree
	rng *rand.Rand

	depth          int
	horizon        int
	mcSimulations  int
	learningPeriod int

	explorationConstant float64
	unexploredBias      float64

	age         int
	totalReward float64
	lastUpdate  updateKind
}

// New constructs an Agent bound to env, configured by opts, driven by rng.
// opts must satisfy Options.Validate.
func New(env environment.Environment, opts Options, rng *rand.Rand) (*Agent, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, errors.New("agent requires a non-nil environment")
	}

	tree, err := ctw.NewTree(opts.CTDepth, rng)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		env:                 env,
		ctw:                 tree,
		rng:                 rng,
		depth:               opts.CTDepth,
		horizon:             opts.Horizon,
		mcSimulations:       opts.MCSimulations,
		learningPeriod:      opts.LearningPeriod,
		explorationConstant: opts.ExplorationConstant,
		unexploredBias:      opts.UnexploredBias,
	}
	a.Reset()
	return a, nil
}

// Reset clears the context tree and the agent's own counters.
func (a *Agent) Reset() {
	a.ctw.Clear()
	a.age = 0
	a.totalReward = 0
	a.lastUpdate = actionUpdate
}

// AverageReward returns the mean reward per cycle so far, or 0 before the
// agent's first cycle.
func (a *Agent) AverageReward() float64 {
	if a.age > 0 {
		return a.totalReward / float64(a.age)
	}
	return 0
}

// Age returns the number of action+percept cycles completed.
func (a *Agent) Age() int { return a.age }

// TotalReward returns the cumulative reward received so far.
func (a *Agent) TotalReward() float64 { return a.totalReward }

// ModelSize returns the node count of the underlying context tree.
func (a *Agent) ModelSize() int { return a.ctw.Size() }

// MaximumAction returns the largest action value the bound environment
// accepts.
func (a *Agent) MaximumAction() int { return a.env.MaximumAction() }

// MaximumReward returns the largest reward value the bound environment can
// produce in one cycle.
func (a *Agent) MaximumReward() int { return a.env.MaximumReward() }

// Horizon returns the agent's configured planning horizon.
func (a *Agent) Horizon() int { return a.horizon }

// Rand exposes the agent's owned random stream, for callers (notably the
// search package) that need to draw from the same deterministic sequence.
func (a *Agent) Rand() *rand.Rand { return a.rng }

// ValidActions returns the bound environment's currently valid actions.
func (a *Agent) ValidActions() []int { return a.env.ValidActions() }

// MaximumBitsNeeded returns the widest bit-width the agent's encodings
// use, i.e. the greater of the action width and the percept width.
func (a *Agent) MaximumBitsNeeded() int {
	action := a.env.ActionBits()
	percept := a.perceptBits()
	if action > percept {
		return action
	}
	return percept
}

func (a *Agent) perceptBits() int {
	return a.env.RewardBits() + a.env.ObservationBits()
}

// GenerateRandomAction returns an action chosen uniformly at random from
// the environment's currently valid actions.
func (a *Agent) GenerateRandomAction() int {
	valid := a.env.ValidActions()
	return valid[a.rng.Intn(len(valid))]
}

func (a *Agent) encodeAction(action int) ([]int, error) {
	return bitcodec.Encode(action, a.env.ActionBits())
}

func (a *Agent) encodePercept(observation, reward int) ([]int, error) {
	rewardBits, err := bitcodec.Encode(reward, a.env.RewardBits())
	if err != nil {
		return nil, errors.Wrap(err, "encoding reward")
	}
	observationBits, err := bitcodec.Encode(observation, a.env.ObservationBits())
	if err != nil {
		return nil, errors.Wrap(err, "encoding observation")
	}
	return append(rewardBits, observationBits...), nil
}

func (a *Agent) decodePercept(bits []int) (observation, reward int, err error) {
	rewardBits := a.env.RewardBits()
	observationBits := a.env.ObservationBits()
	if len(bits) < rewardBits+observationBits {
		return 0, 0, errors.Errorf("percept symbol list of length %d too short for %d reward + %d observation bits", len(bits), rewardBits, observationBits)
	}

	reward, err = bitcodec.Decode(bits[:rewardBits], rewardBits)
	if err != nil {
		return 0, 0, errors.Wrap(err, "decoding reward")
	}
	observation, err = bitcodec.Decode(bits[rewardBits:rewardBits+observationBits], observationBits)
	if err != nil {
		return 0, 0, errors.Wrap(err, "decoding observation")
	}
	return observation, reward, nil
}

// ModelUpdatePercept folds a freshly observed (observation, reward) pair
// into the agent's model. It requires the last update to have been an
// action. Past the configured learning period, percepts are conditioned
// on but no longer learned from.
func (a *Agent) ModelUpdatePercept(observation, reward int) error {
	if a.lastUpdate != actionUpdate {
		return errors.New("model update percept: last update was not an action")
	}

	bits, err := a.encodePercept(observation, reward)
	if err != nil {
		return err
	}

	if a.learningPeriod > 0 && a.age > a.learningPeriod {
		a.ctw.UpdateHistory(bits)
	} else {
		a.ctw.Update(bits)
	}

	a.totalReward += float64(reward)
	a.lastUpdate = perceptUpdate
	return nil
}

// ModelUpdateAction conditions the model on a chosen action, without
// learning from it (actions are never predicted, only conditioned on). It
// requires the last update to have been a percept, and increments age.
func (a *Agent) ModelUpdateAction(action int) error {
	if !a.env.IsValidAction(action) {
		return errors.Errorf("invalid action %d", action)
	}
	if a.lastUpdate != perceptUpdate {
		return errors.New("model update action: last update was not a percept")
	}

	bits, err := a.encodeAction(action)
	if err != nil {
		return err
	}
	a.ctw.UpdateHistory(bits)

	a.age++
	a.lastUpdate = actionUpdate
	return nil
}

// PredictedActionProbability returns the probability the model assigns to
// action, under its own history statistics. Requires the last update to
// have been a percept.
func (a *Agent) PredictedActionProbability(action int) (float64, error) {
	if !a.env.IsValidAction(action) {
		return 0, errors.Errorf("invalid action %d", action)
	}
	if a.lastUpdate != perceptUpdate {
		return 0, errors.New("predicted action probability: last update was not a percept")
	}

	bits, err := a.encodeAction(action)
	if err != nil {
		return 0, err
	}
	return a.ctw.Predict(bits), nil
}

// PerceptProbability returns the probability the model assigns to the
// percept (observation, reward). Requires the last update to have been an
// action.
func (a *Agent) PerceptProbability(observation, reward int) (float64, error) {
	if a.lastUpdate != actionUpdate {
		return 0, errors.New("percept probability: last update was not an action")
	}

	bits, err := a.encodePercept(observation, reward)
	if err != nil {
		return 0, err
	}
	return a.ctw.Predict(bits), nil
}

// GenerateAction samples action bits from the model without updating it,
// and decodes them into an action. Requires the last update to have been
// a percept.
func (a *Agent) GenerateAction() (int, error) {
	if a.lastUpdate != perceptUpdate {
		return 0, errors.New("generate action: last update was not a percept")
	}

	bits := a.ctw.GenerateRandomSymbols(a.env.ActionBits())
	return bitcodec.Decode(bits, a.env.ActionBits())
}

// GeneratePerceptAndUpdate samples percept bits from the model, updating
// (learning from) the tree with them, and decodes them into an
// (observation, reward) pair. It satisfies search.Model.
func (a *Agent) GeneratePerceptAndUpdate() (observation, reward int, err error) {
	bits := a.ctw.GenerateRandomSymbolsAndUpdate(a.perceptBits())
	observation, reward, err = a.decodePercept(bits)
	if err != nil {
		return 0, 0, err
	}

	a.totalReward += float64(reward)
	a.lastUpdate = perceptUpdate
	return observation, reward, nil
}

// Playout simulates horizon action+percept cycles with actions chosen
// uniformly at random, returning the accumulated reward. search.Node.Sample
// uses it to value a freshly expanded decision node.
func (a *Agent) Playout(horizon int) (float64, error) {
	total := 0.0
	for i := 0; i < horizon; i++ {
		action := a.GenerateRandomAction()
		if err := a.ModelUpdateAction(action); err != nil {
			return 0, err
		}
		_, reward, err := a.GeneratePerceptAndUpdate()
		if err != nil {
			return 0, err
		}
		total += float64(reward)
	}
	return total, nil
}

// Search runs mcSimulations rounds of Monte-Carlo tree search rooted at a
// fresh decision node, each round sampling a simulated trajectory against
// the agent's own model and then restoring the agent to its pre-search
// state. It returns the action whose child accumulated the greatest mean
// reward, or a uniformly random valid action if no simulation ever
// explored one.
func (a *Agent) Search() (int, error) {
	save := a.Save()
	root := search.NewNode(search.Decision, a.explorationConstant, a.unexploredBias)

	for i := 0; i < a.mcSimulations; i++ {
		if _, err := root.Sample(a, a.horizon); err != nil {
			return 0, err
		}
		if err := a.Restore(save); err != nil {
			return 0, err
		}
	}

	if action, ok := root.BestAction(a.env.ValidActions(), a.rng); ok {
		return action, nil
	}
	return a.GenerateRandomAction(), nil
}
