// Package search implements the Monte-Carlo planner (predictive UCT, or
// ρUCT) that samples trajectories against an agent's learned generative
// model to choose the next action.
package search

import (
	"math"
	"math/rand"
)

// Kind distinguishes a decision node, whose children are keyed by action,
// from a chance node, whose children are keyed by observation.
type Kind int

const (
	// Decision nodes branch on the action the agent chooses.
	Decision Kind = iota
	// Chance nodes branch on the observation the environment returns.
	Chance
)

// Model is the generative, sample-able view of an agent that a search
// Node needs in order to simulate trajectories. agent.Agent implements it.
type Model interface {
	ValidActions() []int
	Horizon() int
	MaximumReward() int
	ModelUpdateAction(action int) error
	GeneratePerceptAndUpdate() (observation, reward int, err error)
	Playout(horizon int) (float64, error)
	Rand() *rand.Rand
}

// DefaultExplorationConstant and DefaultUnexploredBias are the default UCB
// tuning knobs;
// an agent with different configured values passes them explicitly to
// SelectAction via the node's own fields.
const (
	DefaultExplorationConstant = 2.0
	DefaultUnexploredBias      = 1e9
)

// Node is a node in the Monte-Carlo search tree. Nodes are created fresh
// for every call to an agent's Search and discarded afterward; the tree
// never outlives a single search.
type Node struct {
	Kind     Kind
	Children map[int]*Node
	Visits   int
	Mean     float64

	ExplorationConstant float64
	UnexploredBias      float64
}

// NewNode constructs an empty node of the given kind, with the given UCB
// tuning constants.
func NewNode(kind Kind, explorationConstant, unexploredBias float64) *Node {
	return &Node{
		Kind:                kind,
		Children:            make(map[int]*Node),
		ExplorationConstant: explorationConstant,
		UnexploredBias:      unexploredBias,
	}
}

// Sample returns the accumulated reward from one simulated trajectory
// rooted at this node, mutating model's generative state (and this node's
// subtree) along the way. Callers are responsible for restoring model to
// a save-point before and after a round of sampling.
func (n *Node) Sample(model Model, horizon int) (float64, error) {
	if horizon == 0 {
		return 0, nil
	}

	var reward float64
	var err error

	switch {
	case n.Kind == Chance:
		observation, r, genErr := model.GeneratePerceptAndUpdate()
		if genErr != nil {
			return 0, genErr
		}

		child, ok := n.Children[observation]
		if !ok {
			child = NewNode(Decision, n.ExplorationConstant, n.UnexploredBias)
			n.Children[observation] = child
		}

		childReward, sampleErr := child.Sample(model, horizon-1)
		if sampleErr != nil {
			return 0, sampleErr
		}
		reward = float64(r) + childReward

	case n.Visits == 0:
		reward, err = model.Playout(horizon)
		if err != nil {
			return 0, err
		}

	default:
		action := n.SelectAction(model)
		if updateErr := model.ModelUpdateAction(action); updateErr != nil {
			return 0, updateErr
		}

		child, ok := n.Children[action]
		if !ok {
			child = NewNode(Chance, n.ExplorationConstant, n.UnexploredBias)
			n.Children[action] = child
		}

		// Horizon is not decremented across the action edge: it counts
		// whole action+percept cycles, and only the chance edge
		// completes a cycle.
		childReward, sampleErr := child.Sample(model, horizon)
		if sampleErr != nil {
			return 0, sampleErr
		}
		reward = childReward
	}

	visits := float64(n.Visits)
	n.Mean = (reward + visits*n.Mean) / (visits + 1)
	n.Visits++

	return reward, nil
}

// SelectAction chooses the next action to explore from a visited decision
// node, by the UCB1 policy rescaled to the agent's reward magnitude. Ties
// (including every unexplored action, which all share the unexplored-bias
// priority) are broken by a small uniform jitter.
func (n *Node) SelectAction(model Model) int {
	exploreBias := float64(model.Horizon() * model.MaximumReward())
	explorationNumerator := n.ExplorationConstant * math.Log(float64(n.Visits))

	rng := model.Rand()

	bestAction := 0
	bestPriority := math.Inf(-1)
	haveBest := false

	for _, action := range model.ValidActions() {
		child, ok := n.Children[action]

		var priority float64
		if !ok || child.Visits == 0 {
			priority = n.UnexploredBias
		} else {
			priority = child.Mean + exploreBias*math.Sqrt(explorationNumerator/float64(child.Visits))
		}
		priority += rng.Float64() * 1e-3

		if !haveBest || priority > bestPriority {
			bestAction = action
			bestPriority = priority
			haveBest = true
		}
	}

	return bestAction
}

// BestAction picks the root-level action with the greatest mean reward
// among the given valid actions, skipping any the root never sampled a
// child for. Ties are broken by a uniform jitter an order of magnitude
// smaller than SelectAction's, since every candidate considered here has
// already been visited and only a finer tie-break is wanted. ok is
// false if none of the valid actions has a child, meaning no simulation
// ever took that branch.
func (n *Node) BestAction(validActions []int, rng *rand.Rand) (action int, ok bool) {
	bestPriority := math.Inf(-1)
	for _, a := range validActions {
		child, present := n.Children[a]
		if !present {
			continue
		}
		priority := child.Mean + rng.Float64()*1e-4
		if !ok || priority > bestPriority {
			action = a
			bestPriority = priority
			ok = true
		}
	}
	return action, ok
}
