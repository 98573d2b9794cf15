package search

import (
	"math/rand"
	"testing"
)

// fakeModel is a minimal Model whose generative percept is a fixed coin
// flip biased toward observation 1, and whose reward simply matches
// whether the last chosen action predicted the coin correctly. It exists
// purely to exercise Node.Sample/SelectAction/BestAction in isolation from
// the ctw and agent packages.
type fakeModel struct {
	rng         *rand.Rand
	horizon     int
	maxReward   int
	validAction []int

	lastAction int
}

func newFakeModel(rng *rand.Rand) *fakeModel {
	return &fakeModel{rng: rng, horizon: 3, maxReward: 1, validAction: []int{0, 1}}
}

func (m *fakeModel) ValidActions() []int  { return m.validAction }
func (m *fakeModel) Horizon() int         { return m.horizon }
func (m *fakeModel) MaximumReward() int   { return m.maxReward }
func (m *fakeModel) Rand() *rand.Rand     { return m.rng }

func (m *fakeModel) ModelUpdateAction(action int) error {
	m.lastAction = action
	return nil
}

func (m *fakeModel) GeneratePerceptAndUpdate() (int, int, error) {
	observation := 1
	if m.rng.Float64() < 0.3 {
		observation = 0
	}
	reward := 0
	if m.lastAction == observation {
		reward = 1
	}
	return observation, reward, nil
}

func (m *fakeModel) Playout(horizon int) (float64, error) {
	total := 0.0
	for i := 0; i < horizon; i++ {
		action := m.validAction[m.rng.Intn(len(m.validAction))]
		if err := m.ModelUpdateAction(action); err != nil {
			return 0, err
		}
		_, reward, err := m.GeneratePerceptAndUpdate()
		if err != nil {
			return 0, err
		}
		total += float64(reward)
	}
	return total, nil
}

func TestSampleZeroHorizonReturnsZero(t *testing.T) {
	t.Parallel()
	n := NewNode(Decision, DefaultExplorationConstant, DefaultUnexploredBias)
	m := newFakeModel(rand.New(rand.NewSource(1)))

	reward, err := n.Sample(m, 0)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if reward != 0 {
		t.Errorf("Sample with horizon 0 = %v, want 0", reward)
	}
}

func TestSampleUnvisitedDecisionUsesPlayout(t *testing.T) {
	t.Parallel()
	n := NewNode(Decision, DefaultExplorationConstant, DefaultUnexploredBias)
	m := newFakeModel(rand.New(rand.NewSource(2)))

	reward, err := n.Sample(m, 2)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if reward < 0 {
		t.Errorf("Sample reward = %v, want nonnegative", reward)
	}
	if n.Visits != 1 {
		t.Errorf("Visits after one Sample = %d, want 1", n.Visits)
	}
}

func TestSampleGrowsTreeAcrossSimulations(t *testing.T) {
	t.Parallel()
	root := NewNode(Decision, DefaultExplorationConstant, DefaultUnexploredBias)
	m := newFakeModel(rand.New(rand.NewSource(3)))

	for i := 0; i < 50; i++ {
		if _, err := root.Sample(m, 3); err != nil {
			t.Fatalf("Sample %d: %v", i, err)
		}
	}

	if root.Visits != 50 {
		t.Errorf("root.Visits = %d, want 50", root.Visits)
	}
	if len(root.Children) == 0 {
		t.Error("expected root to have explored at least one action")
	}
}

func TestSelectActionPrefersUnexploredOverExplored(t *testing.T) {
	t.Parallel()
	n := NewNode(Decision, DefaultExplorationConstant, DefaultUnexploredBias)
	n.Visits = 5
	n.Children[0] = &Node{Kind: Chance, Children: map[int]*Node{}, Visits: 5, Mean: 100}

	m := newFakeModel(rand.New(rand.NewSource(4)))
	action := n.SelectAction(m)
	if action != 1 {
		t.Errorf("SelectAction = %d, want 1 (the never-visited action)", action)
	}
}

func TestBestActionSkipsUnsampledActions(t *testing.T) {
	t.Parallel()
	n := NewNode(Decision, DefaultExplorationConstant, DefaultUnexploredBias)
	n.Children[0] = &Node{Mean: 0.2}

	action, ok := n.BestAction([]int{0, 1}, rand.New(rand.NewSource(5)))
	if !ok {
		t.Fatal("BestAction: expected ok = true")
	}
	if action != 0 {
		t.Errorf("BestAction = %d, want 0 (the only sampled action)", action)
	}
}

func TestBestActionReportsNoneSampled(t *testing.T) {
	t.Parallel()
	n := NewNode(Decision, DefaultExplorationConstant, DefaultUnexploredBias)
	_, ok := n.BestAction([]int{0, 1}, rand.New(rand.NewSource(6)))
	if ok {
		t.Error("BestAction on an unsampled root: expected ok = false")
	}
}
