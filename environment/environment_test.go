package environment

import (
	"math/rand"
	"testing"
)

func TestCoinFlipRewardsMatchPrediction(t *testing.T) {
	t.Parallel()
	c, err := NewCoinFlip(0.7, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewCoinFlip: %v", err)
	}

	for i := 0; i < 50; i++ {
		prediction := c.Observation()
		if err := c.PerformAction(prediction); err != nil {
			t.Fatalf("PerformAction: %v", err)
		}
		wantReward := 0
		if prediction == c.Observation() {
			wantReward = 1
		}
		if r := c.Reward(); r != wantReward {
			t.Errorf("Reward() = %d, want %d for prediction %d, observation %d", r, wantReward, prediction, c.Observation())
		}
	}
}

func TestCoinFlipRejectsBadProbability(t *testing.T) {
	t.Parallel()
	if _, err := NewCoinFlip(1.5, rand.New(rand.NewSource(1))); err == nil {
		t.Error("NewCoinFlip(1.5, ...): expected error")
	}
	if _, err := NewCoinFlip(-0.1, rand.New(rand.NewSource(1))); err == nil {
		t.Error("NewCoinFlip(-0.1, ...): expected error")
	}
}

func TestCoinFlipRejectsInvalidAction(t *testing.T) {
	t.Parallel()
	c, err := NewCoinFlip(0.5, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewCoinFlip: %v", err)
	}
	if err := c.PerformAction(7); err == nil {
		t.Error("PerformAction(7): expected error")
	}
}

func TestRockPaperScissorsOpponentRepeatsWinningRock(t *testing.T) {
	t.Parallel()
	rps := NewRockPaperScissors(rand.New(rand.NewSource(3)))

	// Force a state where the opponent just won with rock: keep playing
	// scissors until the opponent plays rock and wins.
	for i := 0; i < 200; i++ {
		if rps.Observation() == RPSRock && rps.Reward() == RPSLose {
			break
		}
		if err := rps.PerformAction(RPSScissors); err != nil {
			t.Fatalf("PerformAction: %v", err)
		}
	}

	if rps.Observation() != RPSRock || rps.Reward() != RPSLose {
		t.Skip("did not reach the opponent-won-with-rock state within budget; bias not exercised")
	}

	if err := rps.PerformAction(RPSPaper); err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if rps.Observation() != RPSRock {
		t.Errorf("opponent observation after winning with rock = %d, want RPSRock", rps.Observation())
	}
}

func TestRockPaperScissorsRewardsAreConsistent(t *testing.T) {
	t.Parallel()
	rps := NewRockPaperScissors(rand.New(rand.NewSource(11)))
	for i := 0; i < 500; i++ {
		action := i % 3
		if err := rps.PerformAction(action); err != nil {
			t.Fatalf("PerformAction: %v", err)
		}
		obs, reward := rps.Observation(), rps.Reward()
		switch {
		case action == obs && reward != RPSDraw:
			t.Fatalf("action %d == observation %d but reward = %d, want RPSDraw", action, obs, reward)
		case action != obs && reward == RPSDraw:
			t.Fatalf("action %d != observation %d but reward = RPSDraw", action, obs)
		}
	}
}

func TestCheatingOneBitAlwaysObservesOne(t *testing.T) {
	t.Parallel()
	e := NewCheatingOneBit()
	for i := 0; i < 5; i++ {
		if err := e.PerformAction(0); err != nil {
			t.Fatalf("PerformAction: %v", err)
		}
		if e.Observation() != 1 {
			t.Errorf("Observation() = %d, want 1", e.Observation())
		}
	}
	if err := e.PerformAction(1); err == nil {
		t.Error("PerformAction(1): expected error, only action 0 is valid")
	}
}
