package agent

// updateKind records which half of an action/percept cycle an agent last
// completed.
type updateKind int

const (
	actionUpdate updateKind = iota
	perceptUpdate
)

// SavePoint is an immutable record of an Agent's externally visible state,
// taken before a round of Monte-Carlo sampling so the sampling's effects
// on the CTW tree and agent counters can be undone afterward.
type SavePoint struct {
	age         int
	totalReward float64
	historyLen  int
	lastUpdate  updateKind
}

// Save captures the agent's current state.
func (a *Agent) Save() SavePoint {
	return SavePoint{
		age:         a.age,
		totalReward: a.totalReward,
		historyLen:  a.ctw.HistoryLen(),
		lastUpdate:  a.lastUpdate,
	}
}

// Restore undoes every tree-affecting operation performed since sp was
// taken, then overwrites age, total reward, and last-update-kind with the
// saved values. Percept frames (which were learned via ctw.Update) are
// undone through ctw.Revert; action frames (which were only appended via
// ctw.UpdateHistory) are undone through ctw.RevertHistory. This asymmetry
// mirrors the asymmetry of how each frame was recorded in the first
// place.
func (a *Agent) Restore(sp SavePoint) error {
	for a.ctw.HistoryLen() > sp.historyLen {
		if a.lastUpdate == perceptUpdate {
			a.ctw.Revert(a.perceptBits())
			a.lastUpdate = actionUpdate
		} else {
			if err := a.ctw.RevertHistory(a.env.ActionBits()); err != nil {
				return err
			}
			a.lastUpdate = perceptUpdate
		}
	}

	a.age = sp.age
	a.totalReward = sp.totalReward
	a.lastUpdate = sp.lastUpdate
	return nil
}
