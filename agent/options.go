package agent

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Options configures an Agent. CTDepth, Horizon, and MCSimulations are
// mandatory; the rest have spec-mandated defaults.
type Options struct {
	CTDepth             int     `json:"ct-depth"`
	Horizon             int     `json:"agent-horizon"`
	MCSimulations       int     `json:"mc-simulations"`
	LearningPeriod      int     `json:"learning-period"`
	ExplorationConstant float64 `json:"mc-exploration-constant"`
	UnexploredBias      float64 `json:"mc-unexplored-bias"`

	// haveCTDepth, haveHorizon, and haveMCSimulations track whether the
	// corresponding mandatory field was actually present in the decoded
	// JSON, so ParseOptions can distinguish "explicitly zero" from
	// "absent" the way the spec's configuration surface requires.
	haveCTDepth       bool
	haveHorizon       bool
	haveMCSimulations bool
}

const (
	defaultExplorationConstant = 2.0
	defaultUnexploredBias      = 1e9
)

// ParseOptions decodes a JSON options blob (the format a driver's
// -config flag or config file supplies) into an Options, applying
// defaults for the optional fields and failing if a mandatory field is
// absent.
func ParseOptions(data []byte) (Options, error) {
	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return Options{}, errors.Wrap(err, "decoding agent options")
	}

	opts := Options{
		ExplorationConstant: defaultExplorationConstant,
		UnexploredBias:      defaultUnexploredBias,
	}

	if v, ok := raw["ct-depth"]; ok {
		n, err := v.Int64()
		if err != nil {
			return Options{}, errors.Wrap(err, "ct-depth")
		}
		opts.CTDepth = int(n)
		opts.haveCTDepth = true
	}
	if v, ok := raw["agent-horizon"]; ok {
		n, err := v.Int64()
		if err != nil {
			return Options{}, errors.Wrap(err, "agent-horizon")
		}
		opts.Horizon = int(n)
		opts.haveHorizon = true
	}
	if v, ok := raw["mc-simulations"]; ok {
		n, err := v.Int64()
		if err != nil {
			return Options{}, errors.Wrap(err, "mc-simulations")
		}
		opts.MCSimulations = int(n)
		opts.haveMCSimulations = true
	}
	if v, ok := raw["learning-period"]; ok {
		n, err := v.Int64()
		if err != nil {
			return Options{}, errors.Wrap(err, "learning-period")
		}
		opts.LearningPeriod = int(n)
	}
	if v, ok := raw["mc-exploration-constant"]; ok {
		f, err := v.Float64()
		if err != nil {
			return Options{}, errors.Wrap(err, "mc-exploration-constant")
		}
		opts.ExplorationConstant = f
	}
	if v, ok := raw["mc-unexplored-bias"]; ok {
		f, err := v.Float64()
		if err != nil {
			return Options{}, errors.Wrap(err, "mc-unexplored-bias")
		}
		opts.UnexploredBias = f
	}

	return opts, opts.Validate()
}

// Validate checks that every mandatory option is present and that all
// options satisfy their stated ranges, returning the first violation
// found.
func (o Options) Validate() error {
	if !o.haveCTDepth {
		return errors.New("missing required option ct-depth")
	}
	if !o.haveHorizon {
		return errors.New("missing required option agent-horizon")
	}
	if !o.haveMCSimulations {
		return errors.New("missing required option mc-simulations")
	}
	if o.CTDepth < 0 {
		return errors.Errorf("ct-depth %d must be nonnegative", o.CTDepth)
	}
	if o.Horizon < 1 {
		return errors.Errorf("agent-horizon %d must be at least 1", o.Horizon)
	}
	if o.MCSimulations < 1 {
		return errors.Errorf("mc-simulations %d must be at least 1", o.MCSimulations)
	}
	if o.LearningPeriod < 0 {
		return errors.Errorf("learning-period %d must be nonnegative", o.LearningPeriod)
	}
	return nil
}
