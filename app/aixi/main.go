// Command aixi runs a small MC-AIXI-CTW agent against a biased coin-flip
// environment and prints a summary every tenth cycle and on the last one.
// It is a runnable example
// wiring package agent end to end, not the full driver (CSV logging,
// profiling, and an INI config file are all out of scope here).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sgkasselau/pyaixi/agent"
	"github.com/sgkasselau/pyaixi/environment"
)

var (
	flagConfig = flag.String("c", `{
		"ct-depth": 24,
		"agent-horizon": 5,
		"mc-simulations": 300,
		"mc-exploration-constant": 2.0,
		"mc-unexplored-bias": 1e9
	}`, "agent options, as a JSON object")
	flagCycles = flag.Int("cycles", 200, "number of action+percept cycles to run")
	flagP      = flag.Float64("heads-probability", 0.7, "coin flip heads probability")
	flagSeed   = flag.Int64("seed", 1, "random seed")
)

func parseOptions() (agent.Options, error) {
	data := []byte(*flagConfig)
	opts, err := agent.ParseOptions(data)
	if err != nil {
		return agent.Options{}, errors.Wrap(err, "")
	}
	optsB, err := json.Marshal(opts)
	if err != nil {
		return agent.Options{}, errors.Wrap(err, "")
	}
	log.Printf("config: %s", optsB)
	return opts, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
)

func summaryLine(cycle int, a *agent.Agent) string {
	p, err := a.PredictedActionProbability(environment.CoinHeads)
	probField := "n/a"
	if err == nil {
		probField = fmt.Sprintf("%.3f", p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(fmt.Sprintf("cycle %4d  ", cycle)),
		labelStyle.Render("avg reward ")+valueStyle.Render(fmt.Sprintf("%.3f", a.AverageReward())),
		labelStyle.Render("  P(heads) ")+valueStyle.Render(probField),
		labelStyle.Render("  model size ")+valueStyle.Render(fmt.Sprintf("%d", a.ModelSize())),
	)
}

func run(opts agent.Options, cycles int, headsProbability float64, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	env, err := environment.NewCoinFlip(headsProbability, rng)
	if err != nil {
		return errors.Wrap(err, "")
	}

	a, err := agent.New(env, opts, rng)
	if err != nil {
		return errors.Wrap(err, "")
	}

	fmt.Println(headerStyle.Render("MC-AIXI-CTW vs. biased coin flip"))

	for cycle := 0; cycle < cycles && !env.IsFinished(); cycle++ {
		if err := a.ModelUpdatePercept(env.Observation(), env.Reward()); err != nil {
			return errors.Wrap(err, "model update percept")
		}

		// Printed after the percept update, where action probabilities
		// are defined.
		if cycle%10 == 0 || cycle == cycles-1 {
			fmt.Println(summaryLine(cycle, a))
		}

		action, err := a.Search()
		if err != nil {
			return errors.Wrap(err, "search")
		}

		if err := env.PerformAction(action); err != nil {
			return errors.Wrap(err, "perform action")
		}
		if err := a.ModelUpdateAction(action); err != nil {
			return errors.Wrap(err, "model update action")
		}
	}

	return nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	opts, err := parseOptions()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := run(opts, *flagCycles, *flagP, *flagSeed); err != nil {
		log.Fatalf("%+v", err)
	}
}
