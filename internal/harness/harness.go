package harness

import (
	"fmt"

	"github.com/roach88/grounddb/internal/domain"
	"github.com/roach88/grounddb/internal/engine"
	"github.com/roach88/grounddb/internal/store"
	"github.com/roach88/grounddb/internal/testutil"
)

// Result captures the outcome of every step of a scenario run.
type Result struct {
	ScenarioName string       `json:"scenario_name"`
	Steps        []StepResult `json:"steps"`
}

// StepResult is one executed query and its matches, in store order.
// Token is the correlation token the step's engine logs carry.
type StepResult struct {
	Domain  string          `json:"domain"`
	Token   string          `json:"token"`
	Count   int             `json:"count"`
	Matches []domain.Record `json:"matches"`
}

// Run loads the scenario's dataset, builds an engine with scripted
// randomness and scripted query tokens, and executes every step in
// order.
//
// Returns an error on dataset load failure, query failure, or the
// first expect_count mismatch.
func Run(scenario *Scenario) (*Result, error) {
	s, err := store.Load(scenario.DataDir())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	// One token per step, q-1 onward, so golden output and debug logs
	// line up without depending on UUID generation.
	tokens := make([]string, len(scenario.Steps))
	for i := range tokens {
		tokens[i] = fmt.Sprintf("q-%d", i+1)
	}

	eng := engine.New(s,
		engine.WithRand(testutil.NewSequenceRand(scenario.TaxiDraws...)),
		engine.WithTokenGenerator(engine.NewFixedGenerator(tokens...)),
	)

	result := &Result{ScenarioName: scenario.Name}
	for i, step := range scenario.Steps {
		d, err := domain.Parse(step.Domain)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", scenario.Name, i, err)
		}

		constraints := make([]domain.Constraint, 0, len(step.Constraints))
		for _, c := range step.Constraints {
			constraints = append(constraints, domain.Constraint{Slot: c.Slot, Value: c.Value})
		}

		var opts []engine.QueryOption
		if step.OpenFields != nil {
			opts = append(opts, engine.MatchOpenFields(*step.OpenFields))
		}

		matches, err := eng.Query(d, constraints, opts...)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: step %d (%s): %w", scenario.Name, i, d, err)
		}

		if step.ExpectCount != nil && len(matches) != *step.ExpectCount {
			return nil, fmt.Errorf("scenario %s: step %d (%s): expected %d matches, got %d",
				scenario.Name, i, d, *step.ExpectCount, len(matches))
		}

		result.Steps = append(result.Steps, StepResult{
			Domain:  d.String(),
			Token:   tokens[i],
			Count:   len(matches),
			Matches: matches,
		})
	}

	return result, nil
}
