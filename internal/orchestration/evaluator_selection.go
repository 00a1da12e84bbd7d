package orchestration

import (
	"github.com/mbenard/tricalc/internal/triangle"
)

// GetEvaluatorsToRun determines which evaluators should be executed for the
// given rule selection. The selection "all" expands to every registered
// rule in sorted key order for consistent, reproducible behavior.
//
// Parameters:
//   - rule: The rule key to run, or "all".
//   - factory: The evaluator factory to retrieve implementations from.
//
// Returns:
//   - []triangle.Evaluator: The evaluators to execute; nil when the rule
//     key is unknown.
func GetEvaluatorsToRun(rule string, factory triangle.EvaluatorFactory) []triangle.Evaluator {
	if rule == "all" {
		keys := factory.List() // List() returns sorted keys
		evaluators := make([]triangle.Evaluator, 0, len(keys))
		for _, k := range keys {
			if ev, err := factory.Get(k); err == nil {
				evaluators = append(evaluators, ev)
			}
		}
		return evaluators
	}
	if ev, err := factory.Get(rule); err == nil {
		return []triangle.Evaluator{ev}
	}
	return nil
}
