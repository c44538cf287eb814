package orchestration

import (
	"github.com/agbru/eulercalc/internal/euler"
)

// GetCalculatorsToRun resolves algo ("all" or a registered name) to
// calculators, in alphabetical order of their registry names.
func GetCalculatorsToRun(algo string, factory euler.CalculatorFactory) []euler.Calculator {
	if algo == "all" {
		keys := factory.List()
		calculators := make([]euler.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []euler.Calculator{calc}
	}
	return nil
}
