package explain

import (
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain/experience"
)

// Budgets are the per-level word budgets. These are contracts, not
// suggestions: a summary exceeding its budget by more than Tolerance is
// truncated before being returned.
type Budgets struct {
	BeginnerMax     int     `yaml:"beginner_max"`
	IntermediateMax int     `yaml:"intermediate_max"`
	AdvancedMax     int     `yaml:"advanced_max"`
	Tolerance       float64 `yaml:"tolerance"`
}

// DefaultBudgets returns the standard word budgets: beginner 40,
// intermediate 60, advanced 100 words, with 20% tolerance.
func DefaultBudgets() Budgets {
	return Budgets{BeginnerMax: 40, IntermediateMax: 60, AdvancedMax: 100, Tolerance: 1.2}
}

// MaxWords returns the budget for a level.
func (b Budgets) MaxWords(level experience.Level) int {
	switch level {
	case experience.Beginner:
		return b.BeginnerMax
	case experience.Advanced:
		return b.AdvancedMax
	default:
		return b.IntermediateMax
	}
}

// Enforce truncates text to the level's budget when it exceeds the budget by
// more than the tolerance. Text within tolerance passes through unchanged.
func (b Budgets) Enforce(text string, level experience.Level) string {
	maxWords := b.MaxWords(level)
	tolerance := b.Tolerance
	if tolerance < 1 {
		tolerance = 1
	}

	words := strings.Fields(text)
	if float64(len(words)) <= float64(maxWords)*tolerance {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}

// Truncate hard-caps text at the level's budget with no tolerance. The
// template tier uses this: deterministic output has no excuse to ride the
// tolerance margin.
func (b Budgets) Truncate(text string, level experience.Level) string {
	maxWords := b.MaxWords(level)
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}
