package recommend

import "strings"

// Tier identifies which stage of the generation fallback chain produced an
// explanation.
type Tier string

// Generation tiers, in fallback order.
const (
	// TierSpecialized is the level-specific generator (richest for beginners).
	TierSpecialized Tier = "specialized"
	// TierAdaptive is the generic level-aware generator.
	TierAdaptive Tier = "adaptive"
	// TierTemplate is the deterministic, non-generative template.
	TierTemplate Tier = "template"
)

// Explanation is the natural-language justification for one scored candidate,
// calibrated to one experience level.
type Explanation struct {
	summary          string
	expandedContent  string
	educationalTerms map[string]string
	tier             Tier
}

// NewExplanation creates an explanation.
func NewExplanation(summary, expanded string, terms map[string]string, tier Tier) Explanation {
	return Explanation{
		summary:          summary,
		expandedContent:  expanded,
		educationalTerms: terms,
		tier:             tier,
	}
}

// Summary returns the word-budget-bounded summary text.
func (e *Explanation) Summary() string { return e.summary }

// ExpandedContent returns the optional long-form content ("" when absent).
func (e *Explanation) ExpandedContent() string { return e.expandedContent }

// EducationalTerms returns term definitions taught by this explanation.
func (e *Explanation) EducationalTerms() map[string]string { return e.educationalTerms }

// Tier returns the generation tier that actually produced this explanation.
func (e *Explanation) Tier() Tier { return e.tier }

// WordCount counts whitespace-separated words in the summary.
func (e *Explanation) WordCount() int { return len(strings.Fields(e.summary)) }

// TierOutcome is the explicit result of one generation-tier attempt. The
// fallback chain threads these through the orchestrator instead of
// catch-and-log, so its behavior is directly observable in tests.
type TierOutcome struct {
	tier        Tier
	explanation Explanation
	err         error
}

// TierSuccess records a tier producing an explanation.
func TierSuccess(tier Tier, e Explanation) TierOutcome {
	return TierOutcome{tier: tier, explanation: e}
}

// TierFailure records a tier failing with a cause.
func TierFailure(tier Tier, err error) TierOutcome {
	return TierOutcome{tier: tier, err: err}
}

// OK reports whether the tier succeeded.
func (o *TierOutcome) OK() bool { return o.err == nil }

// Tier returns the tier this outcome belongs to.
func (o *TierOutcome) Tier() Tier { return o.tier }

// Explanation returns the produced explanation (zero value on failure).
func (o *TierOutcome) Explanation() Explanation { return o.explanation }

// Err returns the failure cause (nil on success).
func (o *TierOutcome) Err() error { return o.err }
