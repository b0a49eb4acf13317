package explain

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
)

// buildTemplate renders the tier-3 explanation from structured candidate
// attributes only. Deterministic, no external dependency; this guarantees a
// usable response when every generative tier is down.
func buildTemplate(in Input) recommend.Explanation {
	item := in.Candidate.Item()
	accords := item.TopAccords(3)
	accordText := strings.Join(accords, ", ")
	if accordText == "" {
		accordText = "a balanced blend"
	}

	var summary string
	var terms map[string]string

	switch in.Level.Level() {
	case experience.Beginner:
		term, definition := termFor(item.ID)
		summary = fmt.Sprintf(
			"%s by %s leads with %s, matching the scents you enjoy. An easy everyday wear. Worth knowing: %s means %s.",
			item.Name, item.Brand, accordText, term, definition,
		)
		terms = map[string]string{term: definition}
	case experience.Advanced:
		summary = fmt.Sprintf(
			"%s by %s centers on %s, aligned with your stated preference profile. Accord structure and rating history (%.1f from %d reviews) suggest a dependable signature or rotation piece.",
			item.Name, item.Brand, accordText, item.RatingValue, item.RatingCount,
		)
	default:
		summary = fmt.Sprintf(
			"%s by %s features %s accords that line up with your preferences. A solid pick with a %.1f average rating.",
			item.Name, item.Brand, accordText, item.RatingValue,
		)
	}

	summary = in.Budgets.Truncate(summary, in.Level.Level())

	return recommend.NewExplanation(summary, "", terms, recommend.TierTemplate)
}
