package explain

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain/experience"
)

// specializedPrompt builds the tier-1 prompt. Each level has its own
// instruction block; the beginner variant explicitly teaches one fragrance
// concept rather than stripping out technical vocabulary, and every level
// must name a concrete reason, a practical implication, and the basis of
// the comparison to the reference item.
func specializedPrompt(in Input, maxWords int) string {
	item := in.Candidate.Item()
	accords := strings.Join(item.TopAccords(3), ", ")
	prefs := strings.Join(in.Preferences, ", ")
	reference := referenceFor(item.Accords)

	var b strings.Builder
	fmt.Fprintf(&b, "Explain in at most %d words why %s by %s suits someone who prefers %s scents.\n",
		maxWords, item.Name, item.Brand, prefs)
	fmt.Fprintf(&b, "Its main accords are %s.\n", accords)
	fmt.Fprintf(&b, "Name the specific accords as the concrete reason, state one practical occasion or performance implication, ")
	fmt.Fprintf(&b, "and compare it to %s, saying explicitly what the comparison is based on.\n", reference)

	switch in.Level.Level() {
	case experience.Beginner:
		term, definition := termFor(item.ID)
		fmt.Fprintf(&b, "The reader is new to fragrance. Teach the term %q (%s) in passing. ", term, definition)
		b.WriteString("Do not oversimplify into content-free praise; keep the concrete detail.")
	case experience.Intermediate:
		b.WriteString("The reader knows the basics; use standard fragrance vocabulary without defining it.")
	case experience.Advanced:
		b.WriteString("The reader is a collector; discuss composition, performance, and how it sits within the brand's line.")
	}

	return b.String()
}

// adaptivePrompt builds the tier-2 prompt: a single level-aware template
// used when the specialized tier is unavailable.
func adaptivePrompt(in Input, maxWords int) string {
	item := in.Candidate.Item()
	accords := strings.Join(item.TopAccords(3), ", ")

	return fmt.Sprintf(
		"In at most %d words, for a %s-level fragrance reader, explain why %s by %s (accords: %s) fits preferences for %s. Mention a suitable occasion.",
		maxWords, in.Level.Level(), item.Name, item.Brand, accords,
		strings.Join(in.Preferences, ", "),
	)
}
