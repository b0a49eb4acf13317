package recommend

import (
	"time"

	"github.com/kailas-cloud/scentdex/internal/domain/experience"
)

// Recommendation is one ranked candidate with its explanation.
type Recommendation struct {
	Candidate   ScoredCandidate
	Explanation Explanation
}

// CacheInfo records whether the result came from cache and when it expires.
type CacheInfo struct {
	Hit       bool
	ExpiresAt time.Time // zero when the result was not cached
}

// Result is the orchestrator's response: the ranked recommendations, the
// strategy that produced them, and degradation metadata.
type Result struct {
	Recommendations []Recommendation
	ExperienceLevel experience.Classification
	StrategyUsed    Strategy
	// Degraded is true when any explanation came from a tier below the
	// topmost one attempted for the strategy.
	Degraded bool
	Cache    CacheInfo
}
