package recommend

import (
	"context"
	"time"

	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/profile"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	domrec "github.com/kailas-cloud/scentdex/internal/domain/recommend"
	"github.com/kailas-cloud/scentdex/internal/usecase/explain"
	"github.com/kailas-cloud/scentdex/internal/usecase/similarity"
)

// Analyzer derives a personality profile from quiz answers.
type Analyzer interface {
	Analyze(ctx context.Context, responses *quiz.ResponseSet) (profile.Profile, error)
}

// Searcher retrieves ranked candidate items from the catalog.
type Searcher interface {
	TopK(ctx context.Context, query []float32, k int, excludeIDs map[string]struct{}) ([]similarity.Match, error)
	ByPopularity(ctx context.Context, k int, excludeIDs map[string]struct{}) ([]similarity.Match, error)
}

// Scorer fuses similarity with secondary signals into ranked candidates.
type Scorer interface {
	Score(matches []similarity.Match, p *profile.Profile, preferredBrands []string) []domrec.ScoredCandidate
}

// Classifier infers the requester's expertise level.
type Classifier interface {
	Classify(ctx context.Context, responses *quiz.ResponseSet, req *domrec.Request) experience.Classification
}

// Explainer produces explanations through the tier fallback chain.
type Explainer interface {
	Explain(ctx context.Context, in explain.Input) (domrec.Explanation, []domrec.TierOutcome)
	Template(in explain.Input) domrec.Explanation
}

// Cache stores computed recommendation sets by request key.
type Cache interface {
	Key(req *domrec.Request) string
	Get(ctx context.Context, key string) (domrec.Result, bool)
	Put(ctx context.Context, key string, result *domrec.Result, ttl time.Duration) error
}
