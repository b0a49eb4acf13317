package recommend

import "github.com/kailas-cloud/scentdex/internal/domain"

// SubScores are the per-signal components of a fused score, each in [0,1].
type SubScores struct {
	AccordOverlap     float64
	BrandAffinity     float64
	AvailabilityBonus float64
}

// ScoredCandidate pairs a catalog item with its raw similarity, per-signal
// sub-scores, fused score, and final rank. One instance per candidate per
// request, never shared across requests.
type ScoredCandidate struct {
	item       domain.FragranceItem
	similarity float64
	subScores  SubScores
	fused      float64
	rank       int
}

// NewScoredCandidate creates a scored candidate.
func NewScoredCandidate(
	item domain.FragranceItem, similarity float64, sub SubScores, fused float64,
) ScoredCandidate {
	return ScoredCandidate{item: item, similarity: similarity, subScores: sub, fused: fused}
}

// WithRank returns a copy carrying the final rank position.
func (c ScoredCandidate) WithRank(rank int) ScoredCandidate {
	c.rank = rank
	return c
}

// Item returns the underlying catalog item.
func (c *ScoredCandidate) Item() domain.FragranceItem { return c.item }

// Similarity returns the raw cosine similarity in [0,1].
func (c *ScoredCandidate) Similarity() float64 { return c.similarity }

// SubScores returns the per-signal score components.
func (c *ScoredCandidate) SubScores() SubScores { return c.subScores }

// Fused returns the final weighted score.
func (c *ScoredCandidate) Fused() float64 { return c.fused }

// Rank returns the 1-based rank position.
func (c *ScoredCandidate) Rank() int { return c.rank }
