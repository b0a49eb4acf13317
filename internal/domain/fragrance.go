package domain

import "math"

// PriceTier buckets a fragrance by retail price range.
type PriceTier string

// Price tier constants, matching the catalog ingestion vocabulary.
const (
	TierBudget  PriceTier = "budget"
	TierMid     PriceTier = "mid"
	TierPremium PriceTier = "premium"
	TierLuxury  PriceTier = "luxury"
	TierNiche   PriceTier = "niche"
)

// FragranceItem is a catalog record as the engine sees it: immutable here,
// owned and mutated only by the ingestion pipeline.
type FragranceItem struct {
	ID              string
	Name            string
	Brand           string
	BrandTier       PriceTier
	Embedding       []float32
	Accords         []string
	SampleAvailable bool
	SamplePriceUSD  float64
	PriceTier       PriceTier
	RatingValue     float64
	RatingCount     int
}

// Popularity is the rating-weighted review volume prior used for tie-breaks
// and popularity-ordered candidate pulls: rating * ln(reviews + 1).
func (f *FragranceItem) Popularity() float64 {
	return f.RatingValue * math.Log(float64(f.RatingCount)+1)
}

// HasEmbedding reports whether the item carries a usable embedding vector.
func (f *FragranceItem) HasEmbedding() bool {
	return len(f.Embedding) > 0
}

// TopAccords returns up to n leading accords (catalog order is significance order).
func (f *FragranceItem) TopAccords(n int) []string {
	if n > len(f.Accords) {
		n = len(f.Accords)
	}
	return f.Accords[:n]
}
