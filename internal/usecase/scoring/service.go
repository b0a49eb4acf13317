// Package scoring fuses similarity with rule-based signals into one ranked score.
package scoring

import (
	"sort"

	"github.com/kailas-cloud/scentdex/internal/domain/profile"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
	"github.com/kailas-cloud/scentdex/internal/usecase/similarity"
)

// topFamilyCount is how many profile families feed the accord overlap signal.
const topFamilyCount = 5

// Weights are the fusion weights, normalized so callers can reason about the
// relative share of each signal. Injected rather than hard-coded so scoring
// behavior is reproducible under alternate configurations.
type Weights struct {
	Similarity    float64 `yaml:"similarity"`
	AccordOverlap float64 `yaml:"accord_overlap"`
	BrandAffinity float64 `yaml:"brand_affinity"`
	Availability  float64 `yaml:"availability"`
}

// DefaultWeights returns the standard fusion weights.
func DefaultWeights() Weights {
	return Weights{
		Similarity:    0.6,
		AccordOverlap: 0.2,
		BrandAffinity: 0.1,
		Availability:  0.1,
	}
}

// Service is the hybrid scorer. It is a pure function of its inputs:
// identical candidates, profile, and weights always yield identical scores
// and order, which cache correctness depends on.
type Service struct {
	weights Weights
}

// New creates a hybrid scorer with the given fusion weights.
func New(weights Weights) *Service {
	return &Service{weights: weights}
}

// Score fuses each candidate's similarity with accord overlap, brand
// affinity, and availability, then sorts by fused score descending. Ties
// break by raw similarity descending, then item id ascending. Unavailable
// items are down-weighted, not excluded; exclusion is a caller-level filter.
func (s *Service) Score(
	matches []similarity.Match, p *profile.Profile, preferredBrands []string,
) []recommend.ScoredCandidate {
	topFamilies := p.TopFamilies(topFamilyCount)
	brands := make(map[string]struct{}, len(preferredBrands))
	for _, b := range preferredBrands {
		brands[b] = struct{}{}
	}

	candidates := make([]recommend.ScoredCandidate, 0, len(matches))
	for _, m := range matches {
		sub := recommend.SubScores{
			AccordOverlap:     jaccard(m.Item.Accords, topFamilies),
			BrandAffinity:     brandAffinity(m.Item.Brand, brands),
			AvailabilityBonus: availabilityBonus(m.Item.SampleAvailable),
		}
		fused := s.weights.Similarity*m.Similarity +
			s.weights.AccordOverlap*sub.AccordOverlap +
			s.weights.BrandAffinity*sub.BrandAffinity +
			s.weights.Availability*sub.AvailabilityBonus

		candidates = append(candidates, recommend.NewScoredCandidate(m.Item, m.Similarity, sub, fused))
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Fused() != candidates[j].Fused() {
			return candidates[i].Fused() > candidates[j].Fused()
		}
		if candidates[i].Similarity() != candidates[j].Similarity() {
			return candidates[i].Similarity() > candidates[j].Similarity()
		}
		return candidates[i].Item().ID < candidates[j].Item().ID
	})

	for i := range candidates {
		candidates[i] = candidates[i].WithRank(i + 1)
	}
	return candidates
}

// jaccard computes Jaccard similarity between the candidate's accords and
// the profile's top-weighted families.
func jaccard(accords, families []string) float64 {
	if len(accords) == 0 || len(families) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(accords))
	for _, a := range accords {
		set[a] = struct{}{}
	}

	intersection := 0
	for _, f := range families {
		if _, ok := set[f]; ok {
			intersection++
		}
	}

	union := len(set) + len(families) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func brandAffinity(brand string, preferred map[string]struct{}) float64 {
	if _, ok := preferred[brand]; ok {
		return 1.0
	}
	return 0.0
}

func availabilityBonus(sampleAvailable bool) float64 {
	if sampleAvailable {
		return 1.0
	}
	return 0.0
}
