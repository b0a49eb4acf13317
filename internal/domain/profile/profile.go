// Package profile holds the personality profile derived from quiz answers.
package profile

import "sort"

// Profile is a per-request personality snapshot: L2-normalized per-family
// affinity scores, a confidence scalar, and the dominant families in
// descending affinity order. Recomputed per request, never patched.
type Profile struct {
	scores           map[string]float64
	confidence       float64
	dominantFamilies []string
}

// New creates a profile from normalized family scores and a confidence in [0,1].
// Dominant families are derived here: non-zero families sorted by score
// descending, ties by name ascending for determinism.
func New(scores map[string]float64, confidence float64) Profile {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	dominant := make([]string, 0, len(scores))
	for family, score := range scores {
		if score > 0 {
			dominant = append(dominant, family)
		}
	}
	sort.Slice(dominant, func(i, j int) bool {
		si, sj := scores[dominant[i]], scores[dominant[j]]
		if si != sj {
			return si > sj
		}
		return dominant[i] < dominant[j]
	})

	return Profile{scores: scores, confidence: confidence, dominantFamilies: dominant}
}

// Score returns the affinity for a family (zero when absent).
func (p *Profile) Score(family string) float64 { return p.scores[family] }

// Scores returns the full per-family score map.
func (p *Profile) Scores() map[string]float64 { return p.scores }

// Confidence returns the profile confidence in [0,1].
func (p *Profile) Confidence() float64 { return p.confidence }

// DominantFamilies returns families with non-zero affinity, strongest first.
func (p *Profile) DominantFamilies() []string { return p.dominantFamilies }

// Vector projects the profile onto the given family order, producing the
// query vector for similarity search. Catalog embeddings are produced
// upstream in the same family-affinity space.
func (p *Profile) Vector(families []string) []float32 {
	vec := make([]float32, len(families))
	for i, f := range families {
		vec[i] = float32(p.scores[f])
	}
	return vec
}

// TopFamilies returns up to n dominant families.
func (p *Profile) TopFamilies(n int) []string {
	if n > len(p.dominantFamilies) {
		n = len(p.dominantFamilies)
	}
	return p.dominantFamilies[:n]
}
