package reccache

import (
	"time"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
)

// cachedEntry is the JSON blob layout for one cached recommendation set.
// Embeddings are not cached; a cached response never re-enters scoring.
type cachedEntry struct {
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	Strategy        string       `json:"strategy"`
	Degraded        bool         `json:"degraded"`
	Level           string       `json:"level"`
	LevelSource     string       `json:"level_source"`
	LevelConfidence float64      `json:"level_confidence"`
	Items           []cachedItem `json:"items"`
}

type cachedItem struct {
	FragranceID     string            `json:"fragrance_id"`
	Name            string            `json:"name"`
	Brand           string            `json:"brand"`
	Accords         []string          `json:"accords"`
	SampleAvailable bool              `json:"sample_available"`
	RatingValue     float64           `json:"rating_value"`
	RatingCount     int               `json:"rating_count"`
	Similarity      float64           `json:"similarity"`
	AccordOverlap   float64           `json:"accord_overlap"`
	BrandAffinity   float64           `json:"brand_affinity"`
	Availability    float64           `json:"availability"`
	Fused           float64           `json:"fused"`
	Rank            int               `json:"rank"`
	Summary         string            `json:"summary"`
	Expanded        string            `json:"expanded,omitempty"`
	Terms           map[string]string `json:"terms,omitempty"`
	Tier            string            `json:"tier"`
}

func toEntry(result *recommend.Result, createdAt, expiresAt time.Time) cachedEntry {
	level := result.ExperienceLevel
	items := make([]cachedItem, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		c := rec.Candidate
		item := c.Item()
		sub := c.SubScores()
		e := rec.Explanation
		items[i] = cachedItem{
			FragranceID:     item.ID,
			Name:            item.Name,
			Brand:           item.Brand,
			Accords:         item.Accords,
			SampleAvailable: item.SampleAvailable,
			RatingValue:     item.RatingValue,
			RatingCount:     item.RatingCount,
			Similarity:      c.Similarity(),
			AccordOverlap:   sub.AccordOverlap,
			BrandAffinity:   sub.BrandAffinity,
			Availability:    sub.AvailabilityBonus,
			Fused:           c.Fused(),
			Rank:            c.Rank(),
			Summary:         e.Summary(),
			Expanded:        e.ExpandedContent(),
			Terms:           e.EducationalTerms(),
			Tier:            string(e.Tier()),
		}
	}
	return cachedEntry{
		CreatedAt:       createdAt,
		ExpiresAt:       expiresAt,
		Strategy:        string(result.StrategyUsed),
		Degraded:        result.Degraded,
		Level:           string(level.Level()),
		LevelSource:     string(level.Source()),
		LevelConfidence: level.Confidence(),
		Items:           items,
	}
}

func fromEntry(e cachedEntry) recommend.Result {
	recs := make([]recommend.Recommendation, len(e.Items))
	for i, it := range e.Items {
		item := domain.FragranceItem{
			ID:              it.FragranceID,
			Name:            it.Name,
			Brand:           it.Brand,
			Accords:         it.Accords,
			SampleAvailable: it.SampleAvailable,
			RatingValue:     it.RatingValue,
			RatingCount:     it.RatingCount,
		}
		sub := recommend.SubScores{
			AccordOverlap:     it.AccordOverlap,
			BrandAffinity:     it.BrandAffinity,
			AvailabilityBonus: it.Availability,
		}
		candidate := recommend.NewScoredCandidate(item, it.Similarity, sub, it.Fused).WithRank(it.Rank)
		explanation := recommend.NewExplanation(it.Summary, it.Expanded, it.Terms, recommend.Tier(it.Tier))
		recs[i] = recommend.Recommendation{Candidate: candidate, Explanation: explanation}
	}

	return recommend.Result{
		Recommendations: recs,
		ExperienceLevel: experience.NewClassification(
			experience.Level(e.Level), experience.Source(e.LevelSource), e.LevelConfidence,
		),
		StrategyUsed: recommend.Strategy(e.Strategy),
		Degraded:     e.Degraded,
		Cache:        recommend.CacheInfo{Hit: true, ExpiresAt: e.ExpiresAt},
	}
}
