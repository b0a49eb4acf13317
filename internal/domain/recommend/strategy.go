// Package recommend holds the recommendation request, candidate, and
// explanation value objects shared across the engine.
package recommend

// Strategy selects how recommendations are produced.
type Strategy string

// Recommendation strategies.
const (
	// Hybrid fuses similarity search with rule-based signals and
	// generated explanations.
	Hybrid Strategy = "hybrid"
	// CatalogOnly ranks from the catalog without calling the generation
	// provider; explanations come from the template tier.
	CatalogOnly Strategy = "catalog_only"
	// GenerationOnly pulls candidates by popularity and leans on generated
	// explanations rather than similarity ranking.
	GenerationOnly Strategy = "generation_only"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Hybrid || s == CatalogOnly || s == GenerationOnly
}
