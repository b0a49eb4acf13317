// Package similarity ranks catalog items by cosine similarity to a query vector.
package similarity

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/scentdex/internal/domain"
)

// Match pairs a catalog item with its similarity to the query vector.
type Match struct {
	Item       domain.FragranceItem
	Similarity float64
}

// Service performs top-K similarity search over the catalog.
// Pure and stateless: identical inputs always yield identical output order.
type Service struct {
	catalog CatalogReader
}

// New creates a similarity search service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// TopK returns up to k items ordered by similarity descending. Ties break by
// catalog popularity descending, then by item id ascending. Excluded ids
// never appear in the output.
// Fails with domain.ErrNoEmbeddingData when the catalog has zero embedded items.
func (s *Service) TopK(
	ctx context.Context, query []float32, k int, excludeIDs map[string]struct{},
) ([]Match, error) {
	items, err := s.catalog.EmbeddedItems(ctx, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoEmbeddingData
	}

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		if _, excluded := excludeIDs[item.ID]; excluded {
			continue
		}
		if !item.HasEmbedding() {
			continue
		}
		matches = append(matches, Match{
			Item:       item,
			Similarity: domain.CosineSimilarity(query, item.Embedding),
		})
	}
	if len(matches) == 0 {
		return nil, domain.ErrNoEmbeddingData
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		pi, pj := matches[i].Item.Popularity(), matches[j].Item.Popularity()
		if pi != pj {
			return pi > pj
		}
		return matches[i].Item.ID < matches[j].Item.ID
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// ByPopularity returns up to k items ordered by popularity descending, ties
// by id ascending. Used by the generation-only strategy, which ranks without
// a similarity signal.
func (s *Service) ByPopularity(
	ctx context.Context, k int, excludeIDs map[string]struct{},
) ([]Match, error) {
	items, err := s.catalog.EmbeddedItems(ctx, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoEmbeddingData
	}

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		if _, excluded := excludeIDs[item.ID]; excluded {
			continue
		}
		matches = append(matches, Match{Item: item})
	}
	if len(matches) == 0 {
		return nil, domain.ErrNoEmbeddingData
	}

	sort.Slice(matches, func(i, j int) bool {
		pi, pj := matches[i].Item.Popularity(), matches[j].Item.Popularity()
		if pi != pj {
			return pi > pj
		}
		return matches[i].Item.ID < matches[j].Item.ID
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}
