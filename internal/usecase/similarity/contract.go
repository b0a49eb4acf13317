package similarity

import (
	"context"

	"github.com/kailas-cloud/scentdex/internal/domain"
)

// CatalogReader reads embedded catalog items for similarity search.
// Implementations must omit items whose id is in excludeIDs.
type CatalogReader interface {
	EmbeddedItems(ctx context.Context, excludeIDs map[string]struct{}) ([]domain.FragranceItem, error)
}
