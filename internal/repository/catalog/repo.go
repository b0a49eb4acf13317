// Package catalog reads and writes fragrance records in the KV store.
// The engine treats records as read-only; writes exist for the ingestion
// seeding path.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/logger"
)

const keyPrefix = "scentdex:catalog:"

// store is the consumer interface for the catalog (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo is the KV-backed catalog store.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert writes a fragrance record (seeding/ingestion path).
func (r *Repo) Upsert(ctx context.Context, item domain.FragranceItem) error {
	if item.ID == "" {
		return fmt.Errorf("item id is required")
	}
	data, err := json.Marshal(toDTO(item))
	if err != nil {
		return fmt.Errorf("marshal fragrance %s: %w", item.ID, err)
	}
	if err := r.store.Set(ctx, keyPrefix+item.ID, data); err != nil {
		return fmt.Errorf("store fragrance %s: %w", item.ID, err)
	}
	return nil
}

// Get retrieves a single fragrance by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.FragranceItem, error) {
	data, err := r.store.Get(ctx, keyPrefix+id)
	if err != nil {
		return domain.FragranceItem{}, fmt.Errorf("get fragrance %s: %w", id, err)
	}
	var dto fragranceDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.FragranceItem{}, fmt.Errorf("parse fragrance %s: %w", id, err)
	}
	return fromDTO(dto)
}

// EmbeddedItems returns every catalog item carrying an embedding, minus the
// excluded ids. Records that fail to parse are logged and skipped, not fatal.
func (r *Repo) EmbeddedItems(
	ctx context.Context, excludeIDs map[string]struct{},
) ([]domain.FragranceItem, error) {
	log := logger.FromContext(ctx)

	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}

	items := make([]domain.FragranceItem, 0, len(keys))
	for _, key := range keys {
		id := key[len(keyPrefix):]
		if _, excluded := excludeIDs[id]; excluded {
			continue
		}

		data, err := r.store.Get(ctx, key)
		if err != nil {
			log.Warn("failed to read catalog record", zap.String("key", key), zap.Error(err))
			continue
		}

		var dto fragranceDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			log.Warn("failed to parse catalog record", zap.String("key", key), zap.Error(err))
			continue
		}

		item, err := fromDTO(dto)
		if err != nil {
			log.Warn("invalid catalog embedding", zap.String("key", key), zap.Error(err))
			continue
		}
		if !item.HasEmbedding() {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Count returns the number of catalog records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan catalog: %w", err)
	}
	return len(keys), nil
}

// WaitForCatalog polls until at least one record exists or the timeout
// expires. Used at startup in environments where seeding runs separately.
func (r *Repo) WaitForCatalog(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for catalog: %w", ctx.Err())
		case <-ticker.C:
			if n, err := r.Count(ctx); err == nil && n > 0 {
				return nil
			}
		}
	}
}
