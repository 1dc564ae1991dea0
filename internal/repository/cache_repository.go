package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
)

// PasteCacheKey returns the cache slot for a paste id.
func PasteCacheKey(id string) string {
	return "paste:" + id
}

// CacheRepository provides Redis-backed caching for paste records. A nil
// client degrades every operation to a no-op miss.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{client: client, logger: logger}
}

// GetPaste retrieves a cached paste. Expiry and permission checks remain
// the caller's job: the cache stores raw records only.
func (r *CacheRepository) GetPaste(ctx context.Context, id string) (*models.Paste, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, PasteCacheKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", PasteCacheKey(id), err)
	}

	var paste models.Paste
	if err := json.Unmarshal(raw, &paste); err != nil {
		return nil, fmt.Errorf("unmarshal cached paste %s: %w", id, err)
	}

	return &paste, nil
}

// SetPaste stores a paste with the given TTL. The caller clamps the TTL
// so an entry never outlives the paste's own expiry.
func (r *CacheRepository) SetPaste(ctx context.Context, paste *models.Paste, ttl time.Duration) error {
	if r.client == nil || paste == nil {
		return nil
	}

	payload, err := json.Marshal(paste)
	if err != nil {
		return fmt.Errorf("marshal paste %s: %w", paste.ID, err)
	}

	if err := r.client.Set(ctx, PasteCacheKey(paste.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", PasteCacheKey(paste.ID), err)
	}

	return nil
}

// DeletePastes drops the cache entries for the given ids.
func (r *CacheRepository) DeletePastes(ctx context.Context, ids []string) error {
	if r.client == nil || len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = PasteCacheKey(id)
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete %d paste keys: %w", len(keys), err)
	}

	return nil
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
