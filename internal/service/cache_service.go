package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
)

// PasteCacheRepository abstracts persistence for cached paste records.
type PasteCacheRepository interface {
	GetPaste(ctx context.Context, id string) (*models.Paste, error)
	SetPaste(ctx context.Context, paste *models.Paste, ttl time.Duration) error
	DeletePastes(ctx context.Context, ids []string) error
}

// CacheService is a read-through cache for paste records. It stores raw
// rows only; expiry and permission are always re-evaluated by the
// caller, so a cached record never extends a paste's life. Cache
// failures degrade to misses, they never fail a read.
type CacheService struct {
	repo       PasteCacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo PasteCacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// GetPaste attempts a cached read. The second return is true on a hit.
func (s *CacheService) GetPaste(ctx context.Context, id string) (*models.Paste, bool) {
	if !s.Enabled() {
		return nil, false
	}
	start := time.Now()
	paste, err := s.repo.GetPaste(ctx, id)
	duration := time.Since(start)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("paste cache read failed", zap.String("id", id), zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false, duration)
		return nil, false
	}
	s.metrics.RecordCacheLookup(true, duration)
	return paste, true
}

// StorePaste caches a paste, clamping the TTL so the entry is evicted
// no later than the paste's own expiry. Already-expired pastes are not
// cached at all.
func (s *CacheService) StorePaste(ctx context.Context, paste *models.Paste) {
	if !s.Enabled() || paste == nil {
		return
	}
	ttl := s.defaultTTL
	if paste.ExpiresAt != nil {
		remaining := time.Until(*paste.ExpiresAt)
		if remaining <= 0 {
			return
		}
		if remaining < ttl {
			ttl = remaining
		}
	}
	if err := s.repo.SetPaste(ctx, paste, ttl); err != nil {
		s.logger.Warn("paste cache store failed", zap.String("id", paste.ID), zap.Error(err))
	}
}

// Invalidate drops cache entries for the given paste ids.
func (s *CacheService) Invalidate(ctx context.Context, ids []string) {
	if !s.Enabled() || len(ids) == 0 {
		return
	}
	if err := s.repo.DeletePastes(ctx, ids); err != nil {
		s.logger.Warn("paste cache invalidate failed", zap.Int("count", len(ids)), zap.Error(err))
	}
}
