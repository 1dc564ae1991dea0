package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
)

type cacheRepoMock struct {
	entries map[string]*models.Paste
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newCacheRepoMock() *cacheRepoMock {
	return &cacheRepoMock{entries: map[string]*models.Paste{}, ttls: map[string]time.Duration{}}
}

func (m *cacheRepoMock) GetPaste(ctx context.Context, id string) (*models.Paste, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	paste, ok := m.entries[id]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return paste, nil
}

func (m *cacheRepoMock) SetPaste(ctx context.Context, paste *models.Paste, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[paste.ID] = paste
	m.ttls[paste.ID] = ttl
	return nil
}

func (m *cacheRepoMock) DeletePastes(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.entries, id)
		delete(m.ttls, id)
	}
	return nil
}

func TestCacheHitAndMiss(t *testing.T) {
	repo := newCacheRepoMock()
	repo.entries["p1"] = &models.Paste{ID: "p1", Content: "x"}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()

	paste, hit := svc.GetPaste(ctx, "p1")
	require.True(t, hit)
	assert.Equal(t, "p1", paste.ID)

	_, hit = svc.GetPaste(ctx, "missing")
	assert.False(t, hit)
}

func TestCacheErrorDegradesToMiss(t *testing.T) {
	repo := newCacheRepoMock()
	repo.getErr = errors.New("connection refused")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	_, hit := svc.GetPaste(context.Background(), "p1")
	assert.False(t, hit)
}

func TestStoreClampsTTLToExpiry(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Hour, nil, true)
	soon := time.Now().UTC().Add(30 * time.Second)

	svc.StorePaste(context.Background(), &models.Paste{ID: "p1", Content: "x", ExpiresAt: &soon})

	require.Contains(t, repo.ttls, "p1")
	assert.LessOrEqual(t, repo.ttls["p1"], 30*time.Second)
	assert.Greater(t, repo.ttls["p1"], time.Duration(0))
}

func TestStoreSkipsExpiredPaste(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Hour, nil, true)
	past := time.Now().UTC().Add(-time.Minute)

	svc.StorePaste(context.Background(), &models.Paste{ID: "p1", Content: "x", ExpiresAt: &past})

	assert.NotContains(t, repo.entries, "p1")
}

func TestInvalidateRemovesEntries(t *testing.T) {
	repo := newCacheRepoMock()
	repo.entries["p1"] = &models.Paste{ID: "p1"}
	repo.entries["p2"] = &models.Paste{ID: "p2"}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	svc.Invalidate(context.Background(), []string{"p1", "p2"})

	assert.Empty(t, repo.entries)
}

func TestDisabledCacheIsInert(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)
	ctx := context.Background()

	svc.StorePaste(ctx, &models.Paste{ID: "p1", Content: "x"})
	assert.Empty(t, repo.entries)

	_, hit := svc.GetPaste(ctx, "p1")
	assert.False(t, hit)
}

func TestNilCacheServiceIsSafe(t *testing.T) {
	var svc *CacheService

	assert.False(t, svc.Enabled())
	_, hit := svc.GetPaste(context.Background(), "p1")
	assert.False(t, hit)
	svc.StorePaste(context.Background(), &models.Paste{ID: "p1"})
	svc.Invalidate(context.Background(), []string{"p1"})
}
