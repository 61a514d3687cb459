package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborfit/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of CacheRepository
type MockCacheRepository struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	getHits int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	m.getHits++
	return v, nil
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	cat, err := domain.NewCatalog([]domain.Neighborhood{
		{ID: "quiet-hills", Name: "Quiet Hills", Metrics: uniformMetrics(4)},
		{ID: "midtown", Name: "Midtown", Metrics: uniformMetrics(9), Highlights: []string{"Museums"}},
		{ID: "old-town", Name: "Old Town", Metrics: uniformMetrics(6)},
	})
	require.NoError(t, err)
	return cat
}

func newTestRankingService(t *testing.T, cache domain.CacheRepository, cfg RankingServiceConfig) *RankingService {
	t.Helper()
	return NewRankingService(testCatalog(t), NewMatchingService(MatchConfig{Workers: 2}, nil), cache, cfg, nil)
}

func TestNewRankingService(t *testing.T) {
	t.Run("uses default TTL when zero", func(t *testing.T) {
		svc := newTestRankingService(t, nil, RankingServiceConfig{})
		if svc.cacheTTL != 15*time.Minute {
			t.Errorf("cacheTTL = %v, want 15m (default)", svc.cacheTTL)
		}
	})

	t.Run("uses provided TTL", func(t *testing.T) {
		svc := newTestRankingService(t, nil, RankingServiceConfig{CacheTTL: time.Hour})
		if svc.cacheTTL != time.Hour {
			t.Errorf("cacheTTL = %v, want 1h", svc.cacheTTL)
		}
	})
}

func TestRank(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for nil profile", func(t *testing.T) {
		svc := newTestRankingService(t, nil, RankingServiceConfig{})
		_, err := svc.Rank(ctx, nil, 0)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("computes then serves from cache", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestRankingService(t, cache, RankingServiceConfig{CacheTTL: time.Hour})

		first, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceComputed, first.Source)
		require.Len(t, first.Matches, 3)
		assert.Equal(t, "midtown", first.Matches[0].Neighborhood.ID)
		assert.Equal(t, "old-town", first.Matches[1].Neighborhood.ID)
		assert.Equal(t, "quiet-hills", first.Matches[2].Neighborhood.ID)

		require.Len(t, cache.data, 1)
		for key, ttl := range cache.ttls {
			assert.True(t, strings.HasPrefix(key, "ranking:"), key)
			assert.Equal(t, time.Hour, ttl)
		}

		second, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceCache, second.Source)
		assert.Equal(t, 1, cache.getHits)
		assert.Equal(t, first.Matches, second.Matches)

		// Cached results point back into the shared catalog
		n, err := svc.Neighborhood("midtown")
		require.NoError(t, err)
		assert.Same(t, n, second.Matches[0].Neighborhood)
	})

	t.Run("different profiles use different keys", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestRankingService(t, cache, RankingServiceConfig{})

		_, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		_, err = svc.Rank(ctx, uniformProfile(7), 0)
		require.NoError(t, err)

		assert.Len(t, cache.data, 2)
	})

	t.Run("limit truncates after caching the full ranking", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestRankingService(t, cache, RankingServiceConfig{})

		got, err := svc.Rank(ctx, uniformProfile(6), 2)
		require.NoError(t, err)
		assert.Len(t, got.Matches, 2)
		assert.Equal(t, 3, got.Total)

		all, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceCache, all.Source)
		assert.Len(t, all.Matches, 3)
	})

	t.Run("default limit applies when none given", func(t *testing.T) {
		svc := newTestRankingService(t, nil, RankingServiceConfig{DefaultLimit: 1})

		got, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Len(t, got.Matches, 1)

		got, err = svc.Rank(ctx, uniformProfile(6), 2)
		require.NoError(t, err)
		assert.Len(t, got.Matches, 2)
	})

	t.Run("works without a cache", func(t *testing.T) {
		svc := newTestRankingService(t, nil, RankingServiceConfig{})

		got, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceComputed, got.Source)
		assert.Len(t, got.Matches, 3)
	})

	t.Run("cache failures fall back to computing", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getErr = domain.ErrCacheUnavailable
		cache.setErr = domain.ErrCacheUnavailable
		svc := newTestRankingService(t, cache, RankingServiceConfig{})

		got, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceComputed, got.Source)
		assert.Len(t, got.Matches, 3)
	})

	t.Run("corrupt cache entry is recomputed", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestRankingService(t, cache, RankingServiceConfig{})

		key, err := cacheKey(uniformProfile(6))
		require.NoError(t, err)
		cache.data[key] = []byte("not json")

		got, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceComputed, got.Source)
	})

	t.Run("entry naming an unknown neighborhood is recomputed", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestRankingService(t, cache, RankingServiceConfig{})

		key, err := cacheKey(uniformProfile(6))
		require.NoError(t, err)
		cache.data[key] = []byte(`[{"neighborhoodId":"gone","score":90}]`)

		got, err := svc.Rank(ctx, uniformProfile(6), 0)
		require.NoError(t, err)
		assert.Equal(t, SourceComputed, got.Source)
		assert.Len(t, got.Matches, 3)
	})
}

func TestCacheKey(t *testing.T) {
	a, err := cacheKey(familyProfile())
	require.NoError(t, err)
	b, err := cacheKey(familyProfile())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, len("ranking:")+64)

	changed := familyProfile()
	changed.Lifestyle.Priorities = append(changed.Lifestyle.Priorities, domain.PriorityNightlife)
	c, err := cacheKey(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestRankingService_Lookup(t *testing.T) {
	svc := newTestRankingService(t, nil, RankingServiceConfig{})

	t.Run("lists catalog in order", func(t *testing.T) {
		items := svc.Neighborhoods()
		require.Len(t, items, 3)
		assert.Equal(t, "quiet-hills", items[0].ID)
	})

	t.Run("finds by id", func(t *testing.T) {
		n, err := svc.Neighborhood("old-town")
		require.NoError(t, err)
		assert.Equal(t, "Old Town", n.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Neighborhood("nowhere")
		assert.ErrorIs(t, err, domain.ErrNeighborhoodNotFound)
	})
}
