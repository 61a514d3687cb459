package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/neighborfit/backend/internal/domain"
	"github.com/neighborfit/backend/internal/infrastructure/metrics"
)

// Ranking sources
const (
	SourceComputed = "computed"
	SourceCache    = "cache"
)

// RankingServiceConfig holds configuration for the ranking service
type RankingServiceConfig struct {
	CacheTTL     time.Duration
	DefaultLimit int
}

// Ranking is an ordered list of matches for one profile
type Ranking struct {
	Matches []domain.MatchResult `json:"matches"`
	Total   int                  `json:"total"`
	Source  string               `json:"source"`
}

// RankingService ranks the shared catalog for incoming profiles, caching
// complete rankings by profile.
type RankingService struct {
	catalog      *domain.Catalog
	matcher      *MatchingService
	cache        domain.CacheRepository
	cacheTTL     time.Duration
	defaultLimit int
	logger       *zap.Logger
}

// NewRankingService creates a new ranking service with dependencies.
// cache may be nil to disable caching.
func NewRankingService(
	catalog *domain.Catalog,
	matcher *MatchingService,
	cache domain.CacheRepository,
	config RankingServiceConfig,
	logger *zap.Logger,
) *RankingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RankingService{
		catalog:      catalog,
		matcher:      matcher,
		cache:        cache,
		cacheTTL:     cacheTTL,
		defaultLimit: config.DefaultLimit,
		logger:       logger,
	}
}

// Rank returns the catalog ordered by match score for profile.
// Flow: check cache -> rank catalog -> cache full ranking -> truncate -> return.
// limit <= 0 falls back to the configured default; a default of 0 returns everything.
func (s *RankingService) Rank(ctx context.Context, profile *domain.UserProfile, limit int) (*Ranking, error) {
	if profile == nil {
		return nil, domain.ErrInvalidRequest
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	start := time.Now()
	key, err := cacheKey(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	source := SourceCache
	matches, err := s.getFromCache(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("ranking cache lookup failed", zap.Error(err))
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()

		source = SourceComputed
		matches = s.matcher.RankCatalog(profile, s.catalog.All())
		for _, m := range matches {
			metrics.MatchScores.Observe(float64(m.Score))
		}

		if err := s.setInCache(ctx, key, matches); err != nil {
			// Log but don't fail if caching fails
			s.logger.Warn("ranking cache store failed", zap.Error(err))
		}
	} else {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
	}

	metrics.RankingsTotal.WithLabelValues(source).Inc()
	metrics.RankingDuration.Observe(time.Since(start).Seconds())

	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	s.logger.Info("ranked neighborhoods",
		zap.String("source", source),
		zap.Int("total", total),
		zap.Int("returned", len(matches)),
		zap.Duration("elapsed", time.Since(start)))

	return &Ranking{Matches: matches, Total: total, Source: source}, nil
}

// Neighborhood looks up a single catalog entry
func (s *RankingService) Neighborhood(id string) (*domain.Neighborhood, error) {
	return s.catalog.Get(id)
}

// Neighborhoods returns the whole catalog in catalog order
func (s *RankingService) Neighborhoods() []domain.Neighborhood {
	return s.catalog.All()
}

// cachedMatch is the cache form of a MatchResult; the neighborhood is stored
// by id and resolved against the catalog on the way out.
type cachedMatch struct {
	NeighborhoodID   string            `json:"neighborhoodId"`
	Score            int               `json:"score"`
	Label            domain.MatchLabel `json:"label"`
	MatchReasons     []string          `json:"matchReasons"`
	Concerns         []string          `json:"concerns"`
	Breakdown        domain.Breakdown  `json:"breakdown"`
	DemographicBonus int               `json:"demographicBonus"`
	LifestyleBonus   int               `json:"lifestyleBonus"`
}

// cacheKey hashes the profile's JSON form.
// Format: "ranking:{sha256 hex}"
func cacheKey(profile *domain.UserProfile) (string, error) {
	b, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "ranking:" + hex.EncodeToString(sum[:]), nil
}

// getFromCache retrieves a ranking from cache
func (s *RankingService) getFromCache(ctx context.Context, key string) ([]domain.MatchResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var cached []cachedMatch
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("%w: decode cached ranking: %v", domain.ErrCacheMiss, err)
	}

	out := make([]domain.MatchResult, 0, len(cached))
	for _, c := range cached {
		n, err := s.catalog.Get(c.NeighborhoodID)
		if err != nil {
			return nil, fmt.Errorf("%w: stale entry %s", domain.ErrCacheMiss, c.NeighborhoodID)
		}
		out = append(out, domain.MatchResult{
			Neighborhood:     n,
			Score:            c.Score,
			Label:            c.Label,
			MatchReasons:     c.MatchReasons,
			Concerns:         c.Concerns,
			Breakdown:        c.Breakdown,
			DemographicBonus: c.DemographicBonus,
			LifestyleBonus:   c.LifestyleBonus,
		})
	}
	return out, nil
}

// setInCache stores a ranking in cache
func (s *RankingService) setInCache(ctx context.Context, key string, matches []domain.MatchResult) error {
	if s.cache == nil {
		return nil
	}

	cached := make([]cachedMatch, len(matches))
	for i, m := range matches {
		cached[i] = cachedMatch{
			NeighborhoodID:   m.Neighborhood.ID,
			Score:            m.Score,
			Label:            m.Label,
			MatchReasons:     m.MatchReasons,
			Concerns:         m.Concerns,
			Breakdown:        m.Breakdown,
			DemographicBonus: m.DemographicBonus,
			LifestyleBonus:   m.LifestyleBonus,
		}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}
