package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"movebook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const ratesCacheKey = "pricing:rates"

// CatalogService is the process-wide pricing cache made explicit: a declared
// refresh interval and an explicit invalidation call instead of an implicit
// global. Rates are read-only; the coordinator never computes with them.
type CatalogService interface {
	Rates(ctx context.Context) (*models.RateTable, error)
	Invalidate(ctx context.Context) error
}

// DefaultCatalogService reads the rate table through a Redis cache from the
// pricing collaborator's JSON endpoint.
type DefaultCatalogService struct {
	SourceURL string
	Cache     *redis.Client
	TTL       time.Duration
	Client    *http.Client
	Logger    *zap.Logger
}

func NewDefaultCatalogService(sourceURL string, cache *redis.Client, refresh time.Duration, logger *zap.Logger) *DefaultCatalogService {
	return &DefaultCatalogService{
		SourceURL: sourceURL,
		Cache:     cache,
		TTL:       refresh,
		Client:    &http.Client{Timeout: 10 * time.Second},
		Logger:    logger,
	}
}

func (s *DefaultCatalogService) Rates(ctx context.Context) (*models.RateTable, error) {
	cached, err := s.Cache.Get(ctx, ratesCacheKey).Result()
	if err == nil {
		var table models.RateTable
		if err := json.Unmarshal([]byte(cached), &table); err == nil {
			return &table, nil
		}
		s.Logger.Warn("discarding corrupt pricing cache entry", zap.Error(err))
	} else if err != redis.Nil {
		s.Logger.Warn("pricing cache read failed, fetching source directly", zap.Error(err))
	}

	table, raw, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Set(ctx, ratesCacheKey, raw, s.TTL).Err(); err != nil {
		s.Logger.Warn("failed to cache pricing rates", zap.Error(err))
	}
	return table, nil
}

// Invalidate drops the cached table; the next Rates call re-fetches.
func (s *DefaultCatalogService) Invalidate(ctx context.Context) error {
	if err := s.Cache.Del(ctx, ratesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pricing cache: %w", err)
	}
	return nil
}

func (s *DefaultCatalogService) fetch(ctx context.Context) (*models.RateTable, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SourceURL, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("pricing source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("pricing source error: status %d", resp.StatusCode)
	}

	var table models.RateTable
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&table); err != nil {
		return nil, nil, fmt.Errorf("failed to decode rate table: %w", err)
	}
	raw, err := json.Marshal(table)
	if err != nil {
		return nil, nil, err
	}
	return &table, raw, nil
}
