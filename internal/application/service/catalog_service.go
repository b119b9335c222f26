package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CatalogService fronts the remote catalog with a short-lived Redis cache
// and request coalescing, so a burst of keystrokes from search-as-you-type
// terminals becomes at most one upstream call per distinct query.
type CatalogService struct {
	catalog  repository.CatalogRepository
	cache    *redis.Client
	cacheTTL time.Duration
	group    singleflight.Group
	logger   zerolog.Logger
}

func NewCatalogService(
	catalog repository.CatalogRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

type searchResult struct {
	Items []entity.Product `json:"items"`
	Total int64            `json:"total"`
}

func searchCacheKey(q repository.ProductQuery) string {
	return fmt.Sprintf("tillpoint:catalog:%s|%s|%d|%d", q.SearchText, q.Category, q.Page, q.PageSize)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query repository.ProductQuery) ([]entity.Product, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	key := searchCacheKey(query)
	if cached := s.cachedSearch(ctx, key); cached != nil {
		return cached.Items, cached.Total, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		items, total, err := s.catalog.SearchProducts(ctx, query)
		if err != nil {
			return nil, err
		}
		result := &searchResult{Items: items, Total: total}
		s.storeSearch(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, 0, err
	}

	result := v.(*searchResult)
	return result.Items, result.Total, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

func (s *CatalogService) cachedSearch(ctx context.Context, key string) *searchResult {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("search cache read failed")
		return nil
	}

	var result searchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (s *CatalogService) storeSearch(ctx context.Context, key string, result *searchResult) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("search cache write failed")
	}
}
