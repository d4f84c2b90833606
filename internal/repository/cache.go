package repository

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
)

const (
	cacheCapacity   = 10000
	cacheShards     = 10
	cacheEvictRatio = 10
)

// CachedCompanyStore serves FindBySlug from a read-through cache. Concurrent
// lookups of the same slug share one store call. Misses and errors are not
// cached.
type CachedCompanyStore struct {
	services.CompanyStore
	cache *sturdyc.Client[models.Company]
}

func NewCachedCompanyStore(store services.CompanyStore, ttl time.Duration) *CachedCompanyStore {
	return &CachedCompanyStore{
		CompanyStore: store,
		cache:        sturdyc.New[models.Company](cacheCapacity, cacheShards, ttl, cacheEvictRatio),
	}
}

func (s *CachedCompanyStore) FindBySlug(ctx context.Context, slug string) (models.Company, error) {
	return s.cache.GetOrFetch(ctx, "company:slug:"+slug, func(ctx context.Context) (models.Company, error) {
		return s.CompanyStore.FindBySlug(ctx, slug)
	})
}
