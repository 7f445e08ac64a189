package cache

import (
	"fmt"

	"github.com/Iverick/movies-database/internal/config"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/codec"
)

// Cache key prefixes.
const (
	TopMoviesCachePrefix    = "top-movies-"
	ScoredMoviesCachePrefix = "scored-movies-"
)

// CatalogCache holds the caches for the vote aggregating queries, which are
// the only ones worth caching. TopMoviesCache is keyed by result limit,
// ScoredMoviesCache holds the full scored listing under a single key.
type CatalogCache struct {
	TopMoviesCache    *PrefixedCache[[]database.Movie]
	ScoredMoviesCache *PrefixedCache[[]database.Movie]
}

func NewCatalogCache(cfg *config.CacheConfig) (*CatalogCache, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("cache is not enabled")
	}

	return &CatalogCache{
		TopMoviesCache:    NewPrefixedCache[[]database.Movie](newCacheInstanceByType(cfg), TopMoviesCachePrefix),
		ScoredMoviesCache: NewPrefixedCache[[]database.Movie](newCacheInstanceByType(cfg), ScoredMoviesCachePrefix),
	}, nil
}

func newCacheInstanceByType(cfg *config.CacheConfig) *cache.Cache[[]byte] {
	switch cfg.Type {
	case config.CacheTypeMemory:
		return newMemoryCache[[]byte]()
	case config.CacheTypeRedis:
		return newRedisCache[[]byte](cfg)
	default:
		return newMemoryCache[[]byte]()
	}
}

type Stats struct {
	*codec.Stats
	CacheName string `json:"cacheName"`
}

func (c *CatalogCache) GetStats() []*Stats {
	return []*Stats{
		{
			Stats:     c.TopMoviesCache.GetStats(),
			CacheName: "top-movies",
		},
		{
			Stats:     c.ScoredMoviesCache.GetStats(),
			CacheName: "scored-movies",
		},
	}
}
