package catalog

import (
	"context"
	"fmt"

	"github.com/Iverick/movies-database/internal/cache"
	"github.com/Iverick/movies-database/internal/config"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/Iverick/movies-database/internal/scheduler"
	"github.com/charmbracelet/log"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"
)

// scoredMoviesCacheKey is the single key under which the full scored
// listing is cached.
const scoredMoviesCacheKey = "all"

// Catalog ties the database queries to the query cache and exposes the read
// and vote API a presentation layer consumes. The vote aggregating queries
// are served from the cache while their TTL lasts, every vote write clears
// the cache so scores never lag further behind than that.
type Catalog struct {
	cfg       *config.Config
	db        database.DB
	cache     *cache.CatalogCache
	scheduler *scheduler.Scheduler
}

// New creates a new Catalog instance.
func New(cfg *config.Config, db database.DB) (*Catalog, error) {
	c := &Catalog{
		cfg: cfg,
		db:  db,
	}

	if cfg.Cache != nil && cfg.Cache.Enabled {
		catalogCache, err := cache.NewCatalogCache(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog cache: %w", err)
		}
		c.cache = catalogCache
	} else {
		log.Warn("Query cache is disabled, every read hits the database")
	}

	return c, nil
}

// Movies returns all movies with their related people loaded.
func (c *Catalog) Movies(ctx context.Context) ([]database.Movie, error) {
	return c.db.GetMoviesWithPeople(ctx)
}

// People returns all people with the movies they were involved in.
func (c *Catalog) People(ctx context.Context) ([]database.Person, error) {
	return c.db.GetPeopleWithMovies(ctx)
}

// MoviesWithScores returns all movies with related people and vote scores,
// served from the cache when a fresh enough copy exists.
func (c *Catalog) MoviesWithScores(ctx context.Context) ([]database.Movie, error) {
	if c.cache != nil {
		if movies, err := c.cache.ScoredMoviesCache.Get(ctx, scoredMoviesCacheKey); err == nil {
			return movies, nil
		}
	}

	movies, err := c.db.GetMoviesWithPeopleAndScore(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.ScoredMoviesCache.Set(ctx, scoredMoviesCacheKey, movies,
			store.WithExpiration(c.cfg.Cache.TTL)); err != nil {
			log.Warn("Failed to cache scored movies", "error", err)
		}
	}
	return movies, nil
}

// TopMovies returns the highest scored movies, served from the cache when a
// fresh enough copy for the same limit exists.
func (c *Catalog) TopMovies(ctx context.Context, limit int) ([]database.Movie, error) {
	if limit <= 0 {
		limit = database.DefaultTopMoviesLimit
	}

	if c.cache != nil {
		if movies, err := c.cache.TopMoviesCache.Get(ctx, limit); err == nil {
			return movies, nil
		}
	}

	movies, err := c.db.GetTopMovies(ctx, limit)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.TopMoviesCache.Set(ctx, limit, movies,
			store.WithExpiration(c.cfg.Cache.TTL)); err != nil {
			log.Warn("Failed to cache top movies", "error", err)
		}
	}
	return movies, nil
}

// UserVote returns the user's vote on a movie, or a blank unsaved vote if
// they have not voted yet.
func (c *Catalog) UserVote(ctx context.Context, movieID, userID uint) (*database.Vote, error) {
	return c.db.GetVoteOrBlankVote(ctx, movieID, userID)
}

// CastVote stores the user's vote on a movie, replacing any earlier vote,
// and drops the cached scores.
func (c *Catalog) CastVote(ctx context.Context, movieID, userID uint, value int) (*database.Vote, error) {
	if value != database.VoteUp && value != database.VoteDown {
		return nil, fmt.Errorf("invalid vote value %d, must be %d or %d", value, database.VoteUp, database.VoteDown)
	}

	vote, err := c.db.GetVoteOrBlankVote(ctx, movieID, userID)
	if err != nil {
		return nil, err
	}
	vote.Value = value
	if err := c.db.SaveVote(ctx, vote); err != nil {
		return nil, err
	}

	if err := c.InvalidateCaches(ctx); err != nil {
		log.Warn("Failed to invalidate caches after vote", "error", err)
	}
	return vote, nil
}

// RecordImage registers an uploaded image for a movie.
func (c *Catalog) RecordImage(ctx context.Context, movieID, userID uint) (*database.MovieImage, error) {
	return c.db.CreateMovieImage(ctx, movieID, userID)
}

// InvalidateCaches clears all query caches concurrently.
func (c *Catalog) InvalidateCaches(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}

	var g errgroup.Group

	g.Go(func() error {
		if err := c.cache.TopMoviesCache.Clear(ctx); err != nil {
			log.Error("Failed to clear top movies cache", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := c.cache.ScoredMoviesCache.Clear(ctx); err != nil {
			log.Error("Failed to clear scored movies cache", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}

// CacheStats returns hit and miss counters per query cache, nil when the
// cache is disabled.
func (c *Catalog) CacheStats() []*cache.Stats {
	if c.cache == nil {
		return nil
	}
	return c.cache.GetStats()
}

// Run keeps the top movies cache warm until the context is cancelled. It is
// only useful with a shared cache backend, the daemon recomputes the default
// ranking every refresh interval so other consumers always read a hot entry.
func (c *Catalog) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.cache == nil || c.cfg.Cache.RefreshInterval <= 0 {
		return fmt.Errorf("cache refresh is not configured, set cache.refresh_interval")
	}

	sched, err := scheduler.New()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	c.scheduler = sched

	if err := sched.AddSingletonJob(
		"refresh-top-movies",
		gocron.DurationJob(c.cfg.Cache.RefreshInterval),
		c.refreshTopMovies,
	); err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	sched.Start()

	// Warm the cache right away instead of waiting a full interval.
	if err := sched.RunJobNow("refresh-top-movies"); err != nil {
		log.Warn("Failed to trigger initial cache refresh", "error", err)
	}

	<-ctx.Done()
	return nil
}

// Close stops the background refresh if it is running.
func (c *Catalog) Close() error {
	if c.scheduler != nil {
		return c.scheduler.Stop()
	}
	return nil
}

// refreshTopMovies recomputes the default top movies list into the cache.
func (c *Catalog) refreshTopMovies(ctx context.Context) error {
	movies, err := c.db.GetTopMovies(ctx, database.DefaultTopMoviesLimit)
	if err != nil {
		return err
	}

	// Warmed entries must outlive the gap between runs, otherwise readers
	// hit the database right before every refresh.
	ttl := c.cfg.Cache.TTL
	if ttl <= c.cfg.Cache.RefreshInterval {
		ttl = 2 * c.cfg.Cache.RefreshInterval
	}

	if err := c.cache.TopMoviesCache.Set(ctx, database.DefaultTopMoviesLimit, movies,
		store.WithExpiration(ttl)); err != nil {
		return err
	}
	log.Debug("Refreshed top movies cache", "movies", len(movies))
	return nil
}
