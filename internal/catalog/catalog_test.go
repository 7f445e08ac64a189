package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Iverick/movies-database/internal/config"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cache     *config.CacheConfig
		wantCache bool
	}{
		{
			name: "memory cache enabled",
			cache: &config.CacheConfig{
				Enabled: true,
				Type:    config.CacheTypeMemory,
				TTL:     5 * time.Second,
			},
			wantCache: true,
		},
		{
			name: "cache disabled",
			cache: &config.CacheConfig{
				Enabled: false,
			},
			wantCache: false,
		},
		{
			name:      "no cache config",
			cache:     nil,
			wantCache: false,
		},
		{
			name: "unknown cache type falls back to memory",
			cache: &config.CacheConfig{
				Enabled: true,
				Type:    "memcached",
				TTL:     5 * time.Second,
			},
			wantCache: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := createTestDB(t)
			c, err := New(&config.Config{Cache: tt.cache}, db)
			require.NoError(t, err)
			require.NotNil(t, c)
			if tt.wantCache {
				assert.NotNil(t, c.cache)
				assert.NotEmpty(t, c.CacheStats())
			} else {
				assert.Nil(t, c.cache)
				assert.Nil(t, c.CacheStats())
			}
		})
	}
}

func TestMoviesAndPeople(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	movies, err := c.Movies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Harbor Lights", movies[0].Title)
	require.NotNil(t, movies[0].Director)
	assert.Equal(t, "Ada", movies[0].Director.FirstName)

	people, err := c.People(ctx)
	require.NoError(t, err)
	assert.Len(t, people, 2)
}

func TestTopMoviesServesCachedCopy(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	top, err := c.TopMovies(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Harbor Lights", top[0].Title)

	// A write that bypasses the catalog is invisible until the TTL runs
	// out, the ranking still comes from the cache.
	castDirectVote(t, db, 2, 2, database.VoteUp)

	top, err = c.TopMovies(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	require.NoError(t, c.InvalidateCaches(ctx))

	top, err = c.TopMovies(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestTopMoviesCachedPerLimit(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)
	castDirectVote(t, db, 2, 2, database.VoteUp)

	top, err := c.TopMovies(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	// A different limit misses the per limit entry and queries again.
	top, err = c.TopMovies(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestTopMoviesWithoutCache(t *testing.T) {
	db := createTestDB(t)
	c, err := New(&config.Config{Cache: &config.CacheConfig{Enabled: false}}, db)
	require.NoError(t, err)
	seedCatalog(t, db)

	ctx := context.Background()
	top, err := c.TopMovies(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.NotNil(t, top[0].Score)
	assert.EqualValues(t, 1, *top[0].Score)

	// Without a cache every read sees the latest votes immediately.
	castDirectVote(t, db, 2, 2, database.VoteUp)
	top, err = c.TopMovies(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	assert.NoError(t, c.InvalidateCaches(ctx))
}

func TestMoviesWithScores(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	movies, err := c.MoviesWithScores(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)

	byTitle := make(map[string]database.Movie, len(movies))
	for _, m := range movies {
		byTitle[m.Title] = m
	}
	require.NotNil(t, byTitle["Harbor Lights"].Score)
	assert.EqualValues(t, 1, *byTitle["Harbor Lights"].Score)
	assert.Nil(t, byTitle["Northern Line"].Score)

	// Second read comes from the cache.
	cached, err := c.MoviesWithScores(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 2)
}

func TestCastVote(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	vote, err := c.CastVote(ctx, 2, 1, database.VoteUp)
	require.NoError(t, err)
	assert.True(t, vote.Saved())
	assert.Equal(t, database.VoteUp, vote.Value)

	// Voting again flips the existing vote instead of adding a second one.
	flipped, err := c.CastVote(ctx, 2, 1, database.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, vote.ID, flipped.ID)
	assert.Equal(t, database.VoteDown, flipped.Value)

	stored, err := db.GetVoteOrBlankVote(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, database.VoteDown, stored.Value)
}

func TestCastVoteRejectsInvalidValue(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	for _, value := range []int{0, 2, -2, 10} {
		_, err := c.CastVote(ctx, 1, 1, value)
		assert.Error(t, err, "value %d should be rejected", value)
	}

	vote, err := db.GetVoteOrBlankVote(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, vote.Saved())
}

func TestCastVoteInvalidatesCaches(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	top, err := c.TopMovies(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)

	_, err = c.CastVote(ctx, 2, 2, database.VoteUp)
	require.NoError(t, err)

	top, err = c.TopMovies(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestUserVote(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	vote, err := c.UserVote(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, vote.Saved())

	_, err = c.CastVote(ctx, 2, 1, database.VoteUp)
	require.NoError(t, err)

	vote, err = c.UserVote(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, vote.Saved())
	assert.Equal(t, database.VoteUp, vote.Value)
}

func TestRecordImage(t *testing.T) {
	c, db := createTestCatalog(t)
	ctx := context.Background()
	seedCatalog(t, db)

	image, err := c.RecordImage(ctx, 1, 1)
	require.NoError(t, err)
	assert.NotZero(t, image.ID)

	images, err := db.GetMovieImages(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestRunRequiresRefreshConfig(t *testing.T) {
	tests := []struct {
		name  string
		cache *config.CacheConfig
	}{
		{
			name:  "cache disabled",
			cache: &config.CacheConfig{Enabled: false},
		},
		{
			name: "no refresh interval",
			cache: &config.CacheConfig{
				Enabled: true,
				Type:    config.CacheTypeMemory,
				TTL:     5 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := createTestDB(t)
			c, err := New(&config.Config{Cache: tt.cache}, db)
			require.NoError(t, err)
			assert.Error(t, c.Run(context.Background()))
		})
	}
}

func TestRunWarmsCache(t *testing.T) {
	db := createTestDB(t)
	c, err := New(&config.Config{Cache: &config.CacheConfig{
		Enabled:         true,
		Type:            config.CacheTypeMemory,
		TTL:             time.Minute,
		RefreshInterval: 10 * time.Millisecond,
	}}, db)
	require.NoError(t, err)
	seedCatalog(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		_, err := c.cache.TopMoviesCache.Get(context.Background(), database.DefaultTopMoviesLimit)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "refresh job never warmed the cache")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.NoError(t, c.Close())
}

func TestRefreshTopMoviesExtendsShortTTL(t *testing.T) {
	db := createTestDB(t)
	c, err := New(&config.Config{Cache: &config.CacheConfig{
		Enabled:         true,
		Type:            config.CacheTypeMemory,
		TTL:             10 * time.Millisecond,
		RefreshInterval: 100 * time.Millisecond,
	}}, db)
	require.NoError(t, err)
	seedCatalog(t, db)

	ctx := context.Background()
	require.NoError(t, c.refreshTopMovies(ctx))

	// The entry outlives the configured TTL because the refresh interval
	// is longer.
	time.Sleep(50 * time.Millisecond)
	movies, err := c.cache.TopMoviesCache.Get(ctx, database.DefaultTopMoviesLimit)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
}

// createTestDB opens a fresh in-memory database.
func createTestDB(t *testing.T) *database.Client {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Driver: config.DatabaseDriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// createTestCatalog wires a catalog with an in-memory database and a memory
// cache with a TTL long enough that entries never expire mid-test.
func createTestCatalog(t *testing.T) (*Catalog, *database.Client) {
	t.Helper()
	db := createTestDB(t)
	c, err := New(&config.Config{Cache: &config.CacheConfig{
		Enabled: true,
		Type:    config.CacheTypeMemory,
		TTL:     time.Minute,
	}}, db)
	require.NoError(t, err)
	return c, db
}

// seedCatalog loads two users, two people and two movies, with a single
// upvote on Harbor Lights so exactly one movie ranks.
func seedCatalog(t *testing.T, db *database.Client) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, db.CreateUsers(ctx, []database.User{
		{ID: 1, Username: "frida"},
		{ID: 2, Username: "georg"},
	}))
	require.NoError(t, db.CreatePeople(ctx, []database.Person{
		{ID: 1, FirstName: "Ada", LastName: "Calloway", Born: time.Date(1972, 3, 14, 0, 0, 0, 0, time.UTC)},
		{ID: 2, FirstName: "Ben", LastName: "Okafor", Born: time.Date(1980, 7, 2, 0, 0, 0, 0, time.UTC)},
	}))
	require.NoError(t, db.CreateMovies(ctx, []database.Movie{
		{ID: 1, Title: "Northern Line", Year: 2019, DirectorID: lo.ToPtr(uint(2))},
		{ID: 2, Title: "Harbor Lights", Year: 2021, DirectorID: lo.ToPtr(uint(1))},
	}))
	castDirectVote(t, db, 2, 1, database.VoteUp)
}

// castDirectVote writes a vote straight to the database, skipping the
// catalog and its cache invalidation.
func castDirectVote(t *testing.T, db *database.Client, movieID, userID uint, value int) {
	t.Helper()
	ctx := context.Background()
	vote, err := db.GetVoteOrBlankVote(ctx, movieID, userID)
	require.NoError(t, err)
	vote.Value = value
	require.NoError(t, db.SaveVote(ctx, vote))
}
