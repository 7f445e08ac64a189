package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTopMoviesLimit is the number of movies returned by GetTopMovies
// when the caller does not ask for a specific amount.
const DefaultTopMoviesLimit = 10

// Rating is the age classification of a movie.
type Rating int

const (
	RatingNotRated Rating = iota
	RatingG
	RatingPG
	RatingR
)

// String returns the display label for the rating.
func (r Rating) String() string {
	switch r {
	case RatingG:
		return "G - General Audiences"
	case RatingPG:
		return "PG - Parental Guidance Suggested"
	case RatingR:
		return "R - Restricted"
	default:
		return "NR - Not Rated"
	}
}

// Movie represents a movie in the catalog.
type Movie struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"size:140;not null;index"`
	Plot    string `gorm:"type:text"`
	Year    uint   `gorm:"not null;index"`
	Rating  Rating `gorm:"not null;default:0"`
	Runtime uint   `gorm:"not null;default:0"` // minutes
	Website string `gorm:"size:200"`

	// DirectorID is nullable so the movie survives the director being
	// deleted from the catalog.
	DirectorID *uint
	Director   *Person
	Writers    []Person `gorm:"many2many:movie_writers;"`
	Roles      []Role

	// Score is the sum of all vote values for the movie. It is only
	// populated by the vote aggregating queries and stays nil for movies
	// nobody voted on.
	Score *int64 `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// String implements fmt.Stringer.
func (m Movie) String() string {
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// CreateMovie inserts a single movie together with any assigned associations.
func (c *Client) CreateMovie(ctx context.Context, movie *Movie) error {
	if err := c.db.WithContext(ctx).Create(movie).Error; err != nil {
		log.Error("failed to create movie", "title", movie.Title, "error", err)
		return err
	}
	return nil
}

// CreateMovies inserts movies in bulk, skipping entries that already exist.
func (c *Client) CreateMovies(ctx context.Context, movies []Movie) error {
	if len(movies) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&movies).Error; err != nil {
		log.Error("failed to create movies", "count", len(movies), "error", err)
		return err
	}
	return nil
}

// GetMovieByID returns a single movie with all its related people loaded.
func (c *Client) GetMovieByID(ctx context.Context, id uint) (*Movie, error) {
	var movie Movie
	if err := c.db.WithContext(ctx).
		Preload("Director").
		Preload("Writers").
		Preload("Roles.Person").
		First(&movie, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get movie by ID", "id", id, "error", err)
		}
		return nil, err
	}
	return &movie, nil
}

// GetMoviesWithPeople returns all movies with their director joined in and
// the writers and cast preloaded, newest first.
func (c *Client) GetMoviesWithPeople(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	result := c.db.WithContext(ctx).
		Joins("Director").
		Preload("Writers").
		Preload("Roles.Person").
		Order("movies.year DESC, movies.title ASC").
		Find(&movies)
	if result.Error != nil {
		log.Error("failed to get movies with people", "error", result.Error)
		return nil, result.Error
	}
	return movies, nil
}

// GetMoviesWithPeopleAndScore returns all movies with their related people
// and the vote sum scanned into Score. Movies without votes keep a nil Score.
func (c *Client) GetMoviesWithPeopleAndScore(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	result := c.db.WithContext(ctx).
		Model(&Movie{}).
		Select("movies.*, SUM(votes.value) AS score").
		Joins("LEFT JOIN votes ON votes.movie_id = movies.id").
		Group("movies.id").
		Preload("Director").
		Preload("Writers").
		Preload("Roles.Person").
		Order("movies.year DESC, movies.title ASC").
		Find(&movies)
	if result.Error != nil {
		log.Error("failed to get movies with people and score", "error", result.Error)
		return nil, result.Error
	}
	return movies, nil
}

// GetTopMovies returns the highest scored movies, best first. Movies nobody
// voted on are left out entirely, ties are broken by insertion order.
func (c *Client) GetTopMovies(ctx context.Context, limit int) ([]Movie, error) {
	if limit <= 0 {
		limit = DefaultTopMoviesLimit
	}
	var movies []Movie
	result := c.db.WithContext(ctx).
		Model(&Movie{}).
		Select("movies.*, SUM(votes.value) AS score").
		Joins("JOIN votes ON votes.movie_id = movies.id").
		Group("movies.id").
		Order("score DESC, movies.id ASC").
		Limit(limit).
		Find(&movies)
	if result.Error != nil {
		log.Error("failed to get top movies", "limit", limit, "error", result.Error)
		return nil, result.Error
	}
	return movies, nil
}

// ListMovies returns a page of movies together with the total count.
func (c *Client) ListMovies(ctx context.Context, page, pageSize int) ([]Movie, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	if err := c.db.WithContext(ctx).Model(&Movie{}).Count(&total).Error; err != nil {
		log.Error("failed to count movies", "error", err)
		return nil, 0, err
	}

	var movies []Movie
	result := c.db.WithContext(ctx).
		Order("year DESC, title ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&movies)
	if result.Error != nil {
		log.Error("failed to list movies", "page", page, "error", result.Error)
		return nil, 0, result.Error
	}
	return movies, total, nil
}

// DeleteMovie removes a movie. Votes, images and writer credits go with it,
// the delete fails while cast roles still reference the movie.
func (c *Client) DeleteMovie(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Select("Writers").Delete(&Movie{ID: id})
	if result.Error != nil {
		log.Error("failed to delete movie", "id", id, "error", result.Error)
		return result.Error
	}
	return nil
}
