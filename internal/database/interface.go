package database

import (
	"context"
)

// DB defines the interface for database operations.
type DB interface {
	// Movie catalog
	CreateMovie(ctx context.Context, movie *Movie) error
	CreateMovies(ctx context.Context, movies []Movie) error
	GetMovieByID(ctx context.Context, id uint) (*Movie, error)
	GetMoviesWithPeople(ctx context.Context) ([]Movie, error)
	GetMoviesWithPeopleAndScore(ctx context.Context) ([]Movie, error)
	GetTopMovies(ctx context.Context, limit int) ([]Movie, error)
	ListMovies(ctx context.Context, page, pageSize int) ([]Movie, int64, error)
	DeleteMovie(ctx context.Context, id uint) error

	// People and credits
	CreatePerson(ctx context.Context, person *Person) error
	CreatePeople(ctx context.Context, people []Person) error
	GetPersonByID(ctx context.Context, id uint) (*Person, error)
	GetPeopleWithMovies(ctx context.Context) ([]Person, error)
	DeletePerson(ctx context.Context, id uint) error
	CreateRole(ctx context.Context, movieID, personID uint, name string) (*Role, error)
	CreateRoles(ctx context.Context, roles []Role) error

	// Votes
	GetVoteOrBlankVote(ctx context.Context, movieID, userID uint) (*Vote, error)
	SaveVote(ctx context.Context, vote *Vote) error
	CreateVotes(ctx context.Context, votes []Vote) error
	GetLatestVote(ctx context.Context) (*Vote, error)

	// Images
	CreateMovieImage(ctx context.Context, movieID, userID uint) (*MovieImage, error)
	GetMovieImages(ctx context.Context, movieID uint) ([]MovieImage, error)

	// Users
	CreateUser(ctx context.Context, username string) (*User, error)
	CreateUsers(ctx context.Context, users []User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetOrCreateUser(ctx context.Context, username string) (*User, error)
	DeleteUser(ctx context.Context, id uint) error

	// Statistics and reporting
	GetCatalogStats(ctx context.Context) (*CatalogStats, error)

	// Utility
	Close() error
}
