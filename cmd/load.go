package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Iverick/movies-database/internal/database"
	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var validate = validator.New()

// fixture mirrors the JSON layout of a fixture file. Records reference each
// other by explicit IDs, so the file is self contained.
type fixture struct {
	Users  []userFixture   `json:"users"`
	People []personFixture `json:"people"`
	Movies []movieFixture  `json:"movies"`
	Roles  []roleFixture   `json:"roles"`
	Votes  []voteFixture   `json:"votes"`
}

type userFixture struct {
	ID       uint   `json:"id" validate:"required"`
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type personFixture struct {
	ID        uint   `json:"id" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=140"`
	LastName  string `json:"last_name" validate:"required,max=140"`
	Born      string `json:"born" validate:"required,datetime=2006-01-02"`
	Died      string `json:"died" validate:"omitempty,datetime=2006-01-02"`
}

type movieFixture struct {
	ID         uint   `json:"id" validate:"required"`
	Title      string `json:"title" validate:"required,max=140"`
	Plot       string `json:"plot"`
	Year       int    `json:"year" validate:"required,gte=1888"`
	Rating     int    `json:"rating" validate:"gte=0,lte=3"`
	Runtime    int    `json:"runtime" validate:"gte=0"`
	Website    string `json:"website" validate:"omitempty,url,max=200"`
	DirectorID uint   `json:"director_id"`
	WriterIDs  []uint `json:"writer_ids"`
}

type roleFixture struct {
	MovieID  uint   `json:"movie_id" validate:"required"`
	PersonID uint   `json:"person_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=140"`
}

type voteFixture struct {
	MovieID uint `json:"movie_id" validate:"required"`
	UserID  uint `json:"user_id" validate:"required"`
	Value   int  `json:"value" validate:"required,oneof=-1 1"`
}

var loadCmd = &cobra.Command{
	Use:   "load <fixture.json>",
	Short: "Load catalog data from a JSON fixture file",
	Long: `Load users, people, movies, roles and votes from a JSON fixture file.
Records are created in dependency order and records that already exist are
left untouched, so loading the same file twice is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read fixture file: %w", err)
		}

		var f fixture
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse fixture file: %w", err)
		}
		if err := validateFixture(&f); err != nil {
			return err
		}

		ctx := cmd.Context()

		users := lo.Map(f.Users, func(u userFixture, _ int) database.User {
			return database.User{ID: u.ID, Username: u.Username, Email: u.Email}
		})
		if err := db.CreateUsers(ctx, users); err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}

		people, err := fixturePeople(f.People)
		if err != nil {
			return err
		}
		if err := db.CreatePeople(ctx, people); err != nil {
			return fmt.Errorf("failed to load people: %w", err)
		}

		movies, err := fixtureMovies(f.Movies)
		if err != nil {
			return err
		}
		if err := db.CreateMovies(ctx, movies); err != nil {
			return fmt.Errorf("failed to load movies: %w", err)
		}

		roles := lo.Map(f.Roles, func(r roleFixture, _ int) database.Role {
			return database.Role{MovieID: r.MovieID, PersonID: r.PersonID, Name: r.Name}
		})
		if err := db.CreateRoles(ctx, roles); err != nil {
			return fmt.Errorf("failed to load roles: %w", err)
		}

		votes := lo.Map(f.Votes, func(v voteFixture, _ int) database.Vote {
			return database.Vote{MovieID: v.MovieID, UserID: v.UserID, Value: v.Value}
		})
		if err := db.CreateVotes(ctx, votes); err != nil {
			return fmt.Errorf("failed to load votes: %w", err)
		}

		log.Info("Fixture loaded",
			"users", len(users),
			"people", len(people),
			"movies", len(movies),
			"roles", len(roles),
			"votes", len(votes),
		)
		fmt.Printf("Loaded %d users, %d people, %d movies, %d roles and %d votes\n",
			len(users), len(people), len(movies), len(roles), len(votes))
		return nil
	},
}

// validateFixture checks every record before anything is written.
func validateFixture(f *fixture) error {
	for i, u := range f.Users {
		if err := validate.Struct(u); err != nil {
			return fmt.Errorf("invalid user at index %d (%s): %w", i, u.Username, err)
		}
	}
	for i, p := range f.People {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("invalid person at index %d (%s %s): %w", i, p.FirstName, p.LastName, err)
		}
	}
	for i, m := range f.Movies {
		if err := validate.Struct(m); err != nil {
			return fmt.Errorf("invalid movie at index %d (%s): %w", i, m.Title, err)
		}
	}
	for i, r := range f.Roles {
		if err := validate.Struct(r); err != nil {
			return fmt.Errorf("invalid role at index %d (%s): %w", i, r.Name, err)
		}
	}
	for i, v := range f.Votes {
		if err := validate.Struct(v); err != nil {
			return fmt.Errorf("invalid vote at index %d: %w", i, err)
		}
	}
	return nil
}

func fixturePeople(fixtures []personFixture) ([]database.Person, error) {
	people := make([]database.Person, 0, len(fixtures))
	for _, p := range fixtures {
		born, err := time.Parse(time.DateOnly, p.Born)
		if err != nil {
			return nil, fmt.Errorf("failed to parse birth date for %s %s: %w", p.FirstName, p.LastName, err)
		}
		person := database.Person{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Born:      born,
		}
		if p.Died != "" {
			died, err := time.Parse(time.DateOnly, p.Died)
			if err != nil {
				return nil, fmt.Errorf("failed to parse death date for %s %s: %w", p.FirstName, p.LastName, err)
			}
			person.Died = lo.ToPtr(died)
		}
		people = append(people, person)
	}
	return people, nil
}

func fixtureMovies(fixtures []movieFixture) ([]database.Movie, error) {
	movies := make([]database.Movie, 0, len(fixtures))
	for _, m := range fixtures {
		year, err := safecast.ToUint(m.Year)
		if err != nil {
			return nil, fmt.Errorf("invalid year for %s: %w", m.Title, err)
		}
		runtime, err := safecast.ToUint(m.Runtime)
		if err != nil {
			return nil, fmt.Errorf("invalid runtime for %s: %w", m.Title, err)
		}
		movie := database.Movie{
			ID:      m.ID,
			Title:   m.Title,
			Plot:    m.Plot,
			Year:    year,
			Rating:  database.Rating(m.Rating),
			Runtime: runtime,
			Website: m.Website,
			Writers: lo.Map(m.WriterIDs, func(id uint, _ int) database.Person {
				return database.Person{ID: id}
			}),
		}
		if m.DirectorID != 0 {
			movie.DirectorID = lo.ToPtr(m.DirectorID)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
