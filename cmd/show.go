package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Iverick/movies-database/internal/config"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/ccoveille/go-safecast"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a single record with its relations",
}

var showMovieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show a movie with its credits and images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, cfg, db, err := openForShow(args[0], "movie")
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		movie, err := db.GetMovieByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to find movie %d: %w", id, err)
		}

		fmt.Println(movie.String())
		fmt.Printf("Rated: %s\n", movie.Rating.String())
		if movie.Runtime > 0 {
			fmt.Printf("Runtime: %d minutes\n", movie.Runtime)
		}
		if movie.Website != "" {
			fmt.Printf("Website: %s\n", movie.Website)
		}
		if movie.Director != nil {
			fmt.Printf("Directed by: %s %s\n", movie.Director.FirstName, movie.Director.LastName)
		}
		for _, writer := range movie.Writers {
			fmt.Printf("Written by: %s %s\n", writer.FirstName, writer.LastName)
		}
		for _, role := range movie.Roles {
			fmt.Printf("Starring: %s %s as %s\n", role.Person.FirstName, role.Person.LastName, role.Name)
		}
		if movie.Plot != "" {
			fmt.Printf("\n%s\n", movie.Plot)
		}

		images, err := db.GetMovieImages(cmd.Context(), movie.ID)
		if err != nil {
			return fmt.Errorf("failed to get images: %w", err)
		}
		for _, image := range images {
			fmt.Printf("Image: %s (uploaded %s)\n",
				filepath.Join(cfg.MediaRoot, image.Path), timediff.TimeDiff(image.Uploaded))
		}
		return nil
	},
}

var showPersonCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "Show a person with their movie credits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _, db, err := openForShow(args[0], "person")
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		person, err := db.GetPersonByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to find person %d: %w", id, err)
		}

		fmt.Println(person.String())
		for _, movie := range person.Directed {
			fmt.Printf("Directed: %s\n", movie.String())
		}
		for _, movie := range person.WritingCredits {
			fmt.Printf("Wrote: %s\n", movie.String())
		}
		for _, role := range person.Roles {
			fmt.Printf("Played %s in %s\n", role.Name, role.Movie.String())
		}
		return nil
	},
}

func openForShow(rawID, kind string) (uint, *config.Config, *database.Client, error) {
	parsed, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("invalid %s id %q: %w", kind, rawID, err)
	}
	id, err := safecast.ToUint(parsed)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("invalid %s id %q: %w", kind, rawID, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return id, cfg, db, nil
}

func init() {
	showCmd.AddCommand(showMovieCmd)
	showCmd.AddCommand(showPersonCmd)
	rootCmd.AddCommand(showCmd)
}
