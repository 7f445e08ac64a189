package cmd

import (
	"fmt"

	"github.com/Iverick/movies-database/internal/catalog"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/spf13/cobra"
)

var topCmdFlags struct {
	Limit int
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the highest scored movies",
	Long:  `Show the movies with the highest vote score. Movies nobody has voted on are not ranked.`,
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

		cat, err := catalog.New(cfg, db)
		if err != nil {
			return fmt.Errorf("failed to create catalog: %w", err)
		}

		movies, err := cat.TopMovies(cmd.Context(), topCmdFlags.Limit)
		if err != nil {
			return fmt.Errorf("failed to get top movies: %w", err)
		}

		if len(movies) == 0 {
			fmt.Println("No rated movies yet.")
			return nil
		}

		fmt.Printf("Top %d movies by vote score:\n", len(movies))
		for i, movie := range movies {
			var score int64
			if movie.Score != nil {
				score = *movie.Score
			}
			fmt.Printf("%3d. %s, score: %+d\n", i+1, movie.String(), score)
		}
		return nil
	},
}

func init() {
	topCmd.Flags().IntVar(&topCmdFlags.Limit, "limit", database.DefaultTopMoviesLimit, "Maximum number of movies to show")
	rootCmd.AddCommand(topCmd)
}
