package cmd

import (
	"fmt"
	"strconv"

	"github.com/Iverick/movies-database/internal/database"
	"github.com/ccoveille/go-safecast"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove records from the catalog",
}

var removeMovieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Remove a movie",
	Long: `Remove a movie together with its votes, images and writing credits.
The removal fails while cast roles still reference the movie.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeRecord(args[0], func(db *database.Client, id uint) error {
			return db.DeleteMovie(cmd.Context(), id)
		}, "movie")
	},
}

var removePersonCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "Remove a person",
	Long: `Remove a person. Movies they directed stay in the catalog without a
director and their writing credits are dropped. The removal fails while cast
roles still reference the person.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeRecord(args[0], func(db *database.Client, id uint) error {
			return db.DeletePerson(cmd.Context(), id)
		}, "person")
	},
}

var removeUserCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Remove a user",
	Long:  `Remove a user together with their votes and uploaded images.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeRecord(args[0], func(db *database.Client, id uint) error {
			return db.DeleteUser(cmd.Context(), id)
		}, "user")
	},
}

func removeRecord(rawID string, remove func(*database.Client, uint) error, kind string) error {
	parsed, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s id %q: %w", kind, rawID, err)
	}
	id, err := safecast.ToUint(parsed)
	if err != nil {
		return fmt.Errorf("invalid %s id %q: %w", kind, rawID, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close() //nolint: errcheck

	if err := remove(db, id); err != nil {
		return fmt.Errorf("failed to remove %s %d: %w", kind, id, err)
	}

	fmt.Printf("Removed %s %d\n", kind, id)
	return nil
}

func init() {
	removeCmd.AddCommand(removeMovieCmd)
	removeCmd.AddCommand(removePersonCmd)
	removeCmd.AddCommand(removeUserCmd)
	rootCmd.AddCommand(removeCmd)
}
