package cmd

import (
	"fmt"
	"strconv"

	"github.com/Iverick/movies-database/internal/catalog"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/ccoveille/go-safecast"
	"github.com/spf13/cobra"
)

var voteCmdFlags struct {
	User string
}

var voteCmd = &cobra.Command{
	Use:   "vote <movie-id> <up|down>",
	Short: "Vote on a movie",
	Long: `Cast an up or down vote on a movie as the given user. Voting again on the
same movie replaces the earlier vote.`,
	Example: `moviedb vote 42 up --user frida
  moviedb vote 42 down --user frida`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q: %w", args[0], err)
		}
		movieID, err := safecast.ToUint(parsed)
		if err != nil {
			return fmt.Errorf("invalid movie id %q: %w", args[0], err)
		}

		var value int
		switch args[1] {
		case "up":
			value = database.VoteUp
		case "down":
			value = database.VoteDown
		default:
			return fmt.Errorf("invalid vote %q, must be up or down", args[1])
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

		cat, err := catalog.New(cfg, db)
		if err != nil {
			return fmt.Errorf("failed to create catalog: %w", err)
		}

		movie, err := db.GetMovieByID(cmd.Context(), movieID)
		if err != nil {
			return fmt.Errorf("failed to find movie %d: %w", movieID, err)
		}

		user, err := db.GetOrCreateUser(cmd.Context(), voteCmdFlags.User)
		if err != nil {
			return fmt.Errorf("failed to find user %s: %w", voteCmdFlags.User, err)
		}

		if _, err := cat.CastVote(cmd.Context(), movie.ID, user.ID, value); err != nil {
			return fmt.Errorf("failed to cast vote: %w", err)
		}

		fmt.Printf("Voted %s on %s as %s\n", args[1], movie.String(), user.Username)
		return nil
	},
}

func init() {
	voteCmd.Flags().StringVar(&voteCmdFlags.User, "user", "", "Username to vote as")
	_ = voteCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(voteCmd)
}
