package cmd

import (
	"fmt"

	"github.com/Iverick/movies-database/internal/database"
	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long:  `Display statistics about the movie catalog, its people and the votes cast.`,
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

		stats, err := db.GetCatalogStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get catalog stats: %w", err)
		}

		fmt.Println("Catalog Statistics:")
		fmt.Printf("Movies: %s\n", humanize.Comma(stats.Movies))
		fmt.Printf("People: %s\n", humanize.Comma(stats.People))
		fmt.Printf("Roles: %s\n", humanize.Comma(stats.Roles))
		fmt.Printf("Votes: %s\n", humanize.Comma(stats.Votes))
		fmt.Printf("Images: %s\n", humanize.Comma(stats.Images))

		if stats.TopMovie != nil && stats.TopMovie.Score != nil {
			fmt.Printf("Top Movie: %s with a score of %+d\n", stats.TopMovie.String(), *stats.TopMovie.Score)
		}
		if stats.LatestVote != nil {
			fmt.Printf("Latest Vote: %s\n", timediff.TimeDiff(*stats.LatestVote))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
