package cmd

import (
	"fmt"

	"github.com/Iverick/movies-database/internal/database"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmdFlags struct {
	Page     int
	PageSize int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies in the catalog",
	Long:  `List movies page by page, newest release years first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if listCmdFlags.Page < 1 {
			listCmdFlags.Page = 1
		}
		if listCmdFlags.PageSize < 1 {
			listCmdFlags.PageSize = 20
		}

		db, err := database.New(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		movies, total, err := db.ListMovies(cmd.Context(), listCmdFlags.Page, listCmdFlags.PageSize)
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}

		if total == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}

		pages := (total + int64(listCmdFlags.PageSize) - 1) / int64(listCmdFlags.PageSize)
		fmt.Printf("Movies (page %d of %d, %s total):\n", listCmdFlags.Page, pages, humanize.Comma(total))
		for _, movie := range movies {
			fmt.Printf("  %s [%s]\n", movie.String(), movie.Rating.String())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listCmdFlags.Page, "page", 1, "Page to show")
	listCmd.Flags().IntVar(&listCmdFlags.PageSize, "page-size", 20, "Movies per page")
	rootCmd.AddCommand(listCmd)
}
