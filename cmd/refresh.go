package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iverick/movies-database/internal/catalog"
	"github.com/Iverick/movies-database/internal/database"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Keep the top movies cache warm",
	Long: `Run a daemon that recomputes the top movies ranking into the cache on a
fixed interval. Useful with a shared redis cache so other consumers always
read a hot entry. Requires cache.refresh_interval to be set.`,
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

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- cat.Run(ctx)
		}()

		// Wait for interrupt signal to gracefully shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		log.Info("cache refresh daemon started", "interval", cfg.Cache.RefreshInterval)
		select {
		case err := <-errCh:
			return err
		case <-sig:
			log.Info("shutting down gracefully...")
			cancel()
			<-errCh
		}

		for _, stats := range cat.CacheStats() {
			log.Info("cache stats",
				"cache", stats.CacheName,
				"hits", stats.Hits,
				"misses", stats.Miss,
			)
		}
		return cat.Close()
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
