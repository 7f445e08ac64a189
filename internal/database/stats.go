package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// CatalogStats provides overall statistics about the catalog.
type CatalogStats struct {
	Movies     int64
	People     int64
	Roles      int64
	Votes      int64
	Images     int64
	TopMovie   *Movie
	LatestVote *time.Time
}

// GetCatalogStats collects row counts and vote highlights in one place.
func (c *Client) GetCatalogStats(ctx context.Context) (*CatalogStats, error) {
	stats := CatalogStats{}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&Movie{}, &stats.Movies},
		{&Person{}, &stats.People},
		{&Role{}, &stats.Roles},
		{&Vote{}, &stats.Votes},
		{&MovieImage{}, &stats.Images},
	}
	for _, count := range counts {
		if err := c.db.WithContext(ctx).Model(count.model).Count(count.dest).Error; err != nil {
			log.Error("failed to count rows for stats", "error", err)
			return nil, err
		}
	}

	top, err := c.GetTopMovies(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		stats.TopMovie = &top[0]
	}

	latest, err := c.GetLatestVote(ctx)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if latest != nil {
		stats.LatestVote = &latest.VotedOn
	}

	return &stats, nil
}
