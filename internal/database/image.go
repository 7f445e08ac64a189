package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// MovieImage records an image uploaded for a movie. The file itself lives
// under the media root at Path, the row only tracks who attached what.
type MovieImage struct {
	ID       uint      `gorm:"primaryKey"`
	Path     string    `gorm:"size:200;not null;uniqueIndex"`
	MovieID  uint      `gorm:"not null;index"`
	Movie    Movie     `gorm:"constraint:OnDelete:CASCADE;"`
	UserID   uint      `gorm:"not null"`
	User     User      `gorm:"constraint:OnDelete:CASCADE;"`
	Uploaded time.Time `gorm:"autoCreateTime"`
}

// ImageStoragePath returns the relative storage path for a new upload. Files
// are grouped per movie and named with a fresh UUID so concurrent uploads of
// the same file never collide.
func ImageStoragePath(movieID uint) string {
	return fmt.Sprintf("%d/%s", movieID, uuid.NewString())
}

// CreateMovieImage records a new image upload for a movie.
func (c *Client) CreateMovieImage(ctx context.Context, movieID, userID uint) (*MovieImage, error) {
	image := MovieImage{
		Path:    ImageStoragePath(movieID),
		MovieID: movieID,
		UserID:  userID,
	}
	if err := c.db.WithContext(ctx).Create(&image).Error; err != nil {
		log.Error("failed to create movie image", "movie", movieID, "user", userID, "error", err)
		return nil, err
	}
	return &image, nil
}

// GetMovieImages returns all images attached to a movie, oldest first.
func (c *Client) GetMovieImages(ctx context.Context, movieID uint) ([]MovieImage, error) {
	var images []MovieImage
	result := c.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("uploaded ASC, id ASC").
		Find(&images)
	if result.Error != nil {
		log.Error("failed to get movie images", "movie", movieID, "error", result.Error)
		return nil, result.Error
	}
	return images, nil
}
