package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Vote values. Anything else is rejected before it reaches the database.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote is a single user's up or down vote on a movie. A user gets exactly
// one vote per movie, changing their mind updates the existing row.
type Vote struct {
	ID      uint      `gorm:"primaryKey"`
	Value   int       `gorm:"type:smallint;not null"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_votes_user_movie"`
	User    User      `gorm:"constraint:OnDelete:CASCADE;"`
	MovieID uint      `gorm:"not null;uniqueIndex:idx_votes_user_movie"`
	Movie   Movie     `gorm:"constraint:OnDelete:CASCADE;"`
	VotedOn time.Time `gorm:"autoUpdateTime"`
}

// Saved reports whether the vote has been persisted yet.
func (v *Vote) Saved() bool {
	return v.ID != 0
}

// GetVoteOrBlankVote returns the user's vote on a movie. If the user has not
// voted yet it returns an unsaved vote carrying the movie and user, ready to
// be filled in and passed to SaveVote.
func (c *Client) GetVoteOrBlankVote(ctx context.Context, movieID, userID uint) (*Vote, error) {
	var vote Vote
	err := c.db.WithContext(ctx).
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		First(&vote).Error
	if err == nil {
		return &vote, nil
	}
	if err != gorm.ErrRecordNotFound {
		log.Error("failed to get vote", "movie", movieID, "user", userID, "error", err)
		return nil, err
	}
	return &Vote{MovieID: movieID, UserID: userID}, nil
}

// SaveVote persists a vote, inserting it on first save and updating the
// existing row afterwards. VotedOn is refreshed either way.
func (c *Client) SaveVote(ctx context.Context, vote *Vote) error {
	if err := c.db.WithContext(ctx).Save(vote).Error; err != nil {
		log.Error("failed to save vote", "movie", vote.MovieID, "user", vote.UserID, "error", err)
		return err
	}
	return nil
}

// CreateVotes inserts votes in bulk, skipping entries that already exist.
func (c *Client) CreateVotes(ctx context.Context, votes []Vote) error {
	if len(votes) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&votes).Error; err != nil {
		log.Error("failed to create votes", "count", len(votes), "error", err)
		return err
	}
	return nil
}

// GetLatestVote returns the most recently cast or changed vote.
func (c *Client) GetLatestVote(ctx context.Context) (*Vote, error) {
	var vote Vote
	if err := c.db.WithContext(ctx).Order("voted_on DESC, id DESC").First(&vote).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get latest vote", "error", err)
		}
		return nil, err
	}
	return &vote, nil
}
