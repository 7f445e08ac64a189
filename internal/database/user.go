package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User represents a user in the database.
// It only carries what the catalog needs to attribute votes and uploads,
// authentication happens elsewhere.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:150;uniqueIndex;not null"`
	Email    string `gorm:"size:254"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) CreateUser(ctx context.Context, username string) (*User, error) {
	user := User{
		Username: username,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

// CreateUsers inserts users in bulk, skipping entries that already exist.
func (c *Client) CreateUsers(ctx context.Context, users []User) error {
	if len(users) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users).Error; err != nil {
		log.Error("failed to create users", "count", len(users), "error", err)
		return err
	}
	return nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetOrCreateUser(ctx context.Context, username string) (*User, error) {
	user, err := c.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	user, err = c.CreateUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user together with their votes and image records.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		log.Error("failed to delete user", "id", id, "error", result.Error)
		return result.Error
	}
	return nil
}
