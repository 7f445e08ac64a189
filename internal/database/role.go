package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm/clause"
)

// Role is an acting credit connecting a person to a movie. The same person
// can appear in a movie more than once, but only under different role names.
// Roles intentionally carry no delete action, a movie or person with roles
// attached cannot be removed until the roles are gone.
type Role struct {
	ID       uint `gorm:"primaryKey"`
	MovieID  uint `gorm:"not null;uniqueIndex:idx_roles_movie_person_name"`
	Movie    Movie
	PersonID uint `gorm:"not null;uniqueIndex:idx_roles_movie_person_name"`
	Person   Person
	Name     string `gorm:"size:140;not null;uniqueIndex:idx_roles_movie_person_name"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return fmt.Sprintf("%d %d %s", r.MovieID, r.PersonID, r.Name)
}

// CreateRole casts a person in a movie under the given role name.
func (c *Client) CreateRole(ctx context.Context, movieID, personID uint, name string) (*Role, error) {
	role := Role{
		MovieID:  movieID,
		PersonID: personID,
		Name:     name,
	}
	if err := c.db.WithContext(ctx).Create(&role).Error; err != nil {
		log.Error("failed to create role", "movie", movieID, "person", personID, "name", name, "error", err)
		return nil, err
	}
	return &role, nil
}

// CreateRoles inserts roles in bulk, skipping entries that already exist.
func (c *Client) CreateRoles(ctx context.Context, roles []Role) error {
	if len(roles) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&roles).Error; err != nil {
		log.Error("failed to create roles", "count", len(roles), "error", err)
		return err
	}
	return nil
}
