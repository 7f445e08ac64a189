package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Person represents a person with credits in the catalog. The same person
// can direct, write and act, each relation is tracked separately.
type Person struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:140;not null;index:idx_people_name"`
	LastName  string    `gorm:"size:140;not null;index:idx_people_name"`
	Born      time.Time `gorm:"not null"`
	Died      *time.Time

	Directed       []Movie `gorm:"foreignKey:DirectorID;constraint:OnDelete:SET NULL;"`
	WritingCredits []Movie `gorm:"many2many:movie_writers;"`
	Roles          []Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// String implements fmt.Stringer.
func (p Person) String() string {
	if p.Died != nil {
		return fmt.Sprintf("%s, %s (%s-%s)",
			p.LastName, p.FirstName,
			p.Born.Format("2006-01-02"), p.Died.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s, %s (%s)", p.LastName, p.FirstName, p.Born.Format("2006-01-02"))
}

// CreatePerson inserts a single person.
func (c *Client) CreatePerson(ctx context.Context, person *Person) error {
	if err := c.db.WithContext(ctx).Create(person).Error; err != nil {
		log.Error("failed to create person", "first_name", person.FirstName, "last_name", person.LastName, "error", err)
		return err
	}
	return nil
}

// CreatePeople inserts people in bulk, skipping entries that already exist.
func (c *Client) CreatePeople(ctx context.Context, people []Person) error {
	if len(people) == 0 {
		return nil
	}
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&people).Error; err != nil {
		log.Error("failed to create people", "count", len(people), "error", err)
		return err
	}
	return nil
}

// GetPersonByID returns a single person with all their credits loaded.
func (c *Client) GetPersonByID(ctx context.Context, id uint) (*Person, error) {
	var person Person
	if err := c.db.WithContext(ctx).
		Preload("Directed").
		Preload("WritingCredits").
		Preload("Roles.Movie").
		First(&person, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get person by ID", "id", id, "error", err)
		}
		return nil, err
	}
	return &person, nil
}

// GetPeopleWithMovies returns all people ordered by name, with the movies
// they directed, wrote or acted in preloaded in bulk.
func (c *Client) GetPeopleWithMovies(ctx context.Context) ([]Person, error) {
	var people []Person
	result := c.db.WithContext(ctx).
		Preload("Directed").
		Preload("WritingCredits").
		Preload("Roles.Movie").
		Order("first_name ASC, last_name ASC").
		Find(&people)
	if result.Error != nil {
		log.Error("failed to get people with movies", "error", result.Error)
		return nil, result.Error
	}
	return people, nil
}

// DeletePerson removes a person and their writing credits. Movies they
// directed lose the director reference, the delete fails while cast roles
// still reference the person.
func (c *Client) DeletePerson(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Select("WritingCredits").Delete(&Person{ID: id})
	if result.Error != nil {
		log.Error("failed to delete person", "id", id, "error", result.Error)
		return result.Error
	}
	return nil
}
