package database

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStoragePath(t *testing.T) {
	path := ImageStoragePath(42)

	prefix, name, found := strings.Cut(path, "/")
	require.True(t, found)
	assert.Equal(t, "42", prefix)
	_, err := uuid.Parse(name)
	assert.NoError(t, err, "file part should be a UUID")

	// Two uploads for the same movie never share a path.
	assert.NotEqual(t, path, ImageStoragePath(42))
}

func (suite *DatabaseTestSuite) TestCreateMovieImage() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})

	image, err := suite.client.CreateMovieImage(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(image.Path, "1/"))
	suite.Equal(movie.ID, image.MovieID)
	suite.Equal(user.ID, image.UserID)
	suite.NotZero(image.Uploaded)
}

func (suite *DatabaseTestSuite) TestGetMovieImages() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})
	other := suite.mustCreateMovie(&Movie{Title: "Aurora", Year: 2021})

	first, err := suite.client.CreateMovieImage(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	second, err := suite.client.CreateMovieImage(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	_, err = suite.client.CreateMovieImage(suite.ctx, other.ID, user.ID)
	suite.Require().NoError(err)

	images, err := suite.client.GetMovieImages(suite.ctx, movie.ID)
	suite.Require().NoError(err)
	suite.Require().Len(images, 2)
	suite.Equal(first.ID, images[0].ID)
	suite.Equal(second.ID, images[1].ID)

	images, err = suite.client.GetMovieImages(suite.ctx, other.ID+100)
	suite.Require().NoError(err)
	suite.Empty(images)
}

func (suite *DatabaseTestSuite) TestCreateMovieImageUnknownMovie() {
	user := suite.mustCreateUser("alice")

	_, err := suite.client.CreateMovieImage(suite.ctx, 999, user.ID)
	suite.Error(err, "image rows cannot point at missing movies")
}
