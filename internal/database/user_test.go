package database

import (
	"gorm.io/gorm"
)

func (suite *DatabaseTestSuite) TestCreateUser() {
	user := suite.mustCreateUser("alice")
	suite.NotZero(user.ID)
	suite.Equal("alice", user.Username)

	// Usernames are unique.
	_, err := suite.client.CreateUser(suite.ctx, "alice")
	suite.Error(err)
}

func (suite *DatabaseTestSuite) TestGetUserByUsername() {
	suite.mustCreateUser("alice")

	user, err := suite.client.GetUserByUsername(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)

	_, err = suite.client.GetUserByUsername(suite.ctx, "nobody")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *DatabaseTestSuite) TestGetOrCreateUser() {
	created, err := suite.client.GetOrCreateUser(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.NotZero(created.ID)

	fetched, err := suite.client.GetOrCreateUser(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(created.ID, fetched.ID)

	var count int64
	suite.Require().NoError(suite.client.db.Model(&User{}).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *DatabaseTestSuite) TestCreateUsersSkipsExisting() {
	batch := []User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}
	suite.Require().NoError(suite.client.CreateUsers(suite.ctx, batch))
	suite.Require().NoError(suite.client.CreateUsers(suite.ctx, batch))

	var count int64
	suite.Require().NoError(suite.client.db.Model(&User{}).Count(&count).Error)
	suite.EqualValues(2, count)
}

func (suite *DatabaseTestSuite) TestDeleteUserCascades() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})
	suite.mustVote(movie.ID, user.ID, VoteUp)
	_, err := suite.client.CreateMovieImage(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.client.DeleteUser(suite.ctx, user.ID))

	var votes, images int64
	suite.Require().NoError(suite.client.db.Model(&Vote{}).Count(&votes).Error)
	suite.Require().NoError(suite.client.db.Model(&MovieImage{}).Count(&images).Error)
	suite.Zero(votes)
	suite.Zero(images)

	// The movie itself is untouched.
	_, err = suite.client.GetMovieByID(suite.ctx, movie.ID)
	suite.NoError(err)
}
