package database

import (
	"gorm.io/gorm"
)

func (suite *DatabaseTestSuite) TestGetVoteOrBlankVoteUnvoted() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})

	vote, err := suite.client.GetVoteOrBlankVote(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(vote)

	// The blank vote is ready to fill in but not stored yet.
	suite.False(vote.Saved())
	suite.Equal(movie.ID, vote.MovieID)
	suite.Equal(user.ID, vote.UserID)
	suite.Zero(vote.Value)

	var count int64
	suite.Require().NoError(suite.client.db.Model(&Vote{}).Count(&count).Error)
	suite.Zero(count, "asking for a blank vote must not write anything")
}

func (suite *DatabaseTestSuite) TestGetVoteOrBlankVoteExisting() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})
	saved := suite.mustVote(movie.ID, user.ID, VoteUp)

	vote, err := suite.client.GetVoteOrBlankVote(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	suite.True(vote.Saved())
	suite.Equal(saved.ID, vote.ID)
	suite.Equal(VoteUp, vote.Value)
}

func (suite *DatabaseTestSuite) TestSaveVoteInsertThenUpdate() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})

	vote, err := suite.client.GetVoteOrBlankVote(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	vote.Value = VoteUp
	suite.Require().NoError(suite.client.SaveVote(suite.ctx, vote))
	suite.True(vote.Saved())
	suite.NotZero(vote.VotedOn)

	// Changing the vote updates the same row instead of adding another.
	vote.Value = VoteDown
	suite.Require().NoError(suite.client.SaveVote(suite.ctx, vote))

	got, err := suite.client.GetVoteOrBlankVote(suite.ctx, movie.ID, user.ID)
	suite.Require().NoError(err)
	suite.Equal(vote.ID, got.ID)
	suite.Equal(VoteDown, got.Value)

	var count int64
	suite.Require().NoError(suite.client.db.Model(&Vote{}).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *DatabaseTestSuite) TestSaveVoteDuplicatePairRejected() {
	user := suite.mustCreateUser("alice")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})
	suite.mustVote(movie.ID, user.ID, VoteUp)

	// A second insert for the same user and movie trips the unique index.
	// This is what happens when two racing writers both started from a
	// blank vote, the loser gets the error.
	dup := &Vote{MovieID: movie.ID, UserID: user.ID, Value: VoteDown}
	suite.Error(suite.client.SaveVote(suite.ctx, dup))
}

func (suite *DatabaseTestSuite) TestVotesFromDifferentUsersCoexist() {
	u1 := suite.mustCreateUser("alice")
	u2 := suite.mustCreateUser("bob")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})

	suite.mustVote(movie.ID, u1.ID, VoteUp)
	suite.mustVote(movie.ID, u2.ID, VoteDown)

	var count int64
	suite.Require().NoError(suite.client.db.Model(&Vote{}).Count(&count).Error)
	suite.EqualValues(2, count)
}

func (suite *DatabaseTestSuite) TestCreateVotesSkipsExisting() {
	u1 := suite.mustCreateUser("alice")
	u2 := suite.mustCreateUser("bob")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})

	batch := []Vote{
		{MovieID: movie.ID, UserID: u1.ID, Value: VoteUp},
		{MovieID: movie.ID, UserID: u2.ID, Value: VoteUp},
	}
	suite.Require().NoError(suite.client.CreateVotes(suite.ctx, batch))

	again := []Vote{{MovieID: movie.ID, UserID: u1.ID, Value: VoteDown}}
	suite.Require().NoError(suite.client.CreateVotes(suite.ctx, again))

	// The original vote wins, re-imports never flip existing votes.
	got, err := suite.client.GetVoteOrBlankVote(suite.ctx, movie.ID, u1.ID)
	suite.Require().NoError(err)
	suite.Equal(VoteUp, got.Value)
}

func (suite *DatabaseTestSuite) TestGetLatestVote() {
	_, err := suite.client.GetLatestVote(suite.ctx)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	u1 := suite.mustCreateUser("alice")
	u2 := suite.mustCreateUser("bob")
	movie := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021})

	suite.mustVote(movie.ID, u1.ID, VoteUp)
	second := suite.mustVote(movie.ID, u2.ID, VoteDown)

	latest, err := suite.client.GetLatestVote(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(second.ID, latest.ID)
}
