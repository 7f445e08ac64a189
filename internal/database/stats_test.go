package database

func (suite *DatabaseTestSuite) TestGetCatalogStatsEmpty() {
	stats, err := suite.client.GetCatalogStats(suite.ctx)
	suite.Require().NoError(err)

	suite.Zero(stats.Movies)
	suite.Zero(stats.People)
	suite.Zero(stats.Roles)
	suite.Zero(stats.Votes)
	suite.Zero(stats.Images)
	suite.Nil(stats.TopMovie)
	suite.Nil(stats.LatestVote)
}

func (suite *DatabaseTestSuite) TestGetCatalogStats() {
	director, actor, _ := suite.seedPeople()
	user := suite.mustCreateUser("alice")

	best := suite.mustCreateMovie(&Movie{Title: "Harbor Lights", Year: 2021, DirectorID: &director.ID})
	other := suite.mustCreateMovie(&Movie{Title: "Aurora", Year: 2021})
	_, err := suite.client.CreateRole(suite.ctx, other.ID, actor.ID, "Captain")
	suite.Require().NoError(err)
	suite.mustVote(best.ID, user.ID, VoteUp)
	_, err = suite.client.CreateMovieImage(suite.ctx, best.ID, user.ID)
	suite.Require().NoError(err)

	stats, err := suite.client.GetCatalogStats(suite.ctx)
	suite.Require().NoError(err)

	suite.EqualValues(2, stats.Movies)
	suite.EqualValues(3, stats.People)
	suite.EqualValues(1, stats.Roles)
	suite.EqualValues(1, stats.Votes)
	suite.EqualValues(1, stats.Images)

	suite.Require().NotNil(stats.TopMovie)
	suite.Equal("Harbor Lights", stats.TopMovie.Title)
	suite.Require().NotNil(stats.TopMovie.Score)
	suite.EqualValues(1, *stats.TopMovie.Score)
	suite.NotNil(stats.LatestVote)
}
