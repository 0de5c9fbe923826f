package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/echokeys/echokeys/internal/models"
	"github.com/echokeys/echokeys/internal/repository"
	"github.com/echokeys/echokeys/internal/repository/sqlite"
	"github.com/echokeys/echokeys/internal/testutil"
)

type LeaderboardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.LeaderboardRepository
}

func (s *LeaderboardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewLeaderboardRepository(s.db)
}

func (s *LeaderboardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *LeaderboardRepositorySuite) insert(username string, wpm float64, createdAt time.Time) {
	err := s.repo.Insert(context.Background(), models.LeaderboardEntry{
		Username:  username,
		WPM:       wpm,
		Accuracy:  95,
		CreatedAt: createdAt,
	})
	s.Require().NoError(err)
}

func (s *LeaderboardRepositorySuite) TestTop_OrdersByWPMDescending() {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.insert("slow", 40, now)
	s.insert("fast", 95, now)
	s.insert("mid", 80, now)

	entries, err := s.repo.Top(context.Background(), 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Assert().Equal("fast", entries[0].Username)
	s.Assert().Equal("mid", entries[1].Username)
	s.Assert().Equal("slow", entries[2].Username)
	s.Assert().Equal("2026-03-14", entries[0].Date)
}

func (s *LeaderboardRepositorySuite) TestTop_TiesBreakByEarliestEntry() {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.insert("later", 60, base.Add(time.Hour))
	s.insert("earlier", 60, base)

	entries, err := s.repo.Top(context.Background(), 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Assert().Equal("earlier", entries[0].Username)
	s.Assert().Equal("later", entries[1].Username)
}

func (s *LeaderboardRepositorySuite) TestTop_RespectsLimit() {
	now := time.Now().UTC()
	for i := 0; i < 15; i++ {
		s.insert("user", float64(30+i), now)
	}

	entries, err := s.repo.Top(context.Background(), 10)
	s.Require().NoError(err)
	s.Assert().Len(entries, 10)
	s.Assert().Equal(float64(44), entries[0].WPM)
}

func (s *LeaderboardRepositorySuite) TestCountHigher() {
	now := time.Now().UTC()
	s.insert("a", 50, now)
	s.insert("b", 70, now)
	s.insert("c", 90, now)

	count, err := s.repo.CountHigher(context.Background(), 70)
	s.Require().NoError(err)
	s.Assert().Equal(1, count)

	count, err = s.repo.CountHigher(context.Background(), 100)
	s.Require().NoError(err)
	s.Assert().Equal(0, count)
}

func TestLeaderboardRepositorySuite(t *testing.T) {
	suite.Run(t, new(LeaderboardRepositorySuite))
}
