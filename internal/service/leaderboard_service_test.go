package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
)

type LeaderboardServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *LeaderboardService
	hunt    *model.Hunt
}

func TestLeaderboardServiceSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardServiceSuite))
}

func (s *LeaderboardServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())

	// 生产环境由物化视图提供，测试里用同构普通表代替
	s.Require().NoError(s.db.Exec(`CREATE TABLE leaderboard (
		session_id      VARCHAR(36),
		hunt_id         INTEGER,
		user_id         INTEGER,
		username        VARCHAR(50),
		total_score     INTEGER,
		hints_used      INTEGER,
		total_time      INTEGER,
		completion_date DATETIME,
		hunt_rank       INTEGER
	)`).Error)

	s.service = NewLeaderboardService(
		repository.NewLeaderboardRepository(s.db),
		repository.NewHuntRepository(s.db),
		repository.NewGameSessionRepository(s.db),
		nil,
	)

	creator := &model.User{Email: "creator@example.com", Username: "creator", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(creator).Error)

	s.hunt = &model.Hunt{Title: "Harbor Hunt", Description: "By the sea", CreatorID: creator.ID, IsPublic: true, EstimatedDuration: 30, TotalClues: 2}
	s.Require().NoError(s.db.Create(s.hunt).Error)
}

func (s *LeaderboardServiceSuite) insertEntry(sessionID string, userID uint, username string, score, totalTime, rank int) {
	s.Require().NoError(s.db.Exec(
		`INSERT INTO leaderboard (session_id, hunt_id, user_id, username, total_score, hints_used, total_time, completion_date, hunt_rank)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		sessionID, s.hunt.ID, userID, username, score, totalTime, time.Now(), rank,
	).Error)
}

func (s *LeaderboardServiceSuite) TestHuntLeaderboard() {
	s.insertEntry("s1", 1, "alice", 180, 300, 1)
	s.insertEntry("s2", 2, "bob", 150, 250, 2)

	result, err := s.service.HuntLeaderboard(s.hunt.ID, 1, 10)
	s.Require().NoError(err)

	s.Equal("Harbor Hunt", result.Hunt.Title)
	s.Require().Len(result.Leaderboard, 2)
	s.Equal("alice", result.Leaderboard[0].Username)
	s.Equal(1, result.Leaderboard[0].HuntRank)
	s.Equal("05:00", result.Leaderboard[0].TotalTimeFormatted)
	s.EqualValues(2, result.Pagination.Total)
}

func (s *LeaderboardServiceSuite) TestHuntLeaderboardPagination() {
	for i := 1; i <= 15; i++ {
		s.insertEntry("s"+string(rune('a'+i)), uint(i), "player", 200-i, 100+i, i)
	}

	result, err := s.service.HuntLeaderboard(s.hunt.ID, 2, 10)
	s.Require().NoError(err)
	s.Len(result.Leaderboard, 5)
	s.Equal(11, result.Leaderboard[0].HuntRank)
	s.Equal(2, result.Pagination.Page)
	s.Equal(2, result.Pagination.Pages)
}

func (s *LeaderboardServiceSuite) TestHuntLeaderboardUnknownHunt() {
	_, err := s.service.HuntLeaderboard(9999, 1, 10)
	s.ErrorIs(err, util.ErrHuntNotFound)
}

func (s *LeaderboardServiceSuite) TestHuntLeaderboardEmpty() {
	result, err := s.service.HuntLeaderboard(s.hunt.ID, 1, 10)
	s.Require().NoError(err)
	s.Empty(result.Leaderboard)
	s.EqualValues(0, result.Pagination.Total)
}
