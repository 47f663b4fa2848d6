package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
)

type stubRefresher struct {
	calls int
}

func (r *stubRefresher) RefreshWith(tx *gorm.DB) error {
	r.calls++
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Hunt{},
		&model.Clue{},
		&model.GameSession{},
		&model.ClueAttempt{},
		&model.HintUsage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type GameServiceSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *GameService
	refresher *stubRefresher

	user  *model.User
	hunt  *model.Hunt
	clues []model.Clue
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceSuite))
}

func (s *GameServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.refresher = &stubRefresher{}
	s.service = NewGameService(
		repository.NewGameSessionRepository(s.db),
		repository.NewClueRepository(s.db),
		repository.NewHuntRepository(s.db),
		repository.NewClueAttemptRepository(s.db),
		repository.NewHintUsageRepository(s.db),
		s.refresher,
		s.db,
	)

	s.user = &model.User{Email: "player@example.com", Username: "player", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(s.user).Error)

	s.hunt = &model.Hunt{
		Title:             "Harbor Hunt",
		CreatorID:         s.user.ID,
		IsPublic:          true,
		DifficultyLevel:   model.DifficultyMedium,
		EstimatedDuration: 30,
		TotalClues:        2,
	}
	s.Require().NoError(s.db.Create(s.hunt).Error)

	s.clues = []model.Clue{
		{
			HuntID:        s.hunt.ID,
			SequenceOrder: 1,
			Title:         "First clue",
			Content:       "Where ships dock",
			ClueType:      model.ClueText,
			Answer:        "harbor",
			AnswerType:    model.AnswerExact,
			PointsValue:   100,
		},
		{
			HuntID:        s.hunt.ID,
			SequenceOrder: 2,
			Title:         "Second clue",
			Content:       "Guides them home",
			ClueType:      model.ClueText,
			Answer:        "lighthouse",
			AnswerType:    model.AnswerExact,
			PointsValue:   100,
		},
	}
	for i := range s.clues {
		s.Require().NoError(s.clues[i].SetHints([]string{"hint one", "hint two"}))
		s.Require().NoError(s.db.Create(&s.clues[i]).Error)
	}
}

func (s *GameServiceSuite) startSession() string {
	result, err := s.service.StartGame(s.user.ID, s.hunt.ID)
	s.Require().NoError(err)
	return result.SessionID
}

// StartGame

func (s *GameServiceSuite) TestStartGame() {
	result, err := s.service.StartGame(s.user.ID, s.hunt.ID)
	s.Require().NoError(err)

	s.NotEmpty(result.SessionID)
	s.Equal(s.hunt.ID, result.HuntID)
	s.Equal(2, result.TotalClues)
	s.Equal(1, result.CurrentClueSequence)

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", result.SessionID).Error)
	s.Equal(model.SessionActive, session.Status)
	s.Equal(s.clues[0].ID, session.CurrentClueID)
	s.Equal(0, session.TotalScore)
}

func (s *GameServiceSuite) TestStartGameHuntNotFound() {
	_, err := s.service.StartGame(s.user.ID, 9999)
	s.ErrorIs(err, util.ErrHuntNotFound)
}

func (s *GameServiceSuite) TestStartGamePrivateHunt() {
	other := &model.User{Email: "other@example.com", Username: "other", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(other).Error)

	s.Require().NoError(s.db.Model(s.hunt).Update("is_public", false).Error)

	_, err := s.service.StartGame(other.ID, s.hunt.ID)
	s.ErrorIs(err, util.ErrPermissionDenied)

	// 创建者仍可开始自己的私有猎宝
	_, err = s.service.StartGame(s.user.ID, s.hunt.ID)
	s.NoError(err)
}

func (s *GameServiceSuite) TestStartGameRejectsSecondActiveSession() {
	s.startSession()

	_, err := s.service.StartGame(s.user.ID, s.hunt.ID)
	s.ErrorIs(err, util.ErrActiveSession)
}

func (s *GameServiceSuite) TestStartGameHuntWithoutClues() {
	empty := &model.Hunt{Title: "Empty Hunt", CreatorID: s.user.ID, IsPublic: true, EstimatedDuration: 10}
	s.Require().NoError(s.db.Create(empty).Error)

	_, err := s.service.StartGame(s.user.ID, empty.ID)
	s.ErrorIs(err, util.ErrHuntNoClues)
}

// GetCurrentClue

func (s *GameServiceSuite) TestGetCurrentClue() {
	sessionID := s.startSession()

	result, err := s.service.GetCurrentClue(s.user.ID, sessionID)
	s.Require().NoError(err)

	s.Equal(sessionID, result.Session.ID)
	s.Equal(1, result.Session.CurrentClueSequence)
	s.Equal("First clue", result.Clue.Title)
	s.Equal(2, result.Clue.AvailableHints)
	s.Empty(result.Clue.RevealedHints)
}

func (s *GameServiceSuite) TestGetCurrentClueWrongUser() {
	sessionID := s.startSession()

	other := &model.User{Email: "other@example.com", Username: "other", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(other).Error)

	_, err := s.service.GetCurrentClue(other.ID, sessionID)
	s.ErrorIs(err, util.ErrSessionNotFound)
}

// SubmitAnswer

func (s *GameServiceSuite) TestSubmitWrongAnswer() {
	sessionID := s.startSession()

	result, err := s.service.SubmitAnswer(s.user.ID, sessionID, "windmill")
	s.Require().NoError(err)

	s.False(result.Correct)
	s.Equal(0, result.ScoreEarned)
	s.Equal(1, result.Attempts)

	// 会话停在原线索上
	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(1, session.CurrentClueSequence)
	s.Equal(0, session.TotalScore)

	var attempts int64
	s.Require().NoError(s.db.Model(&model.ClueAttempt{}).Where("session_id = ?", sessionID).Count(&attempts).Error)
	s.EqualValues(1, attempts)
}

func (s *GameServiceSuite) TestSubmitCorrectAnswerAdvances() {
	sessionID := s.startSession()

	result, err := s.service.SubmitAnswer(s.user.ID, sessionID, "  HARBOR ")
	s.Require().NoError(err)

	s.True(result.Correct)
	s.True(result.NextClue)
	s.False(result.GameCompleted)
	s.Equal(100, result.ScoreEarned)

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(2, session.CurrentClueSequence)
	s.Equal(s.clues[1].ID, session.CurrentClueID)
	s.Equal(100, session.TotalScore)
	s.Equal(model.SessionActive, session.Status)
}

func (s *GameServiceSuite) TestSubmitAnswerAttemptPenalty() {
	sessionID := s.startSession()

	for _, wrong := range []string{"windmill", "dock"} {
		result, err := s.service.SubmitAnswer(s.user.ID, sessionID, wrong)
		s.Require().NoError(err)
		s.False(result.Correct)
	}

	// 第 3 次才答对：扣两次重试罚分
	result, err := s.service.SubmitAnswer(s.user.ID, sessionID, "harbor")
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal(80, result.ScoreEarned)
}

func (s *GameServiceSuite) TestCompletingLastClue() {
	sessionID := s.startSession()

	_, err := s.service.SubmitAnswer(s.user.ID, sessionID, "harbor")
	s.Require().NoError(err)

	result, err := s.service.SubmitAnswer(s.user.ID, sessionID, "lighthouse")
	s.Require().NoError(err)

	s.True(result.Correct)
	s.True(result.GameCompleted)

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(model.SessionCompleted, session.Status)
	s.Require().NotNil(session.EndTime)
	s.Equal(200, session.TotalScore)

	// 完成时在同一事务里重算了排行榜
	s.Equal(1, s.refresher.calls)
}

func (s *GameServiceSuite) TestSubmitAfterCompletion() {
	sessionID := s.startSession()

	_, err := s.service.SubmitAnswer(s.user.ID, sessionID, "harbor")
	s.Require().NoError(err)
	_, err = s.service.SubmitAnswer(s.user.ID, sessionID, "lighthouse")
	s.Require().NoError(err)

	_, err = s.service.SubmitAnswer(s.user.ID, sessionID, "anything")
	s.ErrorIs(err, util.ErrSessionNotFound)
}

// UseHint

func (s *GameServiceSuite) TestUseHint() {
	sessionID := s.startSession()

	result, err := s.service.UseHint(s.user.ID, sessionID, 0)
	s.Require().NoError(err)

	s.Equal("hint one", result.Hint)
	s.Equal(10, result.PenaltyPoints)

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(1, session.HintsUsed)
	// 总分不会因提示罚分变成负数
	s.Equal(0, session.TotalScore)
}

func (s *GameServiceSuite) TestUseHintDeductsFromEarnedScore() {
	sessionID := s.startSession()

	_, err := s.service.SubmitAnswer(s.user.ID, sessionID, "harbor")
	s.Require().NoError(err)

	result, err := s.service.UseHint(s.user.ID, sessionID, 1)
	s.Require().NoError(err)
	s.Equal(20, result.PenaltyPoints)

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(80, session.TotalScore)
}

func (s *GameServiceSuite) TestUseHintTwiceRejected() {
	sessionID := s.startSession()

	_, err := s.service.UseHint(s.user.ID, sessionID, 0)
	s.Require().NoError(err)

	_, err = s.service.UseHint(s.user.ID, sessionID, 0)
	s.ErrorIs(err, util.ErrHintAlreadyUsed)

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(1, session.HintsUsed)
}

func (s *GameServiceSuite) TestUseHintInvalidIndex() {
	sessionID := s.startSession()

	_, err := s.service.UseHint(s.user.ID, sessionID, 5)
	s.ErrorIs(err, util.ErrInvalidHintIndex)

	_, err = s.service.UseHint(s.user.ID, sessionID, -1)
	s.ErrorIs(err, util.ErrInvalidHintIndex)
}

func (s *GameServiceSuite) TestRevealedHintsInClueView() {
	sessionID := s.startSession()

	_, err := s.service.UseHint(s.user.ID, sessionID, 1)
	s.Require().NoError(err)

	result, err := s.service.GetCurrentClue(s.user.ID, sessionID)
	s.Require().NoError(err)
	s.Equal([]int{1}, result.Clue.HintsUsed)
	s.Equal([]string{"hint two"}, result.Clue.RevealedHints)
}

// AbandonGame

func (s *GameServiceSuite) TestAbandonGame() {
	sessionID := s.startSession()

	s.Require().NoError(s.service.AbandonGame(s.user.ID, sessionID))

	var session model.GameSession
	s.Require().NoError(s.db.First(&session, "id = ?", sessionID).Error)
	s.Equal(model.SessionAbandoned, session.Status)

	_, err := s.service.GetCurrentClue(s.user.ID, sessionID)
	s.ErrorIs(err, util.ErrSessionNotFound)

	// 放弃后可以重新开始同一猎宝
	_, err = s.service.StartGame(s.user.ID, s.hunt.ID)
	s.NoError(err)
}

func (s *GameServiceSuite) TestAbandonUnknownSession() {
	err := s.service.AbandonGame(s.user.ID, "no-such-session")
	s.ErrorIs(err, util.ErrSessionNotFound)
}
