package service

import (
	"errors"
	"time"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"gorm.io/gorm"
)

// LeaderboardRefresher 完成会话时在同一事务里重算排行榜
type LeaderboardRefresher interface {
	RefreshWith(tx *gorm.DB) error
}

type GameService struct {
	SessionRepo *repository.GameSessionRepository
	ClueRepo    *repository.ClueRepository
	HuntRepo    *repository.HuntRepository
	AttemptRepo *repository.ClueAttemptRepository
	HintRepo    *repository.HintUsageRepository
	Leaderboard LeaderboardRefresher
	DB          *gorm.DB
}

func NewGameService(
	sessionRepo *repository.GameSessionRepository,
	clueRepo *repository.ClueRepository,
	huntRepo *repository.HuntRepository,
	attemptRepo *repository.ClueAttemptRepository,
	hintRepo *repository.HintUsageRepository,
	leaderboard LeaderboardRefresher,
	db *gorm.DB,
) *GameService {
	return &GameService{
		SessionRepo: sessionRepo,
		ClueRepo:    clueRepo,
		HuntRepo:    huntRepo,
		AttemptRepo: attemptRepo,
		HintRepo:    hintRepo,
		Leaderboard: leaderboard,
		DB:          db,
	}
}

type StartGameResult struct {
	SessionID           string    `json:"sessionId"`
	HuntID              uint      `json:"huntId"`
	HuntTitle           string    `json:"huntTitle"`
	TotalClues          int       `json:"totalClues"`
	StartTime           time.Time `json:"startTime"`
	CurrentClueSequence int       `json:"currentClueSequence"`
}

func (s *GameService) StartGame(userID, huntID uint) (*StartGameResult, error) {
	hunt, err := s.HuntRepo.FindByID(huntID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHuntNotFound
	}
	if err != nil {
		return nil, err
	}

	if !hunt.IsPublic && hunt.CreatorID != userID {
		return nil, util.ErrPermissionDenied
	}

	active, err := s.SessionRepo.HasActiveForHunt(userID, huntID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, util.ErrActiveSession
	}

	firstClue, err := s.ClueRepo.FirstClue(huntID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHuntNoClues
	}
	if err != nil {
		return nil, err
	}

	session := &model.GameSession{
		UserID:              userID,
		HuntID:              huntID,
		CurrentClueID:       firstClue.ID,
		CurrentClueSequence: firstClue.SequenceOrder,
		StartTime:           time.Now(),
		Status:              model.SessionActive,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &StartGameResult{
		SessionID:           session.ID,
		HuntID:              huntID,
		HuntTitle:           hunt.Title,
		TotalClues:          hunt.TotalClues,
		StartTime:           session.StartTime,
		CurrentClueSequence: firstClue.SequenceOrder,
	}, nil
}

type SessionView struct {
	ID                  string `json:"id"`
	HuntID              uint   `json:"huntId"`
	HuntTitle           string `json:"huntTitle"`
	TotalClues          int    `json:"totalClues"`
	CurrentClueSequence int    `json:"currentClueSequence"`
	TotalScore          int    `json:"totalScore"`
	HintsUsed           int    `json:"hintsUsed"`
	ElapsedTime         int    `json:"elapsedTime"`
}

type ClueView struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	ClueType       model.ClueType `json:"clueType"`
	MediaURL       string         `json:"mediaUrl"`
	PointsValue    int            `json:"pointsValue"`
	AvailableHints int            `json:"availableHints"`
	HintsUsed      []int          `json:"hintsUsed"`
	RevealedHints  []string       `json:"revealedHints"`
}

type CurrentClueResult struct {
	Session SessionView `json:"session"`
	Clue    ClueView    `json:"clue"`
}

// GetCurrentClue 当前线索视图，答案不下发
func (s *GameService) GetCurrentClue(userID uint, sessionID string) (*CurrentClueResult, error) {
	session, err := s.SessionRepo.FindActive(sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	clue, err := s.ClueRepo.FindByID(session.CurrentClueID)
	if err != nil {
		return nil, err
	}

	hunt, err := s.HuntRepo.FindByID(session.HuntID)
	if err != nil {
		return nil, err
	}

	usedIndexes, err := s.HintRepo.UsedIndexes(sessionID, clue.ID)
	if err != nil {
		return nil, err
	}

	hints := clue.HintList()
	revealed := make([]string, 0, len(usedIndexes))
	for _, idx := range usedIndexes {
		if idx >= 0 && idx < len(hints) {
			revealed = append(revealed, hints[idx])
		}
	}
	if usedIndexes == nil {
		usedIndexes = []int{}
	}

	return &CurrentClueResult{
		Session: SessionView{
			ID:                  session.ID,
			HuntID:              session.HuntID,
			HuntTitle:           hunt.Title,
			TotalClues:          hunt.TotalClues,
			CurrentClueSequence: session.CurrentClueSequence,
			TotalScore:          session.TotalScore,
			HintsUsed:           session.HintsUsed,
			ElapsedTime:         int(time.Since(session.StartTime).Seconds()),
		},
		Clue: ClueView{
			ID:             clue.ID,
			Title:          clue.Title,
			Content:        clue.Content,
			ClueType:       clue.ClueType,
			MediaURL:       clue.MediaURL,
			PointsValue:    clue.PointsValue,
			AvailableHints: len(hints),
			HintsUsed:      usedIndexes,
			RevealedHints:  revealed,
		},
	}, nil
}

type AnswerResult struct {
	Correct       bool   `json:"correct"`
	ScoreEarned   int    `json:"scoreEarned"`
	GameCompleted bool   `json:"gameCompleted,omitempty"`
	NextClue      bool   `json:"nextClue,omitempty"`
	Attempts      int    `json:"attempts,omitempty"`
	Message       string `json:"message"`
}

// SubmitAnswer 记录尝试、计分并推进会话，整个步骤单事务执行
// 任何一步失败整体回滚，会话不会停在中间状态
func (s *GameService) SubmitAnswer(userID uint, sessionID, answer string) (*AnswerResult, error) {
	var result AnswerResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewGameSessionRepository(tx)
		clues := repository.NewClueRepository(tx)
		attempts := repository.NewClueAttemptRepository(tx)

		session, err := sessions.FindActive(sessionID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		clue, err := clues.FindByID(session.CurrentClueID)
		if err != nil {
			return err
		}

		hunt, err := repository.NewHuntRepository(tx).FindByID(session.HuntID)
		if err != nil {
			return err
		}

		isCorrect := EvaluateAnswer(answer, clue.Answer, clue.AnswerType)

		attemptCount, err := attempts.CountForClue(sessionID, clue.ID)
		if err != nil {
			return err
		}
		attemptNumber := int(attemptCount) + 1

		// 计时起点：会话内最近一次提交，若没有则取会话开始时间
		clueStart := session.StartTime
		lastAttempt, err := attempts.LastAttempt(sessionID)
		if err != nil {
			return err
		}
		if lastAttempt != nil {
			clueStart = lastAttempt.CreatedAt
		}
		timeTaken := int(time.Since(clueStart).Seconds())

		scoreEarned := 0
		if isCorrect {
			scoreEarned = ComputeClueScore(clue.PointsValue, timeTaken, attemptNumber)
		}

		attempt := &model.ClueAttempt{
			SessionID:     sessionID,
			ClueID:        clue.ID,
			UserAnswer:    answer,
			IsCorrect:     isCorrect,
			AttemptNumber: attemptNumber,
			TimeTaken:     timeTaken,
			ScoreEarned:   scoreEarned,
		}
		if err := attempts.Create(attempt); err != nil {
			return err
		}

		if !isCorrect {
			result = AnswerResult{
				Correct:     false,
				ScoreEarned: 0,
				Attempts:    attemptNumber,
				Message:     "Incorrect answer. Try again!",
			}
			return nil
		}

		if err := sessions.AddScore(sessionID, scoreEarned); err != nil {
			return err
		}

		if session.CurrentClueSequence >= hunt.TotalClues {
			// 最后一条线索：完成会话并在同一事务内重算排行榜
			if err := sessions.Complete(sessionID); err != nil {
				return err
			}

			if err := s.Leaderboard.RefreshWith(tx); err != nil {
				return err
			}

			result = AnswerResult{
				Correct:       true,
				ScoreEarned:   scoreEarned,
				GameCompleted: true,
				Message:       "Congratulations! You completed the hunt!",
			}
			return nil
		}

		nextClue, err := clues.FindBySequence(session.HuntID, session.CurrentClueSequence+1)
		if err == nil {
			if err := sessions.Advance(sessionID, nextClue.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		result = AnswerResult{
			Correct:     true,
			ScoreEarned: scoreEarned,
			NextClue:    true,
			Message:     "Correct! Moving to the next clue.",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type HintResult struct {
	Hint          string `json:"hint"`
	PenaltyPoints int    `json:"penaltyPoints"`
	Message       string `json:"message"`
}

// UseHint 揭示提示并扣分，同一提示重复请求被拒绝而不是重复扣分
func (s *GameService) UseHint(userID uint, sessionID string, hintIndex int) (*HintResult, error) {
	var result HintResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewGameSessionRepository(tx)
		hintUsages := repository.NewHintUsageRepository(tx)

		session, err := sessions.FindActive(sessionID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		clue, err := repository.NewClueRepository(tx).FindByID(session.CurrentClueID)
		if err != nil {
			return err
		}

		hints := clue.HintList()
		if hintIndex < 0 || hintIndex >= len(hints) {
			return util.ErrInvalidHintIndex
		}

		used, err := hintUsages.Exists(sessionID, clue.ID, hintIndex)
		if err != nil {
			return err
		}
		if used {
			return util.ErrHintAlreadyUsed
		}

		penalty := HintPenalty(hintIndex)

		usage := &model.HintUsage{
			SessionID:     sessionID,
			ClueID:        clue.ID,
			HintIndex:     hintIndex,
			PenaltyPoints: penalty,
		}
		if err := hintUsages.Create(usage); err != nil {
			return err
		}

		if err := sessions.ApplyHint(sessionID, ApplyHintPenalty(session.TotalScore, penalty)); err != nil {
			return err
		}

		result = HintResult{
			Hint:          hints[hintIndex],
			PenaltyPoints: penalty,
			Message:       "Hint revealed!",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *GameService) AbandonGame(userID uint, sessionID string) error {
	ok, err := s.SessionRepo.Abandon(sessionID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrSessionNotFound
	}
	return nil
}
