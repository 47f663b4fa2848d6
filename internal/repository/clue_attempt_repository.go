package repository

import (
	"errors"

	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type ClueAttemptRepository struct {
	DB *gorm.DB
}

func NewClueAttemptRepository(db *gorm.DB) *ClueAttemptRepository {
	return &ClueAttemptRepository{DB: db}
}

func (r *ClueAttemptRepository) Create(attempt *model.ClueAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *ClueAttemptRepository) CountForClue(sessionID string, clueID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ClueAttempt{}).
		Where("session_id = ? AND clue_id = ?", sessionID, clueID).
		Count(&count).Error
	return count, err
}

// LastAttempt 会话内最近一次提交，没有记录时返回 nil
func (r *ClueAttemptRepository) LastAttempt(sessionID string) (*model.ClueAttempt, error) {
	var attempt model.ClueAttempt
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
