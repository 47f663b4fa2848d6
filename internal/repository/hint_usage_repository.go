package repository

import (
	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type HintUsageRepository struct {
	DB *gorm.DB
}

func NewHintUsageRepository(db *gorm.DB) *HintUsageRepository {
	return &HintUsageRepository{DB: db}
}

func (r *HintUsageRepository) Create(usage *model.HintUsage) error {
	return r.DB.Create(usage).Error
}

func (r *HintUsageRepository) Exists(sessionID string, clueID uint, hintIndex int) (bool, error) {
	var count int64
	err := r.DB.Model(&model.HintUsage{}).
		Where("session_id = ? AND clue_id = ? AND hint_index = ?", sessionID, clueID, hintIndex).
		Count(&count).Error
	return count > 0, err
}

// UsedIndexes 某条线索下已揭示的提示下标，升序
func (r *HintUsageRepository) UsedIndexes(sessionID string, clueID uint) ([]int, error) {
	var indexes []int
	err := r.DB.Model(&model.HintUsage{}).
		Where("session_id = ? AND clue_id = ?", sessionID, clueID).
		Order("hint_index ASC").
		Pluck("hint_index", &indexes).Error
	return indexes, err
}
