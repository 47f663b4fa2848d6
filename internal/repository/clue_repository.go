package repository

import (
	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type ClueRepository struct {
	DB *gorm.DB
}

func NewClueRepository(db *gorm.DB) *ClueRepository {
	return &ClueRepository{DB: db}
}

func (r *ClueRepository) FindByID(id uint) (*model.Clue, error) {
	var clue model.Clue
	err := r.DB.First(&clue, id).Error
	return &clue, err
}

// FirstClue 按 sequence_order 取猎宝的第一条线索
func (r *ClueRepository) FirstClue(huntID uint) (*model.Clue, error) {
	var clue model.Clue
	err := r.DB.Where("hunt_id = ?", huntID).
		Order("sequence_order ASC").
		First(&clue).Error
	return &clue, err
}

func (r *ClueRepository) FindBySequence(huntID uint, sequence int) (*model.Clue, error) {
	var clue model.Clue
	err := r.DB.Where("hunt_id = ? AND sequence_order = ?", huntID, sequence).
		First(&clue).Error
	return &clue, err
}
