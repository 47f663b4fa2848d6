package repository

import (
	"time"

	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type HuntRepository struct {
	DB *gorm.DB
}

func NewHuntRepository(db *gorm.DB) *HuntRepository {
	return &HuntRepository{DB: db}
}

// HuntListItem 列表行，附带创建者与游玩统计
type HuntListItem struct {
	ID                uint                  `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	DifficultyLevel   model.DifficultyLevel `json:"difficultyLevel"`
	EstimatedDuration int                   `json:"estimatedDuration"`
	TotalClues        int                   `json:"totalClues"`
	IsPublic          bool                  `json:"isPublic"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatorID         uint                  `json:"creatorId"`
	CreatorName       string                `json:"creatorName"`
	PlayCount         int64                 `json:"playCount"`
	CompletionCount   int64                 `json:"completionCount"`
}

type HuntFilter struct {
	Difficulty string
	Creator    string
	Page       int
	Limit      int
}

const huntListColumns = `h.id, h.title, h.description, h.difficulty_level, h.estimated_duration,
	h.total_clues, h.is_public, h.created_at, h.creator_id, u.username AS creator_name,
	COUNT(gs.id) AS play_count,
	COUNT(CASE WHEN gs.status = 'completed' THEN 1 END) AS completion_count`

func (r *HuntRepository) listQuery() *gorm.DB {
	return r.DB.Table("hunts h").
		Select(huntListColumns).
		Joins("JOIN users u ON u.id = h.creator_id").
		Joins("LEFT JOIN game_sessions gs ON gs.hunt_id = h.id").
		Where("h.deleted_at IS NULL").
		Group("h.id, h.title, h.description, h.difficulty_level, h.estimated_duration, h.total_clues, h.is_public, h.created_at, h.creator_id, u.username")
}

func (r *HuntRepository) ListPublic(filter HuntFilter) ([]HuntListItem, int64, error) {
	query := r.listQuery().Where("h.is_public = ?", true)
	countQuery := r.DB.Table("hunts h").
		Joins("JOIN users u ON u.id = h.creator_id").
		Where("h.deleted_at IS NULL AND h.is_public = ?", true)

	if filter.Difficulty != "" {
		query = query.Where("h.difficulty_level = ?", filter.Difficulty)
		countQuery = countQuery.Where("h.difficulty_level = ?", filter.Difficulty)
	}
	if filter.Creator != "" {
		pattern := "%" + filter.Creator + "%"
		query = query.Where("LOWER(u.username) LIKE LOWER(?)", pattern)
		countQuery = countQuery.Where("LOWER(u.username) LIKE LOWER(?)", pattern)
	}

	var total int64
	if err := countQuery.Distinct("h.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []HuntListItem
	err := query.
		Order("h.created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Scan(&items).Error
	return items, total, err
}

func (r *HuntRepository) ListByCreator(creatorID uint) ([]HuntListItem, error) {
	var items []HuntListItem
	err := r.listQuery().
		Where("h.creator_id = ?", creatorID).
		Order("h.created_at DESC").
		Scan(&items).Error
	return items, err
}

func (r *HuntRepository) FindByID(id uint) (*model.Hunt, error) {
	var hunt model.Hunt
	err := r.DB.First(&hunt, id).Error
	return &hunt, err
}

func (r *HuntRepository) FindDetailByID(id uint) (*HuntListItem, error) {
	var item HuntListItem
	err := r.listQuery().Where("h.id = ?", id).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

// Delete 硬删除，依赖外键级联清理线索与会话
func (r *HuntRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Hunt{}, id).Error
}
