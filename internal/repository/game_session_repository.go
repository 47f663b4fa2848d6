package repository

import (
	"time"

	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type GameSessionRepository struct {
	DB *gorm.DB
}

func NewGameSessionRepository(db *gorm.DB) *GameSessionRepository {
	return &GameSessionRepository{DB: db}
}

func (r *GameSessionRepository) Create(session *model.GameSession) error {
	return r.DB.Create(session).Error
}

// FindActive 按会话与持有者查找 active 会话
func (r *GameSessionRepository) FindActive(sessionID string, userID uint) (*model.GameSession, error) {
	var session model.GameSession
	err := r.DB.Where("id = ? AND user_id = ? AND status = ?", sessionID, userID, model.SessionActive).
		First(&session).Error
	return &session, err
}

func (r *GameSessionRepository) HasActiveForHunt(userID, huntID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.GameSession{}).
		Where("user_id = ? AND hunt_id = ? AND status = ?", userID, huntID, model.SessionActive).
		Count(&count).Error
	return count > 0, err
}

func (r *GameSessionRepository) AddScore(sessionID string, points int) error {
	return r.DB.Model(&model.GameSession{}).
		Where("id = ?", sessionID).
		Update("total_score", gorm.Expr("total_score + ?", points)).Error
}

// Advance 移动到下一条线索
func (r *GameSessionRepository) Advance(sessionID string, nextClueID uint) error {
	return r.DB.Model(&model.GameSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"current_clue_id":       nextClueID,
			"current_clue_sequence": gorm.Expr("current_clue_sequence + 1"),
		}).Error
}

// Complete 标记完成并落下结束时间
func (r *GameSessionRepository) Complete(sessionID string) error {
	return r.DB.Model(&model.GameSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":   model.SessionCompleted,
			"end_time": time.Now(),
		}).Error
}

// ApplyHint 提示计数加一，总分由调用方算好后整体覆盖
func (r *GameSessionRepository) ApplyHint(sessionID string, totalScore int) error {
	return r.DB.Model(&model.GameSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"hints_used":  gorm.Expr("hints_used + 1"),
			"total_score": totalScore,
		}).Error
}

// Abandon 仅从 active 状态迁移，已终止的会话不可再变更
func (r *GameSessionRepository) Abandon(sessionID string, userID uint) (bool, error) {
	result := r.DB.Model(&model.GameSession{}).
		Where("id = ? AND user_id = ? AND status = ?", sessionID, userID, model.SessionActive).
		Update("status", model.SessionAbandoned)
	return result.RowsAffected > 0, result.Error
}

// RecentActivity 用户最近的游玩记录
type RecentActivity struct {
	HuntTitle  string              `json:"huntTitle"`
	Status     model.SessionStatus `json:"status"`
	TotalScore int                 `json:"totalScore"`
	StartTime  string              `json:"startTime"`
	EndTime    *string             `json:"endTime,omitempty"`
	Duration   *int                `json:"duration,omitempty"`
}

func (r *GameSessionRepository) RecentActivityByUser(userID uint, limit int) ([]RecentActivity, error) {
	var rows []RecentActivity
	err := r.DB.Table("game_sessions gs").
		Select(`h.title AS hunt_title, gs.status, gs.total_score, gs.start_time, gs.end_time,
			CASE WHEN gs.status = 'completed'
				THEN EXTRACT(EPOCH FROM (gs.end_time - gs.start_time))::INTEGER
				ELSE NULL END AS duration`).
		Joins("JOIN hunts h ON h.id = gs.hunt_id").
		Where("gs.user_id = ? AND gs.deleted_at IS NULL", userID).
		Order("gs.start_time DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
