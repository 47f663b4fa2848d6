package repository

import (
	"time"

	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

// RefreshWith 排名全量重算，不做增量维护；tx 可以是进行中的事务
func (r *LeaderboardRepository) RefreshWith(tx *gorm.DB) error {
	return tx.Exec("REFRESH MATERIALIZED VIEW leaderboard").Error
}

func (r *LeaderboardRepository) Refresh() error {
	return r.RefreshWith(r.DB)
}

func (r *LeaderboardRepository) HuntTop(huntID uint, page, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Table("leaderboard").
		Where("hunt_id = ?", huntID).
		Order("hunt_rank ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error
	return entries, err
}

func (r *LeaderboardRepository) CountByHunt(huntID uint) (int64, error) {
	var count int64
	err := r.DB.Table("leaderboard").Where("hunt_id = ?", huntID).Count(&count).Error
	return count, err
}

func timeframeCutoff(timeframe string) *time.Time {
	var cutoff time.Time
	switch timeframe {
	case "week":
		cutoff = time.Now().AddDate(0, 0, -7)
	case "month":
		cutoff = time.Now().AddDate(0, 0, -30)
	default:
		return nil
	}
	return &cutoff
}

func (r *LeaderboardRepository) Global(timeframe string, page, limit int) ([]model.GlobalLeaderboardRow, error) {
	query := r.DB.Table("leaderboard").
		Select(`user_id, username,
			COUNT(*) AS hunts_completed,
			SUM(total_score) AS total_score,
			AVG(total_time)::INTEGER AS avg_time,
			SUM(hints_used) AS total_hints_used,
			MAX(completion_date) AS last_completion,
			ROW_NUMBER() OVER (ORDER BY SUM(total_score) DESC, AVG(total_time) ASC) AS rank`).
		Group("user_id, username")

	if cutoff := timeframeCutoff(timeframe); cutoff != nil {
		query = query.Where("completion_date >= ?", *cutoff)
	}

	var rows []model.GlobalLeaderboardRow
	err := query.
		Order("total_score DESC, avg_time ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error
	return rows, err
}

func (r *LeaderboardRepository) CountGlobal(timeframe string) (int64, error) {
	query := r.DB.Table("leaderboard")
	if cutoff := timeframeCutoff(timeframe); cutoff != nil {
		query = query.Where("completion_date >= ?", *cutoff)
	}
	var count int64
	err := query.Distinct("user_id").Count(&count).Error
	return count, err
}

// BestPerformance 用户历史最佳成绩
type BestPerformance struct {
	HuntTitle      string    `json:"huntTitle"`
	TotalScore     int       `json:"totalScore"`
	TotalTime      int       `json:"totalTime"`
	HintsUsed      int       `json:"hintsUsed"`
	HuntRank       int       `json:"huntRank"`
	CompletionDate time.Time `json:"completionDate"`
}

func (r *LeaderboardRepository) BestPerformances(userID uint, limit int) ([]BestPerformance, error) {
	var rows []BestPerformance
	err := r.DB.Table("leaderboard l").
		Select("h.title AS hunt_title, l.total_score, l.total_time, l.hints_used, l.hunt_rank, l.completion_date").
		Joins("JOIN hunts h ON h.id = l.hunt_id").
		Where("l.user_id = ?", userID).
		Order("l.total_score DESC, l.total_time ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// UserGameStats 用户总体游玩统计
type UserGameStats struct {
	Username          string  `json:"username"`
	TotalGames        int64   `json:"totalGames"`
	CompletedGames    int64   `json:"completedGames"`
	ActiveGames       int64   `json:"activeGames"`
	HuntsCreated      int64   `json:"huntsCreated"`
	AvgScore          float64 `json:"avgScore"`
	AvgCompletionTime float64 `json:"avgCompletionTime"`
}

func (r *LeaderboardRepository) UserStats(userID uint) (*UserGameStats, error) {
	var stats UserGameStats
	err := r.DB.Table("users u").
		Select(`u.username,
			COUNT(DISTINCT gs.id) AS total_games,
			COUNT(DISTINCT CASE WHEN gs.status = 'completed' THEN gs.id END) AS completed_games,
			COUNT(DISTINCT CASE WHEN gs.status = 'active' THEN gs.id END) AS active_games,
			COUNT(DISTINCT h.id) AS hunts_created,
			COALESCE(AVG(CASE WHEN gs.status = 'completed' THEN gs.total_score END), 0) AS avg_score,
			COALESCE(AVG(CASE WHEN gs.status = 'completed' THEN EXTRACT(EPOCH FROM (gs.end_time - gs.start_time)) END), 0) AS avg_completion_time`).
		Joins("LEFT JOIN game_sessions gs ON gs.user_id = u.id").
		Joins("LEFT JOIN hunts h ON h.creator_id = u.id").
		Where("u.id = ? AND u.deleted_at IS NULL", userID).
		Group("u.id, u.username").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	if stats.Username == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &stats, nil
}
