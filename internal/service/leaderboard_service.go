package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
	"treasure_hunt_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = 60 * time.Second

type LeaderboardService struct {
	Repo        *repository.LeaderboardRepository
	HuntRepo    *repository.HuntRepository
	SessionRepo *repository.GameSessionRepository
	Redis       *redis.Client
}

func NewLeaderboardService(
	repo *repository.LeaderboardRepository,
	huntRepo *repository.HuntRepository,
	sessionRepo *repository.GameSessionRepository,
	rdb *redis.Client,
) *LeaderboardService {
	return &LeaderboardService{
		Repo:        repo,
		HuntRepo:    huntRepo,
		SessionRepo: sessionRepo,
		Redis:       rdb,
	}
}

// RefreshWith 在调用方的事务里重算物化视图，随后让页面缓存失效
func (s *LeaderboardService) RefreshWith(tx *gorm.DB) error {
	if err := s.Repo.RefreshWith(tx); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *LeaderboardService) Refresh() error {
	if err := s.Repo.Refresh(); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *LeaderboardService) invalidateCache() {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys, err := s.Redis.Keys(ctx, "leaderboard:*").Result()
	if err != nil {
		logger.Log.Warn("leaderboard cache invalidation failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		s.Redis.Del(ctx, keys...)
	}
}

func (s *LeaderboardService) fromCache(key string, dest interface{}) bool {
	if s.Redis == nil {
		return false
	}
	raw, err := s.Redis.Get(context.Background(), key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (s *LeaderboardService) toCache(key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.Redis.Set(context.Background(), key, raw, leaderboardCacheTTL)
}

// RankedEntry 榜单行，附带格式化后的耗时
type RankedEntry struct {
	model.LeaderboardEntry
	TotalTimeFormatted string `json:"totalTimeFormatted"`
}

type HuntHeader struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type HuntLeaderboardResult struct {
	Hunt        HuntHeader      `json:"hunt"`
	Leaderboard []RankedEntry   `json:"leaderboard"`
	Pagination  util.Pagination `json:"pagination"`
}

func (s *LeaderboardService) HuntLeaderboard(huntID uint, page, limit int) (*HuntLeaderboardResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("leaderboard:hunt:%d:%d:%d", huntID, page, limit)
	var cached HuntLeaderboardResult
	if s.fromCache(cacheKey, &cached) {
		return &cached, nil
	}

	hunt, err := s.HuntRepo.FindByID(huntID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHuntNotFound
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.Repo.HuntTop(huntID, page, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.CountByHunt(huntID)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedEntry, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, RankedEntry{
			LeaderboardEntry:   e,
			TotalTimeFormatted: util.FormatDuration(e.TotalTime),
		})
	}

	result := &HuntLeaderboardResult{
		Hunt:        HuntHeader{Title: hunt.Title, Description: hunt.Description},
		Leaderboard: ranked,
		Pagination:  util.NewPagination(page, limit, total),
	}
	s.toCache(cacheKey, result)
	return result, nil
}

// GlobalRankedRow 全局榜单行
type GlobalRankedRow struct {
	model.GlobalLeaderboardRow
	AvgTimeFormatted string `json:"avgTimeFormatted"`
}

type GlobalLeaderboardResult struct {
	Leaderboard []GlobalRankedRow `json:"leaderboard"`
	Pagination  util.Pagination   `json:"pagination"`
}

func (s *LeaderboardService) GlobalLeaderboard(timeframe string, page, limit int) (*GlobalLeaderboardResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if timeframe != "week" && timeframe != "month" {
		timeframe = "all"
	}

	cacheKey := fmt.Sprintf("leaderboard:global:%s:%d:%d", timeframe, page, limit)
	var cached GlobalLeaderboardResult
	if s.fromCache(cacheKey, &cached) {
		return &cached, nil
	}

	rows, err := s.Repo.Global(timeframe, page, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.CountGlobal(timeframe)
	if err != nil {
		return nil, err
	}

	ranked := make([]GlobalRankedRow, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, GlobalRankedRow{
			GlobalLeaderboardRow: row,
			AvgTimeFormatted:     util.FormatDuration(row.AvgTime),
		})
	}

	result := &GlobalLeaderboardResult{
		Leaderboard: ranked,
		Pagination:  util.NewPagination(page, limit, total),
	}
	s.toCache(cacheKey, result)
	return result, nil
}

type UserStatsResult struct {
	Username         string                       `json:"username"`
	Stats            UserStatsSummary             `json:"stats"`
	BestPerformances []repository.BestPerformance `json:"bestPerformances"`
	RecentActivity   []repository.RecentActivity  `json:"recentActivity"`
}

type UserStatsSummary struct {
	TotalGames        int64  `json:"totalGames"`
	CompletedGames    int64  `json:"completedGames"`
	ActiveGames       int64  `json:"activeGames"`
	HuntsCreated      int64  `json:"huntsCreated"`
	AvgScore          int    `json:"avgScore"`
	AvgCompletionTime int    `json:"avgCompletionTime"`
	AvgTimeFormatted  string `json:"avgTimeFormatted"`
	CompletionRate    int    `json:"completionRate"` // 百分比
}

func (s *LeaderboardService) UserStats(userID uint) (*UserStatsResult, error) {
	stats, err := s.Repo.UserStats(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	best, err := s.Repo.BestPerformances(userID, 5)
	if err != nil {
		return nil, err
	}

	recent, err := s.SessionRepo.RecentActivityByUser(userID, 10)
	if err != nil {
		return nil, err
	}

	completionRate := 0
	if stats.TotalGames > 0 {
		completionRate = int(float64(stats.CompletedGames) / float64(stats.TotalGames) * 100)
	}

	avgTime := int(stats.AvgCompletionTime)
	return &UserStatsResult{
		Username: stats.Username,
		Stats: UserStatsSummary{
			TotalGames:        stats.TotalGames,
			CompletedGames:    stats.CompletedGames,
			ActiveGames:       stats.ActiveGames,
			HuntsCreated:      stats.HuntsCreated,
			AvgScore:          int(stats.AvgScore),
			AvgCompletionTime: avgTime,
			AvgTimeFormatted:  util.FormatDuration(avgTime),
			CompletionRate:    completionRate,
		},
		BestPerformances: best,
		RecentActivity:   recent,
	}, nil
}
