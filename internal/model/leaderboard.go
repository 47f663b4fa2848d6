package model

import "time"

// LeaderboardEntry 对应 leaderboard 物化视图的一行，只读，不参与 AutoMigrate
// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	SessionID      string    `json:"sessionId"`
	HuntID         uint      `json:"huntId"`
	UserID         uint      `json:"userId"`
	Username       string    `json:"username"`
	TotalScore     int       `json:"totalScore"`
	HintsUsed      int       `json:"hintsUsed"`
	TotalTime      int       `json:"totalTime"` // 完成耗时（秒）
	CompletionDate time.Time `json:"completionDate"`
	HuntRank       int       `json:"huntRank"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}

// GlobalLeaderboardRow 全局榜单按用户聚合后的一行，读取时计算
type GlobalLeaderboardRow struct {
	UserID         uint      `json:"userId"`
	Username       string    `json:"username"`
	HuntsCompleted int       `json:"huntsCompleted"`
	TotalScore     int       `json:"totalScore"`
	AvgTime        int       `json:"avgTime"`
	TotalHintsUsed int       `json:"totalHintsUsed"`
	LastCompletion time.Time `json:"lastCompletion"`
	Rank           int       `json:"rank"`
}
