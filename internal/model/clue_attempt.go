package model

// ClueAttempt 每次答案提交的追加日志，不做更新
// swagger:model ClueAttempt
type ClueAttempt struct {
	BaseModel
	SessionID     string `gorm:"index:idx_attempts_session_clue;type:varchar(36);not null" json:"sessionId"`
	ClueID        uint   `gorm:"index:idx_attempts_session_clue;not null" json:"clueId"`
	UserAnswer    string `gorm:"size:512" json:"userAnswer"`
	IsCorrect     bool   `gorm:"default:false" json:"isCorrect"`
	AttemptNumber int    `json:"attemptNumber"` // 同一 session+clue 内单调递增
	TimeTaken     int    `json:"timeTaken"`     // 秒
	ScoreEarned   int    `json:"scoreEarned"`
}

func (ClueAttempt) TableName() string {
	return "clue_attempts"
}
