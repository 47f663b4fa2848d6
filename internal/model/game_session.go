package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// swagger:model GameSession
type GameSession struct {
	UUIDBase
	UserID              uint          `gorm:"index:idx_sessions_user_hunt;not null" json:"userId"`
	HuntID              uint          `gorm:"index:idx_sessions_user_hunt;not null" json:"huntId"`
	CurrentClueID       uint          `json:"currentClueId"`
	CurrentClueSequence int           `json:"currentClueSequence"`
	StartTime           time.Time     `json:"startTime"`
	EndTime             *time.Time    `json:"endTime,omitempty"`
	TotalScore          int           `gorm:"default:0" json:"totalScore"`
	HintsUsed           int           `gorm:"default:0" json:"hintsUsed"`
	Status              SessionStatus `gorm:"size:20;index;default:'active'" json:"status"`

	Attempts   []ClueAttempt `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	HintUsages []HintUsage   `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}
