package model

// HintUsage 同一 (session, clue, hint_index) 至多记录一次
// swagger:model HintUsage
type HintUsage struct {
	BaseModel
	SessionID     string `gorm:"uniqueIndex:idx_hint_session_clue_index;type:varchar(36);not null" json:"sessionId"`
	ClueID        uint   `gorm:"uniqueIndex:idx_hint_session_clue_index;not null" json:"clueId"`
	HintIndex     int    `gorm:"uniqueIndex:idx_hint_session_clue_index;not null" json:"hintIndex"`
	PenaltyPoints int    `json:"penaltyPoints"`
}

func (HintUsage) TableName() string {
	return "hint_usage"
}
