package model

import "encoding/json"

type ClueType string

const (
	ClueText  ClueType = "text"
	ClueImage ClueType = "image"
	ClueAudio ClueType = "audio"
	ClueMixed ClueType = "mixed"
)

type AnswerType string

const (
	AnswerExact    AnswerType = "exact"
	AnswerContains AnswerType = "contains"
	AnswerRegex    AnswerType = "regex"
)

// swagger:model Clue
type Clue struct {
	BaseModel
	HuntID        uint       `gorm:"uniqueIndex:idx_clues_hunt_sequence;not null" json:"huntId"`
	SequenceOrder int        `gorm:"uniqueIndex:idx_clues_hunt_sequence;not null" json:"sequenceOrder"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	ClueType      ClueType   `gorm:"size:20;default:'text'" json:"clueType"`
	MediaURL      string     `gorm:"size:512" json:"mediaUrl"`
	Answer        string     `gorm:"size:255;not null" json:"-"` // 存储时已小写并去除首尾空白
	AnswerType    AnswerType `gorm:"size:20;default:'exact'" json:"answerType"`
	Hints         string     `gorm:"type:json" json:"-"`
	PointsValue   int        `gorm:"default:100" json:"pointsValue"`

	Attempts   []ClueAttempt `gorm:"foreignKey:ClueID;constraint:OnDelete:CASCADE" json:"-"`
	HintUsages []HintUsage   `gorm:"foreignKey:ClueID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Clue) TableName() string {
	return "clues"
}

func (c *Clue) HintList() []string {
	var hints []string
	if c.Hints == "" {
		return hints
	}
	if err := json.Unmarshal([]byte(c.Hints), &hints); err != nil {
		return nil
	}
	return hints
}

func (c *Clue) SetHints(hints []string) error {
	if hints == nil {
		hints = []string{}
	}
	bytes, err := json.Marshal(hints)
	if err != nil {
		return err
	}
	c.Hints = string(bytes)
	return nil
}
