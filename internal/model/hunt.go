package model

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// swagger:model Hunt
type Hunt struct {
	BaseModel
	Title             string          `gorm:"size:255;not null" json:"title"`
	Description       string          `gorm:"type:text" json:"description"`
	CreatorID         uint            `gorm:"index;not null" json:"creatorId"`
	// 不带列默认值：带 default 标签时 GORM 会在插入时丢弃 false，私有猎宝写不进去
	IsPublic          bool            `json:"isPublic"`
	DifficultyLevel   DifficultyLevel `gorm:"size:20;default:'medium'" json:"difficultyLevel"`
	EstimatedDuration int             `json:"estimatedDuration"` // 预计时长（分钟）
	TotalClues        int             `json:"totalClues"`

	Clues    []Clue        `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"clues,omitempty"`
	Sessions []GameSession `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Hunt) TableName() string {
	return "hunts"
}
