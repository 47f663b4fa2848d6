package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	LastLogin    time.Time `json:"lastLogin"`
	LastSeen     time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
