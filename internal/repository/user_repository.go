package repository

import (
	"time"

	"treasure_hunt_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// ExistsByEmailOrUsername 注册前的重复检查
func (r *UserRepository) ExistsByEmailOrUsername(email, username string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// ProfileStats 个人主页的创建/游玩/完成数量
type ProfileStats struct {
	HuntsCreated   int64 `json:"huntsCreated"`
	HuntsPlayed    int64 `json:"huntsPlayed"`
	HuntsCompleted int64 `json:"huntsCompleted"`
}

func (r *UserRepository) GetProfileStats(userID uint) (*ProfileStats, error) {
	var stats ProfileStats

	if err := r.DB.Model(&model.Hunt{}).
		Where("creator_id = ?", userID).
		Count(&stats.HuntsCreated).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&model.GameSession{}).
		Where("user_id = ?", userID).
		Count(&stats.HuntsPlayed).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&model.GameSession{}).
		Where("user_id = ? AND status = ?", userID, model.SessionCompleted).
		Count(&stats.HuntsCompleted).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
