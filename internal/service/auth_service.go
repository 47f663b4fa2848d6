package service

import (
	"errors"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 创建用户并签发令牌，邮箱与用户名均需唯一
func (s *AuthService) Register(email, username, password string) (*model.User, string, error) {
	exists, err := s.UserRepo.ExistsByEmailOrUsername(email, username)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", util.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	// 登录时间异步更新，失败不影响登录
	go s.UserRepo.UpdateLastLogin(user.ID)

	return user, token, nil
}

// Profile 带统计信息的个人主页
type Profile struct {
	User  *model.User              `json:"user"`
	Stats *repository.ProfileStats `json:"stats"`
}

func (s *AuthService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.UserRepo.GetProfileStats(userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Stats: stats}, nil
}
