package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
)

type AuthServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-0123"
	cfg.JWT.ExpireTime = time.Hour
	s.service = NewAuthService(repository.NewUserRepository(s.db), cfg)
}

func (s *AuthServiceSuite) TestRegister() {
	user, token, err := s.service.Register("alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	s.NotZero(user.ID)
	s.NotEmpty(token)
	s.NotEqual("password123", user.PasswordHash)

	claims, err := util.ParseJWT(token, s.service.Cfg.JWT.Secret)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal("alice", claims.Username)
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	_, _, err := s.service.Register("alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	_, _, err = s.service.Register("alice@example.com", "alice2", "password123")
	s.ErrorIs(err, util.ErrUserExists)
}

func (s *AuthServiceSuite) TestRegisterDuplicateUsername() {
	_, _, err := s.service.Register("alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	_, _, err = s.service.Register("alice2@example.com", "alice", "password123")
	s.ErrorIs(err, util.ErrUserExists)
}

func (s *AuthServiceSuite) TestLogin() {
	_, _, err := s.service.Register("alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	user, token, err := s.service.Login("alice@example.com", "password123")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.NotEmpty(token)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, _, err := s.service.Register("alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	_, _, err = s.service.Login("alice@example.com", "wrong-password")
	s.ErrorIs(err, util.ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, _, err := s.service.Login("nobody@example.com", "password123")
	s.ErrorIs(err, util.ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestGetProfile() {
	user, _, err := s.service.Register("alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	profile, err := s.service.GetProfile(user.ID)
	s.Require().NoError(err)
	s.Equal("alice", profile.User.Username)
	s.Require().NotNil(profile.Stats)
	s.Zero(profile.Stats.HuntsCompleted)
}

func (s *AuthServiceSuite) TestGetProfileUnknownUser() {
	_, err := s.service.GetProfile(9999)
	s.ErrorIs(err, util.ErrUserNotFound)
}
