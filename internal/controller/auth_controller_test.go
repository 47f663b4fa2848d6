package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/middleware"
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"
)

type AuthControllerSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
}

func TestAuthControllerSuite(t *testing.T) {
	suite.Run(t, new(AuthControllerSuite))
}

func (s *AuthControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	path := filepath.Join(s.T().TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&model.User{},
		&model.Hunt{},
		&model.GameSession{},
	))

	s.cfg = &config.Config{}
	s.cfg.JWT.Secret = "test-secret-key-that-is-long-enough-0123"
	s.cfg.JWT.ExpireTime = time.Hour

	authService := service.NewAuthService(repository.NewUserRepository(db), s.cfg)
	authController := NewAuthController(authService)

	s.router = gin.New()
	api := s.router.Group("/api")
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.GET("/auth/profile", middleware.AuthMiddleware(s.cfg), authController.GetProfile)
}

func (s *AuthControllerSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthControllerSuite) register() string {
	w := s.postJSON("/api/auth/register", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp util.Response
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	return data["token"].(string)
}

func (s *AuthControllerSuite) TestRegister() {
	token := s.register()
	s.NotEmpty(token)
}

func (s *AuthControllerSuite) TestRegisterInvalidEmail() {
	w := s.postJSON("/api/auth/register", gin.H{
		"email":    "not-an-email",
		"username": "alice",
		"password": "password123",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthControllerSuite) TestRegisterShortPassword() {
	w := s.postJSON("/api/auth/register", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "123",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthControllerSuite) TestRegisterDuplicate() {
	s.register()

	w := s.postJSON("/api/auth/register", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthControllerSuite) TestLogin() {
	s.register()

	w := s.postJSON("/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthControllerSuite) TestLoginBadCredentials() {
	s.register()

	w := s.postJSON("/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthControllerSuite) TestProfileRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthControllerSuite) TestProfileWithToken() {
	token := s.register()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	var resp util.Response
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	user := data["user"].(map[string]interface{})
	s.Equal("alice", user["username"])
}
