package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/util"
)

type LocalStorageSuite struct {
	suite.Suite
	provider *LocalStorageProvider
	ctx      context.Context
}

func TestLocalStorageSuite(t *testing.T) {
	suite.Run(t, new(LocalStorageSuite))
}

func (s *LocalStorageSuite) SetupTest() {
	s.provider = &LocalStorageProvider{
		Config: &config.StorageConfig{Type: "local", LocalPath: s.T().TempDir()},
	}
	s.ctx = context.Background()
}

func (s *LocalStorageSuite) TestUploadAndStat() {
	content := "hello treasure"
	url, err := s.provider.Upload(s.ctx, "1_123.txt", strings.NewReader(content), int64(len(content)), "text/plain")
	s.Require().NoError(err)
	s.Equal("/uploads/1_123.txt", url)

	info, err := s.provider.Stat(s.ctx, "1_123.txt")
	s.Require().NoError(err)
	s.Equal("1_123.txt", info.Name)
	s.EqualValues(len(content), info.Size)
}

func (s *LocalStorageSuite) TestDelete() {
	_, err := s.provider.Upload(s.ctx, "1_123.txt", strings.NewReader("x"), 1, "text/plain")
	s.Require().NoError(err)

	s.Require().NoError(s.provider.Delete(s.ctx, "1_123.txt"))

	_, err = s.provider.Stat(s.ctx, "1_123.txt")
	s.ErrorIs(err, util.ErrFileNotFound)
}

func (s *LocalStorageSuite) TestDeleteMissingFile() {
	err := s.provider.Delete(s.ctx, "no-such-file.png")
	s.ErrorIs(err, util.ErrFileNotFound)
}

func (s *LocalStorageSuite) TestStorageServiceFallsBackToLocal() {
	cfg := &config.Config{}
	cfg.Storage = config.StorageConfig{Type: "local", LocalPath: s.T().TempDir()}

	svc := NewStorageService(cfg)
	s.IsType(&LocalStorageProvider{}, svc.Provider)
}
