package service

import (
	"errors"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"gorm.io/gorm"
)

type HuntService struct {
	HuntRepo *repository.HuntRepository
	ClueRepo *repository.ClueRepository
	DB       *gorm.DB
}

func NewHuntService(huntRepo *repository.HuntRepository, clueRepo *repository.ClueRepository, db *gorm.DB) *HuntService {
	return &HuntService{
		HuntRepo: huntRepo,
		ClueRepo: clueRepo,
		DB:       db,
	}
}

type ClueCreateRequest struct {
	Title       string           `json:"title" binding:"required,min=3,max=255"`
	Content     string           `json:"content" binding:"required"`
	ClueType    model.ClueType   `json:"clueType"`
	MediaURL    string           `json:"mediaUrl"`
	Answer      string           `json:"answer" binding:"required"`
	AnswerType  model.AnswerType `json:"answerType"`
	Hints       []string         `json:"hints"`
	PointsValue int              `json:"pointsValue"`
}

type HuntCreateRequest struct {
	Title             string                `json:"title" binding:"required,min=3,max=255"`
	Description       string                `json:"description" binding:"max=1000"`
	IsPublic          *bool                 `json:"isPublic"`
	DifficultyLevel   model.DifficultyLevel `json:"difficultyLevel"`
	EstimatedDuration int                   `json:"estimatedDuration" binding:"required,min=1"`
	Clues             []ClueCreateRequest   `json:"clues" binding:"required,min=1,dive"`
}

// CreateHunt 猎宝与其线索在同一事务内创建
func (s *HuntService) CreateHunt(creatorID uint, req HuntCreateRequest) (*model.Hunt, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	difficulty := req.DifficultyLevel
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	hunt := &model.Hunt{
		Title:             req.Title,
		Description:       req.Description,
		CreatorID:         creatorID,
		IsPublic:          isPublic,
		DifficultyLevel:   difficulty,
		EstimatedDuration: req.EstimatedDuration,
		TotalClues:        len(req.Clues),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hunt).Error; err != nil {
			return err
		}

		for i, c := range req.Clues {
			clueType := c.ClueType
			if clueType == "" {
				clueType = model.ClueText
			}
			answerType := c.AnswerType
			if answerType == "" {
				answerType = model.AnswerExact
			}
			points := c.PointsValue
			if points <= 0 {
				points = 100
			}

			clue := &model.Clue{
				HuntID:        hunt.ID,
				SequenceOrder: i + 1,
				Title:         c.Title,
				Content:       c.Content,
				ClueType:      clueType,
				MediaURL:      c.MediaURL,
				Answer:        NormalizeAnswer(c.Answer),
				AnswerType:    answerType,
				PointsValue:   points,
			}
			if err := clue.SetHints(c.Hints); err != nil {
				return err
			}
			if err := tx.Create(clue).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hunt, nil
}

func (s *HuntService) ListPublic(filter repository.HuntFilter) ([]repository.HuntListItem, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return s.HuntRepo.ListPublic(filter)
}

func (s *HuntService) ListByCreator(creatorID uint) ([]repository.HuntListItem, error) {
	return s.HuntRepo.ListByCreator(creatorID)
}

// GetHunt 私有猎宝仅创建者可见，userID 为 0 表示游客
func (s *HuntService) GetHunt(id uint, userID uint) (*repository.HuntListItem, error) {
	item, err := s.HuntRepo.FindDetailByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHuntNotFound
	}
	if err != nil {
		return nil, err
	}

	if !item.IsPublic && item.CreatorID != userID {
		return nil, util.ErrPermissionDenied
	}
	return item, nil
}

// DeleteHunt 仅创建者可删，线索与会话级联清除
func (s *HuntService) DeleteHunt(id, userID uint) error {
	hunt, err := s.HuntRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrHuntNotFound
	}
	if err != nil {
		return err
	}

	if hunt.CreatorID != userID {
		return util.ErrPermissionDenied
	}
	return s.HuntRepo.Delete(id)
}
