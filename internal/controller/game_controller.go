package controller

import (
	"errors"
	"strconv"

	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"
	"treasure_hunt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// StartGame godoc
// @Summary 开始游戏，同一猎宝同时只允许一个进行中的会话
// @Tags 游戏
// @Produce json
// @Security ApiKeyAuth
// @Param huntId path int true "猎宝ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "已有进行中的会话或猎宝没有线索"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /game/start/{huntId} [post]
func (c *GameController) StartGame(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	huntID, err := strconv.ParseUint(ctx.Param("huntId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hunt id")
		return
	}

	result, err := c.GameService.StartGame(claims.UserID, uint(huntID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrHuntNotFound):
			util.NotFound(ctx, "Hunt not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrActiveSession), errors.Is(err, util.ErrHuntNoClues):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message": "Game started successfully",
		"session": result,
	})
}

// GetCurrentClue godoc
// @Summary 当前线索与会话进度
// @Tags 游戏
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /game/{sessionId}/clue [get]
func (c *GameController) GetCurrentClue(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.GameService.GetCurrentClue(claims.UserID, ctx.Param("sessionId"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx, "Active game session not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary 提交答案，计分并推进会话
// @Tags 游戏
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "会话ID"
// @Param body body SubmitAnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /game/{sessionId}/answer [post]
func (c *GameController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GameService.SubmitAnswer(claims.UserID, ctx.Param("sessionId"), req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx, "Active game session not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if result.GameCompleted {
		monitoring.CompletedHunts.Inc()
	}

	util.Success(ctx, result)
}

// swagger:model UseHintRequest
type UseHintRequest struct {
	HintIndex *int `json:"hintIndex" binding:"required,min=0"`
}

// UseHint godoc
// @Summary 揭示提示并扣罚分，同一提示不可重复使用
// @Tags 游戏
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "会话ID"
// @Param body body UseHintRequest true "提示下标"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "下标非法或提示已使用"
// @Failure 404 {object} util.Response
// @Router /game/{sessionId}/hint [post]
func (c *GameController) UseHint(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UseHintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GameService.UseHint(claims.UserID, ctx.Param("sessionId"), *req.HintIndex)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, "Active game session not found")
		case errors.Is(err, util.ErrInvalidHintIndex), errors.Is(err, util.ErrHintAlreadyUsed):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// AbandonGame godoc
// @Summary 放弃当前会话，终态不可恢复
// @Tags 游戏
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /game/{sessionId}/abandon [post]
func (c *GameController) AbandonGame(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.GameService.AbandonGame(claims.UserID, ctx.Param("sessionId")); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx, "Active game session not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Game session abandoned"})
}
