package controller

import (
	"errors"
	"strconv"

	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// HuntLeaderboard godoc
// @Summary 单个猎宝的排行榜
// @Tags 排行榜
// @Produce json
// @Param huntId path int true "猎宝ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /leaderboard/hunt/{huntId} [get]
func (c *LeaderboardController) HuntLeaderboard(ctx *gin.Context) {
	huntID, err := strconv.ParseUint(ctx.Param("huntId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hunt id")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	result, err := c.LeaderboardService.HuntLeaderboard(uint(huntID), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrHuntNotFound) {
			util.NotFound(ctx, "Hunt not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GlobalLeaderboard godoc
// @Summary 全局排行榜，按用户聚合
// @Tags 排行榜
// @Produce json
// @Param timeframe query string false "all|week|month"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /leaderboard/global [get]
func (c *LeaderboardController) GlobalLeaderboard(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	timeframe := ctx.DefaultQuery("timeframe", "all")

	result, err := c.LeaderboardService.GlobalLeaderboard(timeframe, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// UserStats godoc
// @Summary 用户游玩统计、最佳成绩与近期活动
// @Tags 排行榜
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int false "目标用户ID，缺省为当前用户"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /leaderboard/user/stats [get]
func (c *LeaderboardController) UserStats(ctx *gin.Context) {
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	if target := ctx.Param("userId"); target != "" {
		id, err := strconv.ParseUint(target, 10, 64)
		if err != nil {
			util.BadRequest(ctx, "invalid user id")
			return
		}
		userID = uint(id)
	}

	if userID == 0 {
		util.BadRequest(ctx, "user id required")
		return
	}

	result, err := c.LeaderboardService.UserStats(userID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// RefreshLeaderboard godoc
// @Summary 手动重算排行榜
// @Tags 排行榜
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /leaderboard/refresh [post]
func (c *LeaderboardController) RefreshLeaderboard(ctx *gin.Context) {
	if err := c.LeaderboardService.Refresh(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Leaderboard refreshed successfully"})
}
