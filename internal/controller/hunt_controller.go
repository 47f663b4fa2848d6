package controller

import (
	"errors"
	"strconv"

	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HuntController struct {
	HuntService *service.HuntService
}

func NewHuntController(huntService *service.HuntService) *HuntController {
	return &HuntController{HuntService: huntService}
}

// CreateHunt godoc
// @Summary 创建猎宝（含全部线索，原子提交）
// @Tags 猎宝
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.HuntCreateRequest true "猎宝内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /hunts [post]
func (c *HuntController) CreateHunt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.HuntCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hunt, err := c.HuntService.CreateHunt(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"hunt": gin.H{
			"id":          hunt.ID,
			"title":       hunt.Title,
			"description": hunt.Description,
			"totalClues":  hunt.TotalClues,
		},
	})
}

// ListHunts godoc
// @Summary 公共猎宝列表，支持分页与过滤
// @Tags 猎宝
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param difficulty query string false "难度 easy|medium|hard"
// @Param creator query string false "创建者用户名模糊匹配"
// @Success 200 {object} util.Response
// @Router /hunts [get]
func (c *HuntController) ListHunts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	filter := repository.HuntFilter{
		Difficulty: ctx.Query("difficulty"),
		Creator:    ctx.Query("creator"),
		Page:       page,
		Limit:      limit,
	}

	hunts, total, err := c.HuntService.ListPublic(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"hunts":      hunts,
		"pagination": util.NewPagination(filter.Page, filter.Limit, total),
	})
}

// ListMyHunts 当前用户创建的猎宝
// @Summary 我的猎宝
// @Tags 猎宝
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /hunts/my [get]
func (c *HuntController) ListMyHunts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	hunts, err := c.HuntService.ListByCreator(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"hunts": hunts})
}

// GetHunt godoc
// @Summary 猎宝详情，私有猎宝仅创建者可见
// @Tags 猎宝
// @Produce json
// @Param id path int true "猎宝ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /hunts/{id} [get]
func (c *HuntController) GetHunt(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hunt id")
		return
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	hunt, err := c.HuntService.GetHunt(uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrHuntNotFound):
			util.NotFound(ctx, "Hunt not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"hunt": hunt})
}

// DeleteHunt godoc
// @Summary 删除猎宝，线索与会话级联删除
// @Tags 猎宝
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "猎宝ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /hunts/{id} [delete]
func (c *HuntController) DeleteHunt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid hunt id")
		return
	}

	if err := c.HuntService.DeleteHunt(uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrHuntNotFound):
			util.NotFound(ctx, "Hunt not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Hunt deleted successfully"})
}
