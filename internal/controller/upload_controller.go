package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 线索媒体只允许图片、音频、视频
var allowedUploadTypes = []string{"image/", "audio/", "video/"}

type UploadController struct {
	StorageService *service.StorageService
	Cfg            *config.Config
}

func NewUploadController(storageService *service.StorageService, cfg *config.Config) *UploadController {
	return &UploadController{
		StorageService: storageService,
		Cfg:            cfg,
	}
}

// UploadFile godoc
// @Summary 上传线索媒体文件
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "媒体文件"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "缺少文件或类型不允许"
// @Router /upload [post]
func (c *UploadController) UploadFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "No file provided")
		return
	}

	maxSize := int64(c.Cfg.Upload.MaxSizeMB) * 1024 * 1024
	if maxSize > 0 && fileHeader.Size > maxSize {
		util.BadRequest(ctx, fmt.Sprintf("file exceeds %dMB limit", c.Cfg.Upload.MaxSizeMB))
		return
	}

	sniff, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	mimeType, err := util.ValidateMimeType(sniff, allowedUploadTypes)
	sniff.Close()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	objectName := fmt.Sprintf("%d_%d%s", claims.UserID, time.Now().UnixNano(),
		strings.ToLower(filepath.Ext(fileHeader.Filename)))

	url, err := c.StorageService.Upload(ctx.Request.Context(), objectName, file, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "File uploaded successfully",
		"file": gin.H{
			"id":          objectName,
			"url":         url,
			"contentType": mimeType,
			"bytes":       fileHeader.Size,
		},
	})
}

// ownsFile 对象名以 "<userID>_" 开头即视为归属
func ownsFile(userID uint, objectName string) bool {
	return strings.HasPrefix(objectName, strconv.FormatUint(uint64(userID), 10)+"_")
}

// DeleteFile godoc
// @Summary 删除已上传文件，只能删自己的
// @Tags 上传
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文件ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /upload/{id} [delete]
func (c *UploadController) DeleteFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	objectName := ctx.Param("id")
	if !ownsFile(claims.UserID, objectName) {
		util.Forbidden(ctx)
		return
	}

	if err := c.StorageService.Delete(ctx.Request.Context(), objectName); err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.NotFound(ctx, "File not found or already deleted")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "File deleted successfully"})
}

// GetFileInfo godoc
// @Summary 查询已上传文件信息
// @Tags 上传
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文件ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /upload/{id} [get]
func (c *UploadController) GetFileInfo(ctx *gin.Context) {
	info, err := c.StorageService.Stat(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.NotFound(ctx, "File not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"file": info})
}
