package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
	"github.com/hyunsoo-dev/matzip-backend/internal/storage"
)

// maxUploadSize 업로드 허용 최대 크기 (10MB)
const maxUploadSize = 10 * 1024 * 1024

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

// GetPresignedURL 리뷰 이미지 업로드용 presigned URL 발급
// @Summary 업로드 URL 발급
// @Tags Uploads
// @Accept json
// @Produce json
// @Success 200 {object} storage.PresignedURLResponse
// @Router /uploads/presigned [post]
func (ctrl *UploadController) GetPresignedURL(c *gin.Context) {
	var input struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
		Size        int64  `json:"size" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	if err := ctrl.storage.ValidateContentType(input.ContentType, allowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "허용되지 않는 파일 형식입니다")
		return
	}
	if err := ctrl.storage.ValidateFileSize(input.Size, maxUploadSize); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "파일 크기가 너무 큽니다")
		return
	}

	resp, err := ctrl.storage.GeneratePresignedURL(input.Filename, input.ContentType, storage.DefaultFolder)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "업로드 URL 발급에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, resp)
}
