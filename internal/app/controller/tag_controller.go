package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
)

type TagController struct {
	tagService *service.TagService
}

func NewTagController(tagService *service.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// CreateTag 태그 등록 (관리자)
// @Summary 태그 등록
// @Tags Tags
// @Accept json
// @Produce json
// @Success 201 {object} model.Tag
// @Router /tags [post]
func (ctrl *TagController) CreateTag(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Scope string `json:"scope" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	tag, err := ctrl.tagService.CreateTag(input.Name, model.TagScope(input.Scope))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTagName):
			apperrors.BadRequest(c, apperrors.TagInvalidName, "태그 이름은 필수입니다")
		case errors.Is(err, service.ErrInvalidTagScope):
			apperrors.BadRequest(c, apperrors.TagInvalidScope, "태그 스코프가 올바르지 않습니다")
		default:
			apperrors.InternalError(c, "태그 등록에 실패했습니다")
		}
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// ListTags 태그 목록 조회
// @Summary 태그 목록
// @Tags Tags
// @Produce json
// @Param scope query string false "스코프 필터 (user/shop/review)"
// @Success 200 {object} object
// @Router /tags [get]
func (ctrl *TagController) ListTags(c *gin.Context) {
	scope := model.TagScope(c.Query("scope"))

	tags, err := ctrl.tagService.ListTags(scope)
	if err != nil {
		apperrors.InternalError(c, "태그 목록 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// AssignMyTags 내 취향 태그 설정 (전체 교체)
// @Summary 내 취향 태그 설정
// @Tags Tags
// @Accept json
// @Success 204
// @Router /users/me/tags [put]
func (ctrl *TagController) AssignMyTags(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var input struct {
		TagIDs []uint `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	if err := ctrl.tagService.AssignTagsToUser(userID, input.TagIDs); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "태그를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "태그 설정에 실패했습니다")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ListMyTags 내 취향 태그 조회
// @Summary 내 취향 태그
// @Tags Tags
// @Produce json
// @Success 200 {object} object
// @Router /users/me/tags [get]
func (ctrl *TagController) ListMyTags(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	tags, err := ctrl.tagService.ListTagsOfUser(userID)
	if err != nil {
		apperrors.InternalError(c, "태그 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// AssignShopTags 매장 태그 설정 (관리자, 전체 교체)
// @Summary 매장 태그 설정
// @Tags Tags
// @Accept json
// @Param id path int true "매장 ID"
// @Success 204
// @Router /shops/{id}/tags [put]
func (ctrl *TagController) AssignShopTags(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	var input struct {
		TagIDs []uint `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	if err := ctrl.tagService.AssignTagsToShop(uint(shopID), input.TagIDs); err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrTagNotFound):
			apperrors.NotFound(c, apperrors.TagNotFound, "태그를 찾을 수 없습니다")
		default:
			apperrors.InternalError(c, "태그 설정에 실패했습니다")
		}
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ListShopTags 매장 태그 조회
// @Summary 매장 태그
// @Tags Tags
// @Produce json
// @Param id path int true "매장 ID"
// @Success 200 {object} object
// @Router /shops/{id}/tags [get]
func (ctrl *TagController) ListShopTags(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	tags, err := ctrl.tagService.ListTagsOfShop(uint(shopID))
	if err != nil {
		apperrors.InternalError(c, "태그 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}
