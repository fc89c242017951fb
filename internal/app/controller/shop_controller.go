package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
)

type ShopController struct {
	shopService *service.ShopService
}

func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{
		shopService: shopService,
	}
}

// CreateShop 매장 등록 (관리자)
// @Summary 매장 등록
// @Tags Shops
// @Accept json
// @Produce json
// @Success 201 {object} model.Shop
// @Router /shops [post]
func (ctrl *ShopController) CreateShop(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Category    string `json:"category"`
		Address     string `json:"address"`
		PhoneNumber string `json:"phone_number"`
		ImageURL    string `json:"image_url"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	shop, err := ctrl.shopService.CreateShop(service.CreateShopInput{
		Name:        input.Name,
		Category:    input.Category,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidShopName) {
			apperrors.BadRequest(c, apperrors.ShopInvalidName, "매장 이름은 필수입니다")
			return
		}
		apperrors.InternalError(c, "매장 등록에 실패했습니다")
		return
	}

	c.JSON(http.StatusCreated, shop)
}

// GetShop 매장 상세 조회
// @Summary 매장 상세 (리뷰 통계 포함)
// @Tags Shops
// @Produce json
// @Param id path int true "매장 ID"
// @Success 200 {object} object
// @Router /shops/{id} [get]
func (ctrl *ShopController) GetShop(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	detail, err := ctrl.shopService.GetShopDetail(uint(shopID))
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "매장 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":           detail.Shop,
		"review_count":   detail.ReviewCount,
		"average_rating": detail.AverageRating,
	})
}

// ListShops 매장 목록 조회
// @Summary 매장 목록
// @Tags Shops
// @Produce json
// @Param category query string false "카테고리 필터"
// @Param page query int false "페이지" default(1)
// @Param page_size query int false "페이지 크기" default(20)
// @Success 200 {object} object
// @Router /shops [get]
func (ctrl *ShopController) ListShops(c *gin.Context) {
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	shops, total, err := ctrl.shopService.ListShops(category, page, pageSize)
	if err != nil {
		apperrors.InternalError(c, "매장 목록 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      shops,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateShop 매장 정보 수정 (관리자)
// @Summary 매장 수정
// @Tags Shops
// @Accept json
// @Produce json
// @Param id path int true "매장 ID"
// @Success 200 {object} model.Shop
// @Router /shops/{id} [put]
func (ctrl *ShopController) UpdateShop(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Address     *string `json:"address"`
		PhoneNumber *string `json:"phone_number"`
		ImageURL    *string `json:"image_url"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	shop, err := ctrl.shopService.UpdateShop(uint(shopID), service.UpdateShopInput{
		Name:        input.Name,
		Category:    input.Category,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
			return
		}
		if errors.Is(err, service.ErrInvalidShopName) {
			apperrors.BadRequest(c, apperrors.ShopInvalidName, "매장 이름은 필수입니다")
			return
		}
		apperrors.InternalError(c, "매장 수정에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// DeleteShop 매장 삭제 (관리자)
// @Summary 매장 삭제
// @Tags Shops
// @Param id path int true "매장 ID"
// @Success 204
// @Router /shops/{id} [delete]
func (ctrl *ShopController) DeleteShop(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	if err := ctrl.shopService.DeleteShop(uint(shopID)); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "매장 삭제에 실패했습니다")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
