package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
)

type ReviewController struct {
	reviewService    *service.ReviewService
	recommendService *service.RecommendService
	aiService        *service.AIService
}

func NewReviewController(reviewService *service.ReviewService, recommendService *service.RecommendService, aiService *service.AIService) *ReviewController {
	return &ReviewController{
		reviewService:    reviewService,
		recommendService: recommendService,
		aiService:        aiService,
	}
}

// CreateReview 리뷰 작성
// @Summary 리뷰 작성
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "매장 ID"
// @Success 201 {object} model.Review
// @Router /shops/{id}/reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	var input struct {
		Rating        int      `json:"rating" binding:"required,min=1,max=5"`
		Content       string   `json:"content" binding:"required,min=5"`
		ImageURLs     []string `json:"image_urls"`
		IsAIGenerated bool     `json:"is_ai_generated"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	review, err := ctrl.reviewService.CreateReview(service.CreateReviewInput{
		ShopID:        uint(shopID),
		UserID:        userID,
		Rating:        input.Rating,
		Content:       input.Content,
		ImageURLs:     input.ImageURLs,
		IsAIGenerated: input.IsAIGenerated,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "평점은 1~5 사이여야 합니다")
		default:
			apperrors.InternalError(c, "리뷰 작성에 실패했습니다")
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListShopReviews 매장 리뷰 목록 조회
// @Summary 매장 리뷰 목록
// @Tags Reviews
// @Produce json
// @Param id path int true "매장 ID"
// @Param page query int false "페이지" default(1)
// @Param page_size query int false "페이지 크기" default(20)
// @Success 200 {object} object
// @Router /shops/{id}/reviews [get]
func (ctrl *ReviewController) ListShopReviews(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, total, err := ctrl.reviewService.ListShopReviews(uint(shopID), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "매장 리뷰 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      reviews,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// LikeReview 리뷰 좋아요
// @Summary 리뷰 좋아요
// @Tags Reviews
// @Param id path int true "리뷰 ID"
// @Success 200 {object} object
// @Router /reviews/{id}/like [post]
func (ctrl *ReviewController) LikeReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 리뷰 ID입니다")
		return
	}

	if err := ctrl.reviewService.LikeReview(uint(reviewID)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "리뷰를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "좋아요 처리에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// HideReview 리뷰 숨김 (관리자)
// @Summary 리뷰 숨김
// @Tags Reviews
// @Param id path int true "리뷰 ID"
// @Success 204
// @Router /reviews/{id}/hide [post]
func (ctrl *ReviewController) HideReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 리뷰 ID입니다")
		return
	}

	if err := ctrl.reviewService.HideReview(uint(reviewID)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "리뷰를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "리뷰 숨김에 실패했습니다")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// RecommendReviews 취향 기반 리뷰 추천
// @Summary 매장 리뷰 추천
// @Tags Reviews
// @Produce json
// @Param id path int true "매장 ID"
// @Param preference query string false "명시적 취향 키워드"
// @Param limit query int false "추천 개수" default(3)
// @Success 200 {object} object
// @Router /shops/{id}/reviews/recommend [get]
func (ctrl *ReviewController) RecommendReviews(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	preference := c.Query("preference")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	// 비로그인 사용자도 추천은 받을 수 있다 (태그 프로필만 빠짐)
	var userID *uint
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	results, err := ctrl.recommendService.Recommend(userID, uint(shopID), preference, limit)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "리뷰 추천에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  results,
		"count": len(results),
	})
}

// GenerateDraft AI 리뷰 초안 생성
// @Summary AI 리뷰 초안 생성
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "매장 ID"
// @Success 200 {object} object
// @Router /shops/{id}/reviews/ai-draft [post]
func (ctrl *ReviewController) GenerateDraft(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	var input struct {
		Context string `json:"context"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	draft, err := ctrl.aiService.GenerateDraft(c.Request.Context(), userID, uint(shopID), input.Context)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrGenerationFailed):
			apperrors.BadGateway(c, apperrors.AICallFailed, "초안 생성에 실패했습니다. 잠시 후 다시 시도해주세요")
		default:
			apperrors.InternalError(c, "초안 생성에 실패했습니다")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
