package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
)

type OrderRecordController struct {
	orderService *service.OrderRecordService
}

func NewOrderRecordController(orderService *service.OrderRecordService) *OrderRecordController {
	return &OrderRecordController{
		orderService: orderService,
	}
}

// RecordVisit 방문/소비 기록 등록
// @Summary 소비 기록 등록
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "매장 ID"
// @Success 201 {object} model.OrderRecord
// @Router /shops/{id}/orders [post]
func (ctrl *OrderRecordController) RecordVisit(c *gin.Context) {
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
		Amount    float64    `json:"amount"`
		VisitTime *time.Time `json:"visit_time"`
		Items     string     `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	visitTime := time.Time{}
	if input.VisitTime != nil {
		visitTime = *input.VisitTime
	}

	record, err := ctrl.orderService.RecordVisit(service.RecordVisitInput{
		ShopID:    uint(shopID),
		UserID:    userID,
		Amount:    input.Amount,
		VisitTime: visitTime,
		Items:     input.Items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			apperrors.NotFound(c, apperrors.ShopNotFound, "매장을 찾을 수 없습니다")
		case errors.Is(err, service.ErrInvalidOrderAmount):
			apperrors.BadRequest(c, apperrors.OrderInvalidAmount, "주문 금액이 올바르지 않습니다")
		default:
			apperrors.InternalError(c, "소비 기록 등록에 실패했습니다")
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListMyOrders 내 소비 기록 조회
// @Summary 내 소비 기록
// @Tags Orders
// @Produce json
// @Param limit query int false "조회 개수" default(20)
// @Success 200 {object} object
// @Router /users/me/orders [get]
func (ctrl *OrderRecordController) ListMyOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := ctrl.orderService.ListUserOrders(userID, limit)
	if err != nil {
		apperrors.InternalError(c, "소비 기록 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

// ListShopOrders 매장 소비 기록 조회 (관리자)
// @Summary 매장 소비 기록
// @Tags Orders
// @Produce json
// @Param id path int true "매장 ID"
// @Param limit query int false "조회 개수" default(20)
// @Success 200 {object} object
// @Router /shops/{id}/orders [get]
func (ctrl *OrderRecordController) ListShopOrders(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 매장 ID입니다")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := ctrl.orderService.ListShopOrders(uint(shopID), limit)
	if err != nil {
		apperrors.InternalError(c, "소비 기록 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
