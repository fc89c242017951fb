package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats 대시보드 통계 조회 (관리자)
// @Summary 대시보드 통계
// @Tags Dashboard
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Router /dashboard/stats [get]
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	stats, err := ctrl.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		apperrors.InternalError(c, "대시보드 통계 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, stats)
}
