package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
	"github.com/hyunsoo-dev/matzip-backend/internal/websocket"
)

type AILogController struct {
	ailogService *service.AILogService
	hub          *websocket.Hub
}

func NewAILogController(ailogService *service.AILogService, hub *websocket.Hub) *AILogController {
	return &AILogController{
		ailogService: ailogService,
		hub:          hub,
	}
}

// ListLogs AI 호출 감사 로그 목록 (관리자)
// @Summary AI 호출 로그 목록
// @Tags AILogs
// @Produce json
// @Param type query string false "호출 타입 필터 (generate/recommend)"
// @Param status query string false "상태 필터 (success/failure)"
// @Param page query int false "페이지" default(1)
// @Param page_size query int false "페이지 크기" default(20)
// @Success 200 {object} object
// @Router /ai-logs [get]
func (ctrl *AILogController) ListLogs(c *gin.Context) {
	callType := model.AICallType(c.Query("type"))
	status := model.AICallStatus(c.Query("status"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	logs, total, err := ctrl.ailogService.ListLogs(callType, status, page, pageSize)
	if err != nil {
		apperrors.InternalError(c, "AI 호출 로그 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      logs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetSummary AI 호출 통계 요약 (관리자)
// @Summary AI 호출 통계
// @Tags AILogs
// @Produce json
// @Success 200 {object} service.LogSummary
// @Router /ai-logs/summary [get]
func (ctrl *AILogController) GetSummary(c *gin.Context) {
	summary, err := ctrl.ailogService.Summary()
	if err != nil {
		apperrors.InternalError(c, "AI 호출 통계 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// StreamLogs AI 호출 로그 실시간 스트림 (관리자, WebSocket)
// @Summary AI 호출 로그 스트림
// @Tags AILogs
// @Router /ai-logs/stream [get]
func (ctrl *AILogController) StreamLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := websocket.ServeWS(ctrl.hub, c.Writer, c.Request, userID); err != nil {
		// 업그레이드 실패 시 이미 응답이 나감
		return
	}
}
