package service

import (
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
)

type AILogService struct {
	logRepo *repository.AICallLogRepository
}

func NewAILogService(logRepo *repository.AICallLogRepository) *AILogService {
	return &AILogService{logRepo: logRepo}
}

// ListLogs 감사 로그 목록 (최신순, 타입/상태 필터)
func (s *AILogService) ListLogs(callType model.AICallType, status model.AICallStatus, page, size int) ([]model.AICallLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.logRepo.List((page-1)*size, size, callType, status)
}

// LogSummary 호출 통계 요약
type LogSummary struct {
	SuccessCount     int64   `json:"success_count"`
	FailureCount     int64   `json:"failure_count"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
}

// Summary 성공/실패 건수와 평균 지연을 집계한다
func (s *AILogService) Summary() (*LogSummary, error) {
	success, err := s.logRepo.CountByStatus(model.AICallStatusSuccess)
	if err != nil {
		return nil, err
	}
	failure, err := s.logRepo.CountByStatus(model.AICallStatusFailure)
	if err != nil {
		return nil, err
	}
	avg, err := s.logRepo.AverageLatencyMs()
	if err != nil {
		return nil, err
	}
	return &LogSummary{
		SuccessCount:     success,
		FailureCount:     failure,
		AverageLatencyMs: avg,
	}, nil
}
