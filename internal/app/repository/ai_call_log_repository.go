package repository

import (
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"

	"gorm.io/gorm"
)

type AICallLogRepository struct {
	db *gorm.DB
}

func NewAICallLogRepository(db *gorm.DB) *AICallLogRepository {
	return &AICallLogRepository{db: db}
}

// Insert 감사 로그 행 추가. append-only — 수정/삭제 메서드는 두지 않는다.
func (r *AICallLogRepository) Insert(row *model.AICallLog) error {
	return r.db.Create(row).Error
}

// List 감사 로그 목록 조회 (최신순, 유형/상태 필터 선택)
func (r *AICallLogRepository) List(offset, limit int, callType model.AICallType, status model.AICallStatus) ([]model.AICallLog, int64, error) {
	var logs []model.AICallLog
	var total int64

	query := r.db.Model(&model.AICallLog{})
	if callType != "" {
		query = query.Where("type = ?", callType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// CountByStatus 상태별 호출 수
func (r *AICallLogRepository) CountByStatus(status model.AICallStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.AICallLog{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// AverageLatencyMs 전체 호출 평균 지연 시간 (행이 없으면 0)
func (r *AICallLogRepository) AverageLatencyMs() (float64, error) {
	var avg float64
	err := r.db.Model(&model.AICallLog{}).
		Select("COALESCE(AVG(latency_ms), 0)").
		Scan(&avg).Error
	return avg, err
}
