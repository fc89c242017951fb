package model

import (
	"time"
)

type AICallType string   // AI 호출 유형
type AICallStatus string // AI 호출 결과 상태

const (
	AICallTypeGenerate  AICallType = "generate"  // 리뷰 초안 생성
	AICallTypeRecommend AICallType = "recommend" // 추천 (예약, 현재 추천 경로는 로그를 남기지 않음)

	AICallStatusSuccess AICallStatus = "success" // 성공
	AICallStatusFailure AICallStatus = "failure" // 실패 (타임아웃/전송 오류/응답 파싱 실패)
)

// AICallLog AI 호출 감사 로그. 호출 시도당 정확히 한 행이 추가되는 append-only 테이블.
type AICallLog struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	UserID      *uint        `gorm:"index" json:"user_id,omitempty"`           // 트리거한 사용자 ID (nullable)
	Type        AICallType   `gorm:"type:varchar(20);index" json:"type"`       // 호출 유형
	Prompt      string       `gorm:"type:text" json:"prompt"`                  // 요청 프롬프트
	ResponseRef string       `gorm:"type:text" json:"response_ref"`            // 응답 또는 에러 요약 (500자 제한)
	LatencyMs   int          `json:"latency_ms"`                               // 소요 시간 (ms)
	Status      AICallStatus `gorm:"type:varchar(10);index" json:"status"`     // 결과 상태
	CreatedAt   time.Time    `json:"created_at"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}
