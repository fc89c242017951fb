package scheduler

import (
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// backfillBatchSize 한 주기에 색인하는 리뷰 수 상한
const backfillBatchSize = 500

// KeywordBackfillScheduler 키워드 색인이 빠진 리뷰를 주기적으로 보충한다.
// 색인은 리뷰 작성 시점에 이루어지지만, 색인 실패나 사전 갱신 이후의
// 기존 리뷰는 이 배치가 따라잡는다.
type KeywordBackfillScheduler struct {
	cron          *cron.Cron
	reviewService *service.ReviewService
}

func NewKeywordBackfillScheduler(reviewService *service.ReviewService) *KeywordBackfillScheduler {
	return &KeywordBackfillScheduler{
		cron:          cron.New(),
		reviewService: reviewService,
	}
}

// Start 매일 새벽 4시에 배치를 건다
func (s *KeywordBackfillScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("Keyword backfill scheduler started", map[string]interface{}{
		"schedule": "0 4 * * *",
	})
	return nil
}

// Stop 스케줄러 중지
func (s *KeywordBackfillScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Keyword backfill scheduler stopped")
}

// RunNow 즉시 1회 실행 (운영 수동 트리거용)
func (s *KeywordBackfillScheduler) RunNow() {
	s.run()
}

func (s *KeywordBackfillScheduler) run() {
	processed, err := s.reviewService.BackfillKeywords(backfillBatchSize)
	if err != nil {
		logger.Error("Keyword backfill run failed", err)
		return
	}
	logger.Info("Keyword backfill run completed", map[string]interface{}{
		"processed": processed,
	})
}
