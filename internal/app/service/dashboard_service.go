package service

import (
	"context"
	"time"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"github.com/hyunsoo-dev/matzip-backend/pkg/redis"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardStats 관리자 대시보드 통계
type DashboardStats struct {
	ShopCount        int64   `json:"shop_count"`
	UserCount        int64   `json:"user_count"`
	ReviewCount      int64   `json:"review_count"`
	TodayReviewCount int64   `json:"today_review_count"`
	UserOrderCount   int64   `json:"order_count"`
	AISuccessCount   int64   `json:"ai_success_count"`
	AIFailureCount   int64   `json:"ai_failure_count"`
	AIAvgLatencyMs   float64 `json:"ai_avg_latency_ms"`
	GeneratedAtEpoch int64   `json:"generated_at"`
}

type DashboardService struct {
	shopRepo     repository.ShopRepository
	userRepo     repository.UserRepository
	reviewRepo   *repository.ReviewRepository
	orderRepo    *repository.OrderRecordRepository
	ailogService *AILogService
}

func NewDashboardService(
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	reviewRepo *repository.ReviewRepository,
	orderRepo *repository.OrderRecordRepository,
	ailogService *AILogService,
) *DashboardService {
	return &DashboardService{
		shopRepo:     shopRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
		orderRepo:    orderRepo,
		ailogService: ailogService,
	}
}

// GetStats 대시보드 통계를 조회한다. 60초 캐시를 거치며,
// Redis가 없으면 캐시 없이 매번 집계한다.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if hit, err := redis.GetJSON(ctx, dashboardCacheKey, &cached); err != nil {
		logger.Error("Dashboard cache lookup failed", err, nil)
	} else if hit {
		return &cached, nil
	}

	stats, err := s.collect()
	if err != nil {
		return nil, err
	}

	if err := redis.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil && err != redis.ErrNotConnected {
		logger.Error("Dashboard cache store failed", err, nil)
	}
	return stats, nil
}

func (s *DashboardService) collect() (*DashboardStats, error) {
	shopCount, err := s.shopRepo.Count()
	if err != nil {
		return nil, err
	}
	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	reviewCount, err := s.reviewRepo.Count()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayReviewCount, err := s.reviewRepo.CountCreatedSince(todayStart)
	if err != nil {
		return nil, err
	}
	orderCount, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	summary, err := s.ailogService.Summary()
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		ShopCount:        shopCount,
		UserCount:        userCount,
		ReviewCount:      reviewCount,
		TodayReviewCount: todayReviewCount,
		UserOrderCount:   orderCount,
		AISuccessCount:   summary.SuccessCount,
		AIFailureCount:   summary.FailureCount,
		AIAvgLatencyMs:   summary.AverageLatencyMs,
		GeneratedAtEpoch: time.Now().Unix(),
	}, nil
}
