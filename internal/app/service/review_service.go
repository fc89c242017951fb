package service

import (
	"errors"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/keyword"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrReviewNotFound 리뷰가 없거나 비활성 상태
	ErrReviewNotFound = errors.New("review not found")
	// ErrInvalidRating 평점 범위 밖 (1~5)
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	shopRepo   repository.ShopRepository
	dict       *keyword.Dictionary
}

func NewReviewService(reviewRepo *repository.ReviewRepository, shopRepo repository.ShopRepository, dict *keyword.Dictionary) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		shopRepo:   shopRepo,
		dict:       dict,
	}
}

// CreateReviewInput 리뷰 작성 입력
type CreateReviewInput struct {
	ShopID        uint
	UserID        uint
	Rating        int
	Content       string
	ImageURLs     []string
	IsAIGenerated bool
}

// CreateReview 리뷰를 저장하고 본문에서 키워드를 추출해 색인한다.
// 키워드 색인 실패는 리뷰 저장 자체를 되돌리지 않는다 (색인은 배치로 보충 가능).
func (s *ReviewService) CreateReview(input CreateReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.shopRepo.FindByID(input.ShopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	review := &model.Review{
		ShopID:        input.ShopID,
		UserID:        input.UserID,
		Rating:        input.Rating,
		Content:       input.Content,
		ImageURLs:     model.StringArray(input.ImageURLs),
		IsAIGenerated: input.IsAIGenerated,
		Status:        model.ReviewStatusActive,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		return nil, err
	}

	keywords := s.dict.Extract(review.ID, review.Content)
	if err := s.reviewRepo.InsertKeywords(keywords); err != nil {
		logger.Error("Failed to index review keywords", err, map[string]interface{}{
			"review_id": review.ID,
		})
	}
	return review, nil
}

// GetReview 단건 조회
func (s *ReviewService) GetReview(reviewID uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// ListShopReviews 매장 리뷰 목록 (최신순, 페이징)
func (s *ReviewService) ListShopReviews(shopID uint, page, size int) ([]model.Review, int64, error) {
	if _, err := s.shopRepo.FindByID(shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrShopNotFound
		}
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.reviewRepo.ListByShop(shopID, (page-1)*size, size)
}

// LikeReview 좋아요 수를 원자적으로 1 올린다. 숨김·삭제된 리뷰는 대상이 아니다.
func (s *ReviewService) LikeReview(reviewID uint) error {
	affected, err := s.reviewRepo.IncrementLikeCount(reviewID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// HideReview 리뷰를 숨김 처리한다 (관리자용)
func (s *ReviewService) HideReview(reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	affected, err := s.reviewRepo.UpdateStatus(review.ID, model.ReviewStatusHidden)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// BackfillKeywords 키워드가 색인되지 않은 리뷰를 찾아 보충 색인한다.
// 스케줄러에서 호출되며, 처리한 리뷰 수를 돌려준다.
func (s *ReviewService) BackfillKeywords(batchSize int) (int, error) {
	if batchSize < 1 {
		batchSize = 100
	}
	reviews, err := s.reviewRepo.FindWithoutKeywords(batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, review := range reviews {
		keywords := s.dict.Extract(review.ID, review.Content)
		if len(keywords) == 0 {
			// 사전 용어가 없는 본문은 건너뛰면 다음 주기에 또 잡히므로
			// 빈 표시 행 없이 그대로 둔다. 재조회 비용은 배치 크기로 제한된다.
			continue
		}
		if err := s.reviewRepo.InsertKeywords(keywords); err != nil {
			logger.Error("Failed to backfill review keywords", err, map[string]interface{}{
				"review_id": review.ID,
			})
			continue
		}
		processed++
	}
	return processed, nil
}
