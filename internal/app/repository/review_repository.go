package repository

import (
	"strings"
	"time"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"

	"gorm.io/gorm"
)

// popularityOrder 인기/최신 정렬 기준. id까지 포함해 같은 입력에 항상 같은 순서를 보장한다.
const popularityOrder = "like_count DESC, rating DESC, created_at DESC, id DESC"

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview 리뷰 생성
func (r *ReviewRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

// FindByID ID로 리뷰 조회
func (r *ReviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByShop 매장별 리뷰 목록 조회 (최신순, 페이지네이션)
func (r *ReviewRepository) ListByShop(shopID uint, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.Model(&model.Review{}).Where("shop_id = ?", shopID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// IncrementLikeCount 노출 중인 리뷰의 좋아요 수를 원자적으로 1 올린다.
// 영향받은 행 수를 돌려주므로 0이면 리뷰가 없거나 숨김 상태다.
func (r *ReviewRepository) IncrementLikeCount(id uint) (int64, error) {
	result := r.db.Model(&model.Review{}).
		Where("id = ? AND status = ?", id, model.ReviewStatusActive).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	return result.RowsAffected, result.Error
}

// UpdateStatus 리뷰 노출 상태 변경
func (r *ReviewRepository) UpdateStatus(id uint, status model.ReviewStatus) (int64, error) {
	result := r.db.Model(&model.Review{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected, result.Error
}

// FindTopByShop 매장의 노출 중 리뷰를 인기/최신순으로 최대 limit개 조회 (3단계 폴백 recall)
func (r *ReviewRepository) FindTopByShop(shopID uint, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("shop_id = ? AND status = ?", shopID, model.ReviewStatusActive).
		Order(popularityOrder).
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// FindTopByShopAndKeyword 본문에 키워드가 포함된 노출 중 리뷰를 인기/최신순으로 조회 (2단계 recall)
func (r *ReviewRepository) FindTopByShopAndKeyword(shopID uint, keyword string, limit int) ([]model.Review, error) {
	var reviews []model.Review
	pattern := "%" + strings.ToLower(keyword) + "%"
	err := r.db.Where("shop_id = ? AND status = ?", shopID, model.ReviewStatusActive).
		Where("LOWER(content) LIKE ?", pattern).
		Order(popularityOrder).
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// InsertKeywords 키워드 인덱스 배치 적재. 빈 배치는 no-op.
func (r *ReviewRepository) InsertKeywords(entries []model.ReviewKeyword) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

// FindReviewIDsByShopAndKeyword 키워드 인덱스로 리뷰 ID recall (1단계 recall).
// 최신 리뷰 우선으로 최대 limit개.
func (r *ReviewRepository) FindReviewIDsByShopAndKeyword(shopID uint, keyword string, limit int) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ReviewKeyword{}).
		Joins("JOIN reviews ON reviews.id = review_keywords.review_id").
		Where("reviews.shop_id = ? AND reviews.deleted_at IS NULL", shopID).
		Where("review_keywords.keyword = ?", strings.ToLower(keyword)).
		Order("review_keywords.review_id DESC").
		Limit(limit).
		Pluck("review_keywords.review_id", &ids).Error
	return ids, err
}

// FindWithoutKeywords 키워드 인덱스 행이 하나도 없는 노출 중 리뷰를 조회 (백필 스케줄러용)
func (r *ReviewRepository) FindWithoutKeywords(limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Where("status = ?", model.ReviewStatusActive).
		Where("NOT EXISTS (SELECT 1 FROM review_keywords WHERE review_keywords.review_id = reviews.id)").
		Order("id ASC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// Count 전체 리뷰 수
func (r *ReviewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Count(&count).Error
	return count, err
}

// CountCreatedSince 기준 시각 이후 작성된 리뷰 수
func (r *ReviewRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// CountByShop 매장 리뷰 수
func (r *ReviewRepository) CountByShop(shopID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Where("shop_id = ?", shopID).Count(&count).Error
	return count, err
}

// ShopStatistics 매장 리뷰 통계 (개수, 평균 평점)
func (r *ReviewRepository) ShopStatistics(shopID uint) (int64, float64, error) {
	var reviewCount int64
	if err := r.db.Model(&model.Review{}).Where("shop_id = ?", shopID).Count(&reviewCount).Error; err != nil {
		return 0, 0, err
	}

	var avgRating float64
	if reviewCount > 0 {
		if err := r.db.Model(&model.Review{}).
			Where("shop_id = ?", shopID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avgRating).Error; err != nil {
			return 0, 0, err
		}
	}
	return reviewCount, avgRating, nil
}
