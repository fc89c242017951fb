package repository

import (
	"errors"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"

	"gorm.io/gorm"
)

type OrderRecordRepository struct {
	db *gorm.DB
}

func NewOrderRecordRepository(db *gorm.DB) *OrderRecordRepository {
	return &OrderRecordRepository{db: db}
}

// Create 소비 기록 생성
func (r *OrderRecordRepository) Create(order *model.OrderRecord) error {
	return r.db.Create(order).Error
}

// ListByUser 사용자별 소비 기록 (최신 방문순)
func (r *OrderRecordRepository) ListByUser(userID uint, offset, limit int) ([]model.OrderRecord, int64, error) {
	var orders []model.OrderRecord
	var total int64

	query := r.db.Model(&model.OrderRecord{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("visit_time DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListByShop 매장별 소비 기록 (최신 방문순)
func (r *OrderRecordRepository) ListByShop(shopID uint, offset, limit int) ([]model.OrderRecord, int64, error) {
	var orders []model.OrderRecord
	var total int64

	query := r.db.Model(&model.OrderRecord{}).Where("shop_id = ?", shopID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("visit_time DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindLatestByUserAndShop 해당 매장에서의 가장 최근 소비 기록.
// 기록이 없으면 (nil, nil) — 없는 것이 정상인 조회라 에러로 보지 않는다.
func (r *OrderRecordRepository) FindLatestByUserAndShop(userID, shopID uint) (*model.OrderRecord, error) {
	var order model.OrderRecord
	err := r.db.Where("user_id = ? AND shop_id = ?", userID, shopID).
		Order("visit_time DESC, id DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Count 전체 소비 기록 수
func (r *OrderRecordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.OrderRecord{}).Count(&count).Error
	return count, err
}
