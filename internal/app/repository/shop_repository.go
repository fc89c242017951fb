package repository

import (
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"

	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(shop *model.Shop) error
	FindByID(id uint) (*model.Shop, error)
	List(offset, limit int, category string) ([]model.Shop, int64, error)
	Update(shop *model.Shop) error
	Delete(id uint) error
	Count() (int64, error)
	BulkCreate(shops []model.Shop, batchSize int) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(shop *model.Shop) error {
	return r.db.Create(shop).Error
}

func (r *shopRepository) FindByID(id uint) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// List 매장 목록 조회 (카테고리 필터 선택)
func (r *shopRepository) List(offset, limit int, category string) ([]model.Shop, int64, error) {
	var shops []model.Shop
	var total int64

	query := r.db.Model(&model.Shop{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&shops).Error
	if err != nil {
		return nil, 0, err
	}

	return shops, total, nil
}

func (r *shopRepository) Update(shop *model.Shop) error {
	return r.db.Save(shop).Error
}

// Delete 소프트 삭제
func (r *shopRepository) Delete(id uint) error {
	return r.db.Delete(&model.Shop{}, id).Error
}

func (r *shopRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Shop{}).Count(&count).Error
	return count, err
}

// BulkCreate 시드 데이터 일괄 등록
func (r *shopRepository) BulkCreate(shops []model.Shop, batchSize int) error {
	if len(shops) == 0 {
		return nil
	}
	if batchSize < 1 {
		batchSize = 100
	}
	return r.db.CreateInBatches(shops, batchSize).Error
}
