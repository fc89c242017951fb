package repository

import (
	"time"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// CreateTag 태그 생성
func (r *TagRepository) CreateTag(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

// ListTags 태그 목록 조회 (scope 필터 선택)
func (r *TagRepository) ListTags(scope model.TagScope) ([]model.Tag, error) {
	var tags []model.Tag
	query := r.db.Model(&model.Tag{})
	if scope != "" {
		query = query.Where("scope = ?", scope)
	}
	err := query.Order("id ASC").Find(&tags).Error
	return tags, err
}

// FindTagByID ID로 태그 조회
func (r *TagRepository) FindTagByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindTagByNameAndScope 이름+스코프로 태그 조회 (시드 임포트용)
func (r *TagRepository) FindTagByNameAndScope(name string, scope model.TagScope) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("name = ? AND scope = ?", name, scope).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ReplaceUserTags 사용자 태그 전체 교체. 기존 바인딩을 모두 지우고 다시 만든다.
// 한 트랜잭션으로 묶여 동시 할당은 last-write-wins로 끝난다.
func (r *TagRepository) ReplaceUserTags(userID uint, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		now := time.Now()
		bindings := make([]model.UserTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			bindings = append(bindings, model.UserTag{
				UserID:    userID,
				TagID:     tagID,
				Weight:    1.0,
				UpdatedAt: now,
			})
		}
		return tx.Create(&bindings).Error
	})
}

// ReplaceShopTags 매장 태그 전체 교체 (ReplaceUserTags와 동일한 규칙)
func (r *TagRepository) ReplaceShopTags(shopID uint, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_id = ?", shopID).Delete(&model.ShopTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		now := time.Now()
		bindings := make([]model.ShopTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			bindings = append(bindings, model.ShopTag{
				ShopID:    shopID,
				TagID:     tagID,
				Weight:    1.0,
				UpdatedAt: now,
			})
		}
		return tx.Create(&bindings).Error
	})
}

// ListTagsOfUser 사용자에게 바인딩된 태그 목록
func (r *TagRepository) ListTagsOfUser(userID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Model(&model.Tag{}).
		Joins("JOIN user_tags ON user_tags.tag_id = tags.id").
		Where("user_tags.user_id = ?", userID).
		Order("tags.id ASC").
		Find(&tags).Error
	return tags, err
}

// ListTagsOfShop 매장에 바인딩된 태그 목록
func (r *TagRepository) ListTagsOfShop(shopID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Model(&model.Tag{}).
		Joins("JOIN shop_tags ON shop_tags.tag_id = tags.id").
		Where("shop_tags.shop_id = ?", shopID).
		Order("tags.id ASC").
		Find(&tags).Error
	return tags, err
}

// ListTagNamesOfUser 사용자 태그 이름 목록 (추천/추론용)
func (r *TagRepository) ListTagNamesOfUser(userID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Tag{}).
		Joins("JOIN user_tags ON user_tags.tag_id = tags.id").
		Where("user_tags.user_id = ?", userID).
		Order("tags.id ASC").
		Pluck("tags.name", &names).Error
	return names, err
}

// ListTagNamesOfShop 매장 태그 이름 목록 (추천/추론용)
func (r *TagRepository) ListTagNamesOfShop(shopID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Tag{}).
		Joins("JOIN shop_tags ON shop_tags.tag_id = tags.id").
		Where("shop_tags.shop_id = ?", shopID).
		Order("tags.id ASC").
		Pluck("tags.name", &names).Error
	return names, err
}
