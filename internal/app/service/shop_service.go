package service

import (
	"errors"
	"strings"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	// ErrShopNotFound 매장이 없음
	ErrShopNotFound = errors.New("shop not found")
	// ErrInvalidShopName 매장 이름이 비어 있음
	ErrInvalidShopName = errors.New("shop name is required")
)

type ShopService struct {
	shopRepo   repository.ShopRepository
	reviewRepo *repository.ReviewRepository
}

func NewShopService(shopRepo repository.ShopRepository, reviewRepo *repository.ReviewRepository) *ShopService {
	return &ShopService{
		shopRepo:   shopRepo,
		reviewRepo: reviewRepo,
	}
}

// CreateShopInput 매장 등록 입력
type CreateShopInput struct {
	Name        string
	Category    string
	Address     string
	PhoneNumber string
	ImageURL    string
	Description string
}

// CreateShop 매장 등록
func (s *ShopService) CreateShop(input CreateShopInput) (*model.Shop, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidShopName
	}
	shop := &model.Shop{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	}
	if err := s.shopRepo.Create(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// GetShop 매장 단건 조회
func (s *ShopService) GetShop(shopID uint) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return shop, nil
}

// ShopDetail 매장 상세 (리뷰 통계 포함)
type ShopDetail struct {
	Shop          *model.Shop
	ReviewCount   int64
	AverageRating float64
}

// GetShopDetail 매장과 리뷰 통계를 함께 조회한다
func (s *ShopService) GetShopDetail(shopID uint) (*ShopDetail, error) {
	shop, err := s.GetShop(shopID)
	if err != nil {
		return nil, err
	}
	count, avg, err := s.reviewRepo.ShopStatistics(shopID)
	if err != nil {
		return nil, err
	}
	return &ShopDetail{Shop: shop, ReviewCount: count, AverageRating: avg}, nil
}

// ListShops 매장 목록 (카테고리 필터, 페이징)
func (s *ShopService) ListShops(category string, page, size int) ([]model.Shop, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.shopRepo.List((page-1)*size, size, category)
}

// UpdateShopInput 매장 수정 입력 (nil 필드는 유지)
type UpdateShopInput struct {
	Name        *string
	Category    *string
	Address     *string
	PhoneNumber *string
	ImageURL    *string
	Description *string
}

// UpdateShop 매장 정보 수정
func (s *ShopService) UpdateShop(shopID uint, input UpdateShopInput) (*model.Shop, error) {
	shop, err := s.GetShop(shopID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidShopName
		}
		shop.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		shop.Category = *input.Category
	}
	if input.Address != nil {
		shop.Address = *input.Address
	}
	if input.PhoneNumber != nil {
		shop.PhoneNumber = *input.PhoneNumber
	}
	if input.ImageURL != nil {
		shop.ImageURL = *input.ImageURL
	}
	if input.Description != nil {
		shop.Description = *input.Description
	}
	if err := s.shopRepo.Update(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop 매장 삭제 (soft delete)
func (s *ShopService) DeleteShop(shopID uint) error {
	if _, err := s.GetShop(shopID); err != nil {
		return err
	}
	return s.shopRepo.Delete(shopID)
}
