package service

import (
	"errors"
	"time"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"gorm.io/gorm"
)

// ErrInvalidOrderAmount 주문 금액이 음수
var ErrInvalidOrderAmount = errors.New("order amount must not be negative")

type OrderRecordService struct {
	orderRepo *repository.OrderRecordRepository
	shopRepo  repository.ShopRepository
}

func NewOrderRecordService(orderRepo *repository.OrderRecordRepository, shopRepo repository.ShopRepository) *OrderRecordService {
	return &OrderRecordService{
		orderRepo: orderRepo,
		shopRepo:  shopRepo,
	}
}

// RecordVisitInput 소비 기록 입력
type RecordVisitInput struct {
	ShopID    uint
	UserID    uint
	Amount    float64
	VisitTime time.Time
	Items     string
}

// RecordVisit 방문/소비 기록을 남긴다. AI 초안 프롬프트의 근거 데이터가 된다.
func (s *OrderRecordService) RecordVisit(input RecordVisitInput) (*model.OrderRecord, error) {
	if input.Amount < 0 {
		return nil, ErrInvalidOrderAmount
	}
	if _, err := s.shopRepo.FindByID(input.ShopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	visitTime := input.VisitTime
	if visitTime.IsZero() {
		visitTime = time.Now()
	}
	record := &model.OrderRecord{
		ShopID:    input.ShopID,
		UserID:    input.UserID,
		Amount:    input.Amount,
		VisitTime: visitTime,
		Items:     input.Items,
	}
	if err := s.orderRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListUserOrders 사용자 소비 기록 (최근 방문순)
func (s *OrderRecordService) ListUserOrders(userID uint, limit int) ([]model.OrderRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	records, _, err := s.orderRepo.ListByUser(userID, 0, limit)
	return records, err
}

// ListShopOrders 매장 소비 기록 (최근 방문순)
func (s *OrderRecordService) ListShopOrders(shopID uint, limit int) ([]model.OrderRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	records, _, err := s.orderRepo.ListByShop(shopID, 0, limit)
	return records, err
}
