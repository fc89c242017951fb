package model

import (
	"time"
)

// OrderRecord 매장 방문/소비 기록. AI 초안 생성의 컨텍스트로 쓰인다.
type OrderRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ShopID    uint      `gorm:"not null;index" json:"shop_id"` // 매장 ID
	UserID    uint      `gorm:"not null;index" json:"user_id"` // 사용자 ID
	Amount    float64   `gorm:"not null" json:"amount"`        // 소비 금액
	VisitTime time.Time `json:"visit_time"`                    // 방문 시각
	Items     string    `gorm:"type:text" json:"items"`        // 주문 항목 JSON
	CreatedAt time.Time `json:"created_at"`

	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (OrderRecord) TableName() string {
	return "order_records"
}
