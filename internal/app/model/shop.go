package model

import (
	"time"

	"gorm.io/gorm"
)

// Shop 리뷰가 달리는 음식점(매장) 모델
type Shop struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 매장 ID
	Name        string         `gorm:"not null" json:"name"`                 // 매장명
	Category    string         `gorm:"type:varchar(50);index" json:"category"` // 업종 (예: "hotpot", "korean")
	Address     string         `gorm:"type:text" json:"address"`             // 상세 주소
	PhoneNumber string         `gorm:"type:varchar(30)" json:"phone_number"` // 연락처
	ImageURL    string         `json:"image_url"`                            // 매장 이미지
	Description string         `gorm:"type:text" json:"description"`         // 매장 소개
	CreatedAt   time.Time      `json:"created_at"`                           // 생성 시각
	UpdatedAt   time.Time      `json:"updated_at"`                           // 수정 시각
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 삭제 시각(소프트 삭제)
}

func (Shop) TableName() string {
	return "shops"
}
