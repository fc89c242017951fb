package model

import (
	"time"

	"gorm.io/gorm"
)

type TagScope string // 태그가 붙는 대상 구분

const (
	TagScopeUser   TagScope = "user"   // 사용자 취향 태그
	TagScopeShop   TagScope = "shop"   // 매장 특징 태그
	TagScopeReview TagScope = "review" // 리뷰 태그
)

// Tag 사용자/매장에 연결할 수 있는 태그
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(50);uniqueIndex:idx_tag_name_scope;not null" json:"name"` // 태그 이름 (예: "spicy lover")
	Scope     TagScope       `gorm:"type:varchar(20);uniqueIndex:idx_tag_name_scope" json:"scope"`         // 대상 구분
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// UserTag 사용자-태그 바인딩. 재할당 시 기존 바인딩을 전부 버리고 다시 만든다.
type UserTag struct {
	UserID    uint      `gorm:"primaryKey;index" json:"user_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Weight    float64   `gorm:"default:1" json:"weight"` // 가중치 (기본 1.0)
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"foreignKey:TagID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
}

func (UserTag) TableName() string {
	return "user_tags"
}

// ShopTag 매장-태그 바인딩. 재할당 시 기존 바인딩을 전부 버리고 다시 만든다.
type ShopTag struct {
	ShopID    uint      `gorm:"primaryKey;index" json:"shop_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Weight    float64   `gorm:"default:1" json:"weight"` // 가중치 (기본 1.0)
	UpdatedAt time.Time `json:"updated_at"`

	Shop Shop `gorm:"foreignKey:ShopID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"foreignKey:TagID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
}

func (ShopTag) TableName() string {
	return "shop_tags"
}
