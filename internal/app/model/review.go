package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ReviewStatus string // 리뷰 노출 상태

const (
	ReviewStatusActive ReviewStatus = "active" // 노출 중
	ReviewStatusHidden ReviewStatus = "hidden" // 숨김 처리됨
)

// StringArray JSON 배열로 직렬화되는 문자열 배열 타입 (postgres/sqlite 공용)
type StringArray []string

// Value database/sql/driver.Valuer 인터페이스 구현
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan database/sql.Scanner 인터페이스 구현
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to scan StringArray")
	}
}

// Review 매장 리뷰 모델. 생성 후 like_count와 status만 변경된다.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // 리뷰 ID
	ShopID    uint           `gorm:"not null;index" json:"shop_id"`  // 매장 ID
	UserID    uint           `gorm:"not null;index" json:"user_id"`  // 작성자 ID
	Rating    int            `gorm:"not null" json:"rating"`         // 평점 (1-5)
	Content   string         `gorm:"type:text;not null" json:"content"` // 리뷰 내용
	ImageURLs StringArray    `gorm:"type:text" json:"image_urls,omitempty"` // 리뷰 이미지 URL 배열

	IsAIGenerated bool         `gorm:"default:false" json:"is_ai_generated"` // AI 초안 기반 작성 여부
	LikeCount     int          `gorm:"default:0" json:"like_count"`          // 좋아요 수
	Status        ReviewStatus `gorm:"type:varchar(20);default:'active';index" json:"status"` // 노출 상태

	CreatedAt time.Time      `json:"created_at"` // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"` // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Shop Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"` // 매장 정보
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 작성자 정보
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewKeyword 리뷰 본문에서 추출된 키워드 인덱스 행.
// 리뷰 생성 시 한 번 적재되며 갱신/삭제 경로가 없다.
type ReviewKeyword struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ReviewID  uint      `gorm:"not null;index:idx_review_keyword" json:"review_id"`             // 리뷰 ID
	Keyword   string    `gorm:"type:varchar(50);not null;index:idx_review_keyword" json:"keyword"` // 사전 키워드
	Weight    float64   `gorm:"default:1" json:"weight"`                                        // 가중치 (기본 1.0)
	CreatedAt time.Time `json:"created_at"`

	Review Review `gorm:"foreignKey:ReviewID" json:"-"`
}

func (ReviewKeyword) TableName() string {
	return "review_keywords"
}
