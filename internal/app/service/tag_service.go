package service

import (
	"errors"
	"strings"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	// ErrTagNotFound 태그가 없음
	ErrTagNotFound = errors.New("tag not found")
	// ErrInvalidTagScope 허용되지 않은 스코프
	ErrInvalidTagScope = errors.New("invalid tag scope")
	// ErrInvalidTagName 태그 이름이 비어 있음
	ErrInvalidTagName = errors.New("tag name is required")
)

type TagService struct {
	tagRepo  *repository.TagRepository
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
}

func NewTagService(tagRepo *repository.TagRepository, userRepo repository.UserRepository, shopRepo repository.ShopRepository) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		userRepo: userRepo,
		shopRepo: shopRepo,
	}
}

// CreateTag 태그를 등록한다
func (s *TagService) CreateTag(name string, scope model.TagScope) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTagName
	}
	switch scope {
	case model.TagScopeUser, model.TagScopeShop, model.TagScopeReview:
	default:
		return nil, ErrInvalidTagScope
	}

	tag := &model.Tag{Name: name, Scope: scope}
	if err := s.tagRepo.CreateTag(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags 스코프별 태그 목록. scope가 빈 문자열이면 전체.
func (s *TagService) ListTags(scope model.TagScope) ([]model.Tag, error) {
	return s.tagRepo.ListTags(scope)
}

// AssignTagsToUser 사용자의 취향 태그를 전체 교체 방식으로 설정한다.
// 빈 목록을 주면 기존 프로필이 모두 비워진다.
func (s *TagService) AssignTagsToUser(userID uint, tagIDs []uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.validateTagIDs(tagIDs); err != nil {
		return err
	}
	return s.tagRepo.ReplaceUserTags(userID, tagIDs)
}

// AssignTagsToShop 매장 태그를 전체 교체 방식으로 설정한다
func (s *TagService) AssignTagsToShop(shopID uint, tagIDs []uint) error {
	if _, err := s.shopRepo.FindByID(shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return err
	}
	if err := s.validateTagIDs(tagIDs); err != nil {
		return err
	}
	return s.tagRepo.ReplaceShopTags(shopID, tagIDs)
}

// ListTagsOfUser 사용자의 현재 태그
func (s *TagService) ListTagsOfUser(userID uint) ([]model.Tag, error) {
	return s.tagRepo.ListTagsOfUser(userID)
}

// ListTagsOfShop 매장의 현재 태그
func (s *TagService) ListTagsOfShop(shopID uint) ([]model.Tag, error) {
	return s.tagRepo.ListTagsOfShop(shopID)
}

func (s *TagService) validateTagIDs(tagIDs []uint) error {
	for _, id := range tagIDs {
		if _, err := s.tagRepo.FindTagByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}
	}
	return nil
}
