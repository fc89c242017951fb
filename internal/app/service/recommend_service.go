package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/keyword"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	minRecommendLimit = 1
	maxRecommendLimit = 10

	// 점수 = like_count*2 + rating + (본문에 등장한 키워드 수 * keywordHitBonus)
	likeCountWeight = 2.0
	keywordHitBonus = 5.0

	fallbackReason = "recommended based on this shop's popular reviews."
)

// RecommendedReview 추천 결과 항목: 점수순 리뷰와 추천 사유
type RecommendedReview struct {
	Review model.Review `json:"review"`
	Reason string       `json:"reason"`
}

type RecommendService struct {
	reviewRepo *repository.ReviewRepository
	tagRepo    *repository.TagRepository
	shopRepo   repository.ShopRepository
	dict       *keyword.Dictionary
}

func NewRecommendService(
	reviewRepo *repository.ReviewRepository,
	tagRepo *repository.TagRepository,
	shopRepo repository.ShopRepository,
	dict *keyword.Dictionary,
) *RecommendService {
	return &RecommendService{
		reviewRepo: reviewRepo,
		tagRepo:    tagRepo,
		shopRepo:   shopRepo,
		dict:       dict,
	}
}

// Recommend 매장의 리뷰를 취향 기반으로 추천한다.
//   - limit은 [1,10]으로 보정한다 (검증 에러가 아니라 조용한 clamp)
//   - 명시 preference가 없으면 사용자/매장 태그에서 하나를 추론한다
//   - 키워드 인덱스 → 본문 매칭 → 인기 폴백의 3단계 recall 중 한 단계의 결과만 쓴다
//   - recall 결과를 키워드 점수로 재정렬하고 clamp된 limit으로 자른다
//
// userID는 비로그인 호출을 허용하기 위해 nullable이다.
func (s *RecommendService) Recommend(userID *uint, shopID uint, preference string, limit int) ([]RecommendedReview, error) {
	if _, err := s.shopRepo.FindByID(shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	safeLimit := clampLimit(limit)

	userTagNames, shopTagNames, err := s.tagProfiles(userID, shopID)
	if err != nil {
		return nil, err
	}

	// 공백뿐인 preference만 미지정으로 보고, 명시 입력은 그대로 쓴다
	effective := preference
	if strings.TrimSpace(effective) == "" {
		effective = ""
		if inferred, ok := s.dict.FirstMatch(append(append([]string{}, userTagNames...), shopTagNames...)); ok {
			effective = inferred
		}
	}

	candidates, err := s.recallCandidates(shopID, effective, safeLimit)
	if err != nil {
		return nil, err
	}

	keywords := s.buildKeywordList(effective, userTagNames, shopTagNames)
	reranked := rerankByKeywords(candidates, keywords)
	if len(reranked) > safeLimit {
		reranked = reranked[:safeLimit]
	}

	userTagStr := strings.Join(userTagNames, ", ")
	shopTagStr := strings.Join(shopTagNames, ", ")
	reasonKws := s.reasonKeywords(keywords)

	results := make([]RecommendedReview, 0, len(reranked))
	for _, review := range reranked {
		results = append(results, RecommendedReview{
			Review: review,
			Reason: buildReason(review, userTagStr, shopTagStr, reasonKws),
		})
	}

	logger.Debug("Recommendation completed", map[string]interface{}{
		"shop_id":    shopID,
		"preference": effective,
		"limit":      safeLimit,
		"results":    len(results),
	})

	return results, nil
}

// tagProfiles 사용자/매장 태그 이름 조회. userID가 없으면 사용자 쪽은 빈 목록.
func (s *RecommendService) tagProfiles(userID *uint, shopID uint) ([]string, []string, error) {
	var userTagNames []string
	if userID != nil {
		names, err := s.tagRepo.ListTagNamesOfUser(*userID)
		if err != nil {
			return nil, nil, err
		}
		userTagNames = names
	}

	shopTagNames, err := s.tagRepo.ListTagNamesOfShop(shopID)
	if err != nil {
		return nil, nil, err
	}

	return userTagNames, shopTagNames, nil
}

// recallCandidates 3단계 recall. 한 단계가 결과를 내면 그걸로 끝낸다 (단계 간 병합 없음).
func (s *RecommendService) recallCandidates(shopID uint, preference string, limit int) ([]model.Review, error) {
	// 1단계: 키워드 인덱스 recall
	if preference != "" {
		hits, err := s.recallByKeywordIndex(shopID, preference, limit)
		if err != nil {
			return nil, err
		}
		if len(hits) > 0 {
			return hits, nil
		}

		// 2단계: 본문 부분 문자열 매칭
		textHits, err := s.reviewRepo.FindTopByShopAndKeyword(shopID, preference, limit)
		if err != nil {
			return nil, err
		}
		if len(textHits) > 0 {
			return textHits, nil
		}
	}

	// 3단계: 인기 리뷰 폴백 (preference 무시)
	return s.reviewRepo.FindTopByShop(shopID, limit)
}

// recallByKeywordIndex 키워드 인덱스로 리뷰 ID를 찾고 노출 중인 리뷰만 모은다.
func (s *RecommendService) recallByKeywordIndex(shopID uint, preference string, limit int) ([]model.Review, error) {
	ids, err := s.reviewRepo.FindReviewIDsByShopAndKeyword(shopID, preference, limit)
	if err != nil {
		return nil, err
	}

	var result []model.Review
	for _, id := range ids {
		review, err := s.reviewRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 인덱스 적재 이후 리뷰가 지워졌을 수 있다
				continue
			}
			return nil, err
		}
		if review.Status != model.ReviewStatusActive {
			continue
		}
		result = append(result, *review)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// buildKeywordList 재정렬/사유 생성에 쓰는 키워드 목록.
// 명시 preference가 맨 앞, 이어서 태그 이름에 등장한 사전 항목 전부를 사전 순서대로.
// 순서가 고정이라 같은 입력엔 항상 같은 목록이 나온다.
func (s *RecommendService) buildKeywordList(effective string, userTagNames, shopTagNames []string) []string {
	var list []string
	seen := make(map[string]bool)

	if effective != "" {
		list = append(list, effective)
		seen[strings.ToLower(effective)] = true
	}

	allNames := append(append([]string{}, userTagNames...), shopTagNames...)
	for _, term := range s.dict.MatchAll(allNames) {
		if !seen[term] {
			list = append(list, term)
			seen[term] = true
		}
	}
	return list
}

// reasonKeywords 사유 절의 키워드 탐색 순서.
// 사전에 있는 항목은 사전 순서대로 먼저, 사전에 없는 자유 입력 preference는 맨 뒤.
// 재정렬 점수는 순서와 무관하므로 buildKeywordList의 순서는 그대로 둔다.
func (s *RecommendService) reasonKeywords(keywords []string) []string {
	inSet := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			inSet[strings.ToLower(kw)] = true
		}
	}

	ordered := make([]string, 0, len(keywords))
	for _, term := range s.dict.Terms() {
		if inSet[term] {
			ordered = append(ordered, term)
			delete(inSet, term)
		}
	}
	for _, kw := range keywords {
		if kw != "" && inSet[strings.ToLower(kw)] {
			ordered = append(ordered, kw)
			delete(inSet, strings.ToLower(kw))
		}
	}
	return ordered
}

// scoreReview 단일 리뷰 추천 점수
func scoreReview(review model.Review, keywords []string) float64 {
	score := float64(review.LikeCount)*likeCountWeight + float64(review.Rating)
	content := strings.ToLower(review.Content)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(content, strings.ToLower(kw)) {
			score += keywordHitBonus
		}
	}
	return score
}

// rerankByKeywords 점수 내림차순 재정렬. 안정 정렬이라 동점은 입력 순서를 유지한다.
func rerankByKeywords(reviews []model.Review, keywords []string) []model.Review {
	if len(reviews) == 0 {
		return reviews
	}

	type scoredReview struct {
		review model.Review
		score  float64
	}
	scored := make([]scoredReview, 0, len(reviews))
	for _, review := range reviews {
		scored = append(scored, scoredReview{review: review, score: scoreReview(review, keywords)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]model.Review, 0, len(scored))
	for _, item := range scored {
		ranked = append(ranked, item.review)
	}
	return ranked
}

// buildReason 고정 순서의 추천 사유를 만든다.
// 절 순서: 사용자 태그 → 매장 태그 → 본문에서 발견된 키워드.
// keywords는 사전 순서로 정렬된 목록을 받아 앞에서부터 첫 일치 항목을 쓴다.
// 셋 다 해당 없으면 인기 폴백 문구.
func buildReason(review model.Review, userTagStr, shopTagStr string, keywords []string) string {
	content := strings.ToLower(review.Content)
	hit := ""
	for _, kw := range keywords {
		if kw != "" && strings.Contains(content, strings.ToLower(kw)) {
			hit = kw
			break
		}
	}

	var clauses []string
	if userTagStr != "" {
		clauses = append(clauses, fmt.Sprintf("you are a '%s' type user", userTagStr))
	}
	if shopTagStr != "" {
		clauses = append(clauses, "this shop is tagged: "+shopTagStr)
	}
	if hit != "" {
		clauses = append(clauses, fmt.Sprintf("this review mentions '%s'", hit))
	}

	if len(clauses) == 0 {
		return fallbackReason
	}
	return strings.Join(clauses, "; ") + "."
}

// clampLimit 요청 limit을 [1,10]으로 보정한다
func clampLimit(limit int) int {
	if limit < minRecommendLimit {
		return minRecommendLimit
	}
	if limit > maxRecommendLimit {
		return maxRecommendLimit
	}
	return limit
}
