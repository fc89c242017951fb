package service

import (
	"fmt"
	"testing"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/keyword"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recommendTestEnv struct {
	service    *RecommendService
	reviewRepo *repository.ReviewRepository
	tagRepo    *repository.TagRepository
	shopRepo   repository.ShopRepository
	db         *gorm.DB
}

func setupRecommendTest(t *testing.T) *recommendTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	reviewRepo := repository.NewReviewRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	shopRepo := repository.NewShopRepository(testDB)

	return &recommendTestEnv{
		service:    NewRecommendService(reviewRepo, tagRepo, shopRepo, keyword.Default()),
		reviewRepo: reviewRepo,
		tagRepo:    tagRepo,
		shopRepo:   shopRepo,
		db:         testDB,
	}
}

func (e *recommendTestEnv) createShop(t *testing.T, name string) *model.Shop {
	t.Helper()
	shop := &model.Shop{Name: name, Category: "korean", Address: "서울시 어딘가"}
	require.NoError(t, e.shopRepo.Create(shop))
	return shop
}

func (e *recommendTestEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash", Nickname: "tester", Role: model.RoleUser}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *recommendTestEnv) addReview(t *testing.T, shopID, userID uint, content string, rating, likes int, status model.ReviewStatus) *model.Review {
	t.Helper()
	review := &model.Review{
		ShopID:    shopID,
		UserID:    userID,
		Rating:    rating,
		Content:   content,
		LikeCount: likes,
		Status:    status,
	}
	require.NoError(t, e.reviewRepo.CreateReview(review))
	return review
}

func (e *recommendTestEnv) createTag(t *testing.T, name string, scope model.TagScope) *model.Tag {
	t.Helper()
	tag := &model.Tag{Name: name, Scope: scope}
	require.NoError(t, e.tagRepo.CreateTag(tag))
	return tag
}

func TestRecommendService_ShopNotFound(t *testing.T) {
	env := setupRecommendTest(t)

	results, err := env.service.Recommend(nil, 999, "", 3)

	assert.ErrorIs(t, err, ErrShopNotFound)
	assert.Nil(t, results)
}

func TestRecommendService_LimitClamp(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "만두집")
	user := env.createUser(t, "clamp@example.com")

	for i := 0; i < 12; i++ {
		env.addReview(t, shop.ID, user.ID, fmt.Sprintf("괜찮은 식당 %d", i), 4, i, model.ReviewStatusActive)
	}

	tests := []struct {
		name      string
		limit     int
		wantCount int
	}{
		{name: "Negative limit clamps to 1", limit: -5, wantCount: 1},
		{name: "Zero limit clamps to 1", limit: 0, wantCount: 1},
		{name: "In-range limit kept", limit: 3, wantCount: 3},
		{name: "Oversized limit clamps to 10", limit: 20, wantCount: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := env.service.Recommend(nil, shop.ID, "", tt.limit)
			require.NoError(t, err)
			assert.Len(t, results, tt.wantCount)
		})
	}
}

func TestRecommendService_ExcludesHiddenReviews(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "숨김집")
	user := env.createUser(t, "hidden@example.com")

	active1 := env.addReview(t, shop.ID, user.ID, "국물이 진하다", 5, 3, model.ReviewStatusActive)
	active2 := env.addReview(t, shop.ID, user.ID, "면이 쫄깃하다", 4, 1, model.ReviewStatusActive)
	hidden := env.addReview(t, shop.ID, user.ID, "광고성 리뷰", 5, 100, model.ReviewStatusHidden)

	results, err := env.service.Recommend(nil, shop.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []uint{results[0].Review.ID, results[1].Review.ID}
	assert.Contains(t, ids, active1.ID)
	assert.Contains(t, ids, active2.ID)
	assert.NotContains(t, ids, hidden.ID)
}

func TestRecommendService_ExplicitPreferenceContentMatch(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "마라집")
	user := env.createUser(t, "pref@example.com")

	match := env.addReview(t, shop.ID, user.ID, "Very SPICY soup, sweating all the way", 5, 0, model.ReviewStatusActive)
	env.addReview(t, shop.ID, user.ID, "Sweet dessert, nothing hot here", 4, 10, model.ReviewStatusActive)

	results, err := env.service.Recommend(nil, shop.ID, "spicy", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, match.ID, results[0].Review.ID)
	assert.Contains(t, results[0].Reason, "this review mentions 'spicy'")
}

func TestRecommendService_KeywordIndexRecall(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "인덱스집")
	user := env.createUser(t, "index@example.com")

	indexed := env.addReview(t, shop.ID, user.ID, "spicy noodles done right", 4, 0, model.ReviewStatusActive)
	env.addReview(t, shop.ID, user.ID, "even more spicy but never indexed", 5, 5, model.ReviewStatusActive)

	require.NoError(t, env.reviewRepo.InsertKeywords([]model.ReviewKeyword{
		{ReviewID: indexed.ID, Keyword: "spicy", Weight: 1.0},
	}))

	// 인덱스에 결과가 있으면 본문 매칭 단계로 내려가지 않는다
	results, err := env.service.Recommend(nil, shop.ID, "spicy", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, indexed.ID, results[0].Review.ID)
}

func TestRecommendService_KeywordIndexSkipsHidden(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "인덱스숨김집")
	user := env.createUser(t, "indexhidden@example.com")

	visible := env.addReview(t, shop.ID, user.ID, "spicy and fair", 4, 0, model.ReviewStatusActive)
	hidden := env.addReview(t, shop.ID, user.ID, "spicy spam", 5, 50, model.ReviewStatusHidden)

	require.NoError(t, env.reviewRepo.InsertKeywords([]model.ReviewKeyword{
		{ReviewID: visible.ID, Keyword: "spicy", Weight: 1.0},
		{ReviewID: hidden.ID, Keyword: "spicy", Weight: 1.0},
	}))

	results, err := env.service.Recommend(nil, shop.ID, "spicy", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visible.ID, results[0].Review.ID)
}

func TestRecommendService_InferredPreferenceFromUserTags(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "추론집")
	user := env.createUser(t, "infer@example.com")

	tag := env.createTag(t, "spicy lover", model.TagScopeUser)
	require.NoError(t, env.tagRepo.ReplaceUserTags(user.ID, []uint{tag.ID}))

	match := env.addReview(t, shop.ID, user.ID, "so spicy it hurts, would return", 5, 0, model.ReviewStatusActive)
	env.addReview(t, shop.ID, user.ID, "plain porridge for a calm day", 3, 7, model.ReviewStatusActive)

	results, err := env.service.Recommend(&user.ID, shop.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, match.ID, results[0].Review.ID)
	assert.Contains(t, results[0].Reason, "you are a 'spicy lover' type user")
	assert.Contains(t, results[0].Reason, "this review mentions 'spicy'")
}

func TestRecommendService_ShopTagClause(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "청결집")
	user := env.createUser(t, "shoptag@example.com")

	tag := env.createTag(t, "clean", model.TagScopeShop)
	require.NoError(t, env.tagRepo.ReplaceShopTags(shop.ID, []uint{tag.ID}))

	env.addReview(t, shop.ID, user.ID, "clean tables and a clean kitchen", 5, 2, model.ReviewStatusActive)

	results, err := env.service.Recommend(nil, shop.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Contains(t, results[0].Reason, "this shop is tagged: clean")
}

func TestRecommendService_PopularityFallbackDeterministic(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "인기집")
	user := env.createUser(t, "popular@example.com")

	low := env.addReview(t, shop.ID, user.ID, "무난한 한 끼", 3, 1, model.ReviewStatusActive)
	high := env.addReview(t, shop.ID, user.ID, "다들 좋아하는 집", 4, 5, model.ReviewStatusActive)
	mid := env.addReview(t, shop.ID, user.ID, "재방문 의사 있음", 4, 3, model.ReviewStatusActive)

	first, err := env.service.Recommend(nil, shop.ID, "", 10)
	require.NoError(t, err)
	second, err := env.service.Recommend(nil, shop.ID, "", 10)
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, []uint{high.ID, mid.ID, low.ID},
		[]uint{first[0].Review.ID, first[1].Review.ID, first[2].Review.ID})

	// 같은 입력이면 순서까지 동일해야 한다
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].Review.ID, second[i].Review.ID)
		assert.Equal(t, first[i].Reason, second[i].Reason)
	}

	for _, item := range first {
		assert.Equal(t, "recommended based on this shop's popular reviews.", item.Reason)
	}
}

func TestRecommendService_KeywordHitOutweighsLikes(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "역전집")
	user := env.createUser(t, "rerank@example.com")

	// 키워드 적중: 1*2 + 5 + 5 = 12, 비적중: 4*2 + 3 = 11
	hitReview := env.addReview(t, shop.ID, user.ID, "spicy broth worth the trip", 5, 1, model.ReviewStatusActive)
	likedReview := env.addReview(t, shop.ID, user.ID, "crowded but decent food", 3, 4, model.ReviewStatusActive)

	require.NoError(t, env.reviewRepo.InsertKeywords([]model.ReviewKeyword{
		{ReviewID: hitReview.ID, Keyword: "spicy", Weight: 1.0},
		{ReviewID: likedReview.ID, Keyword: "spicy", Weight: 1.0},
	}))

	results, err := env.service.Recommend(nil, shop.ID, "spicy", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, hitReview.ID, results[0].Review.ID)
	assert.Equal(t, likedReview.ID, results[1].Review.ID)
}

func TestRecommendService_ReasonUsesDictionaryOrder(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "순서집")
	user := env.createUser(t, "order@example.com")

	// 사용자 태그로 spicy가, 명시 preference로 sweet이 키워드 집합에 들어간다.
	// 사전에서는 spicy가 sweet보다 앞이므로 사유 절은 spicy를 골라야 한다.
	tag := env.createTag(t, "spicy lover", model.TagScopeUser)
	require.NoError(t, env.tagRepo.ReplaceUserTags(user.ID, []uint{tag.ID}))

	env.addReview(t, shop.ID, user.ID, "spicy but also sweet sauce", 5, 0, model.ReviewStatusActive)

	results, err := env.service.Recommend(&user.ID, shop.ID, "sweet", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Contains(t, results[0].Reason, "this review mentions 'spicy'")
	assert.NotContains(t, results[0].Reason, "this review mentions 'sweet'")
}

func TestRecommendService_ExplicitPreferenceUsedVerbatim(t *testing.T) {
	env := setupRecommendTest(t)
	shop := env.createShop(t, "원문집")
	user := env.createUser(t, "verbatim@example.com")

	env.addReview(t, shop.ID, user.ID, "try the sweet sauce", 4, 0, model.ReviewStatusActive)

	// 공백이 섞인 입력도 정규화 없이 그대로 매칭과 사유에 쓴다
	results, err := env.service.Recommend(nil, shop.ID, " sweet", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Contains(t, results[0].Reason, "this review mentions ' sweet'")
}
