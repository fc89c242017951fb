package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/controller"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/keyword"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	"github.com/hyunsoo-dev/matzip-backend/internal/db"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
	"github.com/hyunsoo-dev/matzip-backend/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	shopRepo := repository.NewShopRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	orderRepo := repository.NewOrderRecordRepository(testDB)
	logRepo := repository.NewAICallLogRepository(testDB)

	dict := keyword.Default()
	llmClient := llm.NewClient(llm.Config{Provider: "mock"})

	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	shopService := service.NewShopService(shopRepo, reviewRepo)
	reviewService := service.NewReviewService(reviewRepo, shopRepo, dict)
	recommendService := service.NewRecommendService(reviewRepo, tagRepo, shopRepo, dict)
	tagService := service.NewTagService(tagRepo, userRepo, shopRepo)
	orderService := service.NewOrderRecordService(orderRepo, shopRepo)
	aiService := service.NewAIService(llmClient, shopRepo, orderRepo, tagRepo, logRepo, nil, 2*time.Second)

	authController := controller.NewAuthController(authService, 15*time.Minute)
	shopController := controller.NewShopController(shopService)
	reviewController := controller.NewReviewController(reviewService, recommendService, aiService)
	tagController := controller.NewTagController(tagService)
	orderController := controller.NewOrderRecordController(orderService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	users := v1.Group("/users/me")
	users.Use(authMiddleware.Authenticate())
	{
		users.GET("", authController.GetMe)
		users.PUT("/tags", tagController.AssignMyTags)
		users.GET("/orders", orderController.ListMyOrders)
	}

	shops := v1.Group("/shops")
	{
		shops.GET("", shopController.ListShops)
		shops.GET("/:id", shopController.GetShop)
		shops.GET("/:id/reviews", reviewController.ListShopReviews)
		shops.POST("/:id/reviews", authMiddleware.Authenticate(), reviewController.CreateReview)
		shops.GET("/:id/reviews/recommend", authMiddleware.OptionalAuthenticate(), reviewController.RecommendReviews)
		shops.POST("/:id/reviews/ai-draft", authMiddleware.Authenticate(), reviewController.GenerateDraft)
		shops.POST("/:id/orders", authMiddleware.Authenticate(), orderController.RecordVisit)
	}

	reviews := v1.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	{
		reviews.POST("/:id/like", reviewController.LikeReview)
	}

	return &TestServer{Router: router, DB: testDB}
}

func jsonRequest(method, target, token string, payload interface{}) *http.Request {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCompleteUserJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// 1. Register and login
	t.Log("Step 1: Register and login")
	req := jsonRequest("POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "foodie@example.com",
		"password": "password123",
		"nickname": "미식가",
	})
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = jsonRequest("POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "foodie@example.com",
		"password": "password123",
	})
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &loginResp)
	accessToken := loginResp["access_token"].(string)
	require.NotEmpty(t, accessToken)

	// 2. Seed a shop with tags (direct insert for test convenience)
	t.Log("Step 2: Seed shop and tags")
	shop := &model.Shop{
		Name:     "마라의 전당",
		Category: "chinese",
		Address:  "서울시 마포구 양화로 12",
	}
	ts.DB.Create(shop)

	spicyTag := &model.Tag{Name: "spicy", Scope: model.TagScopeShop}
	cleanTag := &model.Tag{Name: "clean", Scope: model.TagScopeShop}
	userSpicyTag := &model.Tag{Name: "spicy lover", Scope: model.TagScopeUser}
	ts.DB.Create(spicyTag)
	ts.DB.Create(cleanTag)
	ts.DB.Create(userSpicyTag)
	ts.DB.Create(&model.ShopTag{ShopID: shop.ID, TagID: spicyTag.ID, Weight: 1.0})
	ts.DB.Create(&model.ShopTag{ShopID: shop.ID, TagID: cleanTag.ID, Weight: 1.0})

	// 3. Set my preference tags
	t.Log("Step 3: Set preference tags")
	req = jsonRequest("PUT", "/api/v1/users/me/tags", accessToken, map[string]interface{}{
		"tag_ids": []uint{userSpicyTag.ID},
	})
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 4. Record a visit
	t.Log("Step 4: Record a visit")
	req = jsonRequest("POST", fmt.Sprintf("/api/v1/shops/%d/orders", shop.ID), accessToken, map[string]interface{}{
		"amount": 28000,
		"items":  `[{"name":"마라탕","qty":2}]`,
	})
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// 5. Write a review
	t.Log("Step 5: Write a review")
	req = jsonRequest("POST", fmt.Sprintf("/api/v1/shops/%d/reviews", shop.ID), accessToken, map[string]interface{}{
		"rating":  5,
		"content": "Spicy and clean, worth the wait in the queue.",
	})
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var review model.Review
	json.Unmarshal(w.Body.Bytes(), &review)
	require.NotZero(t, review.ID)

	// 키워드 색인이 같이 생성됐는지 확인
	var indexed []model.ReviewKeyword
	ts.DB.Where("review_id = ?", review.ID).Find(&indexed)
	assert.NotEmpty(t, indexed)

	// 6. Like the review
	t.Log("Step 6: Like the review")
	req = jsonRequest("POST", fmt.Sprintf("/api/v1/reviews/%d/like", review.ID), accessToken, nil)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 7. Browse shop reviews
	t.Log("Step 7: Browse reviews")
	req = jsonRequest("GET", fmt.Sprintf("/api/v1/shops/%d/reviews", shop.ID), "", nil)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	assert.Equal(t, float64(1), listResp["total"])

	// 8. Get recommendations (logged in, inferred preference)
	t.Log("Step 8: Get recommendations")
	req = jsonRequest("GET", fmt.Sprintf("/api/v1/shops/%d/reviews/recommend?limit=3", shop.ID), accessToken, nil)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var recResp struct {
		Data []struct {
			Review model.Review `json:"review"`
			Reason string       `json:"reason"`
		} `json:"data"`
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &recResp)
	require.Equal(t, 1, recResp.Count)
	assert.Equal(t, review.ID, recResp.Data[0].Review.ID)
	assert.Contains(t, recResp.Data[0].Reason, "spicy lover")

	// 9. Generate an AI review draft (mock provider)
	t.Log("Step 9: Generate AI draft")
	req = jsonRequest("POST", fmt.Sprintf("/api/v1/shops/%d/reviews/ai-draft", shop.ID), accessToken, map[string]string{
		"context": "친구들과 저녁 방문",
	})
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var draftResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &draftResp)
	assert.NotEmpty(t, draftResp["draft"])

	// 감사 로그가 정확히 한 행 남았는지 확인
	var logCount int64
	ts.DB.Model(&model.AICallLog{}).Count(&logCount)
	assert.Equal(t, int64(1), logCount)

	// 10. View my order history
	t.Log("Step 10: View order history")
	req = jsonRequest("GET", "/api/v1/users/me/orders", accessToken, nil)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var ordersResp struct {
		Data []model.OrderRecord `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &ordersResp)
	assert.Len(t, ordersResp.Data, 1)
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	req := jsonRequest("POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
		"nickname": "테스터",
	})
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = jsonRequest("POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &loginResp)
	accessToken := loginResp["access_token"].(string)

	req = jsonRequest("GET", "/api/v1/users/me", accessToken, nil)
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var meResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &meResp)
	assert.Equal(t, "test@example.com", meResp["email"])
	assert.Equal(t, "테스터", meResp["nickname"])
}

func TestUnauthorizedAccess(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	protectedRoutes := []string{
		"/api/v1/users/me",
		"/api/v1/users/me/orders",
	}

	for _, route := range protectedRoutes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest("GET", route, nil)
			w := httptest.NewRecorder()

			ts.Router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
