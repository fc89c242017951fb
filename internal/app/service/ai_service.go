package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/internal/websocket"
	"github.com/hyunsoo-dev/matzip-backend/pkg/llm"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrGenerationFailed 생성 호출 실패 (타임아웃/전송 오류/응답 파싱 실패 공통)
var ErrGenerationFailed = errors.New("ai generation failed")

// maxResponseRefLen 감사 로그에 남기는 응답/에러 요약 최대 길이
const maxResponseRefLen = 500

type AIService struct {
	client    llm.Client
	shopRepo  repository.ShopRepository
	orderRepo *repository.OrderRecordRepository
	tagRepo   *repository.TagRepository
	logRepo   *repository.AICallLogRepository
	hub       *websocket.Hub // nil 허용 (테스트/스트림 비활성화)
	timeout   time.Duration
}

func NewAIService(
	client llm.Client,
	shopRepo repository.ShopRepository,
	orderRepo *repository.OrderRecordRepository,
	tagRepo *repository.TagRepository,
	logRepo *repository.AICallLogRepository,
	hub *websocket.Hub,
	timeout time.Duration,
) *AIService {
	return &AIService{
		client:    client,
		shopRepo:  shopRepo,
		orderRepo: orderRepo,
		tagRepo:   tagRepo,
		logRepo:   logRepo,
		hub:       hub,
		timeout:   timeout,
	}
}

// GenerateDraft 리뷰 초안을 생성한다.
//
// 사용자/매장 태그와 최근 소비 기록으로 프롬프트를 만들고, 타임아웃이 걸린
// 생성 호출을 실행한 뒤, 성공/실패와 무관하게 감사 로그를 정확히 한 행 남긴다.
// 실패 시 로그를 남긴 다음 에러를 호출자에게 그대로 돌려준다.
func (s *AIService) GenerateDraft(ctx context.Context, userID, shopID uint, contextText string) (string, error) {
	if _, err := s.shopRepo.FindByID(shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrShopNotFound
		}
		return "", err
	}

	latestOrder, err := s.orderRepo.FindLatestByUserAndShop(userID, shopID)
	if err != nil {
		return "", err
	}
	userTagNames, err := s.tagRepo.ListTagNamesOfUser(userID)
	if err != nil {
		return "", err
	}
	shopTagNames, err := s.tagRepo.ListTagNamesOfShop(shopID)
	if err != nil {
		return "", err
	}

	prompt := buildDraftPrompt(userID, shopID, contextText, latestOrder, userTagNames, shopTagNames)

	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, callErr := s.client.Complete(callCtx, prompt)
	latencyMs := int(time.Since(start).Milliseconds())

	status := model.AICallStatusSuccess
	responseRef := response
	if callErr != nil {
		status = model.AICallStatusFailure
		responseRef = callErr.Error()
	}

	// 성공/실패 모두 정확히 한 행 기록
	logRow := &model.AICallLog{
		UserID:      &userID,
		Type:        model.AICallTypeGenerate,
		Prompt:      prompt,
		ResponseRef: truncateRef(responseRef, maxResponseRefLen),
		LatencyMs:   latencyMs,
		Status:      status,
	}
	if insertErr := s.logRepo.Insert(logRow); insertErr != nil {
		logger.Error("Failed to append AI call log", insertErr, map[string]interface{}{
			"user_id": userID,
			"shop_id": shopID,
		})
		if callErr == nil {
			return "", insertErr
		}
	} else if s.hub != nil {
		s.hub.BroadcastLog(logRow)
	}

	if callErr != nil {
		logger.Error("AI draft generation failed", callErr, map[string]interface{}{
			"user_id":    userID,
			"shop_id":    shopID,
			"latency_ms": latencyMs,
		})
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, callErr)
	}

	logger.Info("AI draft generated", map[string]interface{}{
		"user_id":    userID,
		"shop_id":    shopID,
		"latency_ms": latencyMs,
	})
	return response, nil
}

// buildDraftPrompt 초안 생성 프롬프트 조립
func buildDraftPrompt(userID, shopID uint, contextText string, latestOrder *model.OrderRecord, userTags, shopTags []string) string {
	orderContext := "no order history"
	if latestOrder != nil {
		orderContext = fmt.Sprintf(
			"last visit on %s, spent %.2f, ordered %s",
			latestOrder.VisitTime.Format("2006-01-02 15:04"),
			latestOrder.Amount,
			latestOrder.Items,
		)
	}

	var b strings.Builder
	b.WriteString("Write a restaurant review draft based on the following:\n")
	fmt.Fprintf(&b, "- user ID: %d\n", userID)
	fmt.Fprintf(&b, "- shop ID: %d\n", shopID)
	if strings.TrimSpace(contextText) != "" {
		fmt.Fprintf(&b, "- preference/context: %s\n", contextText)
	}
	if len(userTags) > 0 {
		fmt.Fprintf(&b, "- user tags: %s\n", strings.Join(userTags, ", "))
	}
	if len(shopTags) > 0 {
		fmt.Fprintf(&b, "- shop tags: %s\n", strings.Join(shopTags, ", "))
	}
	fmt.Fprintf(&b, "- order history: %s\n", orderContext)
	b.WriteString("Keep the tone honest and concise, 50-120 words, without exaggeration.\n")
	b.WriteString("Output the review body only, no titles or meta commentary.")
	return b.String()
}

// truncateRef 긴 응답/에러 텍스트를 로그용으로 자른다 (rune 기준)
func truncateRef(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
