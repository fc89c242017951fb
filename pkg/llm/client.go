package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client 텍스트 생성 호출 추상화. 타임아웃은 호출자가 ctx로 제어한다.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config LLM 호출 설정
type Config struct {
	Provider    string // mock / openai / qwen
	Endpoint    string // chat/completions 호환 엔드포인트
	APIKey      string // 비워두면 provider별 환경변수에서 읽음
	Model       string
	MaxTokens   int
	Temperature float64
}

type client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient chat/completions 호환 클라이언트 생성.
// mock provider 또는 키 미설정 시 Complete는 실제 호출 없이 고정 응답을 돌려준다.
func NewClient(cfg Config) Client {
	return &client{
		cfg: cfg,
		// 연결 타임아웃만 여기서 제한하고 전체 타임아웃은 ctx가 맡는다
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// chat/completions 요청/응답 구조체
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete 프롬프트 하나로 생성 호출을 실행한다.
// 호출 직전에 {원격 호출, mock 응답} 중 하나를 설정 기준으로 고른다.
func (c *client) Complete(ctx context.Context, prompt string) (string, error) {
	resolvedKey := c.resolveAPIKey()

	// 키가 없거나 provider=mock이면 실제 호출 없이 고정 응답
	if resolvedKey == "" || strings.EqualFold(c.cfg.Provider, "mock") {
		return MockResponse(prompt), nil
	}

	reqData := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", resolvedKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("llm api error: %s", parsed.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("llm api returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in llm response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// resolveAPIKey 설정값 우선, 없으면 provider별 환경변수에서 읽는다.
func (c *client) resolveAPIKey() string {
	if c.cfg.APIKey != "" {
		return c.cfg.APIKey
	}
	switch strings.ToLower(c.cfg.Provider) {
	case "qwen":
		return os.Getenv("DASHSCOPE_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// MockResponse mock 경로의 고정 응답. 같은 프롬프트에는 항상 같은 결과를 돌려준다.
func MockResponse(prompt string) string {
	return "[mock response] " + prompt
}
