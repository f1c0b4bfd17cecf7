package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// OracleService 는 OpenAI 호환 chat completions API 클라이언트.
// The model is a black box: callers get a best-effort string back and must
// parse defensively. A timeout counts as an oracle failure and each stage
// applies its own fail-open / fail-closed policy on top.
type OracleService struct {
	baseURL    string
	token      string
	model      string
	proModel   string
	httpClient *http.Client
}

// NewOracleService builds a client from LLM_* environment variables.
func NewOracleService() *OracleService {
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemini-1.5-flash-latest"
	}
	proModel := os.Getenv("LLM_MODEL_PRO")
	if proModel == "" {
		proModel = "gemini-1.5-pro-latest"
	}
	return &OracleService{
		baseURL:  strings.TrimSuffix(os.Getenv("LLM_BASE_URL"), "/"),
		token:    os.Getenv("LLM_TOKEN"),
		model:    model,
		proModel: proModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends a single-turn prompt and returns the model's trimmed reply.
// highQuality selects the pro model; similarity checks use it because a wrong
// duplicate match is worse than a slow one.
func (s *OracleService) Generate(prompt string, highQuality bool) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("oracle not configured: LLM_BASE_URL is empty")
	}

	model := s.model
	if highQuality {
		model = s.proModel
	}

	reqBody := ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oracle returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse oracle response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("oracle error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("oracle returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
