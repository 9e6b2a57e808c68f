package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"lumo_backend/internal/config"
	"lumo_backend/pkg/monitoring"
)

// AIService is the gateway to the text generation model: one outbound
// OpenAI-compatible call per invocation, single attempt, no retry and
// no caching. Degrading (or not) on failure is the caller's decision.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present. The chat endpoint
// surfaces a 503 when it is not.
func (s *AIService) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.APIKey != ""
}

// UpdateConfig swaps credentials at runtime (config hot reload).
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

type aiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []aiChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message aiChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends one prompt and returns the raw model text.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	reqBody := chatCompletionRequest{
		Model: cfg.Model,
		Messages: []aiChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.UpstreamCounter.WithLabelValues("ai", "transport_error").Inc()
		return "", fmt.Errorf("AI API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.UpstreamCounter.WithLabelValues("ai", "http_error").Inc()
		return "", fmt.Errorf("AI API error (status %d)", resp.StatusCode)
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.UpstreamCounter.WithLabelValues("ai", "bad_response").Inc()
		return "", err
	}

	if result.Error != nil {
		monitoring.UpstreamCounter.WithLabelValues("ai", "api_error").Inc()
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		monitoring.UpstreamCounter.WithLabelValues("ai", "no_choices").Inc()
		return "", fmt.Errorf("AI returned no choices")
	}

	monitoring.UpstreamCounter.WithLabelValues("ai", "ok").Inc()
	return result.Choices[0].Message.Content, nil
}
