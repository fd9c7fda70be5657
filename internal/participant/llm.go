package participant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"undercover/internal/domain"
)

// DefaultBaseURL is the OpenAI-compatible API root used when none is configured
const DefaultBaseURL = "https://api.openai.com/v1"

// LLMConfig configures a chat-completion backed participant
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// LLM is a participant whose actions come from an OpenAI-compatible chat completion endpoint
type LLM struct {
	name string
	cfg  LLMConfig
}

// NewLLM creates a model-backed participant
func NewLLM(name string, cfg LLMConfig) *LLM {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &LLM{name: name, cfg: cfg}
}

// Name returns the participant name
func (p *LLM) Name() string {
	return p.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Act asks the model for the next line and keeps only the <message> part of its answer
func (p *LLM) Act(ctx context.Context, history []domain.Message, phase domain.Phase) (string, error) {
	prompt, err := BuildPrompt(p.name, history, phase)
	if err != nil {
		return "", err
	}

	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	action, ok := ExtractMessage(raw)
	if !ok {
		p.cfg.Logger.Debug("completion without message tag", "participant", p.name, "phase", phase)
		return DefaultFallback, nil
	}
	return action, nil
}

func (p *LLM) complete(ctx context.Context, prompt string) (string, error) {
	model := strings.TrimSpace(p.cfg.Model)
	apiKey := strings.TrimSpace(p.cfg.APIKey)
	if model == "" {
		return "", fmt.Errorf("model is required")
	}
	if apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	endpoint := strings.TrimRight(p.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read completion error body: %w", err)
		}
		return "", &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var payload chatResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return payload.Choices[0].Message.Content, nil
}

// StatusError is returned when the completion endpoint answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion request status %d: %s", e.Code, e.Body)
}

// Temporary reports whether retrying the request may succeed
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}
