package participant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"undercover/internal/domain"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewLLMDefaults(t *testing.T) {
	p := NewLLM("Alice", LLMConfig{})
	if p.cfg.HTTPClient == nil {
		t.Fatal("expected non-nil HTTP client")
	}
	if p.cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("base url = %q", p.cfg.BaseURL)
	}
	if p.Name() != "Alice" {
		t.Fatalf("Name() = %q", p.Name())
	}
}

func TestLLMActRequiresModelAndKey(t *testing.T) {
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			t.Fatalf("round trip should not execute for validation failure: %v", req.URL)
			return nil, nil
		}),
	}

	tests := []struct {
		name string
		cfg  LLMConfig
	}{
		{name: "missing model", cfg: LLMConfig{APIKey: "sk-1", HTTPClient: client}},
		{name: "missing key", cfg: LLMConfig{Model: "gpt-4", HTTPClient: client}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLLM("Alice", tt.cfg).Act(context.Background(), nil, domain.PhaseDescription); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLLMActSendsPromptAndParsesMessage(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Hmm. <message>Bob</message>"}}]}`)
	}))
	defer server.Close()

	p := NewLLM("Alice", LLMConfig{
		BaseURL:     server.URL + "/v1/",
		APIKey:      "sk-test",
		Model:       "gpt-4",
		MaxTokens:   50,
		Temperature: 1,
		HTTPClient:  server.Client(),
	})

	history := []domain.Message{domain.NewMessage("Bob", "It is shiny.", []string{"Alice", "Bob"})}
	action, err := p.Act(context.Background(), history, domain.PhaseVoting)
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}
	if action != "Bob" {
		t.Fatalf("Act() = %q, want Bob", action)
	}
	if got.Model != "gpt-4" || got.MaxTokens != 50 || got.Temperature != 1 {
		t.Fatalf("request = %+v", got)
	}
	if len(got.Messages) != 1 || !strings.Contains(got.Messages[0].Content, "Bob: It is shiny.") {
		t.Fatalf("messages = %+v", got.Messages)
	}
}

func TestLLMActFallsBackWithoutMessageTag(t *testing.T) {
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"I refuse to play."}}]}`), nil
		}),
	}
	p := NewLLM("Alice", LLMConfig{APIKey: "sk-1", Model: "gpt-4", HTTPClient: client})

	action, err := p.Act(context.Background(), nil, domain.PhaseDiscussion)
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}
	if action != DefaultFallback {
		t.Fatalf("Act() = %q, want %q", action, DefaultFallback)
	}
}

func TestLLMActErrors(t *testing.T) {
	tests := []struct {
		name          string
		roundTrip     roundTripFunc
		wantTemporary bool
	}{
		{
			name: "transport",
			roundTrip: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection reset")
			},
		},
		{
			name: "rate limited",
			roundTrip: func(*http.Request) (*http.Response, error) {
				return response(http.StatusTooManyRequests, "slow down"), nil
			},
			wantTemporary: true,
		},
		{
			name: "bad request",
			roundTrip: func(*http.Request) (*http.Response, error) {
				return response(http.StatusBadRequest, "bad"), nil
			},
		},
		{
			name: "invalid json",
			roundTrip: func(*http.Request) (*http.Response, error) {
				return response(http.StatusOK, "{"), nil
			},
		},
		{
			name: "no choices",
			roundTrip: func(*http.Request) (*http.Response, error) {
				return response(http.StatusOK, `{"choices":[]}`), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLLM("Alice", LLMConfig{APIKey: "sk-1", Model: "gpt-4", HTTPClient: &http.Client{Transport: tt.roundTrip}})
			_, err := p.Act(context.Background(), nil, domain.PhaseDescription)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantTemporary {
				return
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || !statusErr.Temporary() {
				t.Fatalf("error = %v, want a temporary status error", err)
			}
		})
	}
}
