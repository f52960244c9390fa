package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/domain"
)

type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var resp chatResponse
		resp.Object = "chat.completion"
		resp.Model = "test-model"
		resp.Choices = make([]struct {
			Index   int `json:"index"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}, 1)
		resp.Choices[0].Message.Role = "assistant"
		resp.Choices[0].Message.Content = content
		resp.Choices[0].FinishReason = "stop"

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestGenerator(baseURL string) *Generator {
	return NewGenerator(&GeneratorConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})
}

func TestGenerator_Generate(t *testing.T) {
	server := chatServer(t, "Per [Source 1], anticipatory bail applies.")
	defer server.Close()

	answer, err := newTestGenerator(server.URL).Generate(
		context.Background(), "the prompt", domain.GenerateParams{MaxTokens: 256, Temperature: 0.1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if answer != "Per [Source 1], anticipatory bail applies." {
		t.Errorf("answer = %q", answer)
	}
}

func TestGenerator_EmptyCompletion(t *testing.T) {
	server := chatServer(t, "")
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(
		context.Background(), "the prompt", domain.GenerateParams{})
	if !errors.Is(err, domain.ErrGenerationUnavailable) {
		t.Errorf("expected ErrGenerationUnavailable, got %v", err)
	}
}

func TestGenerator_EndpointDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(
		context.Background(), "the prompt", domain.GenerateParams{})
	if !errors.Is(err, domain.ErrGenerationUnavailable) {
		t.Errorf("expected ErrGenerationUnavailable, got %v", err)
	}
}

func TestGenerator_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
	}))
	defer server.Close()

	if err := newTestGenerator(server.URL).HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
