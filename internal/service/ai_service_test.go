package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lumo_backend/internal/config"
)

func newTestAI(baseURL, key string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         key,
		Model:          "test-model",
		TimeoutSeconds: 2,
	})
}

func TestAIServiceConfigured(t *testing.T) {
	if newTestAI("http://x", "").Configured() {
		t.Error("Configured() = true with empty key")
	}
	if !newTestAI("http://x", "sk-test").Configured() {
		t.Error("Configured() = false with key set")
	}
}

func TestAIServiceUpdateConfig(t *testing.T) {
	svc := newTestAI("http://x", "")
	if svc.Configured() {
		t.Fatal("Configured() = true before update")
	}
	svc.UpdateConfig(config.AIConfig{BaseURL: "http://x", APIKey: "rotated"})
	if !svc.Configured() {
		t.Error("Configured() = false after update")
	}
}

func TestAIServiceGenerate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		var gotReq chatCompletionRequest
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("path = %q, want /chat/completions", r.URL.Path)
			}
			gotAuth = r.Header.Get("Authorization")
			json.NewDecoder(r.Body).Decode(&gotReq)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": "Hello!"}},
				},
			})
		}))
		defer srv.Close()

		svc := newTestAI(srv.URL, "sk-test")
		reply, err := svc.Generate(context.Background(), "say hi")
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if reply != "Hello!" {
			t.Errorf("reply = %q, want Hello!", reply)
		}
		if gotAuth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", gotAuth)
		}
		if gotReq.Model != "test-model" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "say hi" {
			t.Errorf("request = %+v", gotReq)
		}
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		if _, err := newTestAI(srv.URL, "sk-test").Generate(context.Background(), "x"); err == nil {
			t.Fatal("Generate returned nil error on 429")
		}
	})

	t.Run("error object in 200 body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": {"message": "invalid model"}}`))
		}))
		defer srv.Close()

		if _, err := newTestAI(srv.URL, "sk-test").Generate(context.Background(), "x"); err == nil {
			t.Fatal("Generate returned nil error on API error body")
		}
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		if _, err := newTestAI(srv.URL, "sk-test").Generate(context.Background(), "x"); err == nil {
			t.Fatal("Generate returned nil error on empty choices")
		}
	})
}
