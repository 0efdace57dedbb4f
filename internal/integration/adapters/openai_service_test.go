package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finance-tracker/analytics/internal/application/adapter"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token")
		}
		var req struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}
		if req.Model == "" {
			t.Errorf("expected a model")
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(content))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
}

func TestOpenAIService_Advise(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"advice":[{"title":"Budget","content":"Set a food budget","priority":"medium"}]}`)
	defer srv.Close()

	s := NewOpenAIService("key", srv.URL+"/", "", srv.Client())
	items, err := s.Advise(context.Background(), &adapter.AdviceContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Budget" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestOpenAIService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
		want    string
	}{
		{name: "rate limit", status: http.StatusTooManyRequests, content: "slow down", want: "rate limit"},
		{name: "auth", status: http.StatusUnauthorized, content: "bad key", want: "unauthorized"},
		{name: "server", status: http.StatusBadGateway, content: "oops", want: "unavailable"},
		{name: "structured server error", status: http.StatusServiceUnavailable, content: `{"error":{"message":"overloaded","type":"server_error"}}`, want: "unavailable (503): overloaded"},
		{name: "bad request", status: http.StatusBadRequest, content: `{"error":{"message":"bad model"}}`, want: "request failed (400)"},
		{name: "malformed content", status: http.StatusOK, content: "not json", want: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.status, tt.content)
			defer srv.Close()

			s := NewOpenAIService("key", srv.URL, "", srv.Client())
			_, err := s.Advise(context.Background(), &adapter.AdviceContext{})
			if err == nil || !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenAIService_ClassifiedByAggregator(t *testing.T) {
	srv := completionServer(t, http.StatusTooManyRequests, `{"error":{"message":"quota"}}`)
	defer srv.Close()

	s := NewOpenAIService("key", srv.URL, "", srv.Client())
	_, err := s.Advise(context.Background(), &adapter.AdviceContext{})
	if err == nil || !strings.Contains(err.Error(), "rate limit (429)") {
		t.Errorf("expected a 429 rate limit error, got %v", err)
	}
}

func TestOpenAIService_NotConfigured(t *testing.T) {
	s := NewOpenAIService("", "", "", nil)
	if s.IsAvailable() {
		t.Error("expected unavailable without key")
	}
	if _, err := s.Advise(context.Background(), &adapter.AdviceContext{}); err == nil {
		t.Error("expected error")
	}
}
