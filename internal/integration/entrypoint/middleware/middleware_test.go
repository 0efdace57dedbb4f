package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetProfileIDFromContext(c)
		c.String(http.StatusOK, id.String())
	})
	r.GET("/", handlers...)
	return r
}

func TestRequireProfile(t *testing.T) {
	profileID := uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "not-a-uuid", wantStatus: http.StatusBadRequest},
		{name: "nil uuid", header: uuid.Nil.String(), wantStatus: http.StatusBadRequest},
		{name: "valid header", header: profileID.String(), wantStatus: http.StatusOK},
	}

	router := newRouter(RequireProfile())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(ProfileIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != profileID.String() {
				t.Errorf("expected profile in context, got %q", w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("limits per profile", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(2, time.Minute)
		router := newRouter(RequireProfile(), limiter.Middleware())

		first, second := uuid.New().String(), uuid.New().String()
		codes := make([]int, 0, 4)
		for _, profile := range []string{first, first, first, second} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(ProfileIDHeader, profile)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusOK}
		for i := range want {
			if codes[i] != want[i] {
				t.Errorf("request %d: expected %d, got %d", i, want[i], codes[i])
			}
		}
	})

	t.Run("rejection body", func(t *testing.T) {
		router := newRouter(NewRateLimiterWithConfig(1, time.Minute).Middleware())
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}

		var body dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Code != string(domainerror.ErrCodeRateLimited) || body.Error != domainerror.ErrRateLimited.Error() {
			t.Errorf("unexpected rejection %+v", body)
		}
	})

	t.Run("window resets", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, time.Minute)
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		if !limiter.allow("k") || limiter.allow("k") {
			t.Fatal("expected one request per window")
		}
		now = now.Add(2 * time.Minute)
		if !limiter.allow("k") {
			t.Error("expected the window to reset")
		}

		now = now.Add(5 * time.Minute)
		limiter.Cleanup()
		if len(limiter.entries) != 0 {
			t.Errorf("expected expired entries removed, got %d", len(limiter.entries))
		}
	})

	t.Run("disabled when max attempts is zero", func(t *testing.T) {
		router := newRouter(NewRateLimiterWithConfig(0, time.Minute).Middleware())
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
		}
	})
}
