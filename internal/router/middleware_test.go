package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		allowed     []string
		credentials bool
		want        string
	}{
		{name: "wildcard", origin: "https://foro.example.com", allowed: []string{"*"}, want: "*"},
		{name: "wildcard_with_credentials", origin: "https://foro.example.com", allowed: []string{"*"}, credentials: true, want: "https://foro.example.com"},
		{name: "allow_list_match", origin: "https://a.example.com", allowed: []string{"https://a.example.com", "https://b.example.com"}, want: "https://a.example.com"},
		{name: "allow_list_miss", origin: "https://x.example.com", allowed: []string{"https://a.example.com"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveAllowedOrigin(tt.origin, tt.allowed, tt.credentials); got != tt.want {
				t.Fatalf("resolveAllowedOrigin() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/api/v1/public/posts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	// 请求携带的 ID 透传到上下文与响应头
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/posts", nil)
	req.Header.Set(requestIDHeader, "req-marron-1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-marron-1" {
		t.Fatalf("response header want req-marron-1 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-marron-1" {
		t.Fatalf("context request id want req-marron-1 got %s", resp["request_id"])
	}

	// 未携带 ID 时自动生成
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/public/posts", nil))
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing request id should be generated")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/api/v1/admin/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}
