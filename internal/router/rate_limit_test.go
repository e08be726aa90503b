package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/catalogkit/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestKeyByAdminRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var keys []string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Admin") == "5" {
			c.Set(constants.ContextKeyAdminID, uint(5))
		}
		c.Next()
	})
	r.PUT("/api/v1/admin/products/:id", func(c *gin.Context) {
		keys = append(keys, KeyByAdminRoute(c))
	})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/12", nil)
	req.Header.Set("X-Admin", "5")
	r.ServeHTTP(httptest.NewRecorder(), req)

	anon := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/13", nil)
	anon.RemoteAddr = "1.2.3.4:5678"
	r.ServeHTTP(httptest.NewRecorder(), anon)

	if len(keys) != 2 {
		t.Fatalf("want 2 keys got %d", len(keys))
	}
	if keys[0] != "admin:5|PUT /api/v1/admin/products/:id" {
		t.Fatalf("unexpected admin key %s", keys[0])
	}
	if keys[1] != "ip:1.2.3.4|PUT /api/v1/admin/products/:id" {
		t.Fatalf("unexpected anonymous key %s", keys[1])
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status want 200 got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("expected handler response body, got %s", w.Body.String())
		}
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	rule := RateLimitRule{WindowSeconds: 60, BlockSeconds: 300}
	if got := retryAfterSeconds(42, rule); got != 42 {
		t.Fatalf("ttl should win, got %d", got)
	}
	if got := retryAfterSeconds(-1, rule); got != 300 {
		t.Fatalf("missing ttl should fall back to block seconds, got %d", got)
	}
	if got := retryAfterSeconds(0, RateLimitRule{WindowSeconds: 60}); got != 60 {
		t.Fatalf("missing ttl without block should use window, got %d", got)
	}
	if got := retryAfterSeconds(0, RateLimitRule{}); got != 1 {
		t.Fatalf("floor should be 1, got %d", got)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
