package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "router-test-secret-0123456789abcdef"

func signAdminToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func newJWTTestRouter(cfg config.JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(cfg))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetUint(constants.ContextKeyAdminID)})
	})
	return r
}

func TestResolveAllowedOrigin(t *testing.T) {
	if got := resolveAllowedOrigin("https://example.com", []string{"*"}, false); got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}
	if got := resolveAllowedOrigin("https://example.com", []string{"*"}, true); got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}
	if got := resolveAllowedOrigin("https://A.example.com", []string{"https://a.example.com"}, false); got != "https://A.example.com" {
		t.Fatalf("allow-list should match case-insensitively, got %s", got)
	}
	if got := resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false); got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://console.example.com"}, MaxAge: 600}))
	r.OPTIONS("/api", func(c *gin.Context) {
		t.Fatalf("preflight should not reach handler")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "https://console.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status want 204 got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://console.example.com" {
		t.Fatalf("unexpected allow origin %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("unexpected max age %q", w.Header().Get("Access-Control-Max-Age"))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString(constants.ContextKeyRequestID)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "req-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(constants.HeaderRequestID) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(constants.HeaderRequestID))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w2.Header().Get(constants.HeaderRequestID) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	r := newJWTTestRouter(config.JWTConfig{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	r := newJWTTestRouter(config.JWTConfig{SecretKey: testSecret})
	cases := map[string]string{
		"missing":   "",
		"scheme":    "Token abc",
		"empty":     "Bearer ",
		"signature": "Bearer " + signAdminToken(t, "other-secret", AdminClaims{AdminID: 7}),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status want 401 got %d", w.Code)
			}
		})
	}
}

func TestJWTAuthMiddlewareAcceptsAdminClaims(t *testing.T) {
	r := newJWTTestRouter(config.JWTConfig{SecretKey: testSecret, Issuer: "catalog-auth"})
	token := signAdminToken(t, testSecret, AdminClaims{
		AdminID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "catalog-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]uint
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["admin_id"] != 42 {
		t.Fatalf("admin id want 42 got %d", resp["admin_id"])
	}
}

func TestJWTAuthMiddlewareSubjectFallbackAndIssuer(t *testing.T) {
	r := newJWTTestRouter(config.JWTConfig{SecretKey: testSecret, Issuer: "catalog-auth"})

	wrongIssuer := signAdminToken(t, testSecret, AdminClaims{
		AdminID:          1,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+wrongIssuer)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong issuer want 401 got %d", w.Code)
	}

	bySubject := signAdminToken(t, testSecret, AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "catalog-auth", Subject: strconv.Itoa(9)},
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+bySubject)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("subject token want 200 got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareExpiredToken(t *testing.T) {
	r := newJWTTestRouter(config.JWTConfig{SecretKey: testSecret})
	token := signAdminToken(t, testSecret, AdminClaims{
		AdminID:          3,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token want 401 got %d", w.Code)
	}
}
