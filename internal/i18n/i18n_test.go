package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTranslateKnownAndMissingKeys(t *testing.T) {
	if got := T("en-US", "validation.combo_items_duplicate"); got != "The combo contains duplicate products" {
		t.Fatalf("unexpected translation: %s", got)
	}
	if got := T("zh-CN", "validation.unit_factor_positive"); got != "换算系数必须大于 0" {
		t.Fatalf("unexpected translation: %s", got)
	}
	if got := T("en-US", "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("missing key should fall back to key, got %s", got)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	if got := Match("vi,en;q=0.8"); got != "vi-VN" {
		t.Fatalf("want vi-VN got %s", got)
	}
	if got := Match(""); got != "zh-CN" {
		t.Fatalf("empty header want default zh-CN got %s", got)
	}
	if got := Match("en-GB"); got != "en-US" {
		t.Fatalf("want en-US got %s", got)
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?locale=en-US", nil)
	c.Request.Header.Set("Accept-Language", "vi")
	if got := ResolveLocale(c); got != "en-US" {
		t.Fatalf("want en-US got %s", got)
	}
	if got := TranslateMap("en-US", map[string]string{"items": "validation.combo_items_required"}); got["items"] != "A combo needs at least one product" {
		t.Fatalf("unexpected map translation %v", got)
	}
}

func TestTranslateWithTemplateData(t *testing.T) {
	got := Tf("en-US", "error.rate_limited", map[string]interface{}{"Seconds": 30})
	if got != "Too many submissions, retry in 30 seconds" {
		t.Fatalf("unexpected translation: %s", got)
	}
}
