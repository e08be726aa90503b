package i18n

import (
	"embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/logger"

	"github.com/gin-gonic/gin"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	matcher    language.Matcher
	supported  []language.Tag
)

func load() {
	bundleOnce.Do(func() {
		supported = make([]language.Tag, 0, len(constants.SupportedLocales))
		for _, locale := range constants.SupportedLocales {
			supported = append(supported, language.MustParse(locale))
		}
		bundle = goi18n.NewBundle(supported[0])
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
		for _, locale := range constants.SupportedLocales {
			if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+locale+".json"); err != nil {
				logger.Errorw("i18n_locale_load_failed", "locale", locale, "error", err)
			}
		}
		matcher = language.NewMatcher(supported)
	})
}

// Match 将 Accept-Language 或语言代码匹配到支持的语言
func Match(raw string) string {
	load()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.SupportedLocales[0]
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return constants.SupportedLocales[0]
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return constants.SupportedLocales[0]
	}
	return constants.SupportedLocales[idx]
}

// ResolveLocale 依次读取 ?locale=、Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.SupportedLocales[0]
	}
	if cached, ok := c.Get(constants.ContextKeyLocale); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}
	raw := c.Query("locale")
	if raw == "" {
		raw = c.GetHeader("Accept-Language")
	}
	locale := Match(raw)
	c.Set(constants.ContextKeyLocale, locale)
	return locale
}

// T 翻译消息键，缺失时返回键本身
func T(locale, key string) string {
	load()
	localizer := goi18n.NewLocalizer(bundle, locale)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Tf 带模板参数翻译
func Tf(locale, key string, data map[string]interface{}) string {
	load()
	localizer := goi18n.NewLocalizer(bundle, locale)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// TranslateMap 翻译 path -> 消息键 的映射
func TranslateMap(locale string, keys map[string]string) map[string]string {
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]string, len(keys))
	for path, key := range keys {
		out[path] = T(locale, key)
	}
	return out
}
