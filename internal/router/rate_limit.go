package router

import (
	"fmt"
	"strings"

	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/i18n"
	"github.com/catalogkit/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	// BlockSeconds 超限后锁定时长，0 表示沿用窗口剩余时间
	BlockSeconds int
	MessageKey   string
}

// 超限的第一次请求把 key 的过期时间延长为锁定时长
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local block = tonumber(ARGV[2])
if block > 0 and current == tonumber(ARGV[3]) + 1 then
	redis.call("EXPIRE", KEYS[1], block)
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件；未启用 Redis 时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds, rule.BlockSeconds, rule.MaxRequests).Result()
		values, ok := result.([]interface{})
		if err != nil || !ok || len(values) < 2 {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal"))
			c.Abort()
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal"))
			c.Abort()
			return
		}
		if count > int64(rule.MaxRequests) {
			ttlSeconds, _ := toInt64(values[1])
			waitSeconds := retryAfterSeconds(ttlSeconds, rule)
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			c.Header("Retry-After", fmt.Sprintf("%d", waitSeconds))
			msg := i18n.Tf(i18n.ResolveLocale(c), msgKey, map[string]interface{}{"Seconds": waitSeconds})
			response.Error(c, response.CodeTooManyRequests, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(ttl int64, rule RateLimitRule) int {
	wait := int(ttl)
	if wait < 1 {
		wait = rule.BlockSeconds
	}
	if wait < 1 {
		wait = rule.WindowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return wait
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByAdminRoute 使用 管理员 + 路由模板 作为限流 key，未登录时退回 IP
func KeyByAdminRoute(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	route = c.Request.Method + " " + route
	if value, ok := c.Get(constants.ContextKeyAdminID); ok {
		if adminID, ok := value.(uint); ok && adminID > 0 {
			return fmt.Sprintf("admin:%d|%s", adminID, route)
		}
	}
	return fmt.Sprintf("ip:%s|%s", c.ClientIP(), route)
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
