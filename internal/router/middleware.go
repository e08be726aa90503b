package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminClaims 管理端令牌声明（由外部认证服务签发）
type AdminClaims struct {
	AdminID uint `json:"admin_id"`
	jwt.RegisteredClaims
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Authorization",
			"Accept-Language",
			constants.HeaderRequestID,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		header := c.Writer.Header()
		if origin := resolveAllowedOrigin(c.GetHeader("Origin"), allowedOrigins, cfg.AllowCredentials); origin != "" {
			header.Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				header.Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}
		header.Set("Access-Control-Allow-Headers", headersHeader)
		header.Set("Access-Control-Allow-Methods", methodsHeader)
		header.Set("Access-Control-Expose-Headers", constants.HeaderRequestID)
		if cfg.MaxAge > 0 {
			header.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(constants.HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := sugar.With(
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if adminID, ok := c.Get(constants.ContextKeyAdminID); ok {
			fields = fields.With("admin_id", adminID)
		}
		if len(c.Errors) > 0 {
			fields.Errorw("request", "errors", c.Errors.String())
			return
		}
		fields.Infow("request")
	}
}

// JWTAuthMiddleware 校验管理端 Bearer 令牌，仅做验签不签发
func JWTAuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)

	return func(c *gin.Context) {
		abort := func(key string) {
			response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
			c.Abort()
		}
		if cfg.SecretKey == "" {
			abort("error.jwt_secret_missing")
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort("error.auth_header_missing")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abort("error.auth_header_invalid")
			return
		}

		claims := &AdminClaims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.SecretKey), nil
		})
		if err != nil || !token.Valid {
			abort("error.token_invalid")
			return
		}
		adminID := claims.AdminID
		if adminID == 0 && claims.Subject != "" {
			if parsed, parseErr := strconv.ParseUint(claims.Subject, 10, 64); parseErr == nil {
				adminID = uint(parsed)
			}
		}
		if adminID == 0 {
			abort("error.token_invalid")
			return
		}

		c.Set(constants.ContextKeyAdminID, adminID)
		c.Next()
	}
}
