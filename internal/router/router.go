package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/catalogkit/internal/cache"
	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/constants"
	adminhandlers "github.com/catalogkit/internal/http/handlers/admin"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/provider"

	"github.com/gin-gonic/gin"
)

const adminPathPrefix = "/api/v1/admin"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:%s", redisPrefix, constants.CacheKeySubmitRate),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.SubmitRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	submitLimit := RateLimitMiddleware(cache.Client(), submitRule, KeyByAdminRoute)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	admin := r.Group(adminPathPrefix)
	admin.Use(JWTAuthMiddleware(cfg.JWT))
	{
		products := admin.Group("/products")
		{
			products.GET("", adminHandler.ListProducts)
			products.GET("/:id", adminHandler.GetProduct)
			products.POST("", submitLimit, adminHandler.CreateProduct)
			products.PUT("/:id", submitLimit, adminHandler.UpdateProduct)
			products.DELETE("/:id", adminHandler.DeleteProduct)
		}

		combos := admin.Group("/combos")
		{
			combos.GET("", adminHandler.ListCombos)
			combos.GET("/:id", adminHandler.GetCombo)
			combos.POST("", submitLimit, adminHandler.CreateCombo)
			combos.PUT("/:id", submitLimit, adminHandler.UpdateCombo)
			combos.DELETE("/:id", adminHandler.DeleteCombo)
		}

		promotions := admin.Group("/promotions")
		{
			promotions.GET("", adminHandler.ListPromotions)
			promotions.GET("/:id", adminHandler.GetPromotion)
			promotions.POST("", submitLimit, adminHandler.CreatePromotion)
			promotions.PUT("/:id", submitLimit, adminHandler.UpdatePromotion)
			promotions.DELETE("/:id", adminHandler.DeletePromotion)
		}

		admin.GET("/references/:kind", adminHandler.ListReferences)
		admin.GET("/routes", func(ctx *gin.Context) {
			response.Success(ctx, buildAdminRouteCatalog(r))
		})
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminRouteCatalogItem struct {
	Module string `json:"module"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// buildAdminRouteCatalog 列出管理端已注册的接口，按模块分组排序
func buildAdminRouteCatalog(engine *gin.Engine) []adminRouteCatalogItem {
	if engine == nil {
		return []adminRouteCatalogItem{}
	}
	items := make([]adminRouteCatalogItem, 0)
	for _, route := range engine.Routes() {
		if !strings.HasPrefix(route.Path, adminPathPrefix+"/") {
			continue
		}
		items = append(items, adminRouteCatalogItem{
			Module: deriveAdminRouteModule(route.Path),
			Method: strings.ToUpper(route.Method),
			Path:   route.Path,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Path == items[j].Path {
				return items[i].Method < items[j].Method
			}
			return items[i].Path < items[j].Path
		}
		return items[i].Module < items[j].Module
	})
	return items
}

func deriveAdminRouteModule(path string) string {
	normalized := strings.TrimPrefix(strings.TrimPrefix(path, adminPathPrefix), "/")
	if normalized == "" {
		return "system"
	}
	return strings.Split(normalized, "/")[0]
}
