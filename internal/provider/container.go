package provider

import (
	"github.com/catalogkit/internal/cache"
	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/queue"
	"github.com/catalogkit/internal/repository"
	"github.com/catalogkit/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo   repository.ProductRepository
	ComboRepo     repository.ComboRepository
	PromotionRepo repository.PromotionRepository
	ReferenceRepo repository.ReferenceRepository

	// Services
	ReferenceService       *service.ReferenceService
	ProductConfigService   *service.ProductConfigService
	ComboService           *service.ComboService
	PromotionConfigService *service.PromotionConfigService
	ComboStockAuditService *service.ComboStockAuditService
}

// NewContainer 初始化容器；db 为空时使用全局连接
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	if db == nil {
		db = models.DB
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories(db)
	c.initServices()
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.ComboRepo = repository.NewComboRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.ReferenceRepo = repository.NewReferenceRepository(db)
}

func (c *Container) initServices() {
	c.ReferenceService = service.NewReferenceService(c.ReferenceRepo, c.ProductRepo, c.ComboRepo, c.Config.Reference.CacheTTL())
	c.ProductConfigService = service.NewProductConfigService(c.ProductRepo, c.ReferenceRepo, c.ReferenceService)
	c.ComboService = service.NewComboService(c.ComboRepo, c.ProductRepo, c.ReferenceRepo, c.QueueClient, c.ReferenceService)
	c.PromotionConfigService = service.NewPromotionConfigService(c.PromotionRepo, c.ReferenceRepo)
	c.ComboStockAuditService = service.NewComboStockAuditService(c.ComboRepo, c.ProductRepo)
}

// Close 释放队列与缓存连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
