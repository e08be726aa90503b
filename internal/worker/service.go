package worker

import (
	"context"
	"errors"
	"time"

	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/queue"
	"github.com/catalogkit/internal/repository"

	"github.com/hibiken/asynq"
)

const (
	comboAuditSweepInterval = 10 * time.Minute
	comboAuditSweepPageSize = 100
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.ComboStockAuditService != nil {
		go s.runComboAuditSweep(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runComboAuditSweep 定期核对全部启用套餐，覆盖商品库存在套餐之外被修改的情况
func (s *Service) runComboAuditSweep(ctx context.Context) {
	ticker := time.NewTicker(comboAuditSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.consumer.sweepActiveCombos(ctx); err != nil {
				logger.Warnw("worker_combo_audit_sweep_failed", "error", err)
			}
		}
	}
}

func (c *Consumer) sweepActiveCombos(ctx context.Context) error {
	for page := 1; ; page++ {
		combos, total, err := c.ComboRepo.List(repository.ComboListFilter{
			Page:       page,
			PageSize:   comboAuditSweepPageSize,
			OnlyActive: true,
		})
		if err != nil {
			return err
		}
		for _, combo := range combos {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.ComboStockAuditService.Audit(ctx, combo.ID); err != nil {
				logger.Warnw("worker_combo_audit_sweep_item_failed", "combo_id", combo.ID, "error", err)
			}
		}
		if int64(page*comboAuditSweepPageSize) >= total || len(combos) == 0 {
			return nil
		}
	}
}
