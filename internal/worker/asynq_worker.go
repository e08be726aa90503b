package worker

import (
	"context"
	"errors"

	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/provider"
	"github.com/catalogkit/internal/queue"
	"github.com/catalogkit/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskComboStockAudit, c.handleComboStockAudit)
}

func (c *Consumer) handleComboStockAudit(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_combo_stock_audit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseComboStockAuditPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_combo_stock_audit_unmarshal_failed", "error", err)
		return err
	}
	if payload.ComboID == 0 {
		logger.Debugw("worker_combo_stock_audit_skip_invalid_payload", "combo_id", payload.ComboID)
		return nil
	}
	if c.Container == nil || c.ComboStockAuditService == nil {
		logger.Warnw("worker_combo_stock_audit_skip_service_nil", "combo_id", payload.ComboID)
		return nil
	}
	shortfalls, err := c.ComboStockAuditService.Audit(ctx, payload.ComboID)
	if err != nil {
		if errors.Is(err, service.ErrComboNotFound) {
			logger.Debugw("worker_combo_stock_audit_skip_combo_not_found", "combo_id", payload.ComboID)
			return nil
		}
		logger.Warnw("worker_combo_stock_audit_failed", "combo_id", payload.ComboID, "error", err)
		return err
	}
	logger.Debugw("worker_combo_stock_audit_done", "combo_id", payload.ComboID, "shortfalls", len(shortfalls))
	return nil
}
