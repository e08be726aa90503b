package queue

import (
	"encoding/json"

	"github.com/catalogkit/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskComboStockAudit 套餐库存核对任务
	TaskComboStockAudit = constants.TaskComboStockAudit
)

// ComboStockAuditPayload 套餐库存核对任务载荷
type ComboStockAuditPayload struct {
	ComboID uint `json:"combo_id"`
}

// NewComboStockAuditTask 创建套餐库存核对任务
func NewComboStockAuditTask(payload ComboStockAuditPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskComboStockAudit, body), nil
}

// ParseComboStockAuditPayload 解析套餐库存核对任务载荷
func ParseComboStockAuditPayload(body []byte) (ComboStockAuditPayload, error) {
	var payload ComboStockAuditPayload
	err := json.Unmarshal(body, &payload)
	return payload, err
}
