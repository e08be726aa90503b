package service

import (
	"context"

	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/repository"
)

// ComboShortfall 套餐明细数量超过商品库存
type ComboShortfall struct {
	ProductID uint
	Required  int
	Available int64
	Missing   bool
}

// ComboStockAuditService 套餐库存核对（仅提示，不拦截）
type ComboStockAuditService struct {
	combos   repository.ComboRepository
	products repository.ProductRepository
}

// NewComboStockAuditService 创建套餐库存核对服务
func NewComboStockAuditService(combos repository.ComboRepository, products repository.ProductRepository) *ComboStockAuditService {
	return &ComboStockAuditService{combos: combos, products: products}
}

// Audit 按最新库存核对套餐明细，返回缺口并记录告警日志
func (s *ComboStockAuditService) Audit(ctx context.Context, comboID uint) ([]ComboShortfall, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	combo, err := s.combos.GetByID(comboID)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, ErrComboNotFound
	}
	productIDs := make([]uint, 0, len(combo.Items))
	for _, item := range combo.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	stock, err := s.products.StockByIDs(productIDs)
	if err != nil {
		return nil, err
	}

	var shortfalls []ComboShortfall
	for _, item := range combo.Items {
		available, ok := stock[item.ProductID]
		if ok && int64(item.Quantity) <= available {
			continue
		}
		shortfall := ComboShortfall{
			ProductID: item.ProductID,
			Required:  item.Quantity,
			Available: available,
			Missing:   !ok,
		}
		shortfalls = append(shortfalls, shortfall)
		logger.Warnw("combo_stock_audit_shortfall",
			"combo_id", comboID,
			"product_id", item.ProductID,
			"required", item.Quantity,
			"available", available,
			"missing", !ok,
		)
	}
	return shortfalls, nil
}
