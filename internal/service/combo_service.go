package service

import (
	"context"

	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/queue"
	"github.com/catalogkit/internal/repository"
)

// ComboService 套餐配置服务
type ComboService struct {
	repo        repository.ComboRepository
	products    repository.ProductRepository
	references  repository.ReferenceRepository
	queueClient *queue.Client
	invalidator referenceInvalidator
}

// NewComboService 创建套餐配置服务
func NewComboService(repo repository.ComboRepository, products repository.ProductRepository, references repository.ReferenceRepository, queueClient *queue.Client, invalidator referenceInvalidator) *ComboService {
	return &ComboService{
		repo:        repo,
		products:    products,
		references:  references,
		queueClient: queueClient,
		invalidator: invalidator,
	}
}

// Get 获取套餐编辑快照
func (s *ComboService) Get(id uint) (*configurator.ComboSnapshot, error) {
	combo, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, ErrComboNotFound
	}
	snap := ComboSnapshot(combo)
	return &snap, nil
}

// List 套餐列表
func (s *ComboService) List(filter repository.ComboListFilter) ([]models.Combo, int64, error) {
	return s.repo.List(filter)
}

// Create 复核并创建套餐
func (s *ComboService) Create(ctx context.Context, form *configurator.ComboForm) (*SaveResult, error) {
	report, err := s.check(form)
	if err != nil {
		return nil, err
	}
	combo := &models.Combo{}
	applyComboSnapshot(combo, form.Snapshot())
	if err := s.repo.Create(combo); err != nil {
		logger.Errorw("combo_create_failed", "error", err)
		return nil, ErrSaveFailed
	}
	s.afterSave(ctx, combo.ID)
	return &SaveResult{ID: combo.ID, Warnings: report.Warnings(form.Locate)}, nil
}

// Update 复核并更新套餐，明细整体替换
func (s *ComboService) Update(ctx context.Context, id uint, form *configurator.ComboForm) (*SaveResult, error) {
	combo, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, ErrComboNotFound
	}
	form.ID = id
	report, err := s.check(form)
	if err != nil {
		return nil, err
	}
	applyComboSnapshot(combo, form.Snapshot())
	if err := s.repo.Update(combo); err != nil {
		logger.Errorw("combo_update_failed", "combo_id", id, "error", err)
		return nil, ErrSaveFailed
	}
	s.afterSave(ctx, combo.ID)
	return &SaveResult{ID: combo.ID, Warnings: report.Warnings(form.Locate)}, nil
}

// Delete 删除套餐
func (s *ComboService) Delete(ctx context.Context, id uint) error {
	combo, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if combo == nil {
		return ErrComboNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		logger.Errorw("combo_delete_failed", "combo_id", id, "error", err)
		return ErrDeleteFailed
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, constants.ReferenceCombos)
	}
	return nil
}

func (s *ComboService) check(form *configurator.ComboForm) (*configurator.Report, error) {
	items := form.Items.Items()
	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		if item.TargetID != 0 {
			productIDs = append(productIDs, item.TargetID)
		}
	}
	lookup, err := buildLookup(s.products, s.references, productIDs)
	if err != nil {
		return nil, err
	}
	report := form.Validate(lookup)
	if _, listFailed := report.FieldError(configurator.CollectionItems); listFailed {
		items = nil
	}
	for _, item := range items {
		if item.TargetID == 0 {
			continue
		}
		if _, ok := lookup.ProductStock(item.TargetID); !ok {
			report.AddRow(configurator.CollectionItems, item.RowID, configurator.FieldItemProductID, configurator.MsgInvalidOption)
		}
	}
	if report.Failed() {
		return report, &ValidationError{Report: report, Locate: form.Locate}
	}
	return report, nil
}

func (s *ComboService) afterSave(ctx context.Context, comboID uint) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, constants.ReferenceCombos)
	}
	if err := s.queueClient.EnqueueComboStockAudit(queue.ComboStockAuditPayload{ComboID: comboID}); err != nil {
		logger.Warnw("combo_stock_audit_enqueue_failed", "combo_id", comboID, "error", err)
	}
}
