package service

import (
	"context"

	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/repository"
)

// PromotionConfigService 促销配置服务
type PromotionConfigService struct {
	repo       repository.PromotionRepository
	references repository.ReferenceRepository
}

// NewPromotionConfigService 创建促销配置服务
func NewPromotionConfigService(repo repository.PromotionRepository, references repository.ReferenceRepository) *PromotionConfigService {
	return &PromotionConfigService{repo: repo, references: references}
}

// Get 获取促销编辑快照
func (s *PromotionConfigService) Get(id uint) (*configurator.PromotionSnapshot, error) {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	snap := PromotionSnapshot(promotion)
	return &snap, nil
}

// List 促销列表
func (s *PromotionConfigService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.repo.List(filter)
}

// Create 复核并创建促销
func (s *PromotionConfigService) Create(_ context.Context, form *configurator.PromotionForm) (*SaveResult, error) {
	report, err := s.check(form)
	if err != nil {
		return nil, err
	}
	promotion := &models.Promotion{}
	applyPromotionForm(promotion, form)
	if err := s.repo.Create(promotion); err != nil {
		logger.Errorw("promotion_create_failed", "error", err)
		return nil, ErrSaveFailed
	}
	return &SaveResult{ID: promotion.ID, Warnings: report.Warnings(form.Locate)}, nil
}

// Update 复核并更新促销
func (s *PromotionConfigService) Update(_ context.Context, id uint, form *configurator.PromotionForm) (*SaveResult, error) {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	form.ID = id
	report, err := s.check(form)
	if err != nil {
		return nil, err
	}
	applyPromotionForm(promotion, form)
	if err := s.repo.Update(promotion); err != nil {
		logger.Errorw("promotion_update_failed", "promotion_id", id, "error", err)
		return nil, ErrSaveFailed
	}
	return &SaveResult{ID: promotion.ID, Warnings: report.Warnings(form.Locate)}, nil
}

// Delete 删除促销
func (s *PromotionConfigService) Delete(_ context.Context, id uint) error {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrPromotionNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		logger.Errorw("promotion_delete_failed", "promotion_id", id, "error", err)
		return ErrDeleteFailed
	}
	return nil
}

func (s *PromotionConfigService) check(form *configurator.PromotionForm) (*configurator.Report, error) {
	lookup, err := buildLookup(nil, s.references, nil)
	if err != nil {
		return nil, err
	}
	report := form.Validate(lookup)
	if report.Failed() {
		return report, &ValidationError{Report: report, Locate: form.Locate}
	}
	return report, nil
}
