package service

import (
	"context"

	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/constants"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/repository"
)

// referenceInvalidator 参考数据缓存失效
type referenceInvalidator interface {
	Invalidate(ctx context.Context, kinds ...string)
}

// ProductConfigService 商品配置服务
type ProductConfigService struct {
	repo        repository.ProductRepository
	references  repository.ReferenceRepository
	invalidator referenceInvalidator
}

// NewProductConfigService 创建商品配置服务
func NewProductConfigService(repo repository.ProductRepository, references repository.ReferenceRepository, invalidator referenceInvalidator) *ProductConfigService {
	return &ProductConfigService{repo: repo, references: references, invalidator: invalidator}
}

// Get 获取商品编辑快照
func (s *ProductConfigService) Get(id uint) (*configurator.ProductSnapshot, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	snap := ProductSnapshot(product)
	return &snap, nil
}

// List 商品列表
func (s *ProductConfigService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.repo.List(filter)
}

// Create 复核并创建商品
func (s *ProductConfigService) Create(ctx context.Context, form *configurator.ProductForm) (*SaveResult, error) {
	report, err := s.check(form)
	if err != nil {
		return nil, err
	}
	product := &models.Product{}
	applyProductSnapshot(product, form.Snapshot())
	if err := s.repo.Create(product); err != nil {
		logger.Errorw("product_create_failed", "error", err)
		return nil, ErrSaveFailed
	}
	s.invalidate(ctx)
	return &SaveResult{ID: product.ID, Warnings: report.Warnings(form.Locate)}, nil
}

// Update 复核并更新商品，换算单位整体替换
func (s *ProductConfigService) Update(ctx context.Context, id uint, form *configurator.ProductForm) (*SaveResult, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	form.ID = id
	report, err := s.check(form)
	if err != nil {
		return nil, err
	}
	applyProductSnapshot(product, form.Snapshot())
	product.Category = nil
	if err := s.repo.Update(product); err != nil {
		logger.Errorw("product_update_failed", "product_id", id, "error", err)
		return nil, ErrSaveFailed
	}
	s.invalidate(ctx)
	return &SaveResult{ID: product.ID, Warnings: report.Warnings(form.Locate)}, nil
}

// Delete 删除商品；被套餐引用时拒绝
func (s *ProductConfigService) Delete(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	usage, err := s.repo.CountComboUsage(id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return ErrProductInUse
	}
	if err := s.repo.Delete(id); err != nil {
		logger.Errorw("product_delete_failed", "product_id", id, "error", err)
		return ErrDeleteFailed
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductConfigService) check(form *configurator.ProductForm) (*configurator.Report, error) {
	lookup, err := buildLookup(nil, s.references, nil)
	if err != nil {
		return nil, err
	}
	report := form.Validate(lookup)
	if form.CategoryID != 0 && s.references != nil {
		exists, err := s.references.CategoryExists(form.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			report.AddField(configurator.FieldCategoryID, configurator.MsgInvalidOption)
		}
	}
	if report.Failed() {
		return report, &ValidationError{Report: report, Locate: form.Locate}
	}
	return report, nil
}

func (s *ProductConfigService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, constants.ReferenceProducts)
	}
}
