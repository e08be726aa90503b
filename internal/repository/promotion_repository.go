package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/catalogkit/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	ListEffective(now time.Time) ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	WithTx(tx *gorm.DB) PromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) PromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据ID获取促销
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListEffective 获取当前时间内启用的促销
func (r *GormPromotionRepository) ListEffective(now time.Time) ([]models.Promotion, error) {
	var promotions []models.Promotion
	query := r.db.Where("is_active = ?", true)
	query = query.Where("(starts_at IS NULL OR starts_at <= ?)", now)
	query = query.Where("(ends_at IS NULL OR ends_at > ?)", now)
	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// Create 创建促销
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新促销
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Omit("CreatedAt").Save(promotion).Error
}

// Delete 删除促销
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}

// List 获取促销列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion
	query := r.db.Model(&models.Promotion{})

	if applicationType := strings.TrimSpace(filter.ApplicationType); applicationType != "" {
		query = query.Where("application_type = ?", applicationType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applySearch(query, filter.Search, "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}
