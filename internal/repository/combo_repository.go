package repository

import (
	"errors"

	"github.com/catalogkit/internal/models"

	"gorm.io/gorm"
)

// ComboRepository 套餐数据访问接口
type ComboRepository interface {
	List(filter ComboListFilter) ([]models.Combo, int64, error)
	GetByID(id uint) (*models.Combo, error)
	Create(combo *models.Combo) error
	Update(combo *models.Combo) error
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ComboRepository
}

// GormComboRepository GORM 实现
type GormComboRepository struct {
	db *gorm.DB
}

// NewComboRepository 创建套餐仓库
func NewComboRepository(db *gorm.DB) *GormComboRepository {
	return &GormComboRepository{db: db}
}

// WithTx 绑定事务
func (r *GormComboRepository) WithTx(tx *gorm.DB) ComboRepository {
	if tx == nil {
		return r
	}
	return &GormComboRepository{db: tx}
}

// Transaction 执行事务
func (r *GormComboRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func preloadComboItems(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// List 套餐列表（含明细）
func (r *GormComboRepository) List(filter ComboListFilter) ([]models.Combo, int64, error) {
	var combos []models.Combo

	query := r.db.Model(&models.Combo{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	query = applySearch(query, filter.Search, "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Items", preloadComboItems).Order("id DESC").Find(&combos).Error; err != nil {
		return nil, 0, err
	}
	return combos, total, nil
}

// GetByID 根据 ID 获取套餐（含明细与商品）
func (r *GormComboRepository) GetByID(id uint) (*models.Combo, error) {
	var combo models.Combo
	err := r.db.Preload("Items", preloadComboItems).
		Preload("Items.Product").
		First(&combo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &combo, nil
}

// Create 创建套餐及明细
func (r *GormComboRepository) Create(combo *models.Combo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := combo.Items
		if err := tx.Omit("Items").Create(combo).Error; err != nil {
			return err
		}
		combo.Items = items
		return replaceComboItems(tx, combo)
	})
}

// Update 更新套餐并整体替换明细
func (r *GormComboRepository) Update(combo *models.Combo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "CreatedAt").Save(combo).Error; err != nil {
			return err
		}
		return replaceComboItems(tx, combo)
	})
}

func replaceComboItems(tx *gorm.DB, combo *models.Combo) error {
	if err := tx.Where("combo_id = ?", combo.ID).Delete(&models.ComboItem{}).Error; err != nil {
		return err
	}
	if len(combo.Items) == 0 {
		return nil
	}
	for i := range combo.Items {
		combo.Items[i].ID = 0
		combo.Items[i].ComboID = combo.ID
		combo.Items[i].SortOrder = i
		combo.Items[i].Product = nil
	}
	return tx.Create(&combo.Items).Error
}

// Delete 删除套餐（软删除），明细物理删除
func (r *GormComboRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", id).Delete(&models.ComboItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Combo{}, id).Error
	})
}
