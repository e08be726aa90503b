package repository

import (
	"errors"

	"github.com/catalogkit/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	StockByIDs(ids []uint) (map[uint]int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountComboUsage(productID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func preloadUnitConversions(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID != 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	query = applySearch(query, filter.Search, "name", "base_unit")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（含换算单位）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").
		Preload("UnitConversions", preloadUnitConversions).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// StockByIDs 批量获取基础单位库存，缺失的商品不出现在结果中
func (r *GormProductRepository) StockByIDs(ids []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []struct {
		ID                uint
		BaseStockQuantity int64
	}
	err := r.db.Model(&models.Product{}).
		Select("id, base_stock_quantity").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row.BaseStockQuantity
	}
	return result, nil
}

// Create 创建商品，换算单位随主记录一并写入
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		conversions := product.UnitConversions
		if err := tx.Omit("Category", "UnitConversions").Create(product).Error; err != nil {
			return err
		}
		product.UnitConversions = conversions
		return replaceUnitConversions(tx, product)
	})
}

// Update 更新商品并整体替换换算单位
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "UnitConversions", "CreatedAt").Save(product).Error; err != nil {
			return err
		}
		return replaceUnitConversions(tx, product)
	})
}

func replaceUnitConversions(tx *gorm.DB, product *models.Product) error {
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductUnitConversion{}).Error; err != nil {
		return err
	}
	if len(product.UnitConversions) == 0 {
		return nil
	}
	for i := range product.UnitConversions {
		product.UnitConversions[i].ID = 0
		product.UnitConversions[i].ProductID = product.ID
		product.UnitConversions[i].SortOrder = i
	}
	return tx.Create(&product.UnitConversions).Error
}

// Delete 删除商品（软删除），换算单位物理删除
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductUnitConversion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// CountComboUsage 统计引用该商品的未删除套餐数量
func (r *GormProductRepository) CountComboUsage(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ComboItem{}).
		Joins("JOIN combos ON combos.id = combo_items.combo_id AND combos.deleted_at IS NULL").
		Where("combo_items.product_id = ?", productID).
		Count(&count).Error
	return count, err
}
