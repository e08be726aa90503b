package repository

import (
	"github.com/catalogkit/internal/models"

	"gorm.io/gorm"
)

// ReferenceRepository 参考数据（分类、供应商、门店、时段、单位）访问接口
type ReferenceRepository interface {
	ListCategories(filter ReferenceListFilter) ([]models.Category, int64, error)
	ListSuppliers(filter ReferenceListFilter) ([]models.Supplier, int64, error)
	ListBranches(filter ReferenceListFilter) ([]models.Branch, int64, error)
	ListTimeSlots(filter ReferenceListFilter) ([]models.TimeSlot, int64, error)
	ListUnits(filter ReferenceListFilter) ([]models.Unit, int64, error)
	CategoryExists(id uint) (bool, error)
	Create(record interface{}) error
}

// GormReferenceRepository GORM 实现
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository 创建参考数据仓库
func NewReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// ListCategories 分类列表
func (r *GormReferenceRepository) ListCategories(filter ReferenceListFilter) ([]models.Category, int64, error) {
	return listReference[models.Category](r.db, filter, "sort_order DESC, id ASC")
}

// ListSuppliers 供应商列表
func (r *GormReferenceRepository) ListSuppliers(filter ReferenceListFilter) ([]models.Supplier, int64, error) {
	return listReference[models.Supplier](r.db, filter, "id ASC", "phone")
}

// ListBranches 门店列表
func (r *GormReferenceRepository) ListBranches(filter ReferenceListFilter) ([]models.Branch, int64, error) {
	return listReference[models.Branch](r.db, filter, "id ASC", "address")
}

// ListTimeSlots 时段列表，按开始时间排序
func (r *GormReferenceRepository) ListTimeSlots(filter ReferenceListFilter) ([]models.TimeSlot, int64, error) {
	return listReference[models.TimeSlot](r.db, filter, "start_time ASC, id ASC")
}

// ListUnits 单位列表
func (r *GormReferenceRepository) ListUnits(filter ReferenceListFilter) ([]models.Unit, int64, error) {
	return listReference[models.Unit](r.db, filter, "id ASC", "code")
}

// CategoryExists 分类是否存在
func (r *GormReferenceRepository) CategoryExists(id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 写入一条参考数据
func (r *GormReferenceRepository) Create(record interface{}) error {
	return r.db.Create(record).Error
}

func listReference[T any](db *gorm.DB, filter ReferenceListFilter, order string, searchColumns ...string) ([]T, int64, error) {
	var rows []T
	query := db.Model(new(T))
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	query = applySearch(query, filter.Search, append([]string{"name"}, searchColumns...)...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order(order).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
