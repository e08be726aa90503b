package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`       // 名称
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`            // 排序权重
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// Supplier 供应商
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "suppliers"
}

// Branch 门店
type Branch struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Address   string         `gorm:"type:varchar(500)" json:"address"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Branch) TableName() string {
	return "branches"
}

// TimeSlot 售卖时段（每日重复）
type TimeSlot struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	StartTime string         `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	EndTime   string         `gorm:"type:varchar(5);not null" json:"end_time"`   // HH:MM
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (TimeSlot) TableName() string {
	return "time_slots"
}

// Unit 计量单位字典
type Unit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Code      string         `gorm:"type:varchar(32);index" json:"code"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Unit) TableName() string {
	return "units"
}
