package models

import (
	"time"

	"github.com/catalogkit/internal/configurator"

	"gorm.io/gorm"
)

// Combo 套餐
type Combo struct {
	ID               uint                                 `gorm:"primarykey" json:"id"`
	Name             string                               `gorm:"type:varchar(255);not null" json:"name"`
	Description      string                               `gorm:"type:text" json:"description"`
	StorePrice       int64                                `gorm:"not null;default:0" json:"store_price"`
	AppPrice         int64                                `gorm:"not null;default:0" json:"app_price"`
	IsActive         bool                                 `gorm:"not null;default:true;index" json:"is_active"`
	StartDate        *time.Time                           `gorm:"index" json:"start_date"` // 生效日期（含）
	EndDate          *time.Time                           `gorm:"index" json:"end_date"`   // 结束日期（含）
	Attributes       JSONList[configurator.AttributeData] `gorm:"type:text" json:"attributes"`
	ApplyAllBranches bool                                 `gorm:"not null;default:true" json:"apply_all_branches"`
	BranchIDs        UintArray                            `gorm:"type:text" json:"branch_ids"`
	IsFlexibleTime   bool                                 `gorm:"not null;default:true" json:"is_flexible_time"`
	TimeSlotIDs      UintArray                            `gorm:"type:text" json:"time_slot_ids"`
	CreatedAt        time.Time                            `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time                            `json:"updated_at"`
	DeletedAt        gorm.DeletedAt                       `gorm:"index" json:"-"`

	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items,omitempty"`
}

// TableName 指定表名
func (Combo) TableName() string {
	return "combos"
}

// ComboItem 套餐明细
type ComboItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ComboID   uint `gorm:"not null;uniqueIndex:idx_combo_item_product" json:"combo_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_combo_item_product;index" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
	SortOrder int  `gorm:"not null;default:0" json:"sort_order"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 指定表名
func (ComboItem) TableName() string {
	return "combo_items"
}
