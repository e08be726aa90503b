package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 促销活动
type Promotion struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`                  // 名称
	Description      string         `gorm:"type:text" json:"description"`                            // 描述
	DiscountType     string         `gorm:"type:varchar(20);not null" json:"discount_type"`          // 折扣类型（fixed/percent）
	DiscountValue    Numeric        `gorm:"type:decimal(20,6);not null" json:"discount_value"`       // 折扣值（金额或百分比）
	MinOrderAmount   int64          `gorm:"not null;default:0" json:"min_order_amount"`              // 使用门槛
	ApplicationType  string         `gorm:"type:varchar(20);not null;index" json:"application_type"` // 适用对象（products/categories/combos/orders）
	TargetIDs        UintArray      `gorm:"type:text" json:"target_ids"`                             // 适用对象 ID，整单活动为空
	ApplyAllBranches bool           `gorm:"not null;default:true" json:"apply_all_branches"`         // 是否适用全部门店
	BranchIDs        UintArray      `gorm:"type:text" json:"branch_ids"`                             // 指定门店
	IsFlexibleTime   bool           `gorm:"not null;default:true" json:"is_flexible_time"`           // 是否不限时段
	TimeSlotIDs      UintArray      `gorm:"type:text" json:"time_slot_ids"`                          // 指定时段
	StartsAt         *time.Time     `gorm:"index" json:"starts_at"`                                  // 生效时间
	EndsAt           *time.Time     `gorm:"index" json:"ends_at"`                                    // 失效时间
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`                  // 是否启用
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}
