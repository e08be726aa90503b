package models

import (
	"time"

	"github.com/catalogkit/internal/configurator"

	"gorm.io/gorm"
)

// Product 商品表（金额为最小货币单位）
type Product struct {
	ID                uint                                 `gorm:"primarykey" json:"id"`                            // 主键
	Name              string                               `gorm:"type:varchar(255);not null" json:"name"`          // 名称
	Description       string                               `gorm:"type:text" json:"description"`                    // 描述（富文本）
	CategoryID        uint                                 `gorm:"not null;index" json:"category_id"`               // 分类ID
	SupplierID        *uint                                `gorm:"index" json:"supplier_id"`                        // 供应商ID
	BaseUnit          string                               `gorm:"type:varchar(50);not null" json:"base_unit"`      // 基础单位
	BaseCostPrice     int64                                `gorm:"not null;default:0" json:"base_cost_price"`       // 基础成本价
	BaseStorePrice    int64                                `gorm:"not null;default:0" json:"base_store_price"`      // 门店价
	BaseAppPrice      int64                                `gorm:"not null;default:0" json:"base_app_price"`        // App 价
	BaseStockQuantity int64                                `gorm:"not null;default:0" json:"base_stock_quantity"`   // 基础单位库存
	IsActive          bool                                 `gorm:"not null;default:true;index" json:"is_active"`    // 是否上架
	Attributes        JSONList[configurator.AttributeData] `gorm:"type:text" json:"attributes"`                     // 属性与选项
	ApplyAllBranches  bool                                 `gorm:"not null;default:true" json:"apply_all_branches"` // 是否适用全部门店
	BranchIDs         UintArray                            `gorm:"type:text" json:"branch_ids"`                     // 指定门店
	IsFlexibleTime    bool                                 `gorm:"not null;default:true" json:"is_flexible_time"`   // 是否不限时段
	TimeSlotIDs       UintArray                            `gorm:"type:text" json:"time_slot_ids"`                  // 指定时段
	CreatedAt         time.Time                            `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt         time.Time                            `json:"updated_at"`                                      // 更新时间
	DeletedAt         gorm.DeletedAt                       `gorm:"index" json:"-"`                                  // 软删除时间

	// 关联
	Category        *Category               `gorm:"foreignKey:CategoryID" json:"category,omitempty"`        // 分类信息
	UnitConversions []ProductUnitConversion `gorm:"foreignKey:ProductID" json:"unit_conversions,omitempty"` // 换算单位
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductUnitConversion 商品换算单位（1 基础单位 = ConversionFactor 个该单位）
type ProductUnitConversion struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                 // 主键
	ProductID        uint      `gorm:"not null;index" json:"product_id"`                     // 商品ID
	SortOrder        int       `gorm:"not null;default:0" json:"sort_order"`                 // 展示顺序，0 为基础单位行
	UnitName         string    `gorm:"type:varchar(100);not null" json:"unit_name"`          // 单位名称
	UnitCode         string    `gorm:"type:varchar(32)" json:"unit_code"`                    // 单位编码
	ConversionFactor Numeric   `gorm:"type:decimal(20,6);not null" json:"conversion_factor"` // 换算系数
	StorePrice       *int64    `json:"store_price"`                                          // 门店价，空表示未设置
	AppPrice         *int64    `json:"app_price"`                                            // App 价，空表示未设置
	IsSalesUnit      bool      `gorm:"not null;default:true" json:"is_sales_unit"`           // 是否可售
	CreatedAt        time.Time `json:"created_at"`                                           // 创建时间
}

// TableName 指定表名
func (ProductUnitConversion) TableName() string {
	return "product_unit_conversions"
}
