package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	SupplierID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// ComboListFilter 查询套餐列表的过滤条件
type ComboListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// PromotionListFilter 查询促销列表的过滤条件
type PromotionListFilter struct {
	Page            int
	PageSize        int
	Search          string
	ApplicationType string
	IsActive        *bool
}

// ReferenceListFilter 查询参考数据（分类/门店/时段等）的过滤条件
type ReferenceListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}
