package configurator

// Option 选择器选项
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Lookup 参考数据查询：库存与时段启用状态，未加载的数据视为不存在
type Lookup interface {
	StockLookup
	ActiveSlots
}

// References 一次编辑会话加载的参考数据
type References struct {
	Units      []Option
	Categories []Option
	Suppliers  []Option
	Branches   []Option
	TimeSlots  []Option // 仅启用的时段
	Combos     []Option
	Products   []CatalogProduct
}

// ProductStock 实现 StockLookup
func (r *References) ProductStock(id uint) (int64, bool) {
	if r == nil {
		return 0, false
	}
	for _, product := range r.Products {
		if product.ID == id && product.Stock != nil {
			return *product.Stock, true
		}
	}
	return 0, false
}

// TimeSlotActive 实现 ActiveSlots；时段未加载时不判定为停用
func (r *References) TimeSlotActive(id uint) bool {
	if r == nil || len(r.TimeSlots) == 0 {
		return true
	}
	for _, slot := range r.TimeSlots {
		if slot.ID == id {
			return true
		}
	}
	return false
}

// ProductOptions 商品列表转为选择器选项
func (r *References) ProductOptions() []Option {
	if r == nil {
		return nil
	}
	out := make([]Option, 0, len(r.Products))
	for _, product := range r.Products {
		out = append(out, Option{ID: product.ID, Name: product.Name})
	}
	return out
}
