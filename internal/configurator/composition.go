package configurator

import "fmt"

// ComboItem 套餐明细，TargetID 为 0 表示未选择商品
type ComboItem struct {
	RowID    RowID
	TargetID uint
	Quantity int
}

// CatalogProduct 可选商品及其最近一次已知库存
type CatalogProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock *int64 `json:"stock_quantity,omitempty"`
}

// StockLookup 查询商品最近一次已知库存，未加载或未知返回 false
type StockLookup interface {
	ProductStock(id uint) (int64, bool)
}

// CompositionList 套餐明细列表，至少保留一项
type CompositionList struct {
	items []ComboItem
}

// NewCompositionList 创建带一条空明细的列表
func NewCompositionList() *CompositionList {
	l := &CompositionList{}
	l.AddItem()
	return l
}

// AddItem 追加空明细，数量默认为 1
func (l *CompositionList) AddItem() RowID {
	item := ComboItem{RowID: newRowID(), Quantity: 1}
	l.items = append(l.items, item)
	return item.RowID
}

// RemoveItem 删除明细，最后一项不可删除
func (l *CompositionList) RemoveItem(i int) (RowID, error) {
	if i < 0 || i >= len(l.items) {
		return "", ErrIndexOutOfRange
	}
	if len(l.items) == 1 {
		return "", ErrLastItem
	}
	id := l.items[i].RowID
	l.items = append(l.items[:i], l.items[i+1:]...)
	return id, nil
}

// SetTarget 选择明细商品，0 表示清空
func (l *CompositionList) SetTarget(i int, productID uint) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items[i].TargetID = productID
	return nil
}

// SetQuantity 修改明细数量，合法性在校验阶段检查
func (l *CompositionList) SetQuantity(i int, quantity int) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items[i].Quantity = quantity
	return nil
}

// Len 明细数量
func (l *CompositionList) Len() int {
	return len(l.items)
}

// Items 返回明细快照
func (l *CompositionList) Items() []ComboItem {
	out := make([]ComboItem, len(l.items))
	copy(out, l.items)
	return out
}

// AvailableTargets 第 i 行可选的商品：全部商品减去其它行已选的商品
func (l *CompositionList) AvailableTargets(i int, catalog []CatalogProduct) []CatalogProduct {
	taken := make(map[uint]struct{}, len(l.items))
	for idx, item := range l.items {
		if idx == i || item.TargetID == 0 {
			continue
		}
		taken[item.TargetID] = struct{}{}
	}
	out := make([]CatalogProduct, 0, len(catalog))
	for _, product := range catalog {
		if _, ok := taken[product.ID]; ok {
			continue
		}
		out = append(out, product)
	}
	return out
}

// Validate 依次检查：非空、无重复商品、逐行必填；库存检查独立执行且只产生提示
func (l *CompositionList) Validate(r *Report, stock StockLookup) {
	l.validateStructure(r)
	l.checkStock(r, stock)
}

func (l *CompositionList) validateStructure(r *Report) {
	if len(l.items) == 0 {
		r.AddField(CollectionItems, MsgComboItemsRequired)
		return
	}
	seen := make(map[uint]struct{}, len(l.items))
	for _, item := range l.items {
		if item.TargetID == 0 {
			continue
		}
		if _, dup := seen[item.TargetID]; dup {
			r.AddField(CollectionItems, MsgComboItemsDuplicate)
			return
		}
		seen[item.TargetID] = struct{}{}
	}
	for _, item := range l.items {
		if item.TargetID == 0 {
			r.AddRow(CollectionItems, item.RowID, FieldItemProductID, MsgComboItemProduct)
		}
		if item.Quantity < 1 {
			r.AddRow(CollectionItems, item.RowID, FieldItemQuantity, MsgComboItemQuantity)
		}
	}
}

func (l *CompositionList) checkStock(r *Report, stock StockLookup) {
	if stock == nil {
		return
	}
	for _, item := range l.items {
		if item.TargetID == 0 {
			continue
		}
		available, known := stock.ProductStock(item.TargetID)
		if known && int64(item.Quantity) > available {
			r.WarnRow(CollectionItems, item.RowID, FieldItemQuantity, MsgComboItemStockExceeded)
		}
	}
}

func (l *CompositionList) locate(collection string, id RowID) string {
	if collection != CollectionItems {
		return ""
	}
	for i, item := range l.items {
		if item.RowID == id {
			return fmt.Sprintf("%s[%d]", CollectionItems, i)
		}
	}
	return ""
}
