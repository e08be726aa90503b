package configurator

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// ProductBase 商品基础字段（金额为最小货币单位）
type ProductBase struct {
	Name              string `json:"name" validate:"required,max=255"`
	Description       string `json:"description"`
	CategoryID        uint   `json:"category_id" validate:"required"`
	SupplierID        uint   `json:"supplier_id"`
	BaseUnit          string `json:"base_unit" validate:"required,max=50"`
	BaseCostPrice     int64  `json:"base_cost_price" validate:"gte=0"`
	BaseStorePrice    int64  `json:"base_store_price" validate:"gte=0"`
	BaseAppPrice      int64  `json:"base_app_price" validate:"gte=0"`
	BaseStockQuantity int64  `json:"base_stock_quantity" validate:"gte=0"`
	IsActive          bool   `json:"is_active"`
}

// ProductSnapshot 商品编辑快照
type ProductSnapshot struct {
	ID uint `json:"id"`
	ProductBase
	UnitConversions  []UnitConversionData `json:"unit_conversions"`
	Attributes       []AttributeData      `json:"attributes"`
	ApplyAllBranches bool                 `json:"apply_all_branches"`
	BranchIDs        []uint               `json:"branch_ids"`
	IsFlexibleTime   bool                 `json:"is_flexible_time"`
	TimeSlotIDs      []uint               `json:"time_slot_ids"`
}

// ProductForm 商品配置表单
type ProductForm struct {
	ID uint
	ProductBase
	Units      *UnitConversionSet
	Attributes *AttributeVariantSet
	Branches   *ScopeSelection
	TimeWindow *TimeWindowSelection
}

// NewProductForm 新建商品的默认表单
func NewProductForm() *ProductForm {
	return &ProductForm{
		ProductBase: ProductBase{IsActive: true},
		Units:       NewUnitConversionSet(),
		Attributes:  NewAttributeVariantSet(),
		Branches:    NewScopeSelection(),
		TimeWindow:  NewTimeWindowSelection(),
	}
}

// HydrateProductForm 由快照恢复编辑表单
func HydrateProductForm(snap ProductSnapshot) (*ProductForm, error) {
	f := NewProductForm()
	f.ID = snap.ID
	f.ProductBase = snap.ProductBase
	f.Units.Load(snap.UnitConversions)
	if err := f.Attributes.Load(snap.Attributes); err != nil {
		return nil, err
	}
	f.Branches.Hydrate(snap.ApplyAllBranches, snap.BranchIDs)
	f.TimeWindow.Hydrate(snap.IsFlexibleTime, snap.TimeSlotIDs)
	return f, nil
}

// BaseFigures 当前基础成本与库存
func (f *ProductForm) BaseFigures() BaseFigures {
	return BaseFigures{
		CostPrice:     decimal.NewFromInt(f.BaseCostPrice),
		StockQuantity: decimal.NewFromInt(f.BaseStockQuantity),
	}
}

// UnitMetrics 第 i 个换算单位的派生成本与库存
func (f *ProductForm) UnitMetrics(i int) (Metrics, error) {
	return f.Units.DeriveMetrics(f.BaseFigures(), i)
}

// Validate 执行完整校验
func (f *ProductForm) Validate(lookup Lookup) *Report {
	return NewConfigurationValidator().
		Base(&f.ProductBase).
		Units(f.Units).
		Attributes(f.Attributes).
		Scope(f.Branches, FieldBranchIDs, MsgBranchRequired).
		TimeWindow(f.TimeWindow, lookup).
		Run()
}

// Locate 行标识转展示路径
func (f *ProductForm) Locate(collection string, id RowID) string {
	if collection == CollectionUnits {
		if i := f.Units.indexOf(id); i >= 0 {
			return indexed(CollectionUnits, i)
		}
		return ""
	}
	return f.Attributes.locate(collection, id)
}

// Snapshot 导出当前表单数据
func (f *ProductForm) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:               f.ID,
		ProductBase:      f.ProductBase,
		UnitConversions:  f.Units.Data(),
		Attributes:       f.Attributes.Data(),
		ApplyAllBranches: f.Branches.Mode() == ScopeAll,
		BranchIDs:        f.Branches.Targets(),
		IsFlexibleTime:   f.TimeWindow.Mode() == TimeFlexible,
		TimeSlotIDs:      f.TimeWindow.SlotIDs(),
	}
}

// Payload 编码提交载荷
func (f *ProductForm) Payload() (url.Values, error) {
	w := newPayloadWriter()
	w.str(FieldName, f.Name)
	w.str(FieldDescription, f.Description)
	w.id(FieldCategoryID, f.CategoryID)
	w.id(FieldSupplierID, f.SupplierID)
	w.str(FieldBaseUnit, f.BaseUnit)
	w.int(FieldBaseCostPrice, f.BaseCostPrice)
	w.int(FieldBaseStorePrice, f.BaseStorePrice)
	w.int(FieldBaseAppPrice, f.BaseAppPrice)
	w.int(FieldBaseStock, f.BaseStockQuantity)
	w.bool(FieldIsActive, f.IsActive)
	if err := w.json(CollectionUnits, f.Units.Data()); err != nil {
		return nil, err
	}
	if err := w.json(CollectionAttributes, f.Attributes.Data()); err != nil {
		return nil, err
	}
	w.scope(f.Branches)
	w.timeWindow(f.TimeWindow)
	return w.values, nil
}

// DecodeProductForm 解析提交载荷
func DecodeProductForm(values url.Values) (*ProductForm, error) {
	r := newPayloadReader(values)
	f := NewProductForm()
	f.Name = r.str(FieldName)
	f.Description = r.str(FieldDescription)
	f.CategoryID = r.id(FieldCategoryID)
	f.SupplierID = r.id(FieldSupplierID)
	f.BaseUnit = r.str(FieldBaseUnit)
	f.BaseCostPrice = r.money(FieldBaseCostPrice)
	f.BaseStorePrice = r.money(FieldBaseStorePrice)
	f.BaseAppPrice = r.money(FieldBaseAppPrice)
	f.BaseStockQuantity = r.money(FieldBaseStock)
	f.IsActive = r.bool(FieldIsActive, true)

	var units []UnitConversionData
	r.json(CollectionUnits, &units)
	f.Units.Load(units)

	var attributes []AttributeData
	r.json(CollectionAttributes, &attributes)
	if err := f.Attributes.Load(attributes); err != nil {
		r.fail(CollectionAttributes, err)
	}
	f.Branches = r.scope()
	f.TimeWindow = r.timeWindow()
	if r.err != nil {
		return nil, r.err
	}
	return f, nil
}
