package configurator

import (
	"fmt"
	"net/url"
	"time"
)

// ComboBase 套餐基础字段
type ComboBase struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description"`
	StorePrice  int64      `json:"store_price" validate:"gte=0"`
	AppPrice    int64      `json:"app_price" validate:"gte=0"`
	IsActive    bool       `json:"is_active"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ComboSnapshot 套餐编辑快照
type ComboSnapshot struct {
	ID uint `json:"id"`
	ComboBase
	Items            []ComboItemData `json:"items"`
	Attributes       []AttributeData `json:"attributes"`
	ApplyAllBranches bool            `json:"apply_all_branches"`
	BranchIDs        []uint          `json:"branch_ids"`
	IsFlexibleTime   bool            `json:"is_flexible_time"`
	TimeSlotIDs      []uint          `json:"time_slot_ids"`
}

// ComboForm 套餐配置表单
type ComboForm struct {
	ID uint
	ComboBase
	Items      *CompositionList
	Attributes *AttributeVariantSet
	Branches   *ScopeSelection
	TimeWindow *TimeWindowSelection
}

// NewComboForm 新建套餐的默认表单，带一条空明细
func NewComboForm() *ComboForm {
	return &ComboForm{
		ComboBase:  ComboBase{IsActive: true},
		Items:      NewCompositionList(),
		Attributes: NewAttributeVariantSet(),
		Branches:   NewScopeSelection(),
		TimeWindow: NewTimeWindowSelection(),
	}
}

// HydrateComboForm 由快照恢复编辑表单
func HydrateComboForm(snap ComboSnapshot) (*ComboForm, error) {
	f := NewComboForm()
	f.ID = snap.ID
	f.ComboBase = snap.ComboBase
	if len(snap.Items) > 0 {
		f.Items.Load(snap.Items)
	}
	if err := f.Attributes.Load(snap.Attributes); err != nil {
		return nil, err
	}
	f.Branches.Hydrate(snap.ApplyAllBranches, snap.BranchIDs)
	f.TimeWindow.Hydrate(snap.IsFlexibleTime, snap.TimeSlotIDs)
	return f, nil
}

// Validate 执行完整校验；套餐日期区间包含首尾，结束日可等于开始日
func (f *ComboForm) Validate(lookup Lookup) *Report {
	return NewConfigurationValidator().
		Base(&f.ComboBase).
		Dates(func(r *Report) {
			if f.StartDate != nil && f.EndDate != nil && dateOnly(*f.EndDate).Before(dateOnly(*f.StartDate)) {
				r.AddField(FieldEndDate, MsgEndBeforeStart)
			}
		}).
		Composition(f.Items, lookup).
		Attributes(f.Attributes).
		Scope(f.Branches, FieldBranchIDs, MsgBranchRequired).
		TimeWindow(f.TimeWindow, lookup).
		Run()
}

// Locate 行标识转展示路径
func (f *ComboForm) Locate(collection string, id RowID) string {
	if collection == CollectionItems {
		return f.Items.locate(collection, id)
	}
	return f.Attributes.locate(collection, id)
}

// Snapshot 导出当前表单数据
func (f *ComboForm) Snapshot() ComboSnapshot {
	return ComboSnapshot{
		ID:               f.ID,
		ComboBase:        f.ComboBase,
		Items:            f.Items.Data(),
		Attributes:       f.Attributes.Data(),
		ApplyAllBranches: f.Branches.Mode() == ScopeAll,
		BranchIDs:        f.Branches.Targets(),
		IsFlexibleTime:   f.TimeWindow.Mode() == TimeFlexible,
		TimeSlotIDs:      f.TimeWindow.SlotIDs(),
	}
}

// Payload 编码提交载荷；明细按 items[i][field] 展开
func (f *ComboForm) Payload() (url.Values, error) {
	w := newPayloadWriter()
	w.str(FieldName, f.Name)
	w.str(FieldDescription, f.Description)
	w.int(FieldStorePrice, f.StorePrice)
	w.int(FieldAppPrice, f.AppPrice)
	w.bool(FieldIsActive, f.IsActive)
	w.time(FieldStartDate, time.DateOnly, f.StartDate)
	w.time(FieldEndDate, time.DateOnly, f.EndDate)
	for i, item := range f.Items.Data() {
		w.id(fmt.Sprintf("items[%d][product_id]", i), item.ProductID)
		w.int(fmt.Sprintf("items[%d][quantity]", i), int64(item.Quantity))
	}
	if err := w.json(CollectionAttributes, f.Attributes.Data()); err != nil {
		return nil, err
	}
	w.scope(f.Branches)
	w.timeWindow(f.TimeWindow)
	return w.values, nil
}

// DecodeComboForm 解析提交载荷
func DecodeComboForm(values url.Values) (*ComboForm, error) {
	r := newPayloadReader(values)
	f := NewComboForm()
	f.Name = r.str(FieldName)
	f.Description = r.str(FieldDescription)
	f.StorePrice = r.money(FieldStorePrice)
	f.AppPrice = r.money(FieldAppPrice)
	f.IsActive = r.bool(FieldIsActive, true)
	f.StartDate = r.time(FieldStartDate)
	f.EndDate = r.time(FieldEndDate)
	f.Items.Load(r.items())

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

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func indexed(collection string, i int) string {
	return fmt.Sprintf("%s[%d]", collection, i)
}
