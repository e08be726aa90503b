package configurator

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// 折扣类型
const (
	DiscountFixed   = "fixed"
	DiscountPercent = "percent"
)

var percentCeiling = decimal.NewFromInt(100)

// PromotionBase 活动基础字段
type PromotionBase struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Description    string          `json:"description"`
	DiscountType   string          `json:"discount_type" validate:"required,oneof=fixed percent"`
	DiscountValue  decimal.Decimal `json:"discount_value" validate:"gt=0"`
	MinOrderAmount int64           `json:"min_order_amount" validate:"gte=0"`
	StartsAt       *time.Time      `json:"starts_at" validate:"required"`
	EndsAt         *time.Time      `json:"ends_at" validate:"required"`
	IsActive       bool            `json:"is_active"`
}

// PromotionSnapshot 活动编辑快照
type PromotionSnapshot struct {
	ID uint `json:"id"`
	PromotionBase
	ApplicationType  ApplicationType `json:"application_type"`
	ProductIDs       []uint          `json:"product_ids"`
	CategoryIDs      []uint          `json:"category_ids"`
	ComboIDs         []uint          `json:"combo_ids"`
	ApplyAllBranches bool            `json:"apply_all_branches"`
	BranchIDs        []uint          `json:"branch_ids"`
	IsFlexibleTime   bool            `json:"is_flexible_time"`
	TimeSlotIDs      []uint          `json:"time_slot_ids"`
}

// PromotionForm 活动配置表单
type PromotionForm struct {
	ID uint
	PromotionBase
	Target     PromotionTarget
	Branches   *ScopeSelection
	TimeWindow *TimeWindowSelection
}

// NewPromotionForm 新建活动的默认表单，默认指定商品
func NewPromotionForm() *PromotionForm {
	return &PromotionForm{
		PromotionBase: PromotionBase{DiscountType: DiscountPercent, IsActive: true},
		Target:        ProductTarget(),
		Branches:      NewScopeSelection(),
		TimeWindow:    NewTimeWindowSelection(),
	}
}

// HydratePromotionForm 由快照恢复编辑表单
func HydratePromotionForm(snap PromotionSnapshot) (*PromotionForm, error) {
	f := NewPromotionForm()
	f.ID = snap.ID
	f.PromotionBase = snap.PromotionBase
	kind := snap.ApplicationType
	if kind == "" {
		kind = ApplyProducts
	}
	target, err := NewPromotionTarget(kind, snap.targetIDs(kind)...)
	if err != nil {
		return nil, err
	}
	f.Target = target
	f.Branches.Hydrate(snap.ApplyAllBranches, snap.BranchIDs)
	f.TimeWindow.Hydrate(snap.IsFlexibleTime, snap.TimeSlotIDs)
	return f, nil
}

func (s PromotionSnapshot) targetIDs(kind ApplicationType) []uint {
	switch kind {
	case ApplyProducts:
		return s.ProductIDs
	case ApplyCategories:
		return s.CategoryIDs
	case ApplyCombos:
		return s.ComboIDs
	}
	return nil
}

// SwitchApplicationType 切换适用对象，原有目标全部清空
func (f *PromotionForm) SwitchApplicationType(kind ApplicationType) error {
	if f.Target != nil && f.Target.Type() == kind {
		return nil
	}
	target, err := NewPromotionTarget(kind)
	if err != nil {
		return err
	}
	f.Target = target
	return nil
}

// Validate 执行完整校验；活动结束时间必须严格晚于开始时间
func (f *PromotionForm) Validate(lookup Lookup) *Report {
	return NewConfigurationValidator().
		Base(&f.PromotionBase).
		Dates(func(r *Report) {
			if f.StartsAt != nil && f.EndsAt != nil && !f.EndsAt.After(*f.StartsAt) {
				r.AddField(FieldEndsAt, MsgEndNotAfterStart)
			}
			if f.DiscountType == DiscountPercent && f.DiscountValue.GreaterThan(percentCeiling) {
				r.AddField(FieldDiscountValue, MsgDiscountPercentMax)
			}
		}).
		Target(f.Target).
		Scope(f.Branches, FieldBranchIDs, MsgBranchRequired).
		TimeWindow(f.TimeWindow, lookup).
		Run()
}

// Locate 活动没有动态行
func (f *PromotionForm) Locate(string, RowID) string {
	return ""
}

// Snapshot 导出当前表单数据；仅当前适用对象的目标有值
func (f *PromotionForm) Snapshot() PromotionSnapshot {
	snap := PromotionSnapshot{
		ID:               f.ID,
		PromotionBase:    f.PromotionBase,
		ApplicationType:  f.Target.Type(),
		ProductIDs:       []uint{},
		CategoryIDs:      []uint{},
		ComboIDs:         []uint{},
		ApplyAllBranches: f.Branches.Mode() == ScopeAll,
		BranchIDs:        f.Branches.Targets(),
		IsFlexibleTime:   f.TimeWindow.Mode() == TimeFlexible,
		TimeSlotIDs:      f.TimeWindow.SlotIDs(),
	}
	switch f.Target.Type() {
	case ApplyProducts:
		snap.ProductIDs = f.Target.IDs()
	case ApplyCategories:
		snap.CategoryIDs = f.Target.IDs()
	case ApplyCombos:
		snap.ComboIDs = f.Target.IDs()
	}
	return snap
}

// Payload 编码提交载荷；目标 id 以 field[] 重复键发送
func (f *PromotionForm) Payload() (url.Values, error) {
	w := newPayloadWriter()
	w.str(FieldName, f.Name)
	w.str(FieldDescription, f.Description)
	w.str(FieldDiscountType, f.DiscountType)
	w.str(FieldDiscountValue, f.DiscountValue.String())
	w.int(FieldMinOrderAmount, f.MinOrderAmount)
	w.time(FieldStartsAt, time.DateTime, f.StartsAt)
	w.time(FieldEndsAt, time.DateTime, f.EndsAt)
	w.bool(FieldIsActive, f.IsActive)
	w.str(FieldApplicationType, string(f.Target.Type()))
	if field := f.Target.Field(); field != "" {
		w.ids(field, f.Target.IDs())
	}
	w.scope(f.Branches)
	w.timeWindow(f.TimeWindow)
	return w.values, nil
}

// DecodePromotionForm 解析提交载荷
func DecodePromotionForm(values url.Values) (*PromotionForm, error) {
	r := newPayloadReader(values)
	f := NewPromotionForm()
	f.Name = r.str(FieldName)
	f.Description = r.str(FieldDescription)
	f.DiscountType = r.str(FieldDiscountType)
	f.DiscountValue = r.decimal(FieldDiscountValue)
	f.MinOrderAmount = r.money(FieldMinOrderAmount)
	f.StartsAt = r.time(FieldStartsAt)
	f.EndsAt = r.time(FieldEndsAt)
	f.IsActive = r.bool(FieldIsActive, true)

	kind := ApplicationType(r.str(FieldApplicationType))
	if kind == "" {
		kind = ApplyProducts
	}
	target, err := NewPromotionTarget(kind)
	if err != nil {
		r.fail(FieldApplicationType, err)
	} else {
		if field := target.Field(); field != "" {
			for _, id := range r.ids(field) {
				_ = target.Pick(id)
			}
		}
		f.Target = target
	}
	f.Branches = r.scope()
	f.TimeWindow = r.timeWindow()
	if r.err != nil {
		return nil, r.err
	}
	return f, nil
}
