package configurator

import "fmt"

// ApplicationType 活动适用对象
type ApplicationType string

const (
	ApplyProducts   ApplicationType = "products"
	ApplyCategories ApplicationType = "categories"
	ApplyCombos     ApplicationType = "combos"
	ApplyOrders     ApplicationType = "orders"
)

// PromotionTarget 活动目标，每种适用对象各自持有目标集合
type PromotionTarget interface {
	Type() ApplicationType
	// Field 目标 id 对应的载荷字段，整单活动为空
	Field() string
	IDs() []uint
	Pick(id uint) error
	Unpick(id uint)
	Validate(r *Report)
	sealed()
}

type idTarget struct {
	kind  ApplicationType
	field string
	msg   string
	sel   selection
}

func newIDTarget(kind ApplicationType, field, msg string, ids []uint) *idTarget {
	t := &idTarget{kind: kind, field: field, msg: msg, sel: newSelection()}
	t.sel.fire(eventRestrict)
	for _, id := range ids {
		t.sel.pick(id)
	}
	return t
}

func (t *idTarget) Type() ApplicationType { return t.kind }
func (t *idTarget) Field() string         { return t.field }
func (t *idTarget) IDs() []uint           { return t.sel.ids() }
func (t *idTarget) Unpick(id uint)        { t.sel.unpick(id) }
func (t *idTarget) sealed()               {}

func (t *idTarget) Pick(id uint) error {
	t.sel.pick(id)
	return nil
}

func (t *idTarget) Validate(r *Report) {
	if t.sel.restrictedEmpty() {
		r.AddField(t.field, t.msg)
	}
}

type orderTarget struct{}

func (orderTarget) Type() ApplicationType { return ApplyOrders }
func (orderTarget) Field() string         { return "" }
func (orderTarget) IDs() []uint           { return nil }
func (orderTarget) Pick(uint) error       { return ErrTargetNotSelectable }
func (orderTarget) Unpick(uint)           {}
func (orderTarget) Validate(*Report)      {}
func (orderTarget) sealed()               {}

// ProductTarget 指定商品
func ProductTarget(ids ...uint) PromotionTarget {
	return newIDTarget(ApplyProducts, FieldProductIDs, MsgPromotionProducts, ids)
}

// CategoryTarget 指定分类
func CategoryTarget(ids ...uint) PromotionTarget {
	return newIDTarget(ApplyCategories, FieldCategoryIDs, MsgPromotionCategories, ids)
}

// ComboTarget 指定套餐
func ComboTarget(ids ...uint) PromotionTarget {
	return newIDTarget(ApplyCombos, FieldComboIDs, MsgPromotionCombos, ids)
}

// OrderTarget 整单
func OrderTarget() PromotionTarget {
	return orderTarget{}
}

// NewPromotionTarget 按适用对象创建空目标
func NewPromotionTarget(kind ApplicationType, ids ...uint) (PromotionTarget, error) {
	switch kind {
	case ApplyProducts:
		return ProductTarget(ids...), nil
	case ApplyCategories:
		return CategoryTarget(ids...), nil
	case ApplyCombos:
		return ComboTarget(ids...), nil
	case ApplyOrders:
		return OrderTarget(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrApplicationTypeInvalid, kind)
}
