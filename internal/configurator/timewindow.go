package configurator

// TimeMode 售卖时段模式
type TimeMode string

const (
	TimeFlexible TimeMode = "FLEXIBLE"
	TimeFixed    TimeMode = "FIXED"
)

// ActiveSlots 判断时段当前是否启用
type ActiveSlots interface {
	TimeSlotActive(id uint) bool
}

// TimeWindowSelection 售卖时段：不限，或固定时段列表
type TimeWindowSelection struct {
	sel selection
}

// NewTimeWindowSelection 默认不限时段
func NewTimeWindowSelection() *TimeWindowSelection {
	return &TimeWindowSelection{sel: newSelection()}
}

// Mode 当前模式
func (t *TimeWindowSelection) Mode() TimeMode {
	if t.sel.mode == modeRestricted {
		return TimeFixed
	}
	return TimeFlexible
}

// SwitchFixed 切换为固定时段
func (t *TimeWindowSelection) SwitchFixed() {
	t.sel.fire(eventRestrict)
}

// SwitchFlexible 切换为不限时段并清空已选时段
func (t *TimeWindowSelection) SwitchFlexible() {
	t.sel.fire(eventOpen)
}

// Pick 选择时段
func (t *TimeWindowSelection) Pick(id uint) {
	t.sel.pick(id)
}

// Unpick 取消时段
func (t *TimeWindowSelection) Unpick(id uint) {
	t.sel.unpick(id)
}

// SlotIDs 已选时段，升序
func (t *TimeWindowSelection) SlotIDs() []uint {
	return t.sel.ids()
}

// Hydrate 编辑时恢复
func (t *TimeWindowSelection) Hydrate(flexible bool, ids []uint) {
	t.sel.hydrate(flexible, ids)
}

// PickerOptions 可添加的时段：仅启用且尚未选择的时段
func (t *TimeWindowSelection) PickerOptions(active []Option) []Option {
	out := make([]Option, 0, len(active))
	for _, slot := range active {
		if t.sel.has(slot.ID) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// InactiveSelected 已选择但已停用的时段
func (t *TimeWindowSelection) InactiveSelected(slots ActiveSlots) []uint {
	if slots == nil {
		return nil
	}
	var out []uint
	for _, id := range t.sel.ids() {
		if !slots.TimeSlotActive(id) {
			out = append(out, id)
		}
	}
	return out
}

// Validate 固定时段不能为空；已停用的时段仍保留，只给出提示
func (t *TimeWindowSelection) Validate(r *Report, slots ActiveSlots) {
	if t.sel.restrictedEmpty() {
		r.AddField(FieldTimeSlotIDs, MsgTimeSlotRequired)
		return
	}
	if t.Mode() == TimeFixed && len(t.InactiveSelected(slots)) > 0 {
		r.WarnField(FieldTimeSlotIDs, MsgTimeSlotInactive)
	}
}
