package configurator

// ScopeMode 适用范围模式
type ScopeMode string

const (
	ScopeAll      ScopeMode = "ALL"
	ScopeExplicit ScopeMode = "EXPLICIT"
)

// ScopeSelection 适用范围：全部，或显式目标列表（门店、活动目标）
type ScopeSelection struct {
	sel selection
}

// NewScopeSelection 默认适用全部
func NewScopeSelection() *ScopeSelection {
	return &ScopeSelection{sel: newSelection()}
}

// Mode 当前模式
func (s *ScopeSelection) Mode() ScopeMode {
	if s.sel.mode == modeRestricted {
		return ScopeExplicit
	}
	return ScopeAll
}

// SwitchExplicit 切换到显式列表；从全部切换时清空目标
func (s *ScopeSelection) SwitchExplicit() {
	s.sel.fire(eventRestrict)
}

// ApplyAll 适用全部并清空目标
func (s *ScopeSelection) ApplyAll() {
	s.sel.fire(eventOpen)
}

// Pick 选择目标，自动切换为显式列表
func (s *ScopeSelection) Pick(id uint) {
	s.sel.pick(id)
}

// Unpick 取消选择，模式保持不变
func (s *ScopeSelection) Unpick(id uint) {
	s.sel.unpick(id)
}

// Toggle 勾选或取消勾选
func (s *ScopeSelection) Toggle(id uint) {
	if s.sel.has(id) {
		s.Unpick(id)
		return
	}
	s.Pick(id)
}

// Has 是否已选择
func (s *ScopeSelection) Has(id uint) bool {
	return s.sel.has(id)
}

// Targets 已选择的目标，升序
func (s *ScopeSelection) Targets() []uint {
	return s.sel.ids()
}

// Hydrate 编辑时恢复：appliesAll 为假且目标非空才进入显式列表
func (s *ScopeSelection) Hydrate(appliesAll bool, ids []uint) {
	s.sel.hydrate(appliesAll, ids)
}

// Validate 显式列表为空时在 field 上记录 msgKey
func (s *ScopeSelection) Validate(r *Report, field, msgKey string) {
	if s.sel.restrictedEmpty() {
		r.AddField(field, msgKey)
	}
}
