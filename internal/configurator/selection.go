package configurator

import "sort"

type selectionMode int

const (
	modeOpen selectionMode = iota
	modeRestricted
)

type selectionEvent int

const (
	eventRestrict selectionEvent = iota
	eventOpen
	eventPick
	eventUnpick
	eventHydrate
)

type transitionKey struct {
	from  selectionMode
	event selectionEvent
}

type transition struct {
	to    selectionMode
	clear bool
}

// 未列出的组合保持当前状态与目标不变
var selectionTransitions = map[transitionKey]transition{
	{modeOpen, eventRestrict}:       {to: modeRestricted, clear: true},
	{modeOpen, eventOpen}:           {to: modeOpen, clear: true},
	{modeOpen, eventPick}:           {to: modeRestricted},
	{modeOpen, eventHydrate}:        {to: modeRestricted},
	{modeRestricted, eventRestrict}: {to: modeRestricted},
	{modeRestricted, eventOpen}:     {to: modeOpen, clear: true},
	{modeRestricted, eventPick}:     {to: modeRestricted},
	{modeRestricted, eventUnpick}:   {to: modeRestricted},
	{modeRestricted, eventHydrate}:  {to: modeRestricted},
}

// selection 两态选择：开放（全部/不限时段）或限定到目标集合
type selection struct {
	mode    selectionMode
	targets map[uint]struct{}
}

func newSelection() selection {
	return selection{mode: modeOpen, targets: map[uint]struct{}{}}
}

func (s *selection) fire(event selectionEvent) {
	next, ok := selectionTransitions[transitionKey{s.mode, event}]
	if !ok {
		return
	}
	s.mode = next.to
	if next.clear {
		s.targets = map[uint]struct{}{}
	}
}

func (s *selection) pick(id uint) {
	if id == 0 {
		return
	}
	s.fire(eventPick)
	s.targets[id] = struct{}{}
}

func (s *selection) unpick(id uint) {
	if s.mode != modeRestricted {
		return
	}
	s.fire(eventUnpick)
	delete(s.targets, id)
}

// hydrate 从持久化数据恢复；只有非开放且目标非空时才进入限定状态
func (s *selection) hydrate(open bool, ids []uint) {
	*s = newSelection()
	if open {
		return
	}
	filtered := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 {
		return
	}
	s.fire(eventHydrate)
	for _, id := range filtered {
		s.targets[id] = struct{}{}
	}
}

func (s *selection) has(id uint) bool {
	_, ok := s.targets[id]
	return ok
}

func (s *selection) ids() []uint {
	out := make([]uint, 0, len(s.targets))
	for id := range s.targets {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *selection) restrictedEmpty() bool {
	return s.mode == modeRestricted && len(s.targets) == 0
}
