package configurator

import (
	"fmt"
	"strings"
)

// AttributeKind 属性类型
type AttributeKind string

const (
	KindSingleChoice AttributeKind = "single_choice"
	KindMultiChoice  AttributeKind = "multi_choice"
	KindFreeText     AttributeKind = "free_text"
)

// Valid 是否为已知类型
func (k AttributeKind) Valid() bool {
	switch k {
	case KindSingleChoice, KindMultiChoice, KindFreeText:
		return true
	}
	return false
}

// AttributeValue 属性选项
type AttributeValue struct {
	RowID           RowID
	Value           string
	PriceAdjustment int64 // 价格增减，可为负
	IsDefault       bool
}

// AttributeDefinition 面向顾客的属性定义
type AttributeDefinition struct {
	RowID  RowID
	Name   string
	Kind   AttributeKind
	Values []AttributeValue
}

// AttributeVariantSet 属性与选项集合
type AttributeVariantSet struct {
	defs []AttributeDefinition
}

// NewAttributeVariantSet 创建空集合
func NewAttributeVariantSet() *AttributeVariantSet {
	return &AttributeVariantSet{}
}

// AddDefinition 追加单选属性
func (s *AttributeVariantSet) AddDefinition() RowID {
	def := AttributeDefinition{RowID: newRowID(), Kind: KindSingleChoice}
	s.defs = append(s.defs, def)
	return def.RowID
}

// RemoveDefinition 删除属性及其全部选项
func (s *AttributeVariantSet) RemoveDefinition(d int) (AttributeDefinition, error) {
	if d < 0 || d >= len(s.defs) {
		return AttributeDefinition{}, ErrIndexOutOfRange
	}
	removed := s.defs[d]
	s.defs = append(s.defs[:d], s.defs[d+1:]...)
	return removed, nil
}

// SetName 修改属性名称
func (s *AttributeVariantSet) SetName(d int, name string) error {
	def, err := s.definition(d)
	if err != nil {
		return err
	}
	def.Name = name
	return nil
}

// SetKind 切换属性类型，已有选项保留
func (s *AttributeVariantSet) SetKind(d int, kind AttributeKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrAttributeKindInvalid, kind)
	}
	def, err := s.definition(d)
	if err != nil {
		return err
	}
	def.Kind = kind
	return nil
}

// AddValue 追加选项，属性的第一个选项自动设为默认
func (s *AttributeVariantSet) AddValue(d int) (RowID, error) {
	def, err := s.definition(d)
	if err != nil {
		return "", err
	}
	if def.Kind == KindFreeText {
		return "", ErrFreeTextValues
	}
	value := AttributeValue{RowID: newRowID(), IsDefault: len(def.Values) == 0}
	def.Values = append(def.Values, value)
	return value.RowID, nil
}

// RemoveValue 删除选项
func (s *AttributeVariantSet) RemoveValue(d, v int) (RowID, error) {
	def, err := s.definition(d)
	if err != nil {
		return "", err
	}
	if v < 0 || v >= len(def.Values) {
		return "", ErrIndexOutOfRange
	}
	id := def.Values[v].RowID
	def.Values = append(def.Values[:v], def.Values[v+1:]...)
	return id, nil
}

// SetValue 修改选项文本
func (s *AttributeVariantSet) SetValue(d, v int, text string) error {
	value, err := s.value(d, v)
	if err != nil {
		return err
	}
	value.Value = text
	return nil
}

// SetPriceAdjustment 修改选项价格增减，接受带符号与分组的文本
func (s *AttributeVariantSet) SetPriceAdjustment(d, v int, text string) error {
	value, err := s.value(d, v)
	if err != nil {
		return err
	}
	amount, _, err := ParseMoneyText(text)
	if err != nil {
		return err
	}
	if strings.HasPrefix(strings.TrimSpace(text), "-") {
		amount = -amount
	}
	value.PriceAdjustment = amount
	return nil
}

// SetDefault 设为默认；单选属性同时清除其它选项的默认标记
func (s *AttributeVariantSet) SetDefault(d, v int) error {
	def, err := s.definition(d)
	if err != nil {
		return err
	}
	if v < 0 || v >= len(def.Values) {
		return ErrIndexOutOfRange
	}
	if def.Kind == KindSingleChoice {
		for i := range def.Values {
			def.Values[i].IsDefault = false
		}
	}
	def.Values[v].IsDefault = true
	return nil
}

// ClearDefault 取消默认标记
func (s *AttributeVariantSet) ClearDefault(d, v int) error {
	value, err := s.value(d, v)
	if err != nil {
		return err
	}
	value.IsDefault = false
	return nil
}

// Len 属性数量
func (s *AttributeVariantSet) Len() int {
	return len(s.defs)
}

// Definitions 返回属性快照
func (s *AttributeVariantSet) Definitions() []AttributeDefinition {
	out := make([]AttributeDefinition, len(s.defs))
	for i, def := range s.defs {
		out[i] = def
		out[i].Values = append([]AttributeValue(nil), def.Values...)
	}
	return out
}

// Validate 属性名称必填；选择类选项文本必填，free_text 跳过选项校验
func (s *AttributeVariantSet) Validate(r *Report) {
	for _, def := range s.defs {
		if strings.TrimSpace(def.Name) == "" {
			r.AddRow(CollectionAttributes, def.RowID, FieldName, MsgAttributeNameRequired)
		}
		if def.Kind == KindFreeText {
			continue
		}
		defaults := 0
		for _, value := range def.Values {
			if strings.TrimSpace(value.Value) == "" {
				r.AddRow(CollectionAttributeValues, value.RowID, "value", MsgAttributeValueRequired)
			}
			if value.IsDefault {
				defaults++
			}
		}
		if def.Kind == KindSingleChoice && defaults > 1 {
			r.AddRow(CollectionAttributes, def.RowID, "values", MsgAttributeDefaultConflict)
		}
	}
}

func (s *AttributeVariantSet) definition(d int) (*AttributeDefinition, error) {
	if d < 0 || d >= len(s.defs) {
		return nil, ErrIndexOutOfRange
	}
	return &s.defs[d], nil
}

func (s *AttributeVariantSet) value(d, v int) (*AttributeValue, error) {
	def, err := s.definition(d)
	if err != nil {
		return nil, err
	}
	if v < 0 || v >= len(def.Values) {
		return nil, ErrIndexOutOfRange
	}
	return &def.Values[v], nil
}

// locate 解析属性或选项的展示路径
func (s *AttributeVariantSet) locate(collection string, id RowID) string {
	for d, def := range s.defs {
		if collection == CollectionAttributes && def.RowID == id {
			return fmt.Sprintf("%s[%d]", CollectionAttributes, d)
		}
		if collection != CollectionAttributeValues {
			continue
		}
		for v, value := range def.Values {
			if value.RowID == id {
				return fmt.Sprintf("%s[%d].values[%d]", CollectionAttributes, d, v)
			}
		}
	}
	return ""
}
