package configurator

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnitConversionData 换算单位的持久化与载荷结构
type UnitConversionData struct {
	UnitName         string          `json:"unit_name"`
	UnitCode         string          `json:"unit_code"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	StorePrice       *int64          `json:"store_price"`
	AppPrice         *int64          `json:"app_price"`
	IsSalesUnit      bool            `json:"is_sales_unit"`
}

// AttributeValueData 属性选项的持久化与载荷结构
type AttributeValueData struct {
	Value           string `json:"value"`
	PriceAdjustment int64  `json:"price_adjustment"`
	IsDefault       bool   `json:"is_default"`
}

// AttributeData 属性的持久化与载荷结构
type AttributeData struct {
	Name   string               `json:"name"`
	Kind   AttributeKind        `json:"kind"`
	Values []AttributeValueData `json:"values"`
}

// ComboItemData 套餐明细的持久化结构
type ComboItemData struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Data 导出换算单位
func (s *UnitConversionSet) Data() []UnitConversionData {
	out := make([]UnitConversionData, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, UnitConversionData{
			UnitName:         row.UnitName,
			UnitCode:         row.UnitCode,
			ConversionFactor: row.Factor,
			StorePrice:       row.StorePrice,
			AppPrice:         row.AppPrice,
			IsSalesUnit:      row.IsSalesUnit,
		})
	}
	return out
}

// Load 用持久化数据重建集合
func (s *UnitConversionSet) Load(data []UnitConversionData) {
	s.rows = make([]UnitConversion, 0, len(data))
	for _, item := range data {
		s.rows = append(s.rows, UnitConversion{
			RowID:       newRowID(),
			UnitName:    item.UnitName,
			UnitCode:    item.UnitCode,
			Factor:      item.ConversionFactor,
			StorePrice:  item.StorePrice,
			AppPrice:    item.AppPrice,
			IsSalesUnit: item.IsSalesUnit,
		})
	}
}

// Data 导出属性；free_text 不输出选项
func (s *AttributeVariantSet) Data() []AttributeData {
	out := make([]AttributeData, 0, len(s.defs))
	for _, def := range s.defs {
		item := AttributeData{Name: def.Name, Kind: def.Kind, Values: []AttributeValueData{}}
		if def.Kind != KindFreeText {
			for _, value := range def.Values {
				item.Values = append(item.Values, AttributeValueData{
					Value:           value.Value,
					PriceAdjustment: value.PriceAdjustment,
					IsDefault:       value.IsDefault,
				})
			}
		}
		out = append(out, item)
	}
	return out
}

// Load 用持久化数据重建属性，默认标记按原样恢复
func (s *AttributeVariantSet) Load(data []AttributeData) error {
	defs := make([]AttributeDefinition, 0, len(data))
	for _, item := range data {
		kind := item.Kind
		if kind == "" {
			kind = KindSingleChoice
		}
		if !kind.Valid() {
			return fmt.Errorf("%w: %s", ErrAttributeKindInvalid, item.Kind)
		}
		def := AttributeDefinition{RowID: newRowID(), Name: item.Name, Kind: kind}
		for _, value := range item.Values {
			def.Values = append(def.Values, AttributeValue{
				RowID:           newRowID(),
				Value:           value.Value,
				PriceAdjustment: value.PriceAdjustment,
				IsDefault:       value.IsDefault,
			})
		}
		defs = append(defs, def)
	}
	s.defs = defs
	return nil
}

// Data 导出套餐明细
func (l *CompositionList) Data() []ComboItemData {
	out := make([]ComboItemData, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, ComboItemData{ProductID: item.TargetID, Quantity: item.Quantity})
	}
	return out
}

// Load 用持久化数据重建明细；允许为空，由校验阶段拦截
func (l *CompositionList) Load(data []ComboItemData) {
	l.items = make([]ComboItem, 0, len(data))
	for _, item := range data {
		l.items = append(l.items, ComboItem{RowID: newRowID(), TargetID: item.ProductID, Quantity: item.Quantity})
	}
}

// payloadWriter 组装表单载荷
type payloadWriter struct {
	values url.Values
}

func newPayloadWriter() *payloadWriter {
	return &payloadWriter{values: url.Values{}}
}

func (w *payloadWriter) str(key, value string) {
	w.values.Set(key, value)
}

func (w *payloadWriter) int(key string, value int64) {
	w.values.Set(key, strconv.FormatInt(value, 10))
}

func (w *payloadWriter) id(key string, value uint) {
	if value == 0 {
		return
	}
	w.values.Set(key, strconv.FormatUint(uint64(value), 10))
}

func (w *payloadWriter) bool(key string, value bool) {
	if value {
		w.values.Set(key, "1")
		return
	}
	w.values.Set(key, "0")
}

func (w *payloadWriter) ids(key string, ids []uint) {
	for _, id := range ids {
		w.values.Add(key+"[]", strconv.FormatUint(uint64(id), 10))
	}
}

func (w *payloadWriter) json(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	w.values.Set(key, string(raw))
	return nil
}

func (w *payloadWriter) time(key, layout string, value *time.Time) {
	if value == nil || value.IsZero() {
		return
	}
	w.values.Set(key, value.Format(layout))
}

func (w *payloadWriter) scope(scope *ScopeSelection) {
	w.bool(FieldApplyAllBranches, scope.Mode() == ScopeAll)
	if scope.Mode() == ScopeExplicit {
		w.ids(FieldBranchIDs, scope.Targets())
	}
}

func (w *payloadWriter) timeWindow(window *TimeWindowSelection) {
	w.bool(FieldIsFlexibleTime, window.Mode() == TimeFlexible)
	if window.Mode() == TimeFixed {
		w.ids(FieldTimeSlotIDs, window.SlotIDs())
	}
}

// payloadReader 解析表单载荷；记录第一个格式错误
type payloadReader struct {
	values url.Values
	err    error
}

func newPayloadReader(values url.Values) *payloadReader {
	return &payloadReader{values: values}
}

func (r *payloadReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s: %v", ErrPayloadInvalid, key, err)
	}
}

func (r *payloadReader) str(key string) string {
	return strings.TrimSpace(r.values.Get(key))
}

func (r *payloadReader) money(key string) int64 {
	raw := r.str(key)
	amount, _, err := ParseMoneyText(raw)
	if err != nil {
		r.fail(key, err)
		return 0
	}
	if strings.HasPrefix(raw, "-") {
		amount = -amount
	}
	return amount
}

func (r *payloadReader) id(key string) uint {
	raw := r.str(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		r.fail(key, err)
		return 0
	}
	return uint(n)
}

func (r *payloadReader) bool(key string, fallback bool) bool {
	raw := r.str(key)
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no":
		return false
	}
	r.fail(key, fmt.Errorf("invalid bool %q", raw))
	return fallback
}

func (r *payloadReader) decimal(key string) decimal.Decimal {
	raw := r.str(key)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		r.fail(key, err)
		return decimal.Zero
	}
	return d
}

func (r *payloadReader) ids(key string) []uint {
	raw := r.values[key+"[]"]
	if len(raw) == 0 {
		raw = r.values[key]
	}
	out := make([]uint, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		n, err := strconv.ParseUint(item, 10, 64)
		if err != nil {
			r.fail(key, err)
			continue
		}
		out = append(out, uint(n))
	}
	return out
}

func (r *payloadReader) json(key string, target interface{}) {
	raw := r.str(key)
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		r.fail(key, err)
	}
}

var timeLayouts = []string{time.RFC3339, time.DateTime, "2006-01-02T15:04", time.DateOnly}

func (r *payloadReader) time(key string) *time.Time {
	raw := r.str(key)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t
		}
	}
	r.fail(key, fmt.Errorf("invalid time %q", raw))
	return nil
}

// scope 载荷中的范围按显式选择恢复：非全部时即使列表为空也保持显式状态
func (r *payloadReader) scope() *ScopeSelection {
	scope := NewScopeSelection()
	if r.bool(FieldApplyAllBranches, true) {
		return scope
	}
	scope.SwitchExplicit()
	for _, id := range r.ids(FieldBranchIDs) {
		scope.Pick(id)
	}
	return scope
}

func (r *payloadReader) timeWindow() *TimeWindowSelection {
	window := NewTimeWindowSelection()
	if r.bool(FieldIsFlexibleTime, true) {
		return window
	}
	window.SwitchFixed()
	for _, id := range r.ids(FieldTimeSlotIDs) {
		window.Pick(id)
	}
	return window
}

var indexedItemKey = regexp.MustCompile(`^items\[(\d+)\]\[(product_id|quantity)\]$`)

// items 解析 items[i][product_id] / items[i][quantity]，按下标排序
func (r *payloadReader) items() []ComboItemData {
	byIndex := map[int]*ComboItemData{}
	for key, raw := range r.values {
		match := indexedItemKey.FindStringSubmatch(key)
		if match == nil || len(raw) == 0 {
			continue
		}
		idx, err := strconv.Atoi(match[1])
		if err != nil {
			r.fail(key, err)
			continue
		}
		item, ok := byIndex[idx]
		if !ok {
			item = &ComboItemData{}
			byIndex[idx] = item
		}
		value := strings.TrimSpace(raw[0])
		switch match[2] {
		case FieldItemProductID:
			if value == "" {
				continue
			}
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				r.fail(key, err)
				continue
			}
			item.ProductID = uint(n)
		case FieldItemQuantity:
			n, err := strconv.Atoi(value)
			if err != nil {
				r.fail(key, err)
				continue
			}
			item.Quantity = n
		}
	}
	indexes := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	out := make([]ComboItemData, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, *byIndex[idx])
	}
	return out
}
