package configurator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// 派生指标保留的小数位
const metricScale = 3

// UnitField 换算单位可编辑字段
type UnitField string

const (
	UnitFieldName       UnitField = "unit_name"
	UnitFieldCode       UnitField = "unit_code"
	UnitFieldFactor     UnitField = "conversion_factor"
	UnitFieldStorePrice UnitField = "store_price"
	UnitFieldAppPrice   UnitField = "app_price"
	UnitFieldSalesUnit  UnitField = "is_sales_unit"
)

// UnitConversion 商品的换算单位（1 基础单位 = Factor 个该单位）
type UnitConversion struct {
	RowID       RowID
	UnitName    string
	UnitCode    string
	Factor      decimal.Decimal
	StorePrice  *int64
	AppPrice    *int64
	IsSalesUnit bool
}

// BaseFigures 基础单位下的成本与库存
type BaseFigures struct {
	CostPrice     decimal.Decimal
	StockQuantity decimal.Decimal
}

// Metrics 某个单位下的派生成本与库存
type Metrics struct {
	Cost  decimal.Decimal
	Stock decimal.Decimal
}

// UnitConversionSet 换算单位集合，第 0 行为基础单位行
type UnitConversionSet struct {
	rows []UnitConversion
}

// NewUnitConversionSet 创建空集合
func NewUnitConversionSet() *UnitConversionSet {
	return &UnitConversionSet{}
}

// Add 追加一行默认换算单位
func (s *UnitConversionSet) Add() RowID {
	row := UnitConversion{
		RowID:       newRowID(),
		Factor:      decimal.NewFromInt(1),
		IsSalesUnit: true,
	}
	s.rows = append(s.rows, row)
	return row.RowID
}

// Remove 按下标删除，不限制最少行数
func (s *UnitConversionSet) Remove(i int) (RowID, error) {
	if i < 0 || i >= len(s.rows) {
		return "", ErrIndexOutOfRange
	}
	id := s.rows[i].RowID
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return id, nil
}

// Update 修改单个字段；金额字段接受带分组符号的文本
func (s *UnitConversionSet) Update(i int, field UnitField, value string) error {
	if i < 0 || i >= len(s.rows) {
		return ErrIndexOutOfRange
	}
	row := &s.rows[i]
	switch field {
	case UnitFieldName:
		row.UnitName = value
	case UnitFieldCode:
		row.UnitCode = value
	case UnitFieldFactor:
		// 无法解析的系数记为 0，由校验阶段拦截
		factor, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			factor = decimal.Zero
		}
		row.Factor = factor
	case UnitFieldStorePrice:
		price, err := parseOptionalMoney(value)
		if err != nil {
			return err
		}
		row.StorePrice = price
	case UnitFieldAppPrice:
		price, err := parseOptionalMoney(value)
		if err != nil {
			return err
		}
		row.AppPrice = price
	case UnitFieldSalesUnit:
		flag, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrFieldValueInvalid, field)
		}
		row.IsSalesUnit = flag
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Len 行数
func (s *UnitConversionSet) Len() int {
	return len(s.rows)
}

// Rows 返回行快照
func (s *UnitConversionSet) Rows() []UnitConversion {
	out := make([]UnitConversion, len(s.rows))
	copy(out, s.rows)
	return out
}

// DeriveMetrics 计算第 i 行的派生成本与库存
func (s *UnitConversionSet) DeriveMetrics(base BaseFigures, i int) (Metrics, error) {
	if i < 0 || i >= len(s.rows) {
		return Metrics{}, ErrIndexOutOfRange
	}
	return DeriveMetrics(base, i, s.rows[i].Factor), nil
}

// DeriveMetrics 纯函数：基础行原样返回，其余行成本乘系数、库存除系数，四舍五入到 3 位
func DeriveMetrics(base BaseFigures, index int, factor decimal.Decimal) Metrics {
	if index == 0 {
		return Metrics{Cost: base.CostPrice, Stock: base.StockQuantity}
	}
	cost := base.CostPrice.Mul(factor).Round(metricScale)
	// 系数非正时不阻断计算，库存按 0 展示
	if !factor.IsPositive() {
		return Metrics{Cost: cost, Stock: decimal.Zero}
	}
	return Metrics{Cost: cost, Stock: base.StockQuantity.Div(factor).Round(metricScale)}
}

// Validate 单位名称必填，换算系数必须为正
func (s *UnitConversionSet) Validate(r *Report) {
	for _, row := range s.rows {
		if strings.TrimSpace(row.UnitName) == "" {
			r.AddRow(CollectionUnits, row.RowID, string(UnitFieldName), MsgUnitNameRequired)
		}
		if !row.Factor.IsPositive() {
			r.AddRow(CollectionUnits, row.RowID, string(UnitFieldFactor), MsgUnitFactorPositive)
		}
	}
}

func (s *UnitConversionSet) indexOf(id RowID) int {
	for i := range s.rows {
		if s.rows[i].RowID == id {
			return i
		}
	}
	return -1
}

// NormalizeDigits 去掉所有非数字字符（"1.200.000 đ" -> "1200000"）
func NormalizeDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseMoneyText 解析带分组符号的金额文本，空文本返回 ok=false
func ParseMoneyText(text string) (int64, bool, error) {
	digits := NormalizeDigits(text)
	if digits == "" {
		return 0, false, nil
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrFieldValueInvalid, text)
	}
	return amount, true, nil
}

func parseOptionalMoney(text string) (*int64, error) {
	amount, ok, err := ParseMoneyText(text)
	if err != nil || !ok {
		return nil, err
	}
	return &amount, nil
}
