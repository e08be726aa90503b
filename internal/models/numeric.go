package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// numericScale 换算系数与折扣值保留的小数位
const numericScale = 6

// Numeric 定点小数（换算系数、折扣值），JSON 输出为字符串
type Numeric struct {
	decimal.Decimal
}

// NewNumeric 从 decimal 创建
func NewNumeric(d decimal.Decimal) Numeric {
	return Numeric{Decimal: d.Round(numericScale)}
}

// MarshalJSON 输出去掉多余 0 的字符串
func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Decimal.Round(numericScale).String())
}

// UnmarshalJSON 解析字符串或数字
func (n *Numeric) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Decimal = d.Round(numericScale)
	return nil
}

// Value 用于数据库写入
func (n Numeric) Value() (driver.Value, error) {
	return n.Decimal.Round(numericScale).Value()
}

// Scan 用于数据库读取
func (n *Numeric) Scan(value interface{}) error {
	if err := n.Decimal.Scan(value); err != nil {
		return err
	}
	n.Decimal = n.Decimal.Round(numericScale)
	return nil
}
