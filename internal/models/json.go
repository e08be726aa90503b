package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// UintArray ID 集合（JSON 数组存储），写入时去重并升序
type UintArray []uint

// Value 实现 driver.Valuer 接口
func (a UintArray) Value() (driver.Value, error) {
	raw, err := json.Marshal(a.Normalize())
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (a *UintArray) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil || len(raw) == 0 {
		*a = UintArray{}
		return err
	}
	return json.Unmarshal(raw, a)
}

// Normalize 去掉 0 与重复项并排序
func (a UintArray) Normalize() UintArray {
	seen := make(map[uint]struct{}, len(a))
	out := make(UintArray, 0, len(a))
	for _, id := range a {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// JSONList 以 JSON 数组存储的结构化列表
type JSONList[T any] []T

// Value 实现 driver.Valuer 接口
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (l *JSONList[T]) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil || len(raw) == 0 {
		*l = JSONList[T]{}
		return err
	}
	return json.Unmarshal(raw, l)
}

func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", value)
	}
}
