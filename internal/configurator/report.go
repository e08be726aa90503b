package configurator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// RowID 动态行的稳定标识，不随下标变化
type RowID string

func newRowID() RowID {
	return RowID(uuid.NewString())
}

// Locator 将行标识解析为展示路径（如 items[1]、attributes[0].values[2]）
type Locator func(collection string, row RowID) string

type issueKey struct {
	Field string
	Row   RowID
	Sub   string
}

// Report 校验结果：errors 阻止提交，warnings 仅提示
type Report struct {
	errors   map[issueKey]string
	warnings map[issueKey]string
	order    []issueKey
}

// NewReport 创建空的校验结果
func NewReport() *Report {
	return &Report{
		errors:   make(map[issueKey]string),
		warnings: make(map[issueKey]string),
	}
}

// AddField 记录字段级错误，同一字段保留第一条
func (r *Report) AddField(field, key string) {
	r.add(r.errors, issueKey{Field: field}, key)
}

// AddRow 记录行级错误
func (r *Report) AddRow(collection string, row RowID, field, key string) {
	r.add(r.errors, issueKey{Field: collection, Row: row, Sub: field}, key)
}

// WarnField 记录字段级提示
func (r *Report) WarnField(field, key string) {
	r.add(r.warnings, issueKey{Field: field}, key)
}

// WarnRow 记录行级提示
func (r *Report) WarnRow(collection string, row RowID, field, key string) {
	r.add(r.warnings, issueKey{Field: collection, Row: row, Sub: field}, key)
}

func (r *Report) add(target map[issueKey]string, k issueKey, key string) {
	if _, exists := target[k]; exists {
		return
	}
	target[k] = key
	r.order = append(r.order, k)
}

// Failed 是否存在阻止提交的错误
func (r *Report) Failed() bool {
	return r != nil && len(r.errors) > 0
}

// ErrorCount 错误数量
func (r *Report) ErrorCount() int {
	if r == nil {
		return 0
	}
	return len(r.errors)
}

// FieldError 读取字段级错误
func (r *Report) FieldError(field string) (string, bool) {
	if r == nil {
		return "", false
	}
	key, ok := r.errors[issueKey{Field: field}]
	return key, ok
}

// RowError 读取行级错误
func (r *Report) RowError(collection string, row RowID, field string) (string, bool) {
	if r == nil {
		return "", false
	}
	key, ok := r.errors[issueKey{Field: collection, Row: row, Sub: field}]
	return key, ok
}

// RowWarning 读取行级提示
func (r *Report) RowWarning(collection string, row RowID, field string) (string, bool) {
	if r == nil {
		return "", false
	}
	key, ok := r.warnings[issueKey{Field: collection, Row: row, Sub: field}]
	return key, ok
}

// FieldWarning 读取字段级提示
func (r *Report) FieldWarning(field string) (string, bool) {
	if r == nil {
		return "", false
	}
	key, ok := r.warnings[issueKey{Field: field}]
	return key, ok
}

// RowErrorCount 统计某个集合下的行级错误
func (r *Report) RowErrorCount(collection string) int {
	if r == nil {
		return 0
	}
	count := 0
	for k := range r.errors {
		if k.Field == collection && k.Row != "" {
			count++
		}
	}
	return count
}

// DropRow 行被删除时移除其错误与提示，其它行不受影响
func (r *Report) DropRow(collection string, row RowID) {
	if r == nil || row == "" {
		return
	}
	for k := range r.errors {
		if k.Field == collection && k.Row == row {
			delete(r.errors, k)
		}
	}
	for k := range r.warnings {
		if k.Field == collection && k.Row == row {
			delete(r.warnings, k)
		}
	}
}

// Prune 移除定位器已找不到的行的错误与提示
func (r *Report) Prune(locate Locator) {
	if r == nil || locate == nil {
		return
	}
	for _, k := range r.order {
		if k.Row != "" && locate(k.Field, k.Row) == "" {
			r.DropRow(k.Field, k.Row)
		}
	}
}

// Errors 按展示路径输出错误
func (r *Report) Errors(locate Locator) map[string]string {
	if r == nil {
		return map[string]string{}
	}
	return r.render(r.errors, locate)
}

// Warnings 按展示路径输出提示
func (r *Report) Warnings(locate Locator) map[string]string {
	if r == nil {
		return map[string]string{}
	}
	return r.render(r.warnings, locate)
}

// ErrorPaths 按记录顺序返回错误路径，便于日志输出
func (r *Report) ErrorPaths(locate Locator) []string {
	rendered := r.Errors(locate)
	paths := make([]string, 0, len(rendered))
	for path := range rendered {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (r *Report) render(source map[issueKey]string, locate Locator) map[string]string {
	out := make(map[string]string, len(source))
	for _, k := range r.order {
		key, ok := source[k]
		if !ok {
			continue
		}
		path, ok := renderPath(k, locate)
		if !ok {
			continue
		}
		out[path] = key
	}
	return out
}

// renderPath 定位器找不到的行视为已删除，不再输出
func renderPath(k issueKey, locate Locator) (string, bool) {
	if k.Row == "" {
		return k.Field, true
	}
	var prefix string
	if locate != nil {
		prefix = locate(k.Field, k.Row)
		if prefix == "" {
			return "", false
		}
	} else {
		prefix = fmt.Sprintf("%s[%s]", k.Field, k.Row)
	}
	if k.Sub == "" {
		return prefix, true
	}
	return prefix + "." + k.Sub, true
}
