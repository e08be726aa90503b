package configurator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type stage int

// 子校验的固定执行顺序
const (
	stageBase stage = iota
	stageDates
	stageComposition
	stageAttributes
	stageScope
	stageTimeWindow
)

type step struct {
	stage stage
	run   func(r *Report)
}

// ConfigurationValidator 组合各子校验，按固定顺序执行并汇总到同一份结果
type ConfigurationValidator struct {
	steps []step
}

// NewConfigurationValidator 创建校验器
func NewConfigurationValidator() *ConfigurationValidator {
	return &ConfigurationValidator{}
}

// Base 基础字段校验（struct tag）
func (v *ConfigurationValidator) Base(target interface{}) *ConfigurationValidator {
	return v.add(stageBase, func(r *Report) { ValidateStruct(r, target) })
}

// Dates 日期先后校验
func (v *ConfigurationValidator) Dates(check func(r *Report)) *ConfigurationValidator {
	return v.add(stageDates, check)
}

// Composition 套餐明细校验
func (v *ConfigurationValidator) Composition(list *CompositionList, stock StockLookup) *ConfigurationValidator {
	if list == nil {
		return v
	}
	return v.add(stageComposition, func(r *Report) { list.Validate(r, stock) })
}

// Units 换算单位校验
func (v *ConfigurationValidator) Units(set *UnitConversionSet) *ConfigurationValidator {
	if set == nil {
		return v
	}
	return v.add(stageAttributes, set.Validate)
}

// Attributes 属性校验
func (v *ConfigurationValidator) Attributes(set *AttributeVariantSet) *ConfigurationValidator {
	if set == nil {
		return v
	}
	return v.add(stageAttributes, set.Validate)
}

// Scope 适用范围校验
func (v *ConfigurationValidator) Scope(scope *ScopeSelection, field, msgKey string) *ConfigurationValidator {
	if scope == nil {
		return v
	}
	return v.add(stageScope, func(r *Report) { scope.Validate(r, field, msgKey) })
}

// Target 活动目标校验
func (v *ConfigurationValidator) Target(target PromotionTarget) *ConfigurationValidator {
	if target == nil {
		return v
	}
	return v.add(stageScope, target.Validate)
}

// TimeWindow 售卖时段校验
func (v *ConfigurationValidator) TimeWindow(window *TimeWindowSelection, slots ActiveSlots) *ConfigurationValidator {
	if window == nil {
		return v
	}
	return v.add(stageTimeWindow, func(r *Report) { window.Validate(r, slots) })
}

func (v *ConfigurationValidator) add(s stage, run func(r *Report)) *ConfigurationValidator {
	v.steps = append(v.steps, step{stage: s, run: run})
	return v
}

// Run 执行全部子校验；结果中存在错误即阻止提交
func (v *ConfigurationValidator) Run() *Report {
	steps := make([]step, len(v.steps))
	copy(steps, v.steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].stage < steps[j].stage })
	r := NewReport()
	for _, s := range steps {
		s.run(r)
	}
	return r
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func getStructValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		structValidator = v
	})
	return structValidator
}

// ValidateStruct 执行 struct tag 校验，字段错误以 json 名记录
func ValidateStruct(r *Report, target interface{}) {
	err := getStructValidator().Struct(target)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		r.AddField("_", MsgInvalid)
		return
	}
	for _, fe := range fieldErrs {
		r.AddField(fe.Field(), messageForTag(fe.Tag()))
	}
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return MsgRequired
	case "gte", "min":
		return MsgNonNegative
	case "gt":
		return MsgPositive
	case "max":
		return MsgTooLong
	case "oneof":
		return MsgInvalidOption
	default:
		return MsgInvalid
	}
}
