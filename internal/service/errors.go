package service

import (
	"errors"
	"fmt"

	"github.com/catalogkit/internal/configurator"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrComboNotFound        = errors.New("combo not found")
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrProductInUse         = errors.New("product is referenced by combos")
	ErrReferenceTypeInvalid = errors.New("reference type invalid")
	ErrSaveFailed           = errors.New("save failed")
	ErrDeleteFailed         = errors.New("delete failed")
)

// ValidationError 服务端复核未通过，携带完整校验报告
type ValidationError struct {
	Report *configurator.Report
	Locate configurator.Locator
}

func (e *ValidationError) Error() string {
	if e == nil || e.Report == nil {
		return "configuration invalid"
	}
	return fmt.Sprintf("configuration invalid: %d errors", e.Report.ErrorCount())
}

// Errors 展示路径 -> 消息键
func (e *ValidationError) Errors() map[string]string {
	if e == nil || e.Report == nil {
		return nil
	}
	return e.Report.Errors(e.Locate)
}

// Warnings 展示路径 -> 消息键
func (e *ValidationError) Warnings() map[string]string {
	if e == nil || e.Report == nil {
		return nil
	}
	return e.Report.Warnings(e.Locate)
}

// SaveResult 保存结果：记录 ID 与非阻断提示
type SaveResult struct {
	ID       uint              `json:"id"`
	Warnings map[string]string `json:"-"`
}
