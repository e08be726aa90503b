package admin

import (
	"github.com/catalogkit/internal/configurator"
	handlershared "github.com/catalogkit/internal/http/handlers/shared"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCombos 获取套餐列表
func (h *Handler) ListCombos(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	combos, total, err := h.ComboService.List(repository.ComboListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: c.Query("active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, combos, response.BuildPagination(page, pageSize, total))
}

// GetCombo 获取套餐编辑快照
func (h *Handler) GetCombo(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	snap, err := h.ComboService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.internal")
		return
	}
	response.Success(c, snap)
}

// CreateCombo 提交新套餐配置
func (h *Handler) CreateCombo(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	form, ok := decodeComboForm(c)
	if !ok {
		return
	}
	result, err := h.ComboService.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("combo_created", "admin_id", adminID, "combo_id", result.ID)
	handlershared.RespondSaved(c, result, result.Warnings)
}

// UpdateCombo 提交套餐配置修改，明细整体替换
func (h *Handler) UpdateCombo(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, ok := decodeComboForm(c)
	if !ok {
		return
	}
	result, err := h.ComboService.Update(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("combo_updated", "admin_id", adminID, "combo_id", result.ID)
	handlershared.RespondSaved(c, result, result.Warnings)
}

// DeleteCombo 删除套餐
func (h *Handler) DeleteCombo(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ComboService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "error.delete_failed")
		return
	}
	respondDeleted(c, id)
}

func decodeComboForm(c *gin.Context) (*configurator.ComboForm, bool) {
	values, err := handlershared.FormValues(c)
	if err != nil {
		respondPayloadInvalid(c, err)
		return nil, false
	}
	form, err := configurator.DecodeComboForm(values)
	if err != nil {
		respondPayloadInvalid(c, err)
		return nil, false
	}
	return form, true
}
