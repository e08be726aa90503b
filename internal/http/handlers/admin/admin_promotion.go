package admin

import (
	"strconv"

	"github.com/catalogkit/internal/configurator"
	handlershared "github.com/catalogkit/internal/http/handlers/shared"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/i18n"
	"github.com/catalogkit/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPromotions 获取活动列表
func (h *Handler) ListPromotions(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.PromotionListFilter{
		Page:            page,
		PageSize:        pageSize,
		Search:          c.Query("search"),
		ApplicationType: c.Query("application_type"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.IsActive = &active
	}

	promotions, total, err := h.PromotionConfigService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, promotions, response.BuildPagination(page, pageSize, total))
}

// GetPromotion 获取活动编辑快照
func (h *Handler) GetPromotion(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	snap, err := h.PromotionConfigService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.internal")
		return
	}
	response.Success(c, snap)
}

// CreatePromotion 提交新活动配置
func (h *Handler) CreatePromotion(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	form, ok := decodePromotionForm(c)
	if !ok {
		return
	}
	result, err := h.PromotionConfigService.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("promotion_created", "admin_id", adminID, "promotion_id", result.ID)
	handlershared.RespondSaved(c, result, result.Warnings)
}

// UpdatePromotion 提交活动配置修改
func (h *Handler) UpdatePromotion(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, ok := decodePromotionForm(c)
	if !ok {
		return
	}
	result, err := h.PromotionConfigService.Update(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("promotion_updated", "admin_id", adminID, "promotion_id", result.ID)
	handlershared.RespondSaved(c, result, result.Warnings)
}

// DeletePromotion 删除活动
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PromotionConfigService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "error.delete_failed")
		return
	}
	respondDeleted(c, id)
}

func decodePromotionForm(c *gin.Context) (*configurator.PromotionForm, bool) {
	values, err := handlershared.FormValues(c)
	if err != nil {
		respondPayloadInvalid(c, err)
		return nil, false
	}
	form, err := configurator.DecodePromotionForm(values)
	if err != nil {
		respondPayloadInvalid(c, err)
		return nil, false
	}
	return form, true
}

func respondDeleted(c *gin.Context, id uint) {
	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "success.deleted"), gin.H{"id": id, "deleted": true}, nil)
}
