package admin

import (
	"strconv"

	"github.com/catalogkit/internal/configurator"
	handlershared "github.com/catalogkit/internal/http/handlers/shared"
	"github.com/catalogkit/internal/http/response"
	"github.com/catalogkit/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListProducts 获取商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	supplierID, _ := strconv.ParseUint(c.Query("supplier_id"), 10, 64)

	products, total, err := h.ProductConfigService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		SupplierID:   uint(supplierID),
		Search:       c.Query("search"),
		OnlyActive:   c.Query("active") == "true",
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品编辑快照
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	snap, err := h.ProductConfigService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.internal")
		return
	}
	response.Success(c, snap)
}

// CreateProduct 提交新商品配置
func (h *Handler) CreateProduct(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	form, ok := decodeProductForm(c)
	if !ok {
		return
	}
	result, err := h.ProductConfigService.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("product_created", "admin_id", adminID, "product_id", result.ID)
	handlershared.RespondSaved(c, result, result.Warnings)
}

// UpdateProduct 提交商品配置修改
func (h *Handler) UpdateProduct(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, ok := decodeProductForm(c)
	if !ok {
		return
	}
	result, err := h.ProductConfigService.Update(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("product_updated", "admin_id", adminID, "product_id", result.ID)
	handlershared.RespondSaved(c, result, result.Warnings)
}

// DeleteProduct 删除商品（被套餐引用时拒绝）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductConfigService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "error.delete_failed")
		return
	}
	respondDeleted(c, id)
}

func decodeProductForm(c *gin.Context) (*configurator.ProductForm, bool) {
	values, err := handlershared.FormValues(c)
	if err != nil {
		respondPayloadInvalid(c, err)
		return nil, false
	}
	form, err := configurator.DecodeProductForm(values)
	if err != nil {
		respondPayloadInvalid(c, err)
		return nil, false
	}
	return form, true
}
