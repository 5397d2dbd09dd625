package handlers

import (
	"context"
	"net/http"
	"strconv"

	"pointmall/internal/models"
	"pointmall/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogService interface {
	CreateItem(ctx context.Context, in services.ItemInput) (*models.ExchangeItem, error)
	UpdateItem(ctx context.Context, itemID uint, in services.ItemInput) (*models.ExchangeItem, error)
	DisableItem(ctx context.Context, itemID uint) error
}

type AdminHandler struct {
	catalog CatalogService
}

func NewAdminHandler(catalog CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

func itemIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// CreateItem 上架兑换商品
func (h *AdminHandler) CreateItem(c *gin.Context) {
	var in services.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, http.StatusBadRequest, "商品参数错误: "+err.Error())
		return
	}

	item, err := h.catalog.CreateItem(c.Request.Context(), in)
	if err != nil {
		FailErr(c, err, "创建商品")
		return
	}
	Success(c, "创建成功", item)
}

// UpdateItem 修改兑换商品
func (h *AdminHandler) UpdateItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		Fail(c, http.StatusBadRequest, "商品 ID 错误")
		return
	}
	var in services.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, http.StatusBadRequest, "商品参数错误: "+err.Error())
		return
	}

	item, err := h.catalog.UpdateItem(c.Request.Context(), id, in)
	if err != nil {
		FailErr(c, err, "修改商品")
		return
	}
	Success(c, "修改成功", item)
}

// DeleteItem 下架，不做物理删除
func (h *AdminHandler) DeleteItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		Fail(c, http.StatusBadRequest, "商品 ID 错误")
		return
	}

	if err := h.catalog.DisableItem(c.Request.Context(), id); err != nil {
		FailErr(c, err, "下架商品")
		return
	}
	Success(c, "已下架", nil)
}
