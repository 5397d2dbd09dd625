package handlers

import (
	"context"
	"net/http"

	"pointmall/internal/models"
	"pointmall/internal/services"

	"github.com/gin-gonic/gin"
)

type RechargeService interface {
	ListPackages(ctx context.Context) (*services.Packages, error)
	CreateOrder(ctx context.Context, userID uint, orderType models.RewardType, productID uint) (*models.RechargeOrder, error)
	HandleCallback(ctx context.Context, n services.Notify) error
	ListOrders(ctx context.Context, userID uint, page, pageSize int) ([]models.RechargeOrder, int64, error)
}

type RechargeHandler struct {
	recharge RechargeService
}

func NewRechargeHandler(recharge RechargeService) *RechargeHandler {
	return &RechargeHandler{recharge: recharge}
}

type createOrderRequest struct {
	Type      models.RewardType `json:"type" form:"type" binding:"required,oneof=vip coin"`
	ProductID uint              `json:"product_id" form:"product_id" binding:"required"`
}

// Packages 充值商品 GET /recharge/packages
func (h *RechargeHandler) Packages(c *gin.Context) {
	pkgs, err := h.recharge.ListPackages(c.Request.Context())
	if err != nil {
		FailErr(c, err, "获取充值商品")
		return
	}
	Success(c, "ok", pkgs)
}

// CreateOrder 下单 POST /recharge/order
func (h *RechargeHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请选择充值商品")
		return
	}

	order, err := h.recharge.CreateOrder(c.Request.Context(), currentUserID(c), req.Type, req.ProductID)
	if err != nil {
		FailErr(c, err, "下单")
		return
	}
	Success(c, "下单成功", order)
}

// Orders 我的订单 GET /recharge/orders
func (h *RechargeHandler) Orders(c *gin.Context) {
	page, size := pageQuery(c)
	orders, total, err := h.recharge.ListOrders(c.Request.Context(), currentUserID(c), page, size)
	if err != nil {
		FailErr(c, err, "获取订单")
		return
	}
	Success(c, "ok", PageData{List: orders, Total: total})
}

// Notify 支付回调 POST /recharge/notify，重复回调同样返回成功
func (h *RechargeHandler) Notify(c *gin.Context) {
	var n services.Notify
	if err := c.ShouldBindJSON(&n); err != nil {
		Fail(c, http.StatusBadRequest, "回调参数错误")
		return
	}

	if err := h.recharge.HandleCallback(c.Request.Context(), n); err != nil {
		FailErr(c, err, "处理回调")
		return
	}
	Success(c, "success", nil)
}
