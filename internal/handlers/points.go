package handlers

import (
	"context"
	"net/http"

	"pointmall/internal/models"
	"pointmall/internal/services"

	"github.com/gin-gonic/gin"
)

type PointsService interface {
	ListItems(ctx context.Context) ([]services.ItemView, error)
	Redeem(ctx context.Context, userID, itemID uint) (*services.RedeemResult, error)
	ListRedemptions(ctx context.Context, userID uint, page, pageSize int) ([]models.ExchangeLog, int64, error)
	ListPointLogs(ctx context.Context, userID uint, page, pageSize int) ([]models.PointLog, int64, error)
	CheckIn(ctx context.Context, userID uint) (*services.CheckInResult, error)
}

type PointsHandler struct {
	points PointsService
}

func NewPointsHandler(points PointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

type exchangeRequest struct {
	ID uint `json:"id" form:"id" binding:"required"`
}

// List 可兑换商品 GET /points/list
func (h *PointsHandler) List(c *gin.Context) {
	items, err := h.points.ListItems(c.Request.Context())
	if err != nil {
		FailErr(c, err, "获取商品")
		return
	}
	Success(c, "ok", items)
}

// Exchange 积分兑换 POST /points/exchange
func (h *PointsHandler) Exchange(c *gin.Context) {
	var req exchangeRequest
	if err := c.ShouldBind(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请选择兑换商品")
		return
	}

	result, err := h.points.Redeem(c.Request.Context(), currentUserID(c), req.ID)
	if err != nil {
		FailErr(c, err, "兑换")
		return
	}
	Success(c, "兑换成功", result)
}

// Records 兑换记录 GET /points/records
func (h *PointsHandler) Records(c *gin.Context) {
	page, size := pageQuery(c)
	logs, total, err := h.points.ListRedemptions(c.Request.Context(), currentUserID(c), page, size)
	if err != nil {
		FailErr(c, err, "获取兑换记录")
		return
	}
	Success(c, "ok", PageData{List: logs, Total: total})
}

// Logs 积分明细 GET /points/logs
func (h *PointsHandler) Logs(c *gin.Context) {
	page, size := pageQuery(c)
	logs, total, err := h.points.ListPointLogs(c.Request.Context(), currentUserID(c), page, size)
	if err != nil {
		FailErr(c, err, "获取积分记录")
		return
	}
	Success(c, "ok", PageData{List: logs, Total: total})
}

// CheckIn 每日签到 POST /points/checkin
func (h *PointsHandler) CheckIn(c *gin.Context) {
	result, err := h.points.CheckIn(c.Request.Context(), currentUserID(c))
	if err != nil {
		FailErr(c, err, "签到")
		return
	}
	Success(c, "签到成功", result)
}
