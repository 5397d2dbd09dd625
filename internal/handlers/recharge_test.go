package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"pointmall/internal/middleware"
	"pointmall/internal/models"
	"pointmall/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeRecharge struct {
	callbackErr error
	notified    []services.Notify
	orderType   models.RewardType
	productID   uint
}

func (f *fakeRecharge) ListPackages(ctx context.Context) (*services.Packages, error) {
	return &services.Packages{
		VipCards:     []models.VipCard{{ID: 1, Name: "月卡", Duration: 1, DurationUnit: models.UnitMonth, Price: 1800}},
		CoinPackages: []models.CoinPackage{{ID: 1, Name: "100金币", Coin: 100, Price: 100}},
	}, nil
}

func (f *fakeRecharge) CreateOrder(ctx context.Context, userID uint, orderType models.RewardType, productID uint) (*models.RechargeOrder, error) {
	f.orderType, f.productID = orderType, productID
	return &models.RechargeOrder{ID: 1, OrderNo: "R20260315100000abcdef12", UserID: userID, Type: orderType, ProductID: productID, Amount: 1800}, nil
}

func (f *fakeRecharge) HandleCallback(ctx context.Context, n services.Notify) error {
	f.notified = append(f.notified, n)
	return f.callbackErr
}

func (f *fakeRecharge) ListOrders(ctx context.Context, userID uint, page, pageSize int) ([]models.RechargeOrder, int64, error) {
	return nil, 0, nil
}

func rechargeEngine(recharge *fakeRecharge, user *models.User) *gin.Engine {
	r := newEngine(user)
	h := NewRechargeHandler(recharge)
	r.GET("/recharge/packages", h.Packages)
	r.POST("/recharge/notify", h.Notify)
	r.POST("/recharge/order", middleware.AuthRequired(), h.CreateOrder)
	return r
}

const notifyBody = `{"order_no":"R1","trade_no":"T1","amount":1800,"status":"SUCCESS","sign":"abc"}`

func TestNotifyAcknowledges(t *testing.T) {
	recharge := &fakeRecharge{}
	r := rechargeEngine(recharge, nil)

	w, env := do(t, r, http.MethodPost, "/recharge/notify", notifyBody)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, CodeOK, env.Code)
	require.Len(t, recharge.notified, 1)
	require.Equal(t, int64(1800), recharge.notified[0].Amount)
	require.Equal(t, "T1", recharge.notified[0].TradeNo)
}

func TestNotifyRejections(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"bad signature", notifyBody, fmt.Errorf("%w: bad signature", services.ErrUnauthorized), http.StatusUnauthorized},
		{"unknown order", notifyBody, services.ErrOrderNotFound, http.StatusBadRequest},
		{"amount mismatch", notifyBody, fmt.Errorf("%w: 金额不一致", services.ErrValidation), http.StatusBadRequest},
		{"missing sign", `{"order_no":"R1","trade_no":"T1","amount":1800,"status":"SUCCESS"}`, nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rechargeEngine(&fakeRecharge{callbackErr: tc.err}, nil)

			w, env := do(t, r, http.MethodPost, "/recharge/notify", tc.body)
			require.Equal(t, tc.wantCode, w.Code)
			require.Equal(t, tc.wantCode, env.Code)
		})
	}
}

func TestCreateOrderBinding(t *testing.T) {
	recharge := &fakeRecharge{}
	r := rechargeEngine(recharge, reader)

	w, env := do(t, r, http.MethodPost, "/recharge/order", `{"type":"gold","product_id":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "请选择充值商品", env.Msg)

	w, env = do(t, r, http.MethodPost, "/recharge/order", `{"type":"vip","product_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.RewardVip, recharge.orderType)
	require.Equal(t, uint(1), recharge.productID)

	var order models.RechargeOrder
	require.NoError(t, json.Unmarshal(env.Data, &order))
	require.Equal(t, uint(7), order.UserID)
}

func TestPackages(t *testing.T) {
	r := rechargeEngine(&fakeRecharge{}, nil)

	w, env := do(t, r, http.MethodGet, "/recharge/packages", "")
	require.Equal(t, http.StatusOK, w.Code)

	var pkgs services.Packages
	require.NoError(t, json.Unmarshal(env.Data, &pkgs))
	require.Len(t, pkgs.VipCards, 1)
	require.Len(t, pkgs.CoinPackages, 1)
}
