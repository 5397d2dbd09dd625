package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"pointmall/internal/metrics"
	"pointmall/internal/models"
	"pointmall/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const NotifyStatusSuccess = "SUCCESS"

// Notify 支付回调参数
type Notify struct {
	OrderNo string `json:"order_no" binding:"required"`
	TradeNo string `json:"trade_no" binding:"required"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status" binding:"required"`
	Sign    string `json:"sign" binding:"required"`
}

func (n Notify) payload() string {
	return fmt.Sprintf("order_no=%s&trade_no=%s&amount=%d&status=%s", n.OrderNo, n.TradeNo, n.Amount, n.Status)
}

type Packages struct {
	VipCards     []models.VipCard     `json:"vip_cards"`
	CoinPackages []models.CoinPackage `json:"coin_packages"`
}

type RechargeService struct {
	store  RechargeStore
	secret []byte
	logger *zap.Logger
	now    func() time.Time
}

func NewRechargeService(store RechargeStore, notifySecret string, logger *zap.Logger) *RechargeService {
	return &RechargeService{
		store:  store,
		secret: []byte(notifySecret),
		logger: logger,
		now:    time.Now,
	}
}

func (s *RechargeService) ListPackages(ctx context.Context) (*Packages, error) {
	cards, err := s.store.ListVipCards(ctx)
	if err != nil {
		return nil, err
	}
	pkgs, err := s.store.ListCoinPackages(ctx)
	if err != nil {
		return nil, err
	}
	return &Packages{VipCards: cards, CoinPackages: pkgs}, nil
}

func newOrderNo(now time.Time) string {
	return "R" + now.Format("20060102150405") + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateOrder 创建待支付订单，金额取下单时的商品价格
func (s *RechargeService) CreateOrder(ctx context.Context, userID uint, orderType models.RewardType, productID uint) (*models.RechargeOrder, error) {
	if productID == 0 {
		return nil, validationError("请选择充值商品")
	}

	var amount int64
	switch orderType {
	case models.RewardVip:
		card, err := s.store.GetVipCard(ctx, productID)
		if err != nil {
			return nil, err
		}
		if card == nil || card.Status != models.CatalogActive {
			return nil, ErrItemNotFound
		}
		amount = card.Price
	case models.RewardCoin:
		pkg, err := s.store.GetCoinPackage(ctx, productID)
		if err != nil {
			return nil, err
		}
		if pkg == nil || pkg.Status != models.CatalogActive {
			return nil, ErrItemNotFound
		}
		amount = pkg.Price
	default:
		return nil, validationError("未知的订单类型")
	}
	if amount <= 0 {
		return nil, ErrRewardCatalogInconsistent
	}

	order := &models.RechargeOrder{
		OrderNo:   newOrderNo(s.now()),
		UserID:    userID,
		Type:      orderType,
		ProductID: productID,
		Amount:    amount,
		Status:    models.OrderStatusPending,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		s.logger.Error("create recharge order failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	metrics.RechargeOrderTotal.WithLabelValues(string(orderType)).Inc()
	s.logger.Info("recharge order created",
		zap.String("order_no", order.OrderNo),
		zap.Uint("user_id", userID),
		zap.Int64("amount", amount))
	return order, nil
}

// Sign 回调签名：hex(HMAC-SHA256(secret, payload))
func (s *RechargeService) Sign(n Notify) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(n.payload()))
	return hex.EncodeToString(mac.Sum(nil))
}

// HandleCallback 处理支付回调，已支付的订单直接返回成功
func (s *RechargeService) HandleCallback(ctx context.Context, n Notify) error {
	if !hmac.Equal([]byte(s.Sign(n)), []byte(strings.ToLower(n.Sign))) {
		metrics.RechargeCallbackTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn("recharge callback signature mismatch", zap.String("order_no", n.OrderNo))
		return fmt.Errorf("%w: bad signature", ErrUnauthorized)
	}
	if n.Status != NotifyStatusSuccess {
		metrics.RechargeCallbackTotal.WithLabelValues("ignored").Inc()
		s.logger.Info("recharge callback ignored", zap.String("order_no", n.OrderNo), zap.String("status", n.Status))
		return nil
	}

	duplicate := false
	err := s.store.Transaction(ctx, func(tx Tx) error {
		order, err := tx.LockOrder(n.OrderNo)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status == models.OrderStatusPaid {
			duplicate = true
			return nil
		}
		if order.Status != models.OrderStatusPending {
			return validationError("订单已关闭")
		}
		if order.Amount != n.Amount {
			return validationError(fmt.Sprintf("金额不一致: 订单 %d, 回调 %d", order.Amount, n.Amount))
		}

		now := s.now()
		if err := tx.MarkOrderPaid(order.ID, n.TradeNo, now); err != nil {
			return err
		}

		switch order.Type {
		case models.RewardVip:
			return fulfil(tx, order.UserID, models.RewardVip, int(order.ProductID), now)
		case models.RewardCoin:
			pkg, err := tx.FindCoinPackage(order.ProductID)
			if err != nil {
				return err
			}
			if pkg == nil {
				return fmt.Errorf("%w: coin package %d missing", ErrRewardCatalogInconsistent, order.ProductID)
			}
			return fulfil(tx, order.UserID, models.RewardCoin, pkg.Coin, now)
		}
		return fmt.Errorf("%w: unknown order type %q", ErrRewardCatalogInconsistent, order.Type)
	})

	switch {
	case err == nil && duplicate:
		metrics.RechargeCallbackTotal.WithLabelValues("duplicate").Inc()
		s.logger.Info("recharge already processed", zap.String("order_no", n.OrderNo))
		return nil
	case err == nil:
		metrics.RechargeCallbackTotal.WithLabelValues("paid").Inc()
		s.logger.Info("recharge fulfilled", zap.String("order_no", n.OrderNo), zap.String("trade_no", n.TradeNo))
		return nil
	case IsBusinessError(err):
		metrics.RechargeCallbackTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn("recharge callback rejected", zap.String("order_no", n.OrderNo), zap.Error(err))
		return err
	}
	metrics.RechargeCallbackTotal.WithLabelValues("failed").Inc()
	s.logger.Error("recharge callback failed", zap.String("order_no", n.OrderNo), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrTransactionFailure, err)
}

func (s *RechargeService) ListOrders(ctx context.Context, userID uint, page, pageSize int) ([]models.RechargeOrder, int64, error) {
	page, pageSize = utils.NormalizePage(page, pageSize)
	return s.store.ListOrders(ctx, userID, utils.Offset(page, pageSize), pageSize)
}
