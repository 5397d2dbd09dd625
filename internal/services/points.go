package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"pointmall/internal/metrics"
	"pointmall/internal/models"
	"pointmall/internal/utils"

	"go.uber.org/zap"
)

// 积分动作
const (
	ReasonCheckIn      = "每日签到"
	ReasonCheckInBonus = "签到额外奖励"
	ReasonRedeemPrefix = "兑换"
)

const PointsCheckIn = 1

type PointsService struct {
	store  PointsStore
	logger *zap.Logger
	now    func() time.Time
	// bonusRoll 返回签到额外奖励，0 表示没有
	bonusRoll func() int
}

func NewPointsService(store PointsStore, logger *zap.Logger) *PointsService {
	return &PointsService{
		store:     store,
		logger:    logger,
		now:       time.Now,
		bonusRoll: defaultBonusRoll,
	}
}

// 中等概率（约30%）获得 1-3 额外积分
func defaultBonusRoll() int {
	if rand.Intn(100) < 30 {
		return rand.Intn(3) + 1
	}
	return 0
}

// ItemView 兑换商品列表项，description 已渲染为安全的 HTML
type ItemView struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Type        models.RewardType `json:"type"`
	Value       int               `json:"value"`
	Cost        int               `json:"cost"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
}

type RedeemResult struct {
	ItemID   uint   `json:"id"`
	ItemName string `json:"name"`
	Cost     int    `json:"cost"`
	Balance  int    `json:"balance"`
}

type CheckInResult struct {
	Points  int `json:"points"`
	Bonus   int `json:"bonus"`
	Balance int `json:"balance"`
}

func (s *PointsService) ListItems(ctx context.Context) ([]ItemView, error) {
	items, err := s.store.ListActiveItems(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, ItemView{
			ID:          it.ID,
			Name:        it.Name,
			Type:        it.Type,
			Value:       it.Value,
			Cost:        it.Cost,
			Description: utils.RenderMarkdown(it.Description),
			Icon:        it.Icon,
		})
	}
	return views, nil
}

// Redeem 积分兑换：扣积分、记明细、记兑换记录、发放奖励，全部在一个事务内完成
func (s *PointsService) Redeem(ctx context.Context, userID, itemID uint) (*RedeemResult, error) {
	if itemID == 0 {
		return nil, validationError("请选择兑换商品")
	}

	start := time.Now()
	rewardType := "unknown"
	var result *RedeemResult

	err := s.store.Transaction(ctx, func(tx Tx) error {
		item, err := tx.FindActiveItem(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrItemNotFound
		}
		rewardType = string(item.Type)

		// 行锁，余额读取与扣减在同一锁内
		user, err := tx.LockUser(userID)
		if err != nil {
			return err
		}
		if user.Points < item.Cost {
			return ErrInsufficientPoints
		}

		ok, err := tx.AdjustPoints(userID, -item.Cost)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientPoints
		}
		newBalance := user.Points - item.Cost

		if err := tx.CreatePointLog(&models.PointLog{
			UserID:  userID,
			Amount:  -item.Cost,
			Balance: newBalance,
			Reason:  ReasonRedeemPrefix + item.Name,
		}); err != nil {
			return err
		}

		if err := tx.CreateExchangeLog(&models.ExchangeLog{
			UserID:     userID,
			ExchangeID: item.ID,
			ItemName:   item.Name,
			Cost:       item.Cost,
			Status:     models.ExchangeStatusSuccess,
		}); err != nil {
			return err
		}

		if err := fulfil(tx, userID, item.Type, item.Value, s.now()); err != nil {
			return err
		}

		result = &RedeemResult{
			ItemID:   item.ID,
			ItemName: item.Name,
			Cost:     item.Cost,
			Balance:  newBalance,
		}
		return nil
	})
	metrics.RedeemDuration.Observe(time.Since(start).Seconds())
	metrics.RedeemTotal.WithLabelValues(rewardType, redeemResultLabel(err)).Inc()

	if err != nil {
		if IsBusinessError(err) {
			s.logger.Info("redeem rejected",
				zap.Uint("user_id", userID),
				zap.Uint("item_id", itemID),
				zap.Error(err))
			return nil, err
		}
		s.logger.Error("redeem failed",
			zap.Uint("user_id", userID),
			zap.Uint("item_id", itemID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}

	metrics.RedeemPointsTotal.Add(float64(result.Cost))
	s.logger.Info("redeem succeeded",
		zap.Uint("user_id", userID),
		zap.Uint("item_id", itemID),
		zap.Int("cost", result.Cost),
		zap.Int("balance", result.Balance))
	return result, nil
}

func redeemResultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInsufficientPoints):
		return "insufficient"
	case errors.Is(err, ErrItemNotFound):
		return "not_found"
	case errors.Is(err, ErrRewardCatalogInconsistent):
		return "catalog"
	case IsBusinessError(err):
		return "invalid"
	}
	return "failed"
}

// ListRedemptions 兑换记录，按时间倒序分页
func (s *PointsService) ListRedemptions(ctx context.Context, userID uint, page, pageSize int) ([]models.ExchangeLog, int64, error) {
	page, pageSize = utils.NormalizePage(page, pageSize)
	return s.store.ListExchangeLogs(ctx, userID, utils.Offset(page, pageSize), pageSize)
}

// ListPointLogs 积分明细，按时间倒序分页
func (s *PointsService) ListPointLogs(ctx context.Context, userID uint, page, pageSize int) ([]models.PointLog, int64, error) {
	page, pageSize = utils.NormalizePage(page, pageSize)
	return s.store.ListPointLogs(ctx, userID, utils.Offset(page, pageSize), pageSize)
}

// AddPoints 使用事务变动积分并记录明细
// 传入用户ID、积分变动值（正数增加，负数扣除）、动作描述
func (s *PointsService) AddPoints(ctx context.Context, userID uint, amount int, reason string) (int, error) {
	if amount == 0 || reason == "" {
		return 0, validationError("积分变动和原因不能为空")
	}

	var balance int
	err := s.store.Transaction(ctx, func(tx Tx) error {
		user, err := tx.LockUser(userID)
		if err != nil {
			return err
		}
		balance = user.Points + amount
		if balance < 0 {
			return ErrInsufficientPoints
		}

		ok, err := tx.AdjustPoints(userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientPoints
		}

		return tx.CreatePointLog(&models.PointLog{
			UserID:  userID,
			Amount:  amount,
			Balance: balance,
			Reason:  reason,
		})
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// startOfDay 获取当天零点
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// CheckIn 每日签到
func (s *PointsService) CheckIn(ctx context.Context, userID uint) (*CheckInResult, error) {
	now := s.now()
	result := &CheckInResult{Points: PointsCheckIn}

	err := s.store.Transaction(ctx, func(tx Tx) error {
		user, err := tx.LockUser(userID)
		if err != nil {
			return err
		}

		// 锁住账户后再检查，避免并发重复签到
		count, err := tx.CountPointLogsSince(userID, ReasonCheckIn, startOfDay(now))
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyCheckedIn
		}

		balance := user.Points + result.Points
		if err := tx.CreatePointLog(&models.PointLog{
			UserID:  userID,
			Amount:  result.Points,
			Balance: balance,
			Reason:  ReasonCheckIn,
		}); err != nil {
			return err
		}

		result.Bonus = s.bonusRoll()
		if result.Bonus > 0 {
			balance += result.Bonus
			if err := tx.CreatePointLog(&models.PointLog{
				UserID:  userID,
				Amount:  result.Bonus,
				Balance: balance,
				Reason:  ReasonCheckInBonus,
			}); err != nil {
				return err
			}
		}

		if _, err := tx.AdjustPoints(userID, result.Points+result.Bonus); err != nil {
			return err
		}
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
