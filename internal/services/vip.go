package services

import (
	"context"
	"time"

	"pointmall/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// VipService 同步会员过期状态
type VipService struct {
	store  VipStore
	logger *zap.Logger
	now    func() time.Time
}

func NewVipService(store VipStore, logger *zap.Logger) *VipService {
	return &VipService{store: store, logger: logger, now: time.Now}
}

// ExpireOverdue 将已过期的会员标记为过期，返回处理数量
func (s *VipService) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.store.ExpireVip(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.VipExpiredTotal.Add(float64(n))
	return n, nil
}

// Schedule 注册定时任务
func (s *VipService) Schedule(c *cron.Cron, interval time.Duration) (cron.EntryID, error) {
	return c.AddFunc("@every "+interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := s.ExpireOverdue(ctx)
		if err != nil {
			s.logger.Error("[CRON] vip expiry sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			s.logger.Info("[CRON] vip expiry sweep finished", zap.Int64("expired", n))
		}
	})
}
