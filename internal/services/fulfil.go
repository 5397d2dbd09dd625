package services

import (
	"fmt"
	"time"

	"pointmall/internal/models"
)

// VipForever 永久会员的到期时间
var VipForever = time.Date(2099, 12, 31, 23, 59, 59, 0, time.Local)

// VipExpireAt 计算会员卡从 now 起算的到期时间
func VipExpireAt(card *models.VipCard, now time.Time) (time.Time, error) {
	if card.Duration == models.UnlimitedDuration {
		return VipForever, nil
	}
	if card.Duration <= 0 {
		return time.Time{}, fmt.Errorf("%w: vip card %d has duration %d", ErrRewardCatalogInconsistent, card.ID, card.Duration)
	}

	switch card.DurationUnit {
	case models.UnitDay:
		return now.AddDate(0, 0, card.Duration), nil
	case models.UnitMonth:
		return now.AddDate(0, card.Duration, 0), nil
	case models.UnitYear:
		return now.AddDate(card.Duration, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: vip card %d has unit %q", ErrRewardCatalogInconsistent, card.ID, card.DurationUnit)
}

// fulfil 发放奖励：vip 时 value 为会员卡 ID，coin 时 value 为金币数量
func fulfil(tx Tx, userID uint, rewardType models.RewardType, value int, now time.Time) error {
	switch rewardType {
	case models.RewardVip:
		card, err := tx.FindVipCard(uint(value))
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("%w: vip card %d missing", ErrRewardCatalogInconsistent, value)
		}
		expireAt, err := VipExpireAt(card, now)
		if err != nil {
			return err
		}
		return tx.GrantVip(userID, card.ID, expireAt)
	case models.RewardCoin:
		if value <= 0 {
			return fmt.Errorf("%w: coin reward %d", ErrRewardCatalogInconsistent, value)
		}
		return tx.AddCoin(userID, value)
	}
	return fmt.Errorf("%w: unknown reward type %q", ErrRewardCatalogInconsistent, rewardType)
}
