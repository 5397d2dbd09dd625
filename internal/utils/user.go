package utils

import (
	"time"
)

// GetUserLevel 根据积分数量返回用户等级
func GetUserLevel(points int) (name string, icon string) {
	switch {
	case points >= 5000:
		return "钻石", "💎"
	case points >= 1000:
		return "黄金", "🥇"
	case points >= 201:
		return "白银", "🥈"
	case points >= 51:
		return "青铜", "🥉"
	default:
		return "新手", "🌱"
	}
}

// GetDaysSinceJoined 计算注册天数
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}

// VipActive 会员是否在有效期内
func VipActive(isVip bool, expireAt *time.Time, now time.Time) bool {
	return isVip && expireAt != nil && expireAt.After(now)
}
