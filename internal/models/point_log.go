package models

import (
	"time"
)

// PointLog 积分明细，只追加不修改
type PointLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    int       `gorm:"not null" json:"amount"`          // 正数为增加，负数为扣除
	Balance   int       `gorm:"not null" json:"balance"`         // 变动后余额
	Reason    string    `gorm:"size:100;not null" json:"reason"` // 动作描述
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
