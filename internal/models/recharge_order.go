package models

import (
	"time"
)

const (
	OrderStatusPending = 0
	OrderStatusPaid    = 1
	OrderStatusClosed  = 2
)

// RechargeOrder 充值订单，status 用于回调幂等判断
type RechargeOrder struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OrderNo   string     `gorm:"size:40;uniqueIndex;not null" json:"order_no"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Type      RewardType `gorm:"type:varchar(10);not null" json:"type"`
	ProductID uint       `gorm:"not null" json:"product_id"`
	Amount    int64      `gorm:"not null" json:"amount"` // 分
	Status    int        `gorm:"not null;default:0;index" json:"status"`
	TradeNo   *string    `gorm:"size:64;uniqueIndex" json:"trade_no"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
