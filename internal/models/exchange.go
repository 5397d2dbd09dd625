package models

import (
	"time"
)

type RewardType string

const (
	RewardVip  RewardType = "vip"
	RewardCoin RewardType = "coin"
)

const (
	ExchangeItemInactive = 0
	ExchangeItemActive   = 1
)

const ExchangeStatusSuccess = 1

// ExchangeItem 积分兑换商品
type ExchangeItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Type        RewardType `gorm:"type:varchar(10);not null" json:"type"`
	Value       int        `gorm:"not null" json:"value"` // vip: 会员卡 ID, coin: 金币数量
	Cost        int        `gorm:"not null" json:"cost"`  // 所需积分
	Description string     `gorm:"type:text" json:"description"`
	Icon        string     `gorm:"size:255" json:"icon"`
	Sort        int        `gorm:"default:0" json:"sort"`
	Status      int        `gorm:"default:1;index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ExchangeItem) TableName() string {
	return "points_exchange"
}

// ExchangeLog 兑换记录，item_name 为兑换时的快照
type ExchangeLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ExchangeID uint      `gorm:"not null;index" json:"exchange_id"`
	ItemName   string    `gorm:"size:100;not null" json:"item_name"`
	Cost       int       `gorm:"not null" json:"cost"`
	Status     int       `gorm:"not null" json:"status"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (ExchangeLog) TableName() string {
	return "points_exchange_logs"
}
