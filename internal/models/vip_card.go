package models

import (
	"time"
)

type DurationUnit string

const (
	UnitDay   DurationUnit = "DAY"
	UnitMonth DurationUnit = "MONTH"
	UnitYear  DurationUnit = "YEAR"
)

// CatalogActive 会员卡、金币套餐上架状态
const CatalogActive = 1

// UnlimitedDuration 永久卡
const UnlimitedDuration = -1

type VipCard struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:50;not null" json:"name"`
	Duration     int          `gorm:"not null" json:"duration"`
	DurationUnit DurationUnit `gorm:"type:varchar(10);not null;default:'DAY'" json:"duration_unit"`
	Price        int64        `gorm:"not null;default:0" json:"price"` // 分
	Status       int          `gorm:"default:1" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type CoinPackage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Coin      int       `gorm:"not null" json:"coin"`
	Price     int64     `gorm:"not null" json:"price"` // 分
	Status    int       `gorm:"default:1" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
