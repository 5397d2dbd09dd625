package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UUID          string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Username      string     `gorm:"not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`                           // Hash
	Role          string     `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Points        int        `gorm:"not null;default:0" json:"points"`            // 积分余额
	Coin          int        `gorm:"not null;default:0" json:"coin"`              // 金币余额
	IsVip         bool       `gorm:"default:false" json:"is_vip"`
	VipExpired    bool       `gorm:"default:false;index" json:"vip_expired"`
	VipCardID     *uint      `json:"vip_card_id"`
	VipExpireTime *time.Time `gorm:"index" json:"vip_expire_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
