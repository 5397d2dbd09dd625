package handlers

import (
	"time"

	"pointmall/internal/middleware"
	"pointmall/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	now func() time.Time
}

func NewUserHandler() *UserHandler {
	return &UserHandler{now: time.Now}
}

type userInfo struct {
	UUID          string     `json:"uuid"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Points        int        `json:"points"`
	Coin          int        `json:"coin"`
	IsVip         bool       `json:"is_vip"`
	VipExpireTime *time.Time `json:"vip_expire_time"`
	Level         string     `json:"level"`
	LevelIcon     string     `json:"level_icon"`
	Days          int        `json:"days"`
}

// Info 当前账户概要 GET /user/info
func (h *UserHandler) Info(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	// 计算用户等级和注册天数
	levelName, levelIcon := utils.GetUserLevel(user.Points)
	Success(c, "ok", userInfo{
		UUID:          user.UUID,
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		Points:        user.Points,
		Coin:          user.Coin,
		IsVip:         utils.VipActive(user.IsVip, user.VipExpireTime, h.now()),
		VipExpireTime: user.VipExpireTime,
		Level:         levelName,
		LevelIcon:     levelIcon,
		Days:          utils.GetDaysSinceJoined(user.CreatedAt),
	})
}
