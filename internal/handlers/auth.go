package handlers

import (
	"context"
	"net/http"

	"pointmall/internal/middleware"
	"pointmall/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, email, password, username string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	FindByUUID(ctx context.Context, accountUUID string) (*models.User, error)
}

type AuthHandler struct {
	accounts AccountService
	logger   *zap.Logger
}

func NewAuthHandler(accounts AccountService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Username string `json:"username" form:"username"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请填写邮箱和密码")
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		FailErr(c, err, "注册")
		return
	}
	Success(c, "注册成功", gin.H{"uuid": user.UUID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		Fail(c, http.StatusBadRequest, "请填写邮箱和密码")
		return
	}

	user, token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		FailErr(c, err, "登录")
		return
	}

	// 浏览器端走 cookie session
	if session, ok := middleware.Session(c); ok {
		session.Set(middleware.SessionUserKey, user.UUID)
		if err := session.Save(); err != nil {
			h.logger.Warn("save session failed", zap.String("uuid", user.UUID), zap.Error(err))
		}
	}
	Success(c, "登录成功", gin.H{"token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.Session(c); ok {
		session.Clear()
		if err := session.Save(); err != nil {
			h.logger.Warn("clear session failed", zap.Error(err))
		}
	}
	Success(c, "已退出登录", nil)
}
