package middleware

import (
	"context"
	"net/http"
	"strings"

	"pointmall/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// SessionUserKey 登录后写入 cookie session 的账户 uuid
const SessionUserKey = "user_uuid"

type TokenResolver interface {
	Resolve(token string) (string, error)
}

type AccountFinder interface {
	FindByUUID(ctx context.Context, accountUUID string) (*models.User, error)
}

// CurrentUser 取出 LoadUser 放入上下文的账户
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// Session 返回当前请求的 session，未挂载 sessions 中间件时 ok 为 false
func Session(c *gin.Context) (sessions.Session, bool) {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil, false
	}
	return sessions.Default(c), true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}

// LoadUser 优先解析 Bearer token，没有时回退到 session 中的 uuid
func LoadUser(tokens TokenResolver, accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var accountUUID string

		if token, present := bearerToken(c); present {
			// 带了凭证但无效时不回退 session
			if uuid, err := tokens.Resolve(token); err == nil {
				accountUUID = uuid
			}
		} else if session, ok := Session(c); ok {
			if uuid, ok := session.Get(SessionUserKey).(string); ok {
				accountUUID = uuid
			}
		}

		if accountUUID != "" {
			user, err := accounts.FindByUUID(c.Request.Context(), accountUUID)
			if err == nil {
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": http.StatusUnauthorized,
				"msg":  "请先登录",
			})
			return
		}
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": http.StatusUnauthorized,
				"msg":  "请先登录",
			})
			return
		}
		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": http.StatusForbidden,
				"msg":  "没有权限",
			})
			return
		}
		c.Next()
	}
}
