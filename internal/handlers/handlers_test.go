package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"pointmall/internal/middleware"
	"pointmall/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// asUser 模拟 LoadUser 的结果
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	}
}

func newEngine(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(user))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}
