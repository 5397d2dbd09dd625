package handlers

import (
	"errors"
	"net/http"
	"strings"

	"pointmall/internal/middleware"
	"pointmall/internal/services"
	"pointmall/internal/utils"

	"github.com/gin-gonic/gin"
)

const CodeOK = 0

// Response 统一返回结构，HTTP 状态码与 code 保持一致（成功为 200）
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

type PageData struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Msg: msg, Data: data})
}

func Fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Response{Code: code, Msg: msg})
}

// FailErr 将 service 层错误翻译为返回码和提示，action 用于未知错误的提示前缀
func FailErr(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrInsufficientPoints):
		Fail(c, http.StatusBadRequest, "积分不足")
	case errors.Is(err, services.ErrItemNotFound):
		Fail(c, http.StatusBadRequest, "兑换商品不存在")
	case errors.Is(err, services.ErrRewardCatalogInconsistent):
		Fail(c, http.StatusBadRequest, "兑换的会员卡不存在")
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		Fail(c, http.StatusBadRequest, "今天已经签到过了")
	case errors.Is(err, services.ErrEmailTaken):
		Fail(c, http.StatusBadRequest, "该邮箱已被注册")
	case errors.Is(err, services.ErrOrderNotFound):
		Fail(c, http.StatusBadRequest, "订单不存在")
	case errors.Is(err, services.ErrValidation):
		Fail(c, http.StatusBadRequest, validationMsg(err))
	case errors.Is(err, services.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, "认证失败")
	default:
		_ = c.Error(err)
		msg := action + "失败，请稍后重试"
		if gin.Mode() != gin.ReleaseMode {
			msg = action + "失败: " + err.Error()
		}
		Fail(c, http.StatusInternalServerError, msg)
	}
}

func validationMsg(err error) string {
	msg := strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
	if msg == services.ErrValidation.Error() {
		return "参数错误"
	}
	return msg
}

// currentUserID AuthRequired 之后调用
func currentUserID(c *gin.Context) uint {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return 0
	}
	return user.ID
}

func pageQuery(c *gin.Context) (int, int) {
	return utils.StringToInt(c.Query("page")), utils.StringToInt(c.Query("page_size"))
}
