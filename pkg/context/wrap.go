package context

import (
	"Tally/pkg/response"
	"Tally/pkg/xerr"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxGuestKey = "guest_key"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				c.JSON(http.StatusOK, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
				})
				return
			}
			// 核心链路的分类错误按类别映射状态码
			c.JSON(httpStatus(err), response.Response{
				Code: httpStatus(err),
				Msg:  err.Error(),
			})
		}
	}
}

func httpStatus(err error) int {
	switch {
	case xerr.IsValidation(err):
		return http.StatusBadRequest
	case xerr.IsStaleSession(err):
		return http.StatusForbidden
	case xerr.IsTimeout(err):
		return http.StatusGatewayTimeout
	case xerr.IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

func GetGuestKey(c *gin.Context) (string, error) {
	v, ok := c.Get(CtxGuestKey)
	if !ok {
		return "", errors.New("guest_key 不存在")
	}

	key, ok := v.(string)
	if !ok {
		return "", errors.New("guest_key 类型错误")
	}

	return key, nil
}
