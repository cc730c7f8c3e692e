package middleware

import (
	"net/http"

	"Tally/pkg/response"

	"github.com/gin-gonic/gin"
)

const GuestKeyHeader = "X-Guest-Key"

// Guest 游客路由：请求必须带设备侧生成的 guest key，数据只存本地文件
func Guest() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(GuestKeyHeader)
		if key == "" {
			response.Abort(c, http.StatusBadRequest, "缺少 "+GuestKeyHeader)
			return
		}

		c.Set("guest_key", key)
		c.Next()
	}
}
