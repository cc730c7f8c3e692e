package middleware

import (
	"net/http"
	"strings"

	"Tally/dao/cache"
	"Tally/pkg/jwt"
	"Tally/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	CtxSessionID = "session_id"
)

func Auth(secret []byte, sessions *cache.SessionStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		// token 本身合法还不够，会话被登出或轮换后旧身份一律拒绝
		if sessions.Get(c.Request.Context(), claims.SessionID) != claims.UserID {
			response.Abort(c, http.StatusUnauthorized, "会话已失效，请重新登录")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set(CtxSessionID, claims.SessionID)

		c.Next()
	}
}
