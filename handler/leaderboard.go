package handler

import (
	"Tally/config"
	"Tally/dao/cache"
	"Tally/middleware"
	"Tally/pkg/context"
	"Tally/pkg/response"
	"Tally/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Leaderboard struct {
	Config             *config.Config
	Sessions           *cache.SessionStorage
	LeaderboardService service.ILeaderboardService
}

func (h *Leaderboard) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Sessions)
	r.GET("/v1/leaderboard", authorize, context.Wrap(h.Rank))
}

// Rank 榜单降级后也返回 200 + 空列表，永远不让这页报错
func (h *Leaderboard) Rank(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	windowDays, _ := strconv.Atoi(c.DefaultQuery("window_days", "30"))
	resp := h.LeaderboardService.Rank(c.Request.Context(), windowDays, userKey(uid))
	response.Success(c, resp)
	return nil
}
