package handler

import (
	"Tally/config"
	"Tally/dao/cache"
	"Tally/middleware"
	"Tally/pkg/context"
	"Tally/pkg/response"
	"Tally/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Stats struct {
	Config   *config.Config
	Sessions *cache.SessionStorage
	Sources  *service.SourceResolver
}

func (h *Stats) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Sessions)
	r.GET("/v1/stats", authorize, context.Wrap(h.Get))
}

func (h *Stats) Get(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	stats, err := h.Sources.ForUser().GetStats(c.Request.Context(), userKey(uid))
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}
