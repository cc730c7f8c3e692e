package handler

import (
	"Tally/config"
	"Tally/dao/cache"
	"Tally/middleware"
	"Tally/pkg/context"
	"Tally/pkg/response"
	"Tally/service"
	"Tally/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Redemption struct {
	Config   *config.Config
	Sessions *cache.SessionStorage
	Sources  *service.SourceResolver
}

func (h *Redemption) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Sessions)
	group := r.Group("/v1/redemptions", authorize)
	group.GET("", context.Wrap(h.List))
	group.POST("", context.Wrap(h.Create))
	group.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Redemption) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.Sources.ForUser().FetchRedemptions(c.Request.Context(), userKey(uid))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Redemption) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.CreateRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Sources.ForUser().InsertRedemption(c.Request.Context(), userKey(uid), &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Redemption) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的兑换ID")
	}

	if err := h.Sources.ForUser().DeleteRedemption(c.Request.Context(), userKey(uid), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
