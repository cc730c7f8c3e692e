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

	"github.com/gin-gonic/gin"
)

type Profile struct {
	Config         *config.Config
	Sessions       *cache.SessionStorage
	ProfileService service.IProfileService
}

func (h *Profile) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Sessions)
	group := r.Group("/v1/profile", authorize)
	group.GET("", context.Wrap(h.Get))
	group.PUT("", context.Wrap(h.Update))
}

func (h *Profile) Get(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ProfileService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Profile) Update(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.ProfileService.UpdateProfile(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
