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

type Auth struct {
	Config      *config.Config
	Sessions    *cache.SessionStorage
	AuthService service.IAuthService
}

func (a *Auth) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(a.Config.Jwt.Secret), a.Sessions)
	group := r.Group("/v1/auth")
	group.POST("/register", context.Wrap(a.Register))
	group.POST("/login", context.Wrap(a.Login))
	group.POST("/logout", authorize, context.Wrap(a.Logout))
}

func (a *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := a.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := a.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Auth) Logout(c *gin.Context) error {
	sid := c.GetString(middleware.CtxSessionID)
	if sid != "" {
		a.AuthService.Logout(c.Request.Context(), sid)
	}
	response.Success(c, nil)
	return nil
}
