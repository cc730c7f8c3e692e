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

type Record struct {
	Config   *config.Config
	Sessions *cache.SessionStorage
	Sources  *service.SourceResolver
}

func (h *Record) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Sessions)
	group := r.Group("/v1/records", authorize)
	group.GET("", context.Wrap(h.List))
	group.POST("", context.Wrap(h.Create))
	group.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Record) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Sources.ForUser().FetchRecords(c.Request.Context(), userKey(uid), req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Record) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Sources.ForUser().InsertRecord(c.Request.Context(), userKey(uid), &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Record) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的记录ID")
	}

	if err := h.Sources.ForUser().DeleteRecord(c.Request.Context(), userKey(uid), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func userKey(uid uint64) string {
	return strconv.FormatUint(uid, 10)
}
