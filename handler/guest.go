package handler

import (
	"Tally/config"
	"Tally/middleware"
	"Tally/pkg/context"
	"Tally/pkg/response"
	"Tally/service"
	"Tally/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Guest 游客模式：同一套读写契约，数据源换成本地文件
type Guest struct {
	Config  *config.Config
	Sources *service.SourceResolver
}

func (h *Guest) RegisterRouter(r gin.IRouter) {
	group := r.Group("/v1/guest", middleware.Guest())
	group.GET("/records", context.Wrap(h.ListRecords))
	group.POST("/records", context.Wrap(h.CreateRecord))
	group.DELETE("/records/:id", context.Wrap(h.DeleteRecord))
	group.GET("/redemptions", context.Wrap(h.ListRedemptions))
	group.POST("/redemptions", context.Wrap(h.CreateRedemption))
	group.DELETE("/redemptions/:id", context.Wrap(h.DeleteRedemption))
	group.GET("/stats", context.Wrap(h.GetStats))
	group.POST("/import", context.Wrap(h.Import))
}

func (h *Guest) ListRecords(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	var req types.ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Sources.ForGuest().FetchRecords(c.Request.Context(), key, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Guest) CreateRecord(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	var req types.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Sources.ForGuest().InsertRecord(c.Request.Context(), key, &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Guest) DeleteRecord(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的记录ID")
	}

	if err := h.Sources.ForGuest().DeleteRecord(c.Request.Context(), key, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Guest) ListRedemptions(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Sources.ForGuest().FetchRedemptions(c.Request.Context(), key)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Guest) CreateRedemption(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	var req types.CreateRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Sources.ForGuest().InsertRedemption(c.Request.Context(), key, &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Guest) DeleteRedemption(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的兑换ID")
	}

	if err := h.Sources.ForGuest().DeleteRedemption(c.Request.Context(), key, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Guest) GetStats(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	stats, err := h.Sources.ForGuest().GetStats(c.Request.Context(), key)
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}

// Import 设备上已有的游客数据整包导入，覆盖写
func (h *Guest) Import(c *gin.Context) error {
	key, err := context.GetGuestKey(c)
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	raw, err := c.GetRawData()
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.Sources.Local.ImportDataset(key, raw); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
