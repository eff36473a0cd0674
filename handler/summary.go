package handler

import (
	"Loyo/config"
	"Loyo/middleware"
	"Loyo/pkg/context"
	"Loyo/pkg/response"
	"Loyo/service"

	"github.com/gin-gonic/gin"
)

type Summary struct {
	Config      *config.Config
	SyncService service.ISyncService
}

func (h *Summary) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	summaries := r.Group("/v1/customers/summaries")
	summaries.GET("/list", authorize, context.Wrap(h.ListSummaries))
	summaries.POST("/rebuild", authorize, context.Wrap(h.Rebuild))
}

// ListSummaries 客户跨商家的会员摘要，读缓存
func (h *Summary) ListSummaries(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	summaries, err := h.SyncService.GetSummaries(c, customerID)
	if err != nil {
		return err
	}
	response.Success(c, summaries)
	return nil
}

// Rebuild 从权威记录全量重建摘要缓存（缓存丢失或怀疑漂移时）
func (h *Summary) Rebuild(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	summaries, err := h.SyncService.RebuildAll(c, customerID)
	if err != nil {
		return err
	}
	response.Success(c, summaries)
	return nil
}
