package handler

import (
	"Loyo/config"
	"Loyo/middleware"
	"Loyo/pkg/context"
	"Loyo/pkg/response"
	"Loyo/service"
	"Loyo/types"

	"github.com/gin-gonic/gin"
)

type Business struct {
	Config          *config.Config
	BusinessService service.IBusinessService
}

func (h *Business) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	businesses := r.Group("/v1/businesses")
	businesses.POST("/create", authorize, context.Wrap(h.CreateBusiness))
	businesses.GET("/:business_id", authorize, context.Wrap(h.GetBusiness))
	businesses.POST("/:business_id/settings", authorize, context.Wrap(h.UpdateSettings))
	businesses.POST("/:business_id/deactivate", authorize, context.Wrap(h.Deactivate))
}

// CreateBusiness 开户，同时自动创建 General / Referral 永久等级
func (h *Business) CreateBusiness(c *gin.Context) error {
	var req types.CreateBusinessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	b, err := h.BusinessService.CreateBusiness(c, &req)
	if err != nil {
		return err
	}
	response.Success(c, b)
	return nil
}

func (h *Business) GetBusiness(c *gin.Context) error {
	b, err := h.BusinessService.GetBusiness(c, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, b)
	return nil
}

func (h *Business) UpdateSettings(c *gin.Context) error {
	var req types.UpdateBusinessSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	b, err := h.BusinessService.UpdateSettings(c, c.Param("business_id"), &req)
	if err != nil {
		return err
	}
	response.Success(c, b)
	return nil
}

func (h *Business) Deactivate(c *gin.Context) error {
	if err := h.BusinessService.Deactivate(c, c.Param("business_id")); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
